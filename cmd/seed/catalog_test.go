package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadCatalog(t *testing.T) {
	csv := "sku,name,uom,min_stock_level,initial_stock\n" +
		"# comentario\n" +
		"TOR-001, Tornillo 3/8, unit, 10, 25.5\n" +
		"TUE-002,Tuerca,,,\n"

	items, err := readCatalog(strings.NewReader(csv), false)
	require.NoError(t, err)
	require.Len(t, items, 2)

	assert.Equal(t, "TOR-001", items[0].SKU)
	assert.Equal(t, "Tornillo 3/8", items[0].Name)
	assert.True(t, items[0].InitialStock.Equal(decimal.RequireFromString("25.5")))
	require.NotNil(t, items[0].MinStockLevel)
	assert.True(t, items[0].MinStockLevel.Equal(decimal.NewFromInt(10)))

	assert.Nil(t, items[1].MinStockLevel)
	assert.True(t, items[1].InitialStock.IsZero())
}

func TestReadCatalog_Latin1(t *testing.T) {
	// "Ñame" en ISO-8859-1: Ñ = 0xD1
	raw := []byte("sku,name\nVEG-1,\xd1ame\n")

	items, err := readCatalog(bytes.NewReader(raw), true)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ñame", items[0].Name)
}

func TestReadCatalog_Errores(t *testing.T) {
	_, err := readCatalog(strings.NewReader("codigo,nombre\nA,B\n"), false)
	assert.Error(t, err, "sin columnas requeridas")

	_, err = readCatalog(strings.NewReader("sku,name,initial_stock\nA,B,muchos\n"), false)
	assert.Error(t, err, "cantidad no numérica")

	_, err = readCatalog(strings.NewReader("sku,name\n,B\n"), false)
	assert.Error(t, err, "sku vacío")
}

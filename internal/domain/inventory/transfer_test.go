package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
)

func TestTransfer_ConservaTotal(t *testing.T) {
	src := &entity.Stock{WarehouseID: "A", Quantity: decimal.NewFromInt(100)}
	dst := &entity.Stock{WarehouseID: "B", Quantity: decimal.Zero}
	before := src.Quantity.Add(dst.Quantity)

	require.NoError(t, inventory.Transfer(src, dst, decimal.NewFromInt(30)))

	assert.True(t, src.Quantity.Equal(decimal.NewFromInt(70)), "A=%s", src.Quantity)
	assert.True(t, dst.Quantity.Equal(decimal.NewFromInt(30)), "B=%s", dst.Quantity)
	assert.True(t, before.Equal(src.Quantity.Add(dst.Quantity)))
}

func TestTransfer_InsuficienteNoModifica(t *testing.T) {
	src := &entity.Stock{Quantity: decimal.NewFromInt(5)}
	dst := &entity.Stock{Quantity: decimal.NewFromInt(1)}

	err := inventory.Transfer(src, dst, decimal.NewFromInt(6))
	require.ErrorIs(t, err, domain.ErrInsufficientStock)

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.True(t, ise.Available.Equal(decimal.NewFromInt(5)))
	assert.True(t, ise.Requested.Equal(decimal.NewFromInt(6)))
	assert.True(t, src.Quantity.Equal(decimal.NewFromInt(5)))
	assert.True(t, dst.Quantity.Equal(decimal.NewFromInt(1)))
}

package main

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
)

// catalogColumns columnas esperadas en la cabecera del CSV (el orden puede variar).
var catalogColumns = []string{"sku", "name", "uom", "min_stock_level", "initial_stock"}

// readCatalog lee un catálogo de productos en CSV. Los exportes de ERPs locales suelen venir
// en ISO-8859-1; con latin1=true se transcodifica a UTF-8 antes de parsear.
func readCatalog(r io.Reader, latin1 bool) ([]dto.CreateProductRequest, error) {
	if latin1 {
		r = transform.NewReader(r, charmap.ISO8859_1.NewDecoder())
	}
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("leer cabecera: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range []string{"sku", "name"} {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q (esperadas: %s)", col, strings.Join(catalogColumns, ","))
		}
	}

	var out []dto.CreateProductRequest
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		get := func(col string) string {
			i, ok := idx[col]
			if !ok || i >= len(rec) {
				return ""
			}
			return strings.TrimSpace(rec[i])
		}

		in := dto.CreateProductRequest{SKU: get("sku"), Name: get("name"), UnitMeasure: get("uom")}
		if in.SKU == "" || in.Name == "" {
			return nil, fmt.Errorf("línea %d: sku y name son requeridos", line)
		}
		if v := get("initial_stock"); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return nil, fmt.Errorf("línea %d: initial_stock %q: %w", line, v, err)
			}
			in.InitialStock = d
		}
		if v := get("min_stock_level"); v != "" {
			d, err := decimal.NewFromString(v)
			if err != nil {
				return nil, fmt.Errorf("línea %d: min_stock_level %q: %w", line, v, err)
			}
			in.MinStockLevel = &d
		}
		out = append(out, in)
	}
	return out, nil
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto o SKU del inventario (multi-bodega).
// CurrentStock es el agregado de todas las bodegas; solo lo modifica la liquidación de movimientos.
type Product struct {
	ID            string
	SKU           string // código único
	Name          string
	CategoryID    *string
	UnitMeasure   string
	CurrentStock  decimal.Decimal
	MinStockLevel *decimal.Decimal
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// IsLowStock indica si el producto tiene nivel mínimo definido y está en o por debajo de él.
func (p *Product) IsLowStock() bool {
	return p.MinStockLevel != nil && p.CurrentStock.LessThanOrEqual(*p.MinStockLevel)
}

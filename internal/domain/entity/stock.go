package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Stock es la entrada del libro de existencias: cantidad de un producto en una bodega.
// Se crea al primer movimiento hacia o desde la bodega.
type Stock struct {
	ProductID   string
	WarehouseID string
	Quantity    decimal.Decimal
	UpdatedAt   time.Time
}

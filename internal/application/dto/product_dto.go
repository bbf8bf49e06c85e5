package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto. InitialStock siembra current_stock.
type CreateProductRequest struct {
	SKU           string           `json:"sku" validate:"required,min=1,max=100"`
	Name          string           `json:"name" validate:"required,min=1,max=200"`
	CategoryID    *string          `json:"category_id"`
	UnitMeasure   string           `json:"uom"`
	InitialStock  decimal.Decimal  `json:"initial_stock"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level"`
}

// UpdateProductRequest entrada para actualizar un producto (sin current_stock: se maneja vía movimientos).
type UpdateProductRequest struct {
	Name          *string          `json:"name" validate:"omitempty,min=1,max=200"`
	CategoryID    *string          `json:"category_id"`
	UnitMeasure   *string          `json:"uom"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID            string           `json:"id"`
	SKU           string           `json:"sku"`
	Name          string           `json:"name"`
	CategoryID    *string          `json:"category_id"`
	UnitMeasure   string           `json:"uom"`
	CurrentStock  decimal.Decimal  `json:"current_stock"`
	MinStockLevel *decimal.Decimal `json:"min_stock_level"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

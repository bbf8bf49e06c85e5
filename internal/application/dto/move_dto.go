package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateMoveRequest body para POST /operations/moves.
type CreateMoveRequest struct {
	ProductID         string          `json:"product_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	MoveType          string          `json:"move_type"`
	SourceWarehouseID *string         `json:"source_warehouse_id,omitempty"`
	DestWarehouseID   *string         `json:"dest_warehouse_id,omitempty"`
	SourceLocation    string          `json:"source_location,omitempty"`
	DestLocation      string          `json:"dest_location,omitempty"`
}

// ChangeMoveStatusRequest body para POST /operations/moves/{id}/status.
type ChangeMoveStatusRequest struct {
	NewStatus string `json:"new_status"`
}

// ListMovesRequest filtros de GET /operations/moves.
type ListMovesRequest struct {
	MoveType    string
	Status      string
	WarehouseID string
	ProductID   string
	Search      string
	PageRequest
}

// MoveResponse salida de un movimiento.
type MoveResponse struct {
	ID                string          `json:"id"`
	Reference         string          `json:"reference"`
	ProductID         string          `json:"product_id"`
	Quantity          decimal.Decimal `json:"quantity"`
	MoveType          string          `json:"move_type"`
	Status            string          `json:"status"`
	SourceWarehouseID *string         `json:"source_warehouse_id"`
	DestWarehouseID   *string         `json:"dest_warehouse_id"`
	SourceLocation    string          `json:"source_location"`
	DestLocation      string          `json:"dest_location"`
	CreatedBy         string          `json:"created_by,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// MoveListResponse lista paginada de movimientos.
type MoveListResponse struct {
	Items []MoveResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// StockEntryResponse cantidad de un producto en una bodega.
type StockEntryResponse struct {
	WarehouseID string          `json:"warehouse_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductStockResponse vista del libro de existencias de un producto frente a su agregado.
type ProductStockResponse struct {
	ProductID    string               `json:"product_id"`
	CurrentStock decimal.Decimal      `json:"current_stock"`
	LedgerTotal  decimal.Decimal      `json:"ledger_total"`
	Drift        decimal.Decimal      `json:"drift"` // current_stock - ledger_total
	Entries      []StockEntryResponse `json:"entries"`
}

// LowStockItemDTO producto en o bajo su nivel mínimo con la cantidad sugerida de pedido.
type LowStockItemDTO struct {
	ProductID         string          `json:"product_id"`
	SKU               string          `json:"sku"`
	ProductName       string          `json:"product_name"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	MinStockLevel     decimal.Decimal `json:"min_stock_level"`
	IdealStock        decimal.Decimal `json:"ideal_stock"`         // MinStockLevel * 1.5
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // IdealStock - CurrentStock
	Priority          int             `json:"priority"`            // 1 = más urgente
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento.
const (
	MoveTypeIN  = "IN"  // recepción
	MoveTypeOUT = "OUT" // despacho
	MoveTypeINT = "INT" // traslado interno entre bodegas
	MoveTypeADJ = "ADJ" // ajuste manual (cantidad con signo)
)

// Estados de un movimiento.
const (
	MoveStatusDraft     = "draft"
	MoveStatusWaiting   = "waiting"
	MoveStatusReady     = "ready"
	MoveStatusDone      = "done"
	MoveStatusCancelled = "cancelled"
)

// IsValidMoveType indica si t es uno de IN, OUT, INT, ADJ.
func IsValidMoveType(t string) bool {
	switch t {
	case MoveTypeIN, MoveTypeOUT, MoveTypeINT, MoveTypeADJ:
		return true
	}
	return false
}

// StockMove es el registro auditable de un evento que cambia cantidades.
// Nunca se elimina; solo cambia Status.
type StockMove struct {
	ID                string
	Reference         string // PREFIX/YYYY/NNNN
	ProductID         string
	Quantity          decimal.Decimal // con signo solo en ADJ
	SourceWarehouseID *string
	DestWarehouseID   *string
	SourceLocation    string // texto libre, solo auditoría
	DestLocation      string
	MoveType          string
	Status            string
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// MoveFilter filtros de listado de movimientos. Campos vacíos no filtran.
type MoveFilter struct {
	MoveType    string
	Status      string
	WarehouseID string // coincide con bodega origen o destino
	ProductID   string
	Search      string // referencia o ubicaciones
	Limit       int
	Offset      int
}

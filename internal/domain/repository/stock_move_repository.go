package repository

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// StockMoveRepository define el puerto de persistencia para movimientos. No hay borrado: es el rastro de auditoría.
type StockMoveRepository interface {
	Create(ctx context.Context, move *entity.StockMove) error
	// GetByID retorna domain.ErrMoveNotFound si no existe.
	GetByID(ctx context.Context, id string) (*entity.StockMove, error)
	// GetForUpdate bloquea la fila del movimiento; serializa validaciones concurrentes del mismo movimiento.
	GetForUpdate(ctx context.Context, id string) (*entity.StockMove, error)
	UpdateStatus(ctx context.Context, id, status string) error
	// List ordena por creación, más reciente primero.
	List(ctx context.Context, filter entity.MoveFilter) ([]*entity.StockMove, error)
	// ListReferences devuelve las referencias existentes del tipo (para sembrar el contador).
	ListReferences(ctx context.Context, moveType string) ([]string, error)
}

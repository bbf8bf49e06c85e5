package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.MoveSequenceRepository = (*MoveSequenceRepo)(nil)

// MoveSequenceRepo contador de referencias en move_sequences.
type MoveSequenceRepo struct {
	q Querier
}

// NewMoveSequenceRepository construye el adaptador del contador. Debe recibir la tx del alta.
func NewMoveSequenceRepository(q Querier) *MoveSequenceRepo {
	return &MoveSequenceRepo{q: q}
}

// Next incrementa atómicamente el contador del par (tipo, año). El upsert toma el lock
// de la fila, así dos altas concurrentes nunca obtienen el mismo consecutivo.
func (r *MoveSequenceRepo) Next(ctx context.Context, moveType string, year int, seed int) (int, error) {
	query := `
		INSERT INTO move_sequences (move_type, year, last_serial)
		VALUES ($1, $2, $3)
		ON CONFLICT (move_type, year)
		DO UPDATE SET last_serial = move_sequences.last_serial + 1
		RETURNING last_serial`
	var serial int
	if err := r.q.QueryRow(ctx, query, moveType, year, seed+1).Scan(&serial); err != nil {
		return 0, fmt.Errorf("next move sequence: %w", err)
	}
	return serial, nil
}

// Exists indica si el par ya tiene contador.
func (r *MoveSequenceRepo) Exists(ctx context.Context, moveType string, year int) (bool, error) {
	var ok bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM move_sequences WHERE move_type = $1 AND year = $2)`,
		moveType, year).Scan(&ok)
	if err != nil {
		return false, fmt.Errorf("check move sequence: %w", err)
	}
	return ok, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ repository.StockMoveRepository = (*StockMoveRepo)(nil)

const moveColumns = `id, reference, product_id, quantity, source_warehouse_id, dest_warehouse_id,
	source_location, dest_location, move_type, status, created_by, created_at, updated_at`

// StockMoveRepo implementación de StockMoveRepository sobre PostgreSQL (usable con pool o tx).
type StockMoveRepo struct {
	q Querier
}

// NewStockMoveRepository construye el adaptador de movimientos. Pasar pool o tx (Querier).
func NewStockMoveRepository(q Querier) *StockMoveRepo {
	return &StockMoveRepo{q: q}
}

func scanMove(row pgx.Row) (*entity.StockMove, error) {
	var m entity.StockMove
	err := row.Scan(&m.ID, &m.Reference, &m.ProductID, &m.Quantity,
		&m.SourceWarehouseID, &m.DestWarehouseID, &m.SourceLocation, &m.DestLocation,
		&m.MoveType, &m.Status, &m.CreatedBy, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create inserta un movimiento. (move_type, reference) es único.
func (r *StockMoveRepo) Create(ctx context.Context, move *entity.StockMove) error {
	query := `
		INSERT INTO stock_moves (` + moveColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		move.ID, move.Reference, move.ProductID, move.Quantity,
		move.SourceWarehouseID, move.DestWarehouseID, move.SourceLocation, move.DestLocation,
		move.MoveType, move.Status, move.CreatedBy, move.CreatedAt, move.UpdatedAt,
	)
	if err != nil {
		switch {
		case isUniqueViolation(err):
			return domain.ErrDuplicate
		case isForeignKeyViolation(err):
			// producto o bodega borrados por otra transacción después de la verificación
			return fmt.Errorf("insert stock move: %w", domain.ErrNotFound)
		}
		return fmt.Errorf("insert stock move: %w", err)
	}
	return nil
}

func (r *StockMoveRepo) getOne(ctx context.Context, query, id string) (*entity.StockMove, error) {
	m, err := scanMove(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) || isInvalidTextRepresentation(err) {
			return nil, domain.ErrMoveNotFound
		}
		return nil, fmt.Errorf("get stock move: %w", err)
	}
	return m, nil
}

// GetByID obtiene un movimiento por ID.
func (r *StockMoveRepo) GetByID(ctx context.Context, id string) (*entity.StockMove, error) {
	return r.getOne(ctx, `SELECT `+moveColumns+` FROM stock_moves WHERE id = $1`, id)
}

// GetForUpdate obtiene el movimiento bloqueando su fila.
func (r *StockMoveRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMove, error) {
	return r.getOne(ctx, `SELECT `+moveColumns+` FROM stock_moves WHERE id = $1 FOR UPDATE`, id)
}

// UpdateStatus cambia el estado del movimiento.
func (r *StockMoveRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE stock_moves SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update stock move status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrMoveNotFound
	}
	return nil
}

// List lista movimientos con filtros, más recientes primero.
func (r *StockMoveRepo) List(ctx context.Context, filter entity.MoveFilter) ([]*entity.StockMove, error) {
	var (
		conds []string
		args  []any
	)
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}
	if filter.MoveType != "" {
		conds = append(conds, "move_type = "+arg(filter.MoveType))
	}
	if filter.Status != "" {
		conds = append(conds, "status = "+arg(filter.Status))
	}
	if filter.ProductID != "" {
		conds = append(conds, "product_id = "+arg(filter.ProductID))
	}
	if filter.WarehouseID != "" {
		p := arg(filter.WarehouseID)
		conds = append(conds, "(source_warehouse_id = "+p+" OR dest_warehouse_id = "+p+")")
	}
	if filter.Search != "" {
		p := arg("%" + escapeLike(filter.Search) + "%")
		conds = append(conds, "(reference ILIKE "+p+" OR source_location ILIKE "+p+" OR dest_location ILIKE "+p+")")
	}

	query := `SELECT ` + moveColumns + ` FROM stock_moves`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY created_at DESC, seq DESC LIMIT " + arg(filter.Limit) + " OFFSET " + arg(filter.Offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock moves: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMove
	for rows.Next() {
		m, err := scanMove(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock move: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

// ListReferences devuelve las referencias existentes de un tipo de movimiento.
func (r *StockMoveRepo) ListReferences(ctx context.Context, moveType string) ([]string, error) {
	rows, err := r.q.Query(ctx, `SELECT reference FROM stock_moves WHERE move_type = $1`, moveType)
	if err != nil {
		return nil, fmt.Errorf("list move references: %w", err)
	}
	defer rows.Close()
	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("scan move reference: %w", err)
		}
		refs = append(refs, ref)
	}
	return refs, rows.Err()
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/stockmaster-api/internal/domain"
)

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505" // unique_violation
	}
	return strings.Contains(err.Error(), "23505")
}

// isForeignKeyViolation verifica si un error es una violación de llave foránea (23503).
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503" // foreign_key_violation
	}
	return false
}

// isInvalidTextRepresentation verifica si PostgreSQL rechazó el texto de un parámetro (22P02),
// por ejemplo un id que no es UUID.
func isInvalidTextRepresentation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "22P02" // invalid_text_representation
	}
	return false
}

// escapeLike escapa comodines de LIKE en texto libre del usuario.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

// deleteMissOrConflict distingue por qué un DELETE condicionado no borró nada:
// la fila no existe (notFound) o sigue referenciada (ErrConflict).
func deleteMissOrConflict(ctx context.Context, q Querier, existsQuery, id string, notFound error) error {
	var exists bool
	if err := q.QueryRow(ctx, existsQuery, id).Scan(&exists); err != nil {
		return fmt.Errorf("check delete target: %w", err)
	}
	if !exists {
		return notFound
	}
	return domain.ErrConflict
}

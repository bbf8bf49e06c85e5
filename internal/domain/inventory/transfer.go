package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

// EnsureAvailable retorna *domain.InsufficientStockError si available < requested.
func EnsureAvailable(available, requested decimal.Decimal) error {
	if available.LessThan(requested) {
		return &domain.InsufficientStockError{Available: available, Requested: requested}
	}
	return nil
}

// Transfer resta qty de src y la suma en dst. src.before + dst.before == src.after + dst.after.
// Si src no alcanza no modifica ninguna de las dos entradas.
func Transfer(src, dst *entity.Stock, qty decimal.Decimal) error {
	if err := EnsureAvailable(src.Quantity, qty); err != nil {
		return err
	}
	src.Quantity = src.Quantity.Sub(qty)
	dst.Quantity = dst.Quantity.Add(qty)
	return nil
}

package inventory

import (
	"context"

	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error nada de lo escrito dentro de fn queda persistido.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		moveRepo repository.StockMoveRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		seqRepo repository.MoveSequenceRepository,
	) error) error
}

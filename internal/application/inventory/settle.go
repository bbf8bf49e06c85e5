package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// settle es la transición privilegiada hacia done. Debe llamarse dentro de TxRunner.Run con move
// ya bloqueado (GetForUpdate): así dos validaciones concurrentes no aplican el efecto dos veces.
// Cualquier error deja la transacción sin efectos.
func (uc *MoveUseCase) settle(
	ctx context.Context,
	moveRepo repository.StockMoveRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	move *entity.StockMove,
) error {
	if err := inventory.Transition(move, entity.MoveStatusDone, inventory.ModeSettlement); err != nil {
		return err
	}

	// Bloquea el producto antes de leer el agregado (evita sobreventa con OUT concurrentes)
	product, err := productRepo.GetForUpdate(ctx, move.ProductID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}

	now := uc.now()
	switch move.MoveType {
	case entity.MoveTypeIN:
		err = doIN(ctx, stockRepo, productRepo, product, move, now)
	case entity.MoveTypeOUT:
		err = doOUT(ctx, productRepo, product, move)
	case entity.MoveTypeADJ:
		err = setAggregate(ctx, productRepo, product, product.CurrentStock.Add(move.Quantity))
	case entity.MoveTypeINT:
		err = doINT(ctx, stockRepo, move, now)
	default:
		err = domain.ErrInvalidInput
	}
	if err != nil {
		return err
	}

	move.UpdatedAt = now
	if err := moveRepo.UpdateStatus(ctx, move.ID, move.Status); err != nil {
		return err
	}
	uc.log.Info().
		Str("move_id", move.ID).
		Str("reference", move.Reference).
		Str("move_type", move.MoveType).
		Str("product_id", move.ProductID).
		Str("quantity", move.Quantity.String()).
		Msg("movimiento validado")
	return nil
}

// doIN: suma en la bodega (si la hay) y siempre en el agregado.
func doIN(
	ctx context.Context,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	product *entity.Product,
	move *entity.StockMove,
	now time.Time,
) error {
	if move.SourceWarehouseID != nil {
		stock, err := lockOrNew(ctx, stockRepo, move.ProductID, *move.SourceWarehouseID, now)
		if err != nil {
			return err
		}
		stock.Quantity = stock.Quantity.Add(move.Quantity)
		if !inventory.FitsQuantity(stock.Quantity) {
			return domain.ErrInvalidInput
		}
		if err := stockRepo.Upsert(ctx, stock); err != nil {
			return err
		}
	}
	return setAggregate(ctx, productRepo, product, product.CurrentStock.Add(move.Quantity))
}

// setAggregate escribe current_stock si el resultado cabe en la columna.
func setAggregate(ctx context.Context, productRepo repository.ProductRepository, product *entity.Product, next decimal.Decimal) error {
	if !inventory.FitsQuantity(next) {
		return domain.ErrInvalidInput
	}
	return productRepo.UpdateCurrentStock(ctx, product.ID, next)
}

// doOUT: verifica el agregado y lo descuenta. No toca el libro por bodega.
func doOUT(
	ctx context.Context,
	productRepo repository.ProductRepository,
	product *entity.Product,
	move *entity.StockMove,
) error {
	if err := inventory.EnsureAvailable(product.CurrentStock, move.Quantity); err != nil {
		return err
	}
	return productRepo.UpdateCurrentStock(ctx, product.ID, product.CurrentStock.Sub(move.Quantity))
}

// doINT: resta de bodega origen, suma en destino. El agregado no cambia.
// Las filas se bloquean en orden de ID de bodega para que traslados opuestos no se bloqueen mutuamente.
func doINT(
	ctx context.Context,
	stockRepo repository.StockRepository,
	move *entity.StockMove,
	now time.Time,
) error {
	if move.SourceWarehouseID == nil || move.DestWarehouseID == nil ||
		*move.SourceWarehouseID == "" || *move.DestWarehouseID == "" {
		return domain.ErrMissingWarehouse
	}
	srcID, dstID := *move.SourceWarehouseID, *move.DestWarehouseID
	if srcID == dstID {
		return domain.ErrInvalidInput
	}

	var src, dst *entity.Stock
	var err error
	if srcID < dstID {
		if src, err = stockRepo.GetForUpdate(ctx, move.ProductID, srcID); err == nil {
			dst, err = stockRepo.GetForUpdate(ctx, move.ProductID, dstID)
		}
	} else {
		if dst, err = stockRepo.GetForUpdate(ctx, move.ProductID, dstID); err == nil {
			src, err = stockRepo.GetForUpdate(ctx, move.ProductID, srcID)
		}
	}
	if err != nil {
		return err
	}
	if src == nil {
		return inventory.EnsureAvailable(decimal.Zero, move.Quantity)
	}
	if dst == nil {
		dst = &entity.Stock{ProductID: move.ProductID, WarehouseID: dstID, Quantity: decimal.Zero}
	}
	if err := inventory.Transfer(src, dst, move.Quantity); err != nil {
		return err
	}
	src.UpdatedAt = now
	dst.UpdatedAt = now
	if err := stockRepo.Upsert(ctx, src); err != nil {
		return err
	}
	return stockRepo.Upsert(ctx, dst)
}

// lockOrNew bloquea la entrada del libro o la crea en cero si aún no existe.
func lockOrNew(ctx context.Context, stockRepo repository.StockRepository, productID, warehouseID string, now time.Time) (*entity.Stock, error) {
	stock, err := stockRepo.GetForUpdate(ctx, productID, warehouseID)
	if err != nil {
		return nil, err
	}
	if stock == nil {
		stock = &entity.Stock{ProductID: productID, WarehouseID: warehouseID, Quantity: decimal.Zero}
	}
	stock.UpdatedAt = now
	return stock, nil
}

package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// StockUseCase consultas de solo lectura sobre el libro de existencias.
type StockUseCase struct {
	productRepo repository.ProductRepository
	stockRepo   repository.StockRepository
}

// NewStockUseCase construye el caso de uso.
func NewStockUseCase(productRepo repository.ProductRepository, stockRepo repository.StockRepository) *StockUseCase {
	return &StockUseCase{productRepo: productRepo, stockRepo: stockRepo}
}

// GetProductStock devuelve las entradas por bodega, su suma y la diferencia frente a current_stock.
// Drift distinto de cero es esperable: IN sin bodega, OUT y ADJ solo mueven el agregado.
func (uc *StockUseCase) GetProductStock(ctx context.Context, productID string) (*dto.ProductStockResponse, error) {
	if !entity.IsValidID(productID) {
		return nil, domain.ErrProductNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	entries, err := uc.stockRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	total := decimal.Zero
	out := make([]dto.StockEntryResponse, 0, len(entries))
	for _, e := range entries {
		total = total.Add(e.Quantity)
		out = append(out, dto.StockEntryResponse{
			WarehouseID: e.WarehouseID,
			Quantity:    e.Quantity,
			UpdatedAt:   e.UpdatedAt,
		})
	}
	return &dto.ProductStockResponse{
		ProductID:    product.ID,
		CurrentStock: product.CurrentStock,
		LedgerTotal:  total,
		Drift:        product.CurrentStock.Sub(total),
		Entries:      out,
	}, nil
}

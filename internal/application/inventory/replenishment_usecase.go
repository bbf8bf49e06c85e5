package inventory

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// idealStockFactor multiplica el nivel mínimo para obtener el stock objetivo tras reponer.
var idealStockFactor = decimal.NewFromFloat(1.5)

// ReplenishmentUseCase genera la lista de reposición a partir del nivel mínimo de cada producto.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// GenerateReplenishmentList devuelve los productos en o bajo su nivel mínimo con la cantidad
// sugerida de pedido, ordenados por mayor déficit.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.LowStockItemDTO, error) {
	products, err := uc.productRepo.ListLowStock(ctx)
	if err != nil {
		return nil, err
	}

	items := make([]dto.LowStockItemDTO, 0, len(products))
	for _, p := range products {
		// El repositorio ya filtra, pero un producto sin nivel mínimo nunca entra a la lista
		if !p.IsLowStock() {
			continue
		}
		minLevel := *p.MinStockLevel
		idealStock := minLevel.Mul(idealStockFactor)
		suggested := idealStock.Sub(p.CurrentStock)
		if suggested.LessThan(decimal.Zero) {
			suggested = decimal.Zero
		}
		items = append(items, dto.LowStockItemDTO{
			ProductID:         p.ID,
			SKU:               p.SKU,
			ProductName:       p.Name,
			CurrentStock:      p.CurrentStock,
			MinStockLevel:     minLevel,
			IdealStock:        idealStock,
			SuggestedOrderQty: suggested,
		})
	}

	// Mayor déficit primero; empate por SKU para un orden estable
	sort.SliceStable(items, func(i, j int) bool {
		defA := items[i].MinStockLevel.Sub(items[i].CurrentStock)
		defB := items[j].MinStockLevel.Sub(items[j].CurrentStock)
		if !defA.Equal(defB) {
			return defA.GreaterThan(defB)
		}
		return items[i].SKU < items[j].SKU
	})

	for i := range items {
		items[i].Priority = i + 1
	}
	return items, nil
}

package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
)

func TestGetProductStock_ReportaDrift(t *testing.T) {
	f := newFixture(t, 0)
	ctx := context.Background()

	// IN con bodega: libro y agregado suben juntos
	in := f.create(t, entity.MoveTypeIN, 40, strPtr(whA), nil)
	_, err := f.uc.ValidateMove(ctx, in.ID)
	require.NoError(t, err)
	// OUT solo descuenta el agregado
	out := f.create(t, entity.MoveTypeOUT, 15, nil, nil)
	_, err = f.uc.ValidateMove(ctx, out.ID)
	require.NoError(t, err)

	uc := inventory.NewStockUseCase(f.store.Products(), f.store.Stock())
	view, err := uc.GetProductStock(ctx, f.productID)
	require.NoError(t, err)

	assert.True(t, view.CurrentStock.Equal(dec(25)))
	assert.True(t, view.LedgerTotal.Equal(dec(40)))
	assert.True(t, view.Drift.Equal(dec(-15)))
	require.Len(t, view.Entries, 1)
	assert.Equal(t, whA, view.Entries[0].WarehouseID)
}

func TestGetProductStock_SinLibro(t *testing.T) {
	f := newFixture(t, 8)
	uc := inventory.NewStockUseCase(f.store.Products(), f.store.Stock())

	view, err := uc.GetProductStock(context.Background(), f.productID)
	require.NoError(t, err)
	assert.Empty(t, view.Entries)
	assert.True(t, view.Drift.Equal(dec(8)))
}

func TestGetProductStock_ProductoInexistente(t *testing.T) {
	f := newFixture(t, 0)
	uc := inventory.NewStockUseCase(f.store.Products(), f.store.Stock())

	_, err := uc.GetProductStock(context.Background(), "nope")
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testUserID = "00000000-0000-0000-0000-000000000001"
	whA        = "11111111-0000-0000-0000-00000000000a"
	whB        = "11111111-0000-0000-0000-00000000000b"
	missingID  = "22222222-0000-0000-0000-000000000000"
)

var fixedNow = time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)

type fixture struct {
	store     *memory.Store
	uc        *inventory.MoveUseCase
	productID string
}

// newFixture crea un store en memoria con un producto (stock inicial dado) y dos bodegas.
func newFixture(t *testing.T, initial int64) *fixture {
	t.Helper()
	ctx := context.Background()
	store := memory.New()

	productID := uuid.NewString()
	require.NoError(t, store.Products().Create(ctx, &entity.Product{
		ID:           productID,
		SKU:          "SKU-" + productID[:8],
		Name:         "Tornillo",
		UnitMeasure:  "unit",
		CurrentStock: decimal.NewFromInt(initial),
		CreatedAt:    fixedNow,
		UpdatedAt:    fixedNow,
	}))
	for _, id := range []string{whA, whB} {
		require.NoError(t, store.Warehouses().Create(ctx, &entity.Warehouse{
			ID: id, Name: "Bodega " + id[len(id)-1:], CreatedAt: fixedNow, UpdatedAt: fixedNow,
		}))
	}

	uc := inventory.NewMoveUseCase(store, store.Moves(), store.Products(), store.Warehouses(), zerolog.Nop())
	uc.SetClock(func() time.Time { return fixedNow })
	return &fixture{store: store, uc: uc, productID: productID}
}

func (f *fixture) create(t *testing.T, moveType string, qty int64, src, dst *string) *dto.MoveResponse {
	t.Helper()
	out, err := f.uc.CreateMove(context.Background(), testUserID, dto.CreateMoveRequest{
		ProductID:         f.productID,
		Quantity:          decimal.NewFromInt(qty),
		MoveType:          moveType,
		SourceWarehouseID: src,
		DestWarehouseID:   dst,
	})
	require.NoError(t, err)
	return out
}

func (f *fixture) currentStock(t *testing.T) decimal.Decimal {
	t.Helper()
	p, err := f.store.Products().GetByID(context.Background(), f.productID)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.CurrentStock
}

func (f *fixture) ledger(t *testing.T, warehouseID string) *entity.Stock {
	t.Helper()
	s, err := f.store.Stock().Get(context.Background(), f.productID, warehouseID)
	require.NoError(t, err)
	return s
}

func (f *fixture) seedLedger(t *testing.T, warehouseID string, qty int64) {
	t.Helper()
	require.NoError(t, f.store.Stock().Upsert(context.Background(), &entity.Stock{
		ProductID: f.productID, WarehouseID: warehouseID, Quantity: decimal.NewFromInt(qty),
	}))
}

func strPtr(s string) *string { return &s }

func dec(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

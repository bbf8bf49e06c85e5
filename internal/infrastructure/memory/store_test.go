package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
)

func seed(t *testing.T, s *memory.Store) {
	t.Helper()
	require.NoError(t, s.Products().Create(context.Background(), &entity.Product{
		ID: "p1", SKU: "SKU-1", Name: "Tornillo", CurrentStock: decimal.NewFromInt(10),
	}))
}

func TestRun_CommitAlRetornarNil(t *testing.T) {
	s := memory.New()
	seed(t, s)
	ctx := context.Background()

	err := s.Run(ctx, func(_ repository.StockMoveRepository, stock repository.StockRepository, products repository.ProductRepository, _ repository.MoveSequenceRepository) error {
		if err := products.UpdateCurrentStock(ctx, "p1", decimal.NewFromInt(4)); err != nil {
			return err
		}
		return stock.Upsert(ctx, &entity.Stock{ProductID: "p1", WarehouseID: "w1", Quantity: decimal.NewFromInt(4)})
	})
	require.NoError(t, err)

	p, err := s.Products().GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(4)))
	st, err := s.Stock().Get(ctx, "p1", "w1")
	require.NoError(t, err)
	require.NotNil(t, st)
}

func TestRun_RollbackAlFallar(t *testing.T) {
	s := memory.New()
	seed(t, s)
	ctx := context.Background()
	boom := errors.New("boom")

	err := s.Run(ctx, func(moves repository.StockMoveRepository, stock repository.StockRepository, products repository.ProductRepository, seq repository.MoveSequenceRepository) error {
		_ = products.UpdateCurrentStock(ctx, "p1", decimal.NewFromInt(0))
		_ = stock.Upsert(ctx, &entity.Stock{ProductID: "p1", WarehouseID: "w1", Quantity: decimal.NewFromInt(1)})
		_, _ = seq.Next(ctx, entity.MoveTypeIN, 2024, 0)
		_ = moves.Create(ctx, &entity.StockMove{ID: "m1", Reference: "AW/2024/0001", ProductID: "p1", MoveType: entity.MoveTypeIN})
		return boom
	})
	require.ErrorIs(t, err, boom)

	p, _ := s.Products().GetByID(ctx, "p1")
	assert.True(t, p.CurrentStock.Equal(decimal.NewFromInt(10)))
	st, _ := s.Stock().Get(ctx, "p1", "w1")
	assert.Nil(t, st)
	_, err = s.Moves().GetByID(ctx, "m1")
	assert.ErrorIs(t, err, domain.ErrMoveNotFound)

	// El contador tampoco avanzó
	err = s.Run(ctx, func(_ repository.StockMoveRepository, _ repository.StockRepository, _ repository.ProductRepository, seq repository.MoveSequenceRepository) error {
		exists, err := seq.Exists(ctx, entity.MoveTypeIN, 2024)
		require.NoError(t, err)
		assert.False(t, exists)
		return nil
	})
	require.NoError(t, err)
}

func TestRun_ContextoCancelado(t *testing.T) {
	s := memory.New()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	called := false
	err := s.Run(ctx, func(repository.StockMoveRepository, repository.StockRepository, repository.ProductRepository, repository.MoveSequenceRepository) error {
		called = true
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.False(t, called)
}

func TestMoveSequence_SemillaSoloLaPrimeraVez(t *testing.T) {
	s := memory.New()
	ctx := context.Background()

	var got []int
	err := s.Run(ctx, func(_ repository.StockMoveRepository, _ repository.StockRepository, _ repository.ProductRepository, seq repository.MoveSequenceRepository) error {
		for i := 0; i < 3; i++ {
			n, err := seq.Next(ctx, entity.MoveTypeOUT, 2024, 41)
			if err != nil {
				return err
			}
			got = append(got, n)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{42, 43, 44}, got)
}

func TestStockUpsert_RechazaNegativo(t *testing.T) {
	s := memory.New()
	err := s.Stock().Upsert(context.Background(), &entity.Stock{ProductID: "p1", WarehouseID: "w1", Quantity: decimal.NewFromInt(-1)})
	require.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestProductCreate_SKUDuplicado(t *testing.T) {
	s := memory.New()
	seed(t, s)
	err := s.Products().Create(context.Background(), &entity.Product{ID: "p2", SKU: "SKU-1"})
	require.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestMoveCreate_ReferenciaDuplicadaPorTipo(t *testing.T) {
	s := memory.New()
	seed(t, s)
	ctx := context.Background()
	mk := func(id, moveType string) *entity.StockMove {
		return &entity.StockMove{ID: id, Reference: "AW/2024/0001", ProductID: "p1", MoveType: moveType, CreatedAt: time.Now()}
	}
	require.NoError(t, s.Moves().Create(ctx, mk("m1", entity.MoveTypeIN)))
	require.NoError(t, s.Moves().Create(ctx, mk("m2", entity.MoveTypeOUT)))
	require.ErrorIs(t, s.Moves().Create(ctx, mk("m3", entity.MoveTypeIN)), domain.ErrDuplicate)
}

func TestMoveList_BusquedaSinMayusculas(t *testing.T) {
	s := memory.New()
	seed(t, s)
	ctx := context.Background()
	now := time.Now()
	require.NoError(t, s.Moves().Create(ctx, &entity.StockMove{
		ID: "m1", Reference: "AW/2024/0001", ProductID: "p1", MoveType: entity.MoveTypeIN,
		DestLocation: "Estante Norte", CreatedAt: now,
	}))
	require.NoError(t, s.Moves().Create(ctx, &entity.StockMove{
		ID: "m2", Reference: "AW/2024/0002", ProductID: "p1", MoveType: entity.MoveTypeIN,
		SourceLocation: "Proveedor", CreatedAt: now,
	}))

	list, err := s.Moves().List(ctx, entity.MoveFilter{Search: "norte", Limit: 10})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "m1", list[0].ID)

	list, err = s.Moves().List(ctx, entity.MoveFilter{Limit: 10, Offset: 5})
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Integridad referencial
// ──────────────────────────────────────────────────────────────────────────────

func TestMoveCreate_ExigeProductoYBodegas(t *testing.T) {
	s := memory.New()
	seed(t, s)
	ctx := context.Background()
	missing := "w-missing"

	err := s.Moves().Create(ctx, &entity.StockMove{ID: "m1", Reference: "AW/2024/0001", ProductID: "p-missing", MoveType: entity.MoveTypeIN})
	require.ErrorIs(t, err, domain.ErrProductNotFound)

	err = s.Moves().Create(ctx, &entity.StockMove{
		ID: "m2", Reference: "AW/2024/0002", ProductID: "p1", MoveType: entity.MoveTypeIN, SourceWarehouseID: &missing,
	})
	require.ErrorIs(t, err, domain.ErrWarehouseNotFound)
}

func TestDelete_ReferenciadosOInexistentes(t *testing.T) {
	s := memory.New()
	seed(t, s)
	ctx := context.Background()
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: "w1", Name: "Principal"}))
	require.NoError(t, s.Warehouses().Create(ctx, &entity.Warehouse{ID: "w2", Name: "Norte"}))
	w1 := "w1"
	require.NoError(t, s.Moves().Create(ctx, &entity.StockMove{
		ID: "m1", Reference: "AW/2024/0001", ProductID: "p1", MoveType: entity.MoveTypeIN, SourceWarehouseID: &w1,
	}))

	assert.ErrorIs(t, s.Products().Delete(ctx, "p1"), domain.ErrConflict)
	assert.ErrorIs(t, s.Warehouses().Delete(ctx, "w1"), domain.ErrConflict)
	assert.ErrorIs(t, s.Products().Delete(ctx, "p-missing"), domain.ErrProductNotFound)
	assert.ErrorIs(t, s.Warehouses().Delete(ctx, "w-missing"), domain.ErrWarehouseNotFound)
	assert.NoError(t, s.Warehouses().Delete(ctx, "w2"))
}

func TestDelete_ConcurrenteConAltaDeMovimientos(t *testing.T) {
	for i := 0; i < 50; i++ {
		s := memory.New()
		seed(t, s)
		ctx := context.Background()

		var wg sync.WaitGroup
		var createErr, deleteErr error
		wg.Add(2)
		go func() {
			defer wg.Done()
			createErr = s.Moves().Create(ctx, &entity.StockMove{ID: "m1", Reference: "AW/2024/0001", ProductID: "p1", MoveType: entity.MoveTypeIN})
		}()
		go func() {
			defer wg.Done()
			deleteErr = s.Products().Delete(ctx, "p1")
		}()
		wg.Wait()

		// Exactamente una de las dos operaciones gana; nunca queda un movimiento huérfano
		p, err := s.Products().GetByID(ctx, "p1")
		require.NoError(t, err)
		_, moveErr := s.Moves().GetByID(ctx, "m1")
		if deleteErr == nil {
			assert.Nil(t, p)
			assert.ErrorIs(t, createErr, domain.ErrProductNotFound)
			assert.ErrorIs(t, moveErr, domain.ErrMoveNotFound)
		} else {
			assert.ErrorIs(t, deleteErr, domain.ErrConflict)
			assert.NotNil(t, p)
			assert.NoError(t, createErr)
			assert.NoError(t, moveErr)
		}
	}
}

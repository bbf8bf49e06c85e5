package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/application/usecase"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/infrastructure/memory"
)

func newWarehouseUC() (*usecase.WarehouseUseCase, *memory.Store) {
	store := memory.New()
	return usecase.NewWarehouseUseCase(store.Warehouses()), store
}

func TestWarehouseCRUD(t *testing.T) {
	uc, _ := newWarehouseUC()
	ctx := context.Background()

	created, err := uc.Create(ctx, dto.CreateWarehouseRequest{Name: "Principal", Location: "Bogotá"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	name := "Principal Norte"
	updated, err := uc.Update(ctx, created.ID, dto.UpdateWarehouseRequest{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, name, updated.Name)
	assert.Equal(t, "Bogotá", updated.Location)

	list, err := uc.List(ctx, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 1)

	require.NoError(t, uc.Delete(ctx, created.ID))
	_, err = uc.GetByID(ctx, created.ID)
	require.ErrorIs(t, err, domain.ErrWarehouseNotFound)
}

func TestWarehouseCreate_SinNombre(t *testing.T) {
	uc, _ := newWarehouseUC()
	_, err := uc.Create(context.Background(), dto.CreateWarehouseRequest{})
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWarehouseDelete_Referenciada(t *testing.T) {
	uc, store := newWarehouseUC()
	ctx := context.Background()
	created, err := uc.Create(ctx, dto.CreateWarehouseRequest{Name: "Principal"})
	require.NoError(t, err)
	dest := created.ID
	require.NoError(t, store.Products().Create(ctx, &entity.Product{ID: "p1", SKU: "SKU-1", Name: "Tornillo"}))
	require.NoError(t, store.Moves().Create(ctx, &entity.StockMove{
		ID: "m1", Reference: "INT/2024/0001", ProductID: "p1", Quantity: decimal.NewFromInt(1),
		DestWarehouseID: &dest, MoveType: entity.MoveTypeINT, Status: entity.MoveStatusDraft,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}))

	require.ErrorIs(t, uc.Delete(ctx, created.ID), domain.ErrConflict)
}

func TestWarehouseDelete_NoExiste(t *testing.T) {
	uc, _ := newWarehouseUC()
	require.ErrorIs(t, uc.Delete(context.Background(), "nope"), domain.ErrNotFound)
	require.ErrorIs(t, uc.Delete(context.Background(), uuid.NewString()), domain.ErrWarehouseNotFound)
}

func TestWarehouse_IDNoUUIDEsNoEncontrado(t *testing.T) {
	uc, _ := newWarehouseUC()
	ctx := context.Background()
	name := "X"
	_, err := uc.GetByID(ctx, "abc")
	require.ErrorIs(t, err, domain.ErrWarehouseNotFound)
	_, err = uc.Update(ctx, "abc", dto.UpdateWarehouseRequest{Name: &name})
	require.ErrorIs(t, err, domain.ErrWarehouseNotFound)
}

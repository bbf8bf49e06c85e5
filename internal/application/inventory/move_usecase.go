package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/application/dto"
	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

// MoveUseCase crea, lista, cambia de estado y liquida movimientos de stock.
// Toda escritura pasa por TxRunner: una unidad de trabajo por operación.
type MoveUseCase struct {
	txRunner      TxRunner
	moveRepo      repository.StockMoveRepository
	productRepo   repository.ProductRepository
	warehouseRepo repository.WarehouseRepository
	log           zerolog.Logger
	now           func() time.Time
}

// NewMoveUseCase construye el caso de uso.
func NewMoveUseCase(
	txRunner TxRunner,
	moveRepo repository.StockMoveRepository,
	productRepo repository.ProductRepository,
	warehouseRepo repository.WarehouseRepository,
	log zerolog.Logger,
) *MoveUseCase {
	return &MoveUseCase{
		txRunner:      txRunner,
		moveRepo:      moveRepo,
		productRepo:   productRepo,
		warehouseRepo: warehouseRepo,
		log:           log,
		now:           time.Now,
	}
}

// SetClock reemplaza el reloj (año de la referencia y timestamps).
func (uc *MoveUseCase) SetClock(now func() time.Time) {
	uc.now = now
}

// CreateMove valida la entrada, asigna la referencia y guarda el movimiento en draft.
// La referencia sale del contador (tipo, año) en la misma transacción que el INSERT; el INSERT
// vuelve a exigir que producto y bodegas existan (FK), así un borrado concurrente no deja huérfanos.
func (uc *MoveUseCase) CreateMove(ctx context.Context, userID string, in dto.CreateMoveRequest) (*dto.MoveResponse, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}
	if !entity.IsValidID(in.ProductID) {
		return nil, domain.ErrProductNotFound
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	for _, whID := range []*string{in.SourceWarehouseID, in.DestWarehouseID} {
		if whID == nil {
			continue
		}
		if !entity.IsValidID(*whID) {
			return nil, domain.ErrWarehouseNotFound
		}
		wh, err := uc.warehouseRepo.GetByID(ctx, *whID)
		if err != nil {
			return nil, err
		}
		if wh == nil {
			return nil, domain.ErrWarehouseNotFound
		}
	}

	now := uc.now()
	move := &entity.StockMove{
		ID:                uuid.New().String(),
		ProductID:         in.ProductID,
		Quantity:          in.Quantity,
		SourceWarehouseID: in.SourceWarehouseID,
		DestWarehouseID:   in.DestWarehouseID,
		SourceLocation:    in.SourceLocation,
		DestLocation:      in.DestLocation,
		MoveType:          in.MoveType,
		Status:            entity.MoveStatusDraft,
		CreatedBy:         userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = uc.txRunner.Run(ctx, func(
		moveRepo repository.StockMoveRepository,
		_ repository.StockRepository,
		_ repository.ProductRepository,
		seqRepo repository.MoveSequenceRepository,
	) error {
		ref, err := nextReference(ctx, moveRepo, seqRepo, move.MoveType, now.Year())
		if err != nil {
			return err
		}
		move.Reference = ref
		return moveRepo.Create(ctx, move)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("move_id", move.ID).
		Str("reference", move.Reference).
		Str("move_type", move.MoveType).
		Str("quantity", move.Quantity.String()).
		Msg("movimiento creado")
	return toMoveResponse(move), nil
}

// nextReference siembra el contador desde el historial la primera vez que se usa el par (tipo, año).
func nextReference(
	ctx context.Context,
	moveRepo repository.StockMoveRepository,
	seqRepo repository.MoveSequenceRepository,
	moveType string, year int,
) (string, error) {
	seed := 0
	exists, err := seqRepo.Exists(ctx, moveType, year)
	if err != nil {
		return "", err
	}
	if !exists {
		refs, err := moveRepo.ListReferences(ctx, moveType)
		if err != nil {
			return "", err
		}
		seed = inventory.MaxSerialIn(moveType, year, refs)
	}
	serial, err := seqRepo.Next(ctx, moveType, year, seed)
	if err != nil {
		return "", err
	}
	return inventory.FormatReference(moveType, year, serial)
}

func validateCreate(in dto.CreateMoveRequest) error {
	if in.ProductID == "" || !entity.IsValidMoveType(in.MoveType) {
		return domain.ErrInvalidInput
	}
	if in.MoveType == entity.MoveTypeADJ {
		if in.Quantity.IsZero() {
			return domain.ErrInvalidInput
		}
	} else if !in.Quantity.GreaterThan(decimal.Zero) {
		return domain.ErrInvalidInput
	}
	if !inventory.FitsQuantity(in.Quantity) {
		return domain.ErrInvalidInput
	}
	if in.SourceWarehouseID != nil && *in.SourceWarehouseID == "" {
		return domain.ErrInvalidInput
	}
	if in.DestWarehouseID != nil && *in.DestWarehouseID == "" {
		return domain.ErrInvalidInput
	}
	if in.MoveType == entity.MoveTypeINT && in.SourceWarehouseID != nil && in.DestWarehouseID != nil &&
		*in.SourceWarehouseID == *in.DestWarehouseID {
		return domain.ErrInvalidInput
	}
	return nil
}

// GetMove obtiene un movimiento por ID.
func (uc *MoveUseCase) GetMove(ctx context.Context, id string) (*dto.MoveResponse, error) {
	if !entity.IsValidID(id) {
		return nil, domain.ErrMoveNotFound
	}
	move, err := uc.moveRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return toMoveResponse(move), nil
}

// ListMoves lista movimientos filtrados, más recientes primero.
func (uc *MoveUseCase) ListMoves(ctx context.Context, in dto.ListMovesRequest) (*dto.MoveListResponse, error) {
	if in.MoveType != "" && !entity.IsValidMoveType(in.MoveType) {
		return nil, domain.ErrInvalidInput
	}
	if in.Status != "" && !inventory.IsValidStatus(in.Status) {
		return nil, domain.ErrInvalidInput
	}
	if (in.WarehouseID != "" && !entity.IsValidID(in.WarehouseID)) || (in.ProductID != "" && !entity.IsValidID(in.ProductID)) {
		return nil, domain.ErrInvalidInput
	}
	in.DefaultPage()
	list, err := uc.moveRepo.List(ctx, entity.MoveFilter{
		MoveType:    in.MoveType,
		Status:      in.Status,
		WarehouseID: in.WarehouseID,
		ProductID:   in.ProductID,
		Search:      in.Search,
		Limit:       in.Limit,
		Offset:      in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.MoveResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *toMoveResponse(m))
	}
	return &dto.MoveListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset},
	}, nil
}

// ChangeStatus aplica la tabla de transiciones. Pedir done equivale a liquidar:
// solo se permite desde ready (tabla) y aplica los efectos de cantidad en la misma transacción.
func (uc *MoveUseCase) ChangeStatus(ctx context.Context, id, newStatus string) (*dto.MoveResponse, error) {
	if !entity.IsValidID(id) {
		return nil, domain.ErrMoveNotFound
	}
	var out *entity.StockMove
	err := uc.txRunner.Run(ctx, func(
		moveRepo repository.StockMoveRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		_ repository.MoveSequenceRepository,
	) error {
		move, err := moveRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if newStatus == entity.MoveStatusDone {
			if !inventory.CanTransition(move.Status, entity.MoveStatusDone) {
				return inventory.TransitionError(move.Status, newStatus)
			}
			if err := uc.settle(ctx, moveRepo, stockRepo, productRepo, move); err != nil {
				return err
			}
			out = move
			return nil
		}
		if err := inventory.Transition(move, newStatus, inventory.ModeStatus); err != nil {
			return err
		}
		move.UpdatedAt = uc.now()
		if err := moveRepo.UpdateStatus(ctx, move.ID, move.Status); err != nil {
			return err
		}
		out = move
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMoveResponse(out), nil
}

// ValidateMove liquida el movimiento: aplica su efecto sobre el libro y el agregado y lo deja en done.
func (uc *MoveUseCase) ValidateMove(ctx context.Context, id string) (*dto.MoveResponse, error) {
	if !entity.IsValidID(id) {
		return nil, domain.ErrMoveNotFound
	}
	var out *entity.StockMove
	err := uc.txRunner.Run(ctx, func(
		moveRepo repository.StockMoveRepository,
		stockRepo repository.StockRepository,
		productRepo repository.ProductRepository,
		_ repository.MoveSequenceRepository,
	) error {
		move, err := moveRepo.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if err := uc.settle(ctx, moveRepo, stockRepo, productRepo, move); err != nil {
			return err
		}
		out = move
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toMoveResponse(out), nil
}

func toMoveResponse(m *entity.StockMove) *dto.MoveResponse {
	if m == nil {
		return nil
	}
	return &dto.MoveResponse{
		ID:                m.ID,
		Reference:         m.Reference,
		ProductID:         m.ProductID,
		Quantity:          m.Quantity,
		MoveType:          m.MoveType,
		Status:            m.Status,
		SourceWarehouseID: m.SourceWarehouseID,
		DestWarehouseID:   m.DestWarehouseID,
		SourceLocation:    m.SourceLocation,
		DestLocation:      m.DestLocation,
		CreatedBy:         m.CreatedBy,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

package memory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockmaster-api/internal/domain"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var (
	_ repository.ProductRepository      = (*ProductRepo)(nil)
	_ repository.WarehouseRepository    = (*WarehouseRepo)(nil)
	_ repository.StockRepository        = (*StockRepo)(nil)
	_ repository.StockMoveRepository    = (*StockMoveRepo)(nil)
	_ repository.MoveSequenceRepository = (*MoveSequenceRepo)(nil)
)

// ──────────────────────────────────────────────────────────────────────────────
// Productos
// ──────────────────────────────────────────────────────────────────────────────

// ProductRepo implementación en memoria de ProductRepository.
type ProductRepo struct{ db db }

func (r *ProductRepo) Create(_ context.Context, product *entity.Product) error {
	return r.db.do(func(st *state) error {
		for _, p := range st.products {
			if p.SKU == product.SKU {
				return domain.ErrDuplicate
			}
		}
		st.products[product.ID] = *product
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.db.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

// GetForUpdate no necesita bloqueo de fila: la transacción ya tiene el lock global.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) GetBySKU(_ context.Context, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.db.do(func(st *state) error {
		for _, p := range st.products {
			if p.SKU == sku {
				p := p
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, product *entity.Product) error {
	return r.db.do(func(st *state) error {
		cur, ok := st.products[product.ID]
		if !ok {
			return domain.ErrProductNotFound
		}
		// current_stock solo cambia por UpdateCurrentStock
		next := *product
		next.CurrentStock = cur.CurrentStock
		st.products[product.ID] = next
		return nil
	})
}

func (r *ProductRepo) UpdateCurrentStock(_ context.Context, productID string, qty decimal.Decimal) error {
	return r.db.do(func(st *state) error {
		p, ok := st.products[productID]
		if !ok {
			return domain.ErrProductNotFound
		}
		p.CurrentStock = qty
		p.UpdatedAt = time.Now()
		st.products[productID] = p
		return nil
	})
}

func (r *ProductRepo) List(_ context.Context, limit, offset int) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.db.do(func(st *state) error {
		for _, p := range st.products {
			p := p
			list = append(list, &p)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].SKU < list[j].SKU
	})
	return paginate(list, limit, offset), err
}

func (r *ProductRepo) ListLowStock(_ context.Context) ([]*entity.Product, error) {
	var list []*entity.Product
	err := r.db.do(func(st *state) error {
		for _, p := range st.products {
			if p.IsLowStock() {
				p := p
				list = append(list, &p)
			}
		}
		return nil
	})
	return list, err
}

// Delete emula las FK de PostgreSQL: un producto con movimientos o filas en el libro no se borra.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.db.do(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrProductNotFound
		}
		for _, m := range st.moves {
			if m.ProductID == id {
				return domain.ErrConflict
			}
		}
		for k := range st.stock {
			if k.productID == id {
				return domain.ErrConflict
			}
		}
		delete(st.products, id)
		return nil
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Bodegas
// ──────────────────────────────────────────────────────────────────────────────

// WarehouseRepo implementación en memoria de WarehouseRepository.
type WarehouseRepo struct{ db db }

func (r *WarehouseRepo) Create(_ context.Context, warehouse *entity.Warehouse) error {
	return r.db.do(func(st *state) error {
		st.warehouses[warehouse.ID] = *warehouse
		return nil
	})
}

func (r *WarehouseRepo) GetByID(_ context.Context, id string) (*entity.Warehouse, error) {
	var out *entity.Warehouse
	err := r.db.do(func(st *state) error {
		if w, ok := st.warehouses[id]; ok {
			out = &w
		}
		return nil
	})
	return out, err
}

func (r *WarehouseRepo) Update(_ context.Context, warehouse *entity.Warehouse) error {
	return r.db.do(func(st *state) error {
		if _, ok := st.warehouses[warehouse.ID]; !ok {
			return domain.ErrWarehouseNotFound
		}
		st.warehouses[warehouse.ID] = *warehouse
		return nil
	})
}

func (r *WarehouseRepo) List(_ context.Context, limit, offset int) ([]*entity.Warehouse, error) {
	var list []*entity.Warehouse
	err := r.db.do(func(st *state) error {
		for _, w := range st.warehouses {
			w := w
			list = append(list, &w)
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.After(list[j].CreatedAt)
		}
		return list[i].Name < list[j].Name
	})
	return paginate(list, limit, offset), err
}

// Delete emula las FK de PostgreSQL igual que ProductRepo.Delete.
func (r *WarehouseRepo) Delete(_ context.Context, id string) error {
	return r.db.do(func(st *state) error {
		if _, ok := st.warehouses[id]; !ok {
			return domain.ErrWarehouseNotFound
		}
		for _, m := range st.moves {
			if ptrEquals(m.SourceWarehouseID, id) || ptrEquals(m.DestWarehouseID, id) {
				return domain.ErrConflict
			}
		}
		for k := range st.stock {
			if k.warehouseID == id {
				return domain.ErrConflict
			}
		}
		delete(st.warehouses, id)
		return nil
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Libro de existencias
// ──────────────────────────────────────────────────────────────────────────────

// StockRepo implementación en memoria de StockRepository.
type StockRepo struct{ db db }

func (r *StockRepo) Get(_ context.Context, productID, warehouseID string) (*entity.Stock, error) {
	var out *entity.Stock
	err := r.db.do(func(st *state) error {
		if s, ok := st.stock[stockKey{productID, warehouseID}]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *StockRepo) GetForUpdate(ctx context.Context, productID, warehouseID string) (*entity.Stock, error) {
	return r.Get(ctx, productID, warehouseID)
}

func (r *StockRepo) Upsert(_ context.Context, stock *entity.Stock) error {
	return r.db.do(func(st *state) error {
		if stock.Quantity.LessThan(decimal.Zero) {
			return domain.ErrInsufficientStock
		}
		s := *stock
		if s.UpdatedAt.IsZero() {
			s.UpdatedAt = time.Now()
		}
		st.stock[stockKey{stock.ProductID, stock.WarehouseID}] = s
		return nil
	})
}

func (r *StockRepo) ListByProduct(_ context.Context, productID string) ([]*entity.Stock, error) {
	var list []*entity.Stock
	err := r.db.do(func(st *state) error {
		for k, s := range st.stock {
			if k.productID == productID {
				s := s
				list = append(list, &s)
			}
		}
		return nil
	})
	sort.Slice(list, func(i, j int) bool { return list[i].WarehouseID < list[j].WarehouseID })
	return list, err
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

// StockMoveRepo implementación en memoria de StockMoveRepository.
type StockMoveRepo struct{ db db }

// Create emula las FK de stock_moves: producto y bodegas deben existir.
func (r *StockMoveRepo) Create(_ context.Context, move *entity.StockMove) error {
	return r.db.do(func(st *state) error {
		if _, ok := st.products[move.ProductID]; !ok {
			return domain.ErrProductNotFound
		}
		for _, whID := range []*string{move.SourceWarehouseID, move.DestWarehouseID} {
			if whID == nil {
				continue
			}
			if _, ok := st.warehouses[*whID]; !ok {
				return domain.ErrWarehouseNotFound
			}
		}
		for _, m := range st.moves {
			if m.MoveType == move.MoveType && m.Reference == move.Reference {
				return domain.ErrDuplicate
			}
		}
		st.nextSeq++
		st.moves[move.ID] = *move
		st.moveSeq[move.ID] = st.nextSeq
		return nil
	})
}

func (r *StockMoveRepo) GetByID(_ context.Context, id string) (*entity.StockMove, error) {
	var out *entity.StockMove
	err := r.db.do(func(st *state) error {
		m, ok := st.moves[id]
		if !ok {
			return domain.ErrMoveNotFound
		}
		out = &m
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StockMoveRepo) GetForUpdate(ctx context.Context, id string) (*entity.StockMove, error) {
	return r.GetByID(ctx, id)
}

func (r *StockMoveRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.db.do(func(st *state) error {
		m, ok := st.moves[id]
		if !ok {
			return domain.ErrMoveNotFound
		}
		m.Status = status
		m.UpdatedAt = time.Now()
		st.moves[id] = m
		return nil
	})
}

func (r *StockMoveRepo) List(_ context.Context, f entity.MoveFilter) ([]*entity.StockMove, error) {
	type row struct {
		m   entity.StockMove
		seq int64
	}
	var rows []row
	search := strings.ToLower(f.Search)
	err := r.db.do(func(st *state) error {
		for id, m := range st.moves {
			if !matchesMove(m, f, search) {
				continue
			}
			rows = append(rows, row{m: m, seq: st.moveSeq[id]})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].m.CreatedAt.Equal(rows[j].m.CreatedAt) {
			return rows[i].m.CreatedAt.After(rows[j].m.CreatedAt)
		}
		return rows[i].seq > rows[j].seq
	})
	list := make([]*entity.StockMove, 0, len(rows))
	for i := range rows {
		list = append(list, &rows[i].m)
	}
	return paginate(list, f.Limit, f.Offset), nil
}

func matchesMove(m entity.StockMove, f entity.MoveFilter, search string) bool {
	if f.MoveType != "" && m.MoveType != f.MoveType {
		return false
	}
	if f.Status != "" && m.Status != f.Status {
		return false
	}
	if f.ProductID != "" && m.ProductID != f.ProductID {
		return false
	}
	if f.WarehouseID != "" && !ptrEquals(m.SourceWarehouseID, f.WarehouseID) && !ptrEquals(m.DestWarehouseID, f.WarehouseID) {
		return false
	}
	if search != "" &&
		!strings.Contains(strings.ToLower(m.Reference), search) &&
		!strings.Contains(strings.ToLower(m.SourceLocation), search) &&
		!strings.Contains(strings.ToLower(m.DestLocation), search) {
		return false
	}
	return true
}

func (r *StockMoveRepo) ListReferences(_ context.Context, moveType string) ([]string, error) {
	var refs []string
	err := r.db.do(func(st *state) error {
		for _, m := range st.moves {
			if m.MoveType == moveType && m.Reference != "" {
				refs = append(refs, m.Reference)
			}
		}
		return nil
	})
	return refs, err
}

// ──────────────────────────────────────────────────────────────────────────────
// Contador de referencias
// ──────────────────────────────────────────────────────────────────────────────

// MoveSequenceRepo implementación en memoria de MoveSequenceRepository.
type MoveSequenceRepo struct{ db db }

func (r *MoveSequenceRepo) Next(_ context.Context, moveType string, year int, seed int) (int, error) {
	var next int
	err := r.db.do(func(st *state) error {
		k := seqKey{moveType, year}
		cur, ok := st.sequences[k]
		if !ok {
			cur = seed
		}
		next = cur + 1
		st.sequences[k] = next
		return nil
	})
	return next, err
}

func (r *MoveSequenceRepo) Exists(_ context.Context, moveType string, year int) (bool, error) {
	var ok bool
	err := r.db.do(func(st *state) error {
		_, ok = st.sequences[seqKey{moveType, year}]
		return nil
	})
	return ok, err
}

func ptrEquals(p *string, v string) bool {
	return p != nil && *p == v
}

func paginate[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && limit < len(list) {
		list = list[:limit]
	}
	return list
}

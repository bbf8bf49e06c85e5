// Package memory implementa los puertos de persistencia en memoria.
// Sirve como backend de desarrollo (STORAGE_DRIVER=memory) y como doble de pruebas del TxRunner.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/stockmaster-api/internal/application/inventory"
	"github.com/jhoicas/stockmaster-api/internal/domain/entity"
	"github.com/jhoicas/stockmaster-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

type stockKey struct {
	productID   string
	warehouseID string
}

type seqKey struct {
	moveType string
	year     int
}

// state datos del store. Los valores se guardan por copia: nadie fuera del paquete toca estos mapas.
type state struct {
	products   map[string]entity.Product
	warehouses map[string]entity.Warehouse
	stock      map[stockKey]entity.Stock
	moves      map[string]entity.StockMove
	moveSeq    map[string]int64 // orden de inserción, desempate del listado
	sequences  map[seqKey]int
	nextSeq    int64
}

func newState() *state {
	return &state{
		products:   make(map[string]entity.Product),
		warehouses: make(map[string]entity.Warehouse),
		stock:      make(map[stockKey]entity.Stock),
		moves:      make(map[string]entity.StockMove),
		moveSeq:    make(map[string]int64),
		sequences:  make(map[seqKey]int),
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.warehouses {
		c.warehouses[k] = v
	}
	for k, v := range s.stock {
		c.stock[k] = v
	}
	for k, v := range s.moves {
		c.moves[k] = v
	}
	for k, v := range s.moveSeq {
		c.moveSeq[k] = v
	}
	for k, v := range s.sequences {
		c.sequences[k] = v
	}
	c.nextSeq = s.nextSeq
	return c
}

// db abstrae el acceso al estado: con lock propio (fuera de tx) o el de la tx en curso.
type db interface {
	do(fn func(st *state) error) error
}

type lockedDB struct{ s *Store }

func (l lockedDB) do(fn func(st *state) error) error {
	l.s.mu.Lock()
	defer l.s.mu.Unlock()
	return fn(l.s.st)
}

type txDB struct{ st *state }

func (t txDB) do(fn func(st *state) error) error { return fn(t.st) }

// Store backend en memoria. Las transacciones son serializables: Run toma un lock global,
// trabaja sobre una copia y la publica solo si fn no retorna error.
type Store struct {
	mu sync.Mutex
	st *state
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

// Run implementa inventory.TxRunner.
func (s *Store) Run(ctx context.Context, fn func(
	moveRepo repository.StockMoveRepository,
	stockRepo repository.StockRepository,
	productRepo repository.ProductRepository,
	seqRepo repository.MoveSequenceRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	tx := txDB{st: work}
	if err := fn(&StockMoveRepo{db: tx}, &StockRepo{db: tx}, &ProductRepo{db: tx}, &MoveSequenceRepo{db: tx}); err != nil {
		return err
	}
	s.st = work
	return nil
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{db: lockedDB{s: s}} }

// Warehouses repositorio de bodegas.
func (s *Store) Warehouses() *WarehouseRepo { return &WarehouseRepo{db: lockedDB{s: s}} }

// Stock repositorio del libro de existencias.
func (s *Store) Stock() *StockRepo { return &StockRepo{db: lockedDB{s: s}} }

// Moves repositorio de movimientos.
func (s *Store) Moves() *StockMoveRepo { return &StockMoveRepo{db: lockedDB{s: s}} }

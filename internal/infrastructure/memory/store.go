package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/repository"
)

// Store almacenamiento en memoria para desarrollo (STORAGE_DRIVER=memory) y pruebas.
// Las transacciones se serializan con un mutex y trabajan sobre una copia del estado:
// si el callback falla la copia se descarta (Rollback), si no reemplaza al estado vigente (Commit).
type Store struct {
	mu sync.Mutex
	st *state
}

type stockKey struct {
	storeID string
	itemID  string
}

type state struct {
	products      map[string]entity.Product
	materials     map[string]entity.RawMaterial
	productStock  map[stockKey]entity.ProductInventory
	materialStock map[stockKey]entity.RawMaterialInventory
	sales         map[string]entity.Sale
	customers     map[string]entity.Customer
	shifts        map[string]entity.CashShift
	adjustments   []entity.InventoryAdjustment
	allocations   []entity.MaterialAllocation

	productAdjustments []entity.ProductAdjustment
}

// New crea un store vacío.
func New() *Store {
	return &Store{st: newState()}
}

func newState() *state {
	return &state{
		products:      make(map[string]entity.Product),
		materials:     make(map[string]entity.RawMaterial),
		productStock:  make(map[stockKey]entity.ProductInventory),
		materialStock: make(map[stockKey]entity.RawMaterialInventory),
		sales:         make(map[string]entity.Sale),
		customers:     make(map[string]entity.Customer),
		shifts:        make(map[string]entity.CashShift),
	}
}

// clone copia los mapas; los valores guardados ya son copias profundas (ver copySale, copyProduct).
func (s *state) clone() *state {
	c := newState()
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.materials {
		c.materials[k] = v
	}
	for k, v := range s.productStock {
		c.productStock[k] = v
	}
	for k, v := range s.materialStock {
		c.materialStock[k] = v
	}
	for k, v := range s.sales {
		c.sales[k] = v
	}
	for k, v := range s.customers {
		c.customers[k] = v
	}
	for k, v := range s.shifts {
		c.shifts[k] = v
	}
	c.adjustments = append(c.adjustments, s.adjustments...)
	c.allocations = append(c.allocations, s.allocations...)
	c.productAdjustments = append(c.productAdjustments, s.productAdjustments...)
	return c
}

// view acceso al estado: atado a una transacción (tx != nil) o al store con bloqueo por operación.
type view struct {
	store *Store
	tx    *state
}

func (v view) do(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

// Repositories repositorios fuera de transacción. No usarlos dentro de un callback de Run:
// el mutex del store ya está tomado.
func (s *Store) Repositories() repository.Repositories {
	return reposFor(view{store: s})
}

// Analytics repositorio de consultas agregadas.
func (s *Store) Analytics() repository.AnalyticsRepository {
	return &AnalyticsRepo{v: view{store: s}}
}

// Run ejecuta fn en una transacción serializada sobre una copia del estado.
func (s *Store) Run(ctx context.Context, fn func(repos repository.Repositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err := ctx.Err(); err != nil {
		return err
	}
	work := s.st.clone()
	if err := fn(reposFor(view{tx: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

func reposFor(v view) repository.Repositories {
	return repository.Repositories{
		Products:      &ProductRepo{v: v},
		ProductStock:  &ProductStockRepo{v: v},
		Materials:     &MaterialRepo{v: v},
		MaterialStock: &MaterialStockRepo{v: v},
		Sales:         &SaleRepo{v: v},
		Customers:     &CustomerRepo{v: v},
		Shifts:        &ShiftRepo{v: v},
		Adjustments:   &AdjustmentRepo{v: v},
	}
}

// Adjustments registros de ajuste guardados (para inspección en pruebas).
func (s *Store) Adjustments() []entity.InventoryAdjustment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.InventoryAdjustment(nil), s.st.adjustments...)
}

// ProductAdjustments ajustes de stock de productos guardados.
func (s *Store) ProductAdjustments() []entity.ProductAdjustment {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.ProductAdjustment(nil), s.st.productAdjustments...)
}

// Allocations registros de asignación guardados.
func (s *Store) Allocations() []entity.MaterialAllocation {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]entity.MaterialAllocation(nil), s.st.allocations...)
}

// SaleCount número de ventas persistidas.
func (s *Store) SaleCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.st.sales)
}

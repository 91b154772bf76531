// Package memstore implementa en memoria todos los puertos de repositorio y un TxRunner
// con bloqueo por producto y rollback, para pruebas sin PostgreSQL.
package memstore

import (
	"context"
	"sort"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	mu         sync.Mutex
	users      map[string]entity.User
	categories map[string]entity.Category
	products   map[string]entity.Product
	inventory  map[string]entity.Inventory // por productID
	movements  []entity.StockMovement

	locksMu sync.Mutex
	locks   map[string]*sync.Mutex

	// FailMovementCreate, si no es nil, se devuelve en cada inserción de movimiento
	// (simula la caída del almacén a mitad del ajuste).
	FailMovementCreate error
}

// New crea un Store vacío.
func New() *Store {
	return &Store{
		users:      make(map[string]entity.User),
		categories: make(map[string]entity.Category),
		products:   make(map[string]entity.Product),
		inventory:  make(map[string]entity.Inventory),
		locks:      make(map[string]*sync.Mutex),
	}
}

// Users devuelve el repositorio de usuarios.
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }

// Categories devuelve el repositorio de categorías.
func (s *Store) Categories() *CategoryRepo { return &CategoryRepo{s: s} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Inventory devuelve el repositorio de inventario.
func (s *Store) Inventory() *InventoryRepo { return &InventoryRepo{s: s} }

// Movements devuelve el repositorio de movimientos.
func (s *Store) Movements() *MovementRepo { return &MovementRepo{s: s} }

// Dashboard devuelve el repositorio del tablero.
func (s *Store) Dashboard() *DashboardRepo { return &DashboardRepo{s: s} }

// MovementCount número de movimientos confirmados.
func (s *Store) MovementCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.movements)
}

// Quantity cantidad confirmada del producto y si existe su fila de inventario.
func (s *Store) Quantity(productID string) (int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.inventory[productID]
	return inv.Quantity, ok
}

func (s *Store) productLock(productID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[productID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[productID] = l
	}
	return l
}

// ── Users ─────────────────────────────────────────────────────────────────────

// UserRepo implementa repository.UserRepository.
type UserRepo struct{ s *Store }

var _ repository.UserRepository = (*UserRepo)(nil)

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, existing := range r.s.users {
		if existing.Username == u.Username {
			return domain.ErrDuplicate
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) Upsert(_ context.Context, u *entity.User) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, existing := range r.s.users {
		if existing.Username == u.Username {
			existing.Email = u.Email
			existing.PasswordHash = u.PasswordHash
			existing.UpdatedAt = u.UpdatedAt
			r.s.users[id] = existing
			*u = existing
			return nil
		}
	}
	r.s.users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	u, ok := r.s.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, u := range r.s.users {
		if u.Username == username {
			return &u, nil
		}
	}
	return nil, nil
}

// ── Categories ────────────────────────────────────────────────────────────────

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ s *Store }

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	c, ok := r.s.categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[c.ID]; !ok {
		return domain.ErrNotFound
	}
	r.s.categories[c.ID] = *c
	for id, p := range r.s.products {
		if p.CategoryID == c.ID {
			p.CategoryName = c.Name
			r.s.products[id] = p
		}
	}
	return nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Category, 0, len(r.s.categories))
	for _, c := range r.s.categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.categories[id]; !ok {
		return domain.ErrNotFound
	}
	for _, p := range r.s.products {
		if p.CategoryID == id {
			return domain.ErrConflict
		}
	}
	delete(r.s.categories, id)
	return nil
}

// ── Products ──────────────────────────────────────────────────────────────────

// ProductRepo implementa repository.ProductRepository. GetForUpdate fuera de una
// transacción no bloquea.
type ProductRepo struct{ s *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if err := r.checkLocked(p); err != nil {
		return err
	}
	r.s.products[p.ID] = *p
	return nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.products[p.ID]; !ok {
		return domain.ErrNotFound
	}
	if err := r.checkLocked(p); err != nil {
		return err
	}
	r.s.products[p.ID] = *p
	return nil
}

// checkLocked emula las restricciones UNIQUE(sku) y la FK de categoría. Requiere s.mu.
func (r *ProductRepo) checkLocked(p *entity.Product) error {
	for id, existing := range r.s.products {
		if id != p.ID && existing.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	c, ok := r.s.categories[p.CategoryID]
	if !ok {
		return domain.ErrUnknownCategory
	}
	p.CategoryName = c.Name
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return nil, nil
	}
	return &p, nil
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) List(_ context.Context) ([]*entity.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.Product, 0, len(r.s.products))
	for _, p := range r.s.products {
		p := p
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ── Inventory ─────────────────────────────────────────────────────────────────

// InventoryRepo implementa repository.InventoryRepository sobre el estado confirmado.
type InventoryRepo struct{ s *Store }

var _ repository.InventoryRepository = (*InventoryRepo)(nil)

func (r *InventoryRepo) GetForUpdate(_ context.Context, productID string) (*entity.Inventory, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	inv, ok := r.s.inventory[productID]
	if !ok {
		return &entity.Inventory{ProductID: productID}, nil
	}
	return &inv, nil
}

func (r *InventoryRepo) Upsert(_ context.Context, inv *entity.Inventory) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.upsertInventoryLocked(*inv)
}

func (s *Store) upsertInventoryLocked(inv entity.Inventory) error {
	if inv.Quantity < 0 {
		return domain.ErrInsufficientStock // CHECK (quantity >= 0)
	}
	if _, ok := s.products[inv.ProductID]; !ok {
		return domain.ErrNotFound
	}
	if existing, ok := s.inventory[inv.ProductID]; ok {
		inv.ID = existing.ID
		inv.CreatedAt = existing.CreatedAt
	}
	s.inventory[inv.ProductID] = inv
	return nil
}

func (r *InventoryRepo) List(_ context.Context) ([]entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.itemsLocked(func(entity.InventoryItem) bool { return true }), nil
}

func (s *Store) itemsLocked(keep func(entity.InventoryItem) bool) []entity.InventoryItem {
	out := make([]entity.InventoryItem, 0, len(s.inventory))
	for pid, inv := range s.inventory {
		p := s.products[pid]
		it := entity.InventoryItem{
			InventoryID:  inv.ID,
			ProductID:    pid,
			Name:         p.Name,
			SKU:          p.SKU,
			Quantity:     inv.Quantity,
			MinimumStock: p.MinimumStock,
		}
		if keep(it) {
			out = append(out, it)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// ── Movements ─────────────────────────────────────────────────────────────────

// MovementRepo implementa repository.StockMovementRepository.
type MovementRepo struct{ s *Store }

var _ repository.StockMovementRepository = (*MovementRepo)(nil)

func (r *MovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.FailMovementCreate != nil {
		return r.s.FailMovementCreate
	}
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *MovementRepo) List(_ context.Context, f repository.StockMovementFilter) ([]entity.StockMovementView, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]entity.StockMovementView, 0)
	for i := len(r.s.movements) - 1; i >= 0; i-- {
		m := r.s.movements[i]
		if f.ProductID != "" && m.ProductID != f.ProductID {
			continue
		}
		if f.Range != nil && !f.Range.Contains(m.CreatedAt) {
			continue
		}
		p := r.s.products[m.ProductID]
		out = append(out, entity.StockMovementView{
			StockMovement: m,
			ProductName:   p.Name,
			SKU:           p.SKU,
			Username:      r.s.users[m.UserID].Username,
		})
	}
	// Más reciente primero; a igual timestamp, el último insertado primero.
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

// DashboardRepo implementa repository.DashboardRepository.
type DashboardRepo struct{ s *Store }

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

func (r *DashboardRepo) ListLowStock(_ context.Context, rng *domain.DateRange) ([]entity.InventoryItem, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return r.s.itemsLocked(func(it entity.InventoryItem) bool {
		if !it.LowStock() {
			return false
		}
		if rng == nil {
			return true
		}
		for _, m := range r.s.movements {
			if m.ProductID == it.ProductID && rng.Contains(m.CreatedAt) {
				return true
			}
		}
		return false
	}), nil
}

func (r *DashboardRepo) TotalInventoryValue(_ context.Context) (decimal.Decimal, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := decimal.Zero
	for pid, inv := range r.s.inventory {
		total = total.Add(r.s.products[pid].Price.Mul(decimal.NewFromInt(int64(inv.Quantity))))
	}
	return total, nil
}

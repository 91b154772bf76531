package memstore

import (
	"context"
	"sync"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// TxRunner emula una transacción: GetForUpdate del producto toma un candado por producto
// hasta el fin de Run; las escrituras de inventario y movimientos se acumulan y solo se
// aplican si fn no devuelve error.
type TxRunner struct{ s *Store }

// TxRunner devuelve el runner transaccional del Store.
func (s *Store) TxRunner() *TxRunner { return &TxRunner{s: s} }

type memTx struct {
	s         *Store
	held      []*sync.Mutex
	heldIDs   map[string]bool
	inventory map[string]entity.Inventory
	movements []entity.StockMovement
}

// Run ejecuta fn con repositorios atados a la transacción emulada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	inventoryRepo repository.InventoryRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx := &memTx{s: r.s, heldIDs: make(map[string]bool), inventory: make(map[string]entity.Inventory)}
	defer tx.release()

	if err := fn(
		&txProductRepo{ProductRepo: r.s.Products(), tx: tx},
		&txInventoryRepo{InventoryRepo: r.s.Inventory(), tx: tx},
		&txMovementRepo{MovementRepo: r.s.Movements(), tx: tx},
	); err != nil {
		return err // rollback: se descarta lo acumulado
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	return tx.commit()
}

func (tx *memTx) lock(productID string) {
	if tx.heldIDs[productID] {
		return
	}
	l := tx.s.productLock(productID)
	l.Lock()
	tx.held = append(tx.held, l)
	tx.heldIDs[productID] = true
}

func (tx *memTx) release() {
	for i := len(tx.held) - 1; i >= 0; i-- {
		tx.held[i].Unlock()
	}
	tx.held = nil
}

func (tx *memTx) commit() error {
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()
	for _, inv := range tx.inventory {
		if err := tx.s.upsertInventoryLocked(inv); err != nil {
			return err
		}
	}
	tx.s.movements = append(tx.s.movements, tx.movements...)
	return nil
}

type txProductRepo struct {
	*ProductRepo
	tx *memTx
}

func (r *txProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	r.tx.lock(id)
	return r.ProductRepo.GetByID(ctx, id)
}

type txInventoryRepo struct {
	*InventoryRepo
	tx *memTx
}

func (r *txInventoryRepo) GetForUpdate(ctx context.Context, productID string) (*entity.Inventory, error) {
	r.tx.lock(productID)
	if inv, ok := r.tx.inventory[productID]; ok {
		return &inv, nil
	}
	return r.InventoryRepo.GetForUpdate(ctx, productID)
}

func (r *txInventoryRepo) Upsert(_ context.Context, inv *entity.Inventory) error {
	if inv.Quantity < 0 {
		return domain.ErrInsufficientStock
	}
	r.tx.inventory[inv.ProductID] = *inv
	return nil
}

type txMovementRepo struct {
	*MovementRepo
	tx *memTx
}

func (r *txMovementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	r.s.mu.Lock()
	fail := r.s.FailMovementCreate
	r.s.mu.Unlock()
	if fail != nil {
		return fail
	}
	r.tx.movements = append(r.tx.movements, *m)
	return nil
}

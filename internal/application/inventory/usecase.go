package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
	"github.com/jhoicas/stockroom-api/internal/domain/inventory"
	"github.com/jhoicas/stockroom-api/internal/domain/repository"
)

// AdjustStockUseCase aplica ajustes ADD/REMOVE de forma transaccional con bloqueo de fila
// (SELECT FOR UPDATE) y Commit/Rollback.
type AdjustStockUseCase struct {
	txRunner TxRunner
	now      func() time.Time
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner TxRunner) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, now: time.Now}
}

// AdjustmentInput entrada de un ajuste. UserID es el usuario autenticado.
type AdjustmentInput struct {
	ProductID string
	Type      string
	Quantity  int
	Notes     string
	UserID    string
}

// AdjustmentResult cantidad almacenada tras el ajuste y el movimiento registrado.
type AdjustmentResult struct {
	ProductID string
	Quantity  int
	Movement  *entity.StockMovement
}

// AdjustStock valida la entrada, bloquea el producto y su fila de inventario, calcula la
// nueva cantidad y, si no es negativa, hace upsert del inventario y agrega el movimiento.
//
// Los ajustes de un mismo producto quedan serializados por el bloqueo del producto; los de
// productos distintos no se bloquean entre sí. Con ErrInsufficientStock no se escribe nada.
func (uc *AdjustStockUseCase) AdjustStock(ctx context.Context, in AdjustmentInput) (*AdjustmentResult, error) {
	if err := inventory.ValidateMovement(in.Type, in.Quantity); err != nil {
		return nil, err
	}
	if in.ProductID == "" || in.UserID == "" {
		return nil, domain.ErrInvalidInput
	}

	var result *AdjustmentResult
	err := uc.txRunner.Run(ctx, func(
		productRepo repository.ProductRepository,
		inventoryRepo repository.InventoryRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		// La fila del producto actúa como candado aunque el inventario aún no exista.
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		inv, err := inventoryRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		next, err := inventory.ApplyMovement(inv.Quantity, in.Type, in.Quantity)
		if err != nil {
			return err
		}

		now := uc.now().UTC()
		if inv.ID == "" {
			inv.ID = uuid.New().String()
			inv.ProductID = in.ProductID
			inv.CreatedAt = now
		}
		inv.Quantity = next
		inv.UpdatedAt = now
		if err := inventoryRepo.Upsert(ctx, inv); err != nil {
			return err
		}

		mov := &entity.StockMovement{
			ID:        uuid.New().String(),
			ProductID: in.ProductID,
			Quantity:  in.Quantity,
			Type:      in.Type,
			Notes:     strings.TrimSpace(in.Notes),
			UserID:    in.UserID,
			CreatedAt: now,
		}
		if err := movementRepo.Create(ctx, mov); err != nil {
			return err
		}
		result = &AdjustmentResult{ProductID: in.ProductID, Quantity: next, Movement: mov}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

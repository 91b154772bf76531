package repository

import (
	"context"

	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id string) (*entity.Category, error)
	// Update devuelve domain.ErrNotFound si la categoría no existe.
	Update(ctx context.Context, category *entity.Category) error
	List(ctx context.Context) ([]*entity.Category, error)
	// Delete devuelve domain.ErrNotFound si no existe y domain.ErrConflict si hay productos que la usan.
	Delete(ctx context.Context, id string) error
}

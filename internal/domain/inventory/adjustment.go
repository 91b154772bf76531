// Package inventory contiene la aritmética pura de los ajustes de stock.
package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/stockroom-api/internal/domain"
	"github.com/jhoicas/stockroom-api/internal/domain/entity"
)

// ValidateMovement verifica tipo y cantidad antes de tocar el almacén.
func ValidateMovement(movementType string, quantity int) error {
	if movementType != entity.MovementTypeAdd && movementType != entity.MovementTypeRemove {
		return domain.ErrInvalidInput
	}
	if quantity <= 0 || quantity > math.MaxInt32 {
		return domain.ErrInvalidInput
	}
	return nil
}

// ApplyMovement calcula la nueva cantidad: current + quantity para ADD, current - quantity
// para REMOVE. Devuelve ErrInsufficientStock si el resultado sería negativo y ErrInvalidInput
// si supera la columna INTEGER de inventory.
func ApplyMovement(current int, movementType string, quantity int) (int, error) {
	if err := ValidateMovement(movementType, quantity); err != nil {
		return 0, err
	}
	if movementType == entity.MovementTypeAdd && quantity > math.MaxInt32-current {
		return 0, fmt.Errorf("%w: la cantidad resultante excede %d", domain.ErrInvalidInput, math.MaxInt32)
	}
	next := current + quantity
	if movementType == entity.MovementTypeRemove {
		next = current - quantity
	}
	if next < 0 {
		return 0, domain.ErrInsufficientStock
	}
	return next, nil
}

package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name         string          `json:"name" validate:"required,min=1,max=200"`
	SKU          string          `json:"sku" validate:"required,min=1,max=100"`
	Description  string          `json:"description" validate:"max=1000"`
	CategoryID   string          `json:"categoryId" validate:"required,uuid"`
	Price        decimal.Decimal `json:"price"`
	MinimumStock int             `json:"minimumStock" validate:"min=0,max=2147483647"`
}

// UpdateProductRequest actualización parcial: solo se aplican los campos presentes.
type UpdateProductRequest struct {
	Name         *string          `json:"name" validate:"omitempty,min=1,max=200"`
	SKU          *string          `json:"sku" validate:"omitempty,min=1,max=100"`
	Description  *string          `json:"description" validate:"omitempty,max=1000"`
	CategoryID   *string          `json:"categoryId" validate:"omitempty,uuid"`
	Price        *decimal.Decimal `json:"price"`
	MinimumStock *int             `json:"minimumStock" validate:"omitempty,min=0,max=2147483647"`
}

// ProductResponse producto unido con el nombre de su categoría.
type ProductResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	SKU          string          `json:"sku"`
	Description  string          `json:"description"`
	CategoryID   string          `json:"categoryId"`
	CategoryName string          `json:"categoryName"`
	Price        decimal.Decimal `json:"price"`
	MinimumStock int             `json:"minimumStock"`
	CreatedAt    time.Time       `json:"createdAt"`
	UpdatedAt    time.Time       `json:"updatedAt"`
}

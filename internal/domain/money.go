package domain

import (
	"math"

	"github.com/shopspring/decimal"
)

// maxPrice es el primer valor que no cabe en products.price NUMERIC(14,2).
var maxPrice = decimal.New(1, 12)

// ValidPrice acepta precios no negativos, con a lo sumo dos decimales y dentro de NUMERIC(14,2).
func ValidPrice(d decimal.Decimal) bool {
	return !d.IsNegative() && d.Equal(d.Round(2)) && d.LessThan(maxPrice)
}

// ValidMinimumStock acepta umbrales que caben en la columna INTEGER.
func ValidMinimumStock(n int) bool {
	return n >= 0 && n <= math.MaxInt32
}

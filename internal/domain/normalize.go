package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

// NormalizeUsername deja el username en forma canónica (NFC, sin espacios, case-folded)
// para que la unicidad no dependa de mayúsculas ni de la composición de acentos.
func NormalizeUsername(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// NormalizeSKU recorta espacios y pasa el SKU a mayúsculas.
func NormalizeSKU(s string) string {
	return strings.ToUpper(norm.NFC.String(strings.TrimSpace(s)))
}

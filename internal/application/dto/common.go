package dto

import "github.com/shopspring/decimal"

func init() {
	// Los importes viajan como número JSON (35.5) y no como string ("35.5").
	decimal.MarshalJSONWithoutQuotes = true
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta simple con un mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}

// DateRangeQuery parámetros startDate/endDate compartidos por listados y reportes.
type DateRangeQuery struct {
	StartDate string `query:"startDate"`
	EndDate   string `query:"endDate"`
}

package domain

import (
	"strings"
	"time"
)

const dateOnly = "2006-01-02"

// DateRange intervalo cerrado [Start, End] usado por reportes, dashboard y movimientos.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange interpreta los parámetros startDate/endDate de las consultas.
//
// Ambos vacíos devuelven (nil, nil): sin filtro. Uno solo, un valor no parseable o
// start > end son errores. Las fechas aceptan YYYY-MM-DD o RFC3339; una endDate de solo
// fecha cubre el día completo. Las fechas sin zona se interpretan en UTC.
func ParseDateRange(start, end string) (*DateRange, error) {
	start, end = strings.TrimSpace(start), strings.TrimSpace(end)
	if start == "" && end == "" {
		return nil, nil
	}
	if start == "" || end == "" {
		return nil, ErrInvalidDateFormat
	}
	from, _, err := parseDate(start)
	if err != nil {
		return nil, err
	}
	to, dayOnly, err := parseDate(end)
	if err != nil {
		return nil, err
	}
	if dayOnly {
		to = to.Add(24*time.Hour - time.Nanosecond)
	}
	if from.After(to) {
		return nil, ErrInvalidDateRange
	}
	return &DateRange{Start: from, End: to}, nil
}

// Contains indica si t cae dentro del intervalo (extremos incluidos).
func (r DateRange) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse(dateOnly, s); err == nil {
		return t, true, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, false, nil
	}
	// datetime-local de los formularios HTML: 2025-01-31T18:30
	if t, err := time.Parse("2006-01-02T15:04", s); err == nil {
		return t, false, nil
	}
	return time.Time{}, false, ErrInvalidDateFormat
}

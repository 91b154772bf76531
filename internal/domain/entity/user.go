package entity

import "time"

// User representa un usuario que puede autenticarse y registrar movimientos.
type User struct {
	ID           string
	Username     string // único, normalizado con domain.NormalizeUsername
	Email        string
	PasswordHash string // bcrypt; nunca se expone ni se registra en logs
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

package dto

// LoginRequest entrada para POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=72"`
}

// LoginResponse salida con el token JWT.
type LoginResponse struct {
	Token string `json:"token"`
}

// UserResponse usuario autenticado (sin hash de password).
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

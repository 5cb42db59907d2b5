package dto

import "time"

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse salida con token JWT y datos básicos del usuario.
type LoginResponse struct {
	Token     string `json:"token"`
	Role      string `json:"role"`
	Name      string `json:"name"`
	UserID    string `json:"user_id"`
	ExpiresIn int    `json:"expires_in"` // segundos
	SessionID string `json:"session_id,omitempty"`
}

// UpdateUserRequest edición parcial de un usuario. Password exige
// CurrentPassword cuando el usuario edita su propia cuenta sin ser admin.
type UpdateUserRequest struct {
	Name            *string `json:"name,omitempty"`
	Email           *string `json:"email,omitempty"`
	Password        *string `json:"password,omitempty"`
	CurrentPassword *string `json:"current_password,omitempty"`
	Role            *string `json:"role,omitempty"`
	Active          *bool   `json:"active,omitempty"`
}

// SessionDTO una sesión de login activa (sin datos sensibles).
type SessionDTO struct {
	ID       string    `json:"id"`
	Device   string    `json:"device"`
	IP       string    `json:"ip,omitempty"`
	LastSeen time.Time `json:"last_seen"`
}

// UserResponse salida de un usuario (sin password).
type UserResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

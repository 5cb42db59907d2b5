package entity

import "time"

// Roles de usuario.
const (
	RoleAdmin   = "admin"
	RoleGestor  = "gestor"
	RoleTecnico = "tecnico"
)

// User representa un usuario del laboratorio.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Name         string
	Role         string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

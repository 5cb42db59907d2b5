package entity

import "time"

// Session registra un inicio de sesión (para que la UI muestre sesiones activas).
// Su escritura es best-effort: un fallo al guardarla no bloquea el login.
type Session struct {
	ID        string
	UserID    string
	Device    string
	IP        string
	LastSeen  time.Time
	CreatedAt time.Time
}

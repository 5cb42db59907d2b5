package repository

import "github.com/jhoicas/metrologia-api/internal/domain/entity"

// SessionRepository define el puerto de persistencia para sesiones de login.
type SessionRepository interface {
	Create(session *entity.Session) error
	// ListByUser devuelve las sesiones de un usuario, última actividad primero.
	ListByUser(userID string) ([]*entity.Session, error)
	// Revoke elimina una sesión del usuario. No es error si no existía.
	Revoke(userID, sessionID string) error
}

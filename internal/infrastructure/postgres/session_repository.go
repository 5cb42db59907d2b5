package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/metrologia-api/internal/domain/entity"
	"github.com/jhoicas/metrologia-api/internal/domain/repository"
)

var _ repository.SessionRepository = (*SessionRepo)(nil)

// SessionRepo implementación de SessionRepository sobre PostgreSQL.
type SessionRepo struct {
	q Querier
}

// NewSessionRepository construye el adaptador.
func NewSessionRepository(q Querier) *SessionRepo {
	return &SessionRepo{q: q}
}

// Create persiste una sesión de login.
func (r *SessionRepo) Create(session *entity.Session) error {
	query := `
		INSERT INTO sessions (id, user_id, device, ip, last_seen, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		session.ID, session.UserID, session.Device, session.IP,
		session.LastSeen, session.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	return nil
}

// ListByUser lista las sesiones de un usuario, última actividad primero.
func (r *SessionRepo) ListByUser(userID string) ([]*entity.Session, error) {
	query := `
		SELECT id, user_id, device, ip, last_seen, created_at
		FROM sessions WHERE user_id = $1 ORDER BY last_seen DESC`
	rows, err := r.q.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var list []*entity.Session
	for rows.Next() {
		var s entity.Session
		if err := rows.Scan(&s.ID, &s.UserID, &s.Device, &s.IP, &s.LastSeen, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Revoke elimina una sesión del usuario. Cero filas afectadas no es error.
func (r *SessionRepo) Revoke(userID, sessionID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM sessions WHERE user_id = $1 AND id = $2`, userID, sessionID)
	if err != nil {
		return fmt.Errorf("revoke session: %w", err)
	}
	return nil
}

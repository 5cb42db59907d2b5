package repository

import "github.com/jhoicas/metrologia-api/internal/domain/entity"

// MovementFilter filtros del listado de movimientos.
// ItemID e InternalCode son excluyentes; ambos vacíos = sin filtro.
type MovementFilter struct {
	ItemID       string
	InternalCode string
	Limit        int
	Offset       int
}

// MovementRepository define el puerto de persistencia para el libro de movimientos.
// El libro es append-only: no existen Update ni Delete.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	GetByID(id string) (*entity.Movement, error)
	// List devuelve movimientos ordenados por occurred_at DESC, id DESC
	// (desempate estable para paginación determinista).
	List(filter MovementFilter) ([]*entity.Movement, error)
}

package repository

import (
	"time"

	"github.com/jhoicas/metrologia-api/internal/domain/entity"
)

// ItemRepository define el puerto de persistencia para ítems (instrumentos y herramientas).
// Solo el motor de movimientos escribe Quantity/Status (vía UpdateStock dentro de una tx);
// el resto de componentes trata los ítems como solo lectura o edita metadatos.
type ItemRepository interface {
	Create(item *entity.Item) error
	GetByID(category, id string) (*entity.Item, error)
	GetByCode(category, code string) (*entity.Item, error)
	// GetForUpdateByID y GetForUpdateByCode bloquean la fila (SELECT FOR UPDATE);
	// usar únicamente dentro de una transacción.
	GetForUpdateByID(category, id string) (*entity.Item, error)
	GetForUpdateByCode(category, code string) (*entity.Item, error)
	// UpdateStock escribe cantidad, estado (nil = sin cambio) y updated_at.
	UpdateStock(id string, quantity int64, status *string, updatedAt time.Time) error
	// UpdateDetails edita metadatos del catálogo; nunca toca quantity ni status.
	UpdateDetails(item *entity.Item) error
	List(category, status string, limit int) ([]*entity.Item, error)
	// FindByCode busca en ambas categorías (código patrimonial único global).
	FindByCode(code string) (*entity.Item, error)
	// ListCalibrationDue lista instrumentos con calibración vencida o por vencer antes de la fecha.
	ListCalibrationDue(before time.Time) ([]*entity.Item, error)
}

package inventory

import (
	"context"

	"github.com/jhoicas/metrologia-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza atomicidad para el motor de
// movimientos: si fn devuelve error no queda ninguna escritura visible.
//
// Contrato de errores: un fallo al abrir o confirmar la transacción se
// devuelve como domain.ErrUnavailable; un conflicto de serialización o
// deadlock detectado por el almacén se devuelve como domain.ErrConflict
// (envueltos con %w). Los errores de fn pasan sin tocar.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
	) error) error
}

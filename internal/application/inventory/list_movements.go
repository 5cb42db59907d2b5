package inventory

import (
	"github.com/jhoicas/metrologia-api/internal/domain/entity"
	"github.com/jhoicas/metrologia-api/internal/domain/repository"
)

// Límites del listado de movimientos.
const (
	defaultListLimit = 200
	maxListLimit     = 1000
)

// ListMovementsUseCase camino de solo lectura del libro: consulta snapshots
// directamente, fuera del mutador atómico.
type ListMovementsUseCase struct {
	movRepo repository.MovementRepository
}

// NewListMovementsUseCase construye el caso de uso (repos atados al pool, no a una tx).
func NewListMovementsUseCase(movRepo repository.MovementRepository) *ListMovementsUseCase {
	return &ListMovementsUseCase{movRepo: movRepo}
}

// List devuelve movimientos filtrados por código o por ítem, más recientes
// primero. El límite pedido se acota al rango [1, 1000] en el servidor.
func (uc *ListMovementsUseCase) List(itemID, code string, limit, offset int) ([]*entity.Movement, error) {
	return uc.movRepo.List(repository.MovementFilter{
		ItemID:       itemID,
		InternalCode: code,
		Limit:        ClampLimit(limit),
		Offset:       max(offset, 0),
	})
}

// ClampLimit acota un límite pedido al rango [1, maxListLimit];
// cero o negativo cae al valor por defecto.
func ClampLimit(limit int) int {
	if limit <= 0 {
		return defaultListLimit
	}
	if limit > maxListLimit {
		return maxListLimit
	}
	return limit
}

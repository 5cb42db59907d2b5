package inventory

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/metrologia-api/internal/domain"
	"github.com/jhoicas/metrologia-api/internal/domain/entity"
	domaininv "github.com/jhoicas/metrologia-api/internal/domain/inventory"
	"github.com/jhoicas/metrologia-api/internal/domain/repository"
	"github.com/jhoicas/metrologia-api/pkg/metrics"
)

// maxCommitAttempts tope de reintentos ante conflicto de escritura concurrente.
const maxCommitAttempts = 3

// RegisterMovementUseCase es el mutador atómico de stock: localiza el ítem,
// aplica el delta, transiciona el estado y registra el movimiento en el libro,
// todo dentro de una sola transacción con bloqueo de fila (SELECT FOR UPDATE).
// O se escribe todo o no se escribe nada.
type RegisterMovementUseCase struct {
	txRunner TxRunner
}

// NewRegisterMovementUseCase construye el caso de uso.
func NewRegisterMovementUseCase(txRunner TxRunner) *RegisterMovementUseCase {
	return &RegisterMovementUseCase{txRunner: txRunner}
}

// MovementResult movimiento confirmado más el estado resultante del ítem.
type MovementResult struct {
	Movement    *entity.Movement
	NewQuantity int64
	NewStatus   *string
}

// RegisterMovement ejecuta un movimiento validado como unidad atómica.
//
// Dentro de la transacción: localizar+bloquear el ítem, calcular el delta con
// signo, rechazar si la cantidad candidata queda negativa, aplicar la regla de
// estado, insertar el movimiento y actualizar el ítem. La lectura del stock y
// la escritura del nuevo valor son indivisibles: leer, decidir y escribir en
// pasos sueltos es exactamente el bug que este diseño evita.
//
// Un conflicto detectado por el almacén reintenta desde una lectura fresca
// hasta maxCommitAttempts; agotados los intentos se devuelve ErrConflict.
func (uc *RegisterMovementUseCase) RegisterMovement(ctx context.Context, input MovementInput) (*MovementResult, error) {
	var result *MovementResult
	var err error
	for attempt := 1; attempt <= maxCommitAttempts; attempt++ {
		result, err = uc.tryRegister(ctx, input)
		if err == nil || !errors.Is(err, domain.ErrConflict) {
			break
		}
		if attempt < maxCommitAttempts {
			metrics.MovementRetried()
		}
	}
	metrics.MovementProcessed(input.Type, resultLabel(err))
	if err != nil {
		return nil, err
	}
	return result, nil
}

// tryRegister un intento de transacción completo (pasos 1-7 del motor).
func (uc *RegisterMovementUseCase) tryRegister(ctx context.Context, input MovementInput) (*MovementResult, error) {
	var result *MovementResult
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		itemRepo repository.ItemRepository,
	) error {
		// Localizar el ítem DENTRO de la transacción, bloqueando la fila.
		var item *entity.Item
		var err error
		if input.ItemID != "" {
			item, err = itemRepo.GetForUpdateByID(input.Category, input.ItemID)
		} else {
			item, err = itemRepo.GetForUpdateByCode(input.Category, input.Code)
		}
		if err != nil {
			return err
		}
		if item == nil {
			return domain.ErrNotFound
		}

		// La salvaguarda de stock no negativo aplica en TODA vía de entrada,
		// se localice por id o por código.
		delta := domaininv.Delta(input.Type, input.Quantity)
		candidate := item.Quantity + delta
		if candidate < 0 {
			return domain.ErrInsufficientStock
		}

		var newStatus *string
		if s, ok := domaininv.StatusAfterMovement(item.Category, input.Type); ok && s != item.Status {
			status := s
			newStatus = &status
		}

		now := time.Now()
		mov := &entity.Movement{
			ID:           uuid.New().String(),
			Type:         input.Type,
			ItemID:       item.ID,
			Category:     item.Category,
			InternalCode: item.InternalCode,
			Quantity:     input.Quantity,
			ActorID:      input.ActorID,
			Note:         input.Note,
			OccurredAt:   now,
		}
		if err := movRepo.Create(mov); err != nil {
			return err
		}
		if err := itemRepo.UpdateStock(item.ID, candidate, newStatus, now); err != nil {
			return err
		}

		result = &MovementResult{Movement: mov, NewQuantity: candidate, NewStatus: newStatus}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "committed"
	case errors.Is(err, domain.ErrInsufficientStock):
		return "insufficient_stock"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	default:
		return "error"
	}
}

package inventory

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jhoicas/metrologia-api/internal/application/dto"
	"github.com/jhoicas/metrologia-api/internal/domain"
	"github.com/jhoicas/metrologia-api/internal/domain/entity"
)

// MovementInput entrada normalizada y validada para el motor de movimientos.
// Se obtiene únicamente vía NormalizeMovementRequest.
type MovementInput struct {
	Type     string // ENTRY | EXIT | LOAN | RETURN
	Category string // INSTRUMENT | TOOL
	ItemID   string
	Code     string
	Quantity int64
	ActorID  string
	Note     *string
}

// NormalizeMovementRequest valida forma, enumeraciones y rangos del request
// antes de tocar el almacenamiento. Función pura: sin efectos ni I/O.
// Devuelve domain.ErrInvalidInput indicando el campo inválido, o
// domain.ErrUnauthorized si el actor no es un identificador válido.
func NormalizeMovementRequest(in dto.RegisterMovementRequest, actorID string) (MovementInput, error) {
	var out MovementInput

	if actorID == "" {
		return out, fmt.Errorf("%w: actor ausente", domain.ErrUnauthorized)
	}
	if _, err := uuid.Parse(actorID); err != nil {
		return out, fmt.Errorf("%w: actor inválido", domain.ErrUnauthorized)
	}

	switch strings.ToUpper(strings.TrimSpace(in.Type)) {
	case entity.MovementTypeEntry:
		out.Type = entity.MovementTypeEntry
	case entity.MovementTypeExit:
		out.Type = entity.MovementTypeExit
	case entity.MovementTypeLoan:
		out.Type = entity.MovementTypeLoan
	case entity.MovementTypeReturn:
		out.Type = entity.MovementTypeReturn
	default:
		return out, fmt.Errorf("%w: type debe ser entry, exit, loan o return", domain.ErrInvalidInput)
	}

	switch strings.ToUpper(strings.TrimSpace(in.Category)) {
	case entity.CategoryInstrument:
		out.Category = entity.CategoryInstrument
	case entity.CategoryTool:
		out.Category = entity.CategoryTool
	default:
		return out, fmt.Errorf("%w: category debe ser instrument o tool", domain.ErrInvalidInput)
	}

	// Cero o negativo siempre es inválido, sea cual sea el tipo de movimiento.
	if in.Quantity <= 0 {
		return out, fmt.Errorf("%w: quantity debe ser mayor que cero", domain.ErrInvalidInput)
	}
	out.Quantity = in.Quantity

	itemID := strings.TrimSpace(in.ItemID)
	code := strings.TrimSpace(in.Code)
	switch {
	case itemID == "" && code == "":
		return out, fmt.Errorf("%w: se requiere item_id o code", domain.ErrInvalidInput)
	case itemID != "" && code != "":
		return out, fmt.Errorf("%w: item_id y code son excluyentes", domain.ErrInvalidInput)
	case itemID != "":
		if _, err := uuid.Parse(itemID); err != nil {
			return out, fmt.Errorf("%w: item_id inválido", domain.ErrInvalidInput)
		}
		out.ItemID = itemID
	default:
		out.Code = code
	}

	out.ActorID = actorID
	if in.Note != nil && strings.TrimSpace(*in.Note) != "" {
		note := strings.TrimSpace(*in.Note)
		out.Note = &note
	}
	return out, nil
}

package dto

import "time"

// RegisterMovementRequest body para POST /api/movements.
// ItemID y Code son excluyentes: el ítem se localiza por uno u otro.
type RegisterMovementRequest struct {
	Type     string  `json:"type"`     // entry | exit | loan | return
	Category string  `json:"category"` // instrument | tool
	ItemID   string  `json:"item_id,omitempty"`
	Code     string  `json:"code,omitempty"`
	Quantity int64   `json:"quantity"`
	Note     *string `json:"note,omitempty"`
}

// MovementResponse resultado de un movimiento confirmado.
type MovementResponse struct {
	Committed   bool    `json:"committed"`
	MovementID  string  `json:"movement_id"`
	ItemID      string  `json:"item_id"`
	NewQuantity int64   `json:"new_quantity"`
	NewStatus   *string `json:"new_status,omitempty"`
}

// MovementDTO un registro del libro de movimientos (solo lectura).
type MovementDTO struct {
	ID           string    `json:"id"`
	Type         string    `json:"type"`
	ItemID       string    `json:"item_id"`
	Category     string    `json:"category"`
	InternalCode string    `json:"internal_code,omitempty"`
	Quantity     int64     `json:"quantity"`
	ActorID      string    `json:"actor_id"`
	Note         *string   `json:"note,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// ListMovementsRequest filtros del listado (query params).
type ListMovementsRequest struct {
	ItemID string `query:"item_id"`
	Code   string `query:"code"`
	Limit  int    `query:"limit"`
	Offset int    `query:"offset"`
}

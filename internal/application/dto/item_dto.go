package dto

import "time"

// CreateItemRequest entrada para crear un ítem del catálogo (solo admin).
type CreateItemRequest struct {
	Category         string     `json:"category"` // instrument | tool
	Name             string     `json:"name"`
	InternalCode     string     `json:"internal_code"`
	Quantity         int64      `json:"quantity"` // stock inicial, >= 0
	CalibrationDueAt *time.Time `json:"calibration_due_at,omitempty"`
}

// UpdateItemRequest edición de metadatos del catálogo. Cantidad y estado
// NO son editables aquí: cualquier corrección de stock se registra como
// movimiento compensatorio.
type UpdateItemRequest struct {
	Name             *string    `json:"name,omitempty"`
	InternalCode     *string    `json:"internal_code,omitempty"`
	CalibrationDueAt *time.Time `json:"calibration_due_at,omitempty"`
}

// ItemResponse salida de un ítem.
type ItemResponse struct {
	ID               string     `json:"id"`
	Category         string     `json:"category"`
	Name             string     `json:"name"`
	InternalCode     string     `json:"internal_code"`
	Quantity         int64      `json:"quantity"`
	Status           string     `json:"status,omitempty"`
	CalibrationDueAt *time.Time `json:"calibration_due_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// CalibrationAlertsResponse instrumentos con calibración vencida o por vencer.
type CalibrationAlertsResponse struct {
	Total    int            `json:"total"`
	Overdue  []ItemResponse `json:"overdue"`
	Upcoming []ItemResponse `json:"upcoming"`
}

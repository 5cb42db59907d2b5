package dto

import "time"

// CreateMaterialRequest entrada para crear un material consumible.
type CreateMaterialRequest struct {
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Quantity  int64      `json:"quantity"`
	Location  string     `json:"location,omitempty"`
	Type      string     `json:"type,omitempty"` // ej. "giro"
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
}

// MaterialResponse salida de un material.
type MaterialResponse struct {
	ID        string     `json:"id"`
	Code      string     `json:"code"`
	Name      string     `json:"name"`
	Quantity  int64      `json:"quantity"`
	Location  string     `json:"location,omitempty"`
	Type      string     `json:"type,omitempty"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

package entity

import "time"

// MaterialTypeGiro materiales de giro (reposición continua).
const MaterialTypeGiro = "giro"

// Material es un consumible del laboratorio: a diferencia de instrumentos y
// herramientas no pasa por el libro de movimientos; su stock es informativo.
type Material struct {
	ID        string
	Code      string
	Name      string
	Quantity  int64
	Location  string
	Type      string // vacío = sin clasificar; "giro" = reposición continua
	ExpiresAt *time.Time
	CreatedAt time.Time
}

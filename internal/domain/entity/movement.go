package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeEntry  = "ENTRY"  // entrada a almacén
	MovementTypeExit   = "EXIT"   // salida definitiva
	MovementTypeLoan   = "LOAN"   // préstamo
	MovementTypeReturn = "RETURN" // devolución de préstamo
)

// Movement es un registro inmutable del libro de movimientos: se inserta
// una sola vez y nunca se actualiza ni se borra. Una corrección se modela
// como un movimiento compensatorio nuevo.
type Movement struct {
	ID           string
	Type         string
	ItemID       string
	Category     string
	InternalCode string // denormalizado para el listado filtrado por código
	Quantity     int64  // magnitud del evento, siempre > 0; el signo lo da el tipo
	ActorID      string
	Note         *string
	OccurredAt   time.Time
}

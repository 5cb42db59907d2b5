package entity

import "time"

// Categorías de ítem del laboratorio.
const (
	CategoryInstrument = "INSTRUMENT" // instrumento calibrado (quantity 0/1, con status)
	CategoryTool       = "TOOL"       // herramienta (stock por cantidad, sin status)
)

// Estados de un instrumento. Las herramientas no llevan estado.
const (
	StatusAvailable = "AVAILABLE"
	StatusLoaned    = "LOANED"
)

// Item representa un instrumento calibrado o una herramienta del almacén.
// Quantity y Status solo se mutan a través del motor de movimientos;
// el resto de campos se editan por el catálogo.
type Item struct {
	ID               string
	Category         string
	Name             string
	InternalCode     string // código patrimonial, único global
	Quantity         int64  // invariante: >= 0, garantizado transaccionalmente
	Status           string // solo instrumentos; vacío para herramientas
	CalibrationDueAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// IsInstrument indica si el ítem pertenece a la categoría instrumento.
func (i *Item) IsInstrument() bool { return i.Category == CategoryInstrument }

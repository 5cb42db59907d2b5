package inventory

import "github.com/jhoicas/metrologia-api/internal/domain/entity"

// Delta devuelve el cambio de stock con signo que implica un movimiento
// (servicio de dominio, puro): entradas y devoluciones suman, salidas y
// préstamos restan. quantity debe ser la magnitud positiva ya validada.
func Delta(movementType string, quantity int64) int64 {
	switch movementType {
	case entity.MovementTypeEntry, entity.MovementTypeReturn:
		return quantity
	case entity.MovementTypeExit, entity.MovementTypeLoan:
		return -quantity
	}
	return 0
}

// StatusAfterMovement devuelve el nuevo estado del ítem para el par
// (categoría, tipo de movimiento). El mapeo es exhaustivo: agregar un tipo
// de movimiento obliga a decidir aquí su efecto sobre el estado.
// ok=false significa "sin cambio"; las herramientas nunca cambian de estado.
func StatusAfterMovement(category, movementType string) (status string, ok bool) {
	if category != entity.CategoryInstrument {
		return "", false
	}
	switch movementType {
	case entity.MovementTypeLoan:
		return entity.StatusLoaned, true
	case entity.MovementTypeReturn:
		return entity.StatusAvailable, true
	case entity.MovementTypeEntry, entity.MovementTypeExit:
		return "", false
	}
	return "", false
}

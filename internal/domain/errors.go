package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los mapean 1:1 a códigos de estado.
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto de escritura concurrente")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrUnavailable       = errors.New("almacenamiento no disponible")
)

package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrMalformedSequence = errors.New("secuencia de documentos corrupta")
)

// InsufficientStockError se devuelve cuando un movimiento que descuenta stock
// pide más unidades de las disponibles. Nunca se recorta ni se reintenta.
type InsufficientStockError struct {
	ProductID string
	Available int64
	Requested int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente. Available: %d, Requested: %d", e.Available, e.Requested)
}

// Is permite errors.Is(err, ErrInsufficientStock).
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// MalformedSequenceError indica que el último número emitido de una familia
// no se puede interpretar (prefijo inesperado o sufijo no numérico).
type MalformedSequenceError struct {
	Family string
	Value  string
}

func (e *MalformedSequenceError) Error() string {
	return fmt.Sprintf("secuencia %s corrupta: no se puede interpretar %q", e.Family, e.Value)
}

func (e *MalformedSequenceError) Is(target error) bool {
	return target == ErrMalformedSequence
}

// InvalidMovementInputError cantidad no positiva, tipo desconocido, producto o actor ausente.
// Cause (opcional) permite distinguir, por ejemplo, un producto inexistente (ErrNotFound).
type InvalidMovementInputError struct {
	Field  string
	Reason string
	Cause  error
}

func (e *InvalidMovementInputError) Error() string {
	return fmt.Sprintf("movimiento inválido: %s %s", e.Field, e.Reason)
}

func (e *InvalidMovementInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func (e *InvalidMovementInputError) Unwrap() error { return e.Cause }

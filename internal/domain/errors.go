package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrUserNotFound      = errors.New("usuario no encontrado en el sistema")
	ErrRiderNotFound     = errors.New("repartidor no encontrado o inactivo")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrForbidden         = errors.New("acceso denegado")
	ErrEmailNotApproved  = errors.New("email no aprobado para acceso")
	ErrUserInactive      = errors.New("cuenta de usuario inactiva")
	ErrInvalidTransition = errors.New("transición de estado inválida")
	ErrRiderRequired     = errors.New("se requiere repartidor asignado para enviar la orden")
)

// VariantNotFoundError indica que una combinación (size, color) no existe en el producto.
// errors.Is lo trata como ErrNotFound para el mapeo HTTP.
type VariantNotFoundError struct {
	Size  string
	Color string
}

func (e *VariantNotFoundError) Error() string {
	return fmt.Sprintf("variant with size %s and color %s not found", e.Size, e.Color)
}

func (e *VariantNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

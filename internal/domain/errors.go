package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvalidTransition  = errors.New("transición de estado no permitida")
)

// TransitionError detalla un cambio de estado rechazado por la tabla de transiciones.
// errors.Is(err, ErrInvalidTransition) es verdadero para cualquier *TransitionError.
type TransitionError struct {
	Document string // "factura", "cotización", "nota"
	From     string
	To       string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: no se puede pasar de %q a %q", e.Document, e.From, e.To)
}

// Is permite comparar contra el sentinel ErrInvalidTransition.
func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

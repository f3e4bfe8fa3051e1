package domain

import "errors"

// Errores de dominio (sin dependencias externas). Conjunto cerrado:
// los handlers y callers clasifican con errors.Is, nunca por substring del mensaje.
var (
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrConcurrentModification = errors.New("modificación concurrente: la cantidad esperada no coincide")
	ErrAlreadyVoided          = errors.New("el lote ya fue anulado")
	ErrStatusLocked           = errors.New("el estado del lote está controlado por cantidad o anulación")
	ErrPersistence            = errors.New("fallo de persistencia")
	ErrDuplicate              = errors.New("recurso duplicado")
	ErrUserNotFound           = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists     = errors.New("el email ya está registrado")
	ErrUnauthorized           = errors.New("no autorizado")
	ErrForbidden              = errors.New("acceso denegado")
)

// Code devuelve el código máquina-verificable asociado a un error de dominio.
// Los consumidores HTTP lo exponen en el campo "code" de la respuesta.
func Code(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "VALIDATION"
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrConcurrentModification):
		return "CONCURRENT_MODIFICATION"
	case errors.Is(err, ErrAlreadyVoided):
		return "ALREADY_VOIDED"
	case errors.Is(err, ErrStatusLocked):
		return "STATUS_LOCKED"
	case errors.Is(err, ErrDuplicate), errors.Is(err, ErrEmailAlreadyExists):
		return "DUPLICATE"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrForbidden):
		return "FORBIDDEN"
	case errors.Is(err, ErrPersistence):
		return "PERSISTENCE"
	default:
		return "INTERNAL"
	}
}

package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUnauthenticated    = errors.New("sesión no válida o inexistente")
	ErrAccountMismatch    = errors.New("el recurso pertenece a otra cuenta")
	ErrTransient          = errors.New("error transitorio de E/S")
	ErrValidation         = errors.New("datos inválidos")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
)

// ErrorKind clasificación uniforme de errores para toda la capa de datos y casos de uso.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindNotFound
	KindUnauthenticated
	KindAccountMismatch
	KindTransient
	KindValidation
)

func (k ErrorKind) String() string {
	switch k {
	case KindNotFound:
		return "NotFound"
	case KindUnauthenticated:
		return "Unauthenticated"
	case KindAccountMismatch:
		return "AccountMismatch"
	case KindTransient:
		return "Transient"
	case KindValidation:
		return "Validation"
	default:
		return "Unknown"
	}
}

// KindOf clasifica un error (posiblemente envuelto) en su ErrorKind.
func KindOf(err error) ErrorKind {
	switch {
	case err == nil:
		return KindUnknown
	case errors.Is(err, ErrUnauthenticated), errors.Is(err, ErrInvalidCredentials):
		return KindUnauthenticated
	case errors.Is(err, ErrAccountMismatch), errors.Is(err, ErrForbidden), errors.Is(err, ErrUnauthorized):
		return KindAccountMismatch
	case errors.Is(err, ErrNotFound), errors.Is(err, ErrUserNotFound):
		return KindNotFound
	case errors.Is(err, ErrValidation), errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrDuplicate), errors.Is(err, ErrEmailAlreadyExists), errors.Is(err, ErrConflict):
		return KindValidation
	case errors.Is(err, ErrTransient):
		return KindTransient
	default:
		return KindUnknown
	}
}

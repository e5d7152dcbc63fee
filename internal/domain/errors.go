package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrUnreadableFile        = errors.New("archivo no legible como hoja de cálculo")
	ErrMalformedCustomerFile = errors.New("archivo de clientes mal formado")
	ErrAINotConfigured       = errors.New("proveedor de IA sin API key")
)

// UnreadableFileError el archivo no se pudo abrir como contenedor de hoja de cálculo.
// Se reporta por archivo; no aborta un lote de importación.
type UnreadableFileError struct {
	File string
	Err  error
}

func (e *UnreadableFileError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.File, ErrUnreadableFile)
	}
	return fmt.Sprintf("%s: %s: %v", e.File, ErrUnreadableFile, e.Err)
}

func (e *UnreadableFileError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrUnreadableFile).
func (e *UnreadableFileError) Is(target error) bool { return target == ErrUnreadableFile }

// MalformedCustomerFileError el registro de clientes no tiene la estructura de cabecera esperada.
type MalformedCustomerFileError struct {
	File   string
	Reason string
	Err    error
}

func (e *MalformedCustomerFileError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.File, ErrMalformedCustomerFile)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedCustomerFileError) Unwrap() error { return e.Err }

// Is permite errors.Is(err, ErrMalformedCustomerFile).
func (e *MalformedCustomerFileError) Is(target error) bool {
	return target == ErrMalformedCustomerFile
}

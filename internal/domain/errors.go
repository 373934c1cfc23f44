package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInvalidInviteCode  = errors.New("código de invitación inválido")
	ErrStatusLocked       = errors.New("el estado del ítem espera revisión del GC")
	ErrEmptySelection     = errors.New("no hay ítems seleccionados")
	ErrUnavailable        = errors.New("servicio no disponible")
)

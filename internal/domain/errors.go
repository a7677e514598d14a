package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrBelowMinimumOrder  = errors.New("el pedido no alcanza el mínimo de unidades")
	ErrAccountNotApproved = errors.New("la cuenta aún no ha sido aprobada")
	ErrPaymentDeclined    = errors.New("pago rechazado por el procesador")
	ErrStoreUnavailable   = errors.New("almacén remoto no disponible")
)

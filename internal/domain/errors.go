package domain

import "errors"

// Errores de dominio (sin dependencias externas).
// Los handlers HTTP los traducen a códigos de estado; ver interfaces/http/errors.go.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
)

// Errores de resolución de tenant y control de acceso.
var (
	ErrTenantRequired     = errors.New("se requiere contexto de tenant")
	ErrTenantInvalid      = errors.New("identificador de tenant inválido")
	ErrTenantNotFound     = errors.New("tenant no encontrado")
	ErrTenantInactive     = errors.New("tenant inactivo o suspendido")
	ErrTenantAccessDenied = errors.New("el usuario no pertenece al tenant")
	ErrInsufficientRole   = errors.New("rol insuficiente para la operación")
)

// Errores de suscripción y límites de plan.
var (
	ErrNoSubscription       = errors.New("el tenant no tiene suscripción")
	ErrSubscriptionInactive = errors.New("suscripción inactiva")
	ErrTrialExpired         = errors.New("el período de prueba expiró")
	ErrFeatureNotInPlan     = errors.New("la característica no está incluida en el plan")
	ErrUsageLimit           = errors.New("límite de uso del plan alcanzado")
)

// Errores del ciclo de venta e inventario.
var (
	ErrProductNotFound      = errors.New("producto no encontrado")
	ErrProductInactive      = errors.New("producto inactivo")
	ErrInsufficientStock    = errors.New("stock insuficiente")
	ErrInvalidPaymentMethod = errors.New("método de pago inválido")
	ErrInvalidAmount        = errors.New("monto inválido")
	ErrSaleNotFound         = errors.New("venta no encontrada")
	ErrAlreadyVoided        = errors.New("la venta ya fue anulada")
)

package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

// respondError mapea los errores de dominio a su status HTTP y cuerpo JSON.
// La distinción importante: tenant ausente/malformado es 400 (petición
// incompleta), tenant inexistente 404, y todo lo de acceso/suscripción 403.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrTenantRequired):
		return respond(c, fiber.StatusBadRequest, "TENANT_REQUIRED", "Tenant context is required")
	case errors.Is(err, domain.ErrTenantInvalid):
		return respond(c, fiber.StatusBadRequest, "TENANT_INVALID", "identificador de tenant malformado")
	case errors.Is(err, domain.ErrTenantNotFound):
		return respond(c, fiber.StatusNotFound, "TENANT_NOT_FOUND", "tenant no encontrado")
	case errors.Is(err, domain.ErrTenantInactive):
		return respond(c, fiber.StatusForbidden, "TENANT_INACTIVE", "tenant suspendido o cancelado")
	case errors.Is(err, domain.ErrTenantAccessDenied):
		return respond(c, fiber.StatusForbidden, "TENANT_ACCESS_DENIED", "sin membresía en el tenant")
	case errors.Is(err, domain.ErrInsufficientRole):
		return respond(c, fiber.StatusForbidden, "INSUFFICIENT_ROLE", "rol insuficiente para la operación")
	case errors.Is(err, domain.ErrNoSubscription):
		return respond(c, fiber.StatusForbidden, "NO_SUBSCRIPTION", "el tenant no tiene suscripción")
	case errors.Is(err, domain.ErrSubscriptionInactive):
		return respond(c, fiber.StatusForbidden, "SUBSCRIPTION_INACTIVE", "suscripción vencida o cancelada")
	case errors.Is(err, domain.ErrTrialExpired):
		return respond(c, fiber.StatusForbidden, "TRIAL_EXPIRED", "el período de prueba terminó")
	case errors.Is(err, domain.ErrFeatureNotInPlan):
		return respond(c, fiber.StatusForbidden, "FEATURE_NOT_IN_PLAN", "característica no incluida en el plan")
	case errors.Is(err, domain.ErrUsageLimit):
		return respond(c, fiber.StatusForbidden, "USAGE_LIMIT", "límite del plan alcanzado")
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado")
	case errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	case errors.Is(err, domain.ErrProductNotFound):
		return respond(c, fiber.StatusBadRequest, "PRODUCT_NOT_FOUND", "producto no encontrado")
	case errors.Is(err, domain.ErrProductInactive):
		return respond(c, fiber.StatusBadRequest, "PRODUCT_INACTIVE", "producto inactivo")
	case errors.Is(err, domain.ErrInsufficientStock):
		return respond(c, fiber.StatusBadRequest, "INSUFFICIENT_STOCK", "stock insuficiente")
	case errors.Is(err, domain.ErrInvalidPaymentMethod):
		return respond(c, fiber.StatusBadRequest, "INVALID_PAYMENT_METHOD", "método de pago no reconocido")
	case errors.Is(err, domain.ErrInvalidAmount):
		return respond(c, fiber.StatusBadRequest, "INVALID_AMOUNT", "monto inválido")
	case errors.Is(err, domain.ErrAlreadyVoided):
		return respond(c, fiber.StatusBadRequest, "ALREADY_VOIDED", "la venta ya está anulada")
	case errors.Is(err, domain.ErrSaleNotFound):
		return respond(c, fiber.StatusNotFound, "SALE_NOT_FOUND", "venta no encontrada")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respond(c, fiber.StatusBadRequest, "EMAIL_EXISTS", "el email ya está registrado")
	case errors.Is(err, domain.ErrUserNotFound):
		return respond(c, fiber.StatusNotFound, "USER_NOT_FOUND", "usuario no encontrado")
	case errors.Is(err, domain.ErrDuplicate):
		return respond(c, fiber.StatusBadRequest, "DUPLICATE", "el recurso ya existe")
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "datos inválidos")
	case errors.Is(err, domain.ErrNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado")
	}
	return respond(c, fiber.StatusInternalServerError, "INTERNAL", "error interno")
}

func respond(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}

package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// subscriptionChecker contrato mínimo de los middlewares de suscripción;
// lo implementa *usecase.SubscriptionService.
type subscriptionChecker interface {
	ActiveSubscription(ctx context.Context, tenantID string) (*entity.Subscription, *entity.Plan, error)
	CheckFeatures(plan *entity.Plan, features ...string) error
	CheckLimit(tenant *entity.Tenant, plan *entity.Plan, resource entity.UsageResource) error
}

// RequireSubscription exige suscripción vigente del tenant. Debe usarse
// DESPUÉS de TenantMiddleware. El bypass superadmin salta la verificación.
func RequireSubscription(checker subscriptionChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if HasAdminBypass(c) {
			return c.Next()
		}
		tenant := GetTenant(c)
		if tenant == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no resuelto"})
		}
		if _, _, err := checker.ActiveSubscription(c.Context(), tenant.ID); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}

// RequireFeature exige suscripción vigente Y que el plan incluya la
// característica. El bypass superadmin salta ambas verificaciones.
func RequireFeature(checker subscriptionChecker, feature string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if HasAdminBypass(c) {
			return c.Next()
		}
		tenant := GetTenant(c)
		if tenant == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no resuelto"})
		}
		_, plan, err := checker.ActiveSubscription(c.Context(), tenant.ID)
		if err != nil {
			return respondError(c, err)
		}
		if err := checker.CheckFeatures(plan, feature); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}

// RequireCapacity exige que el contador del recurso no haya alcanzado el
// límite del plan (0 = ilimitado). La operación que crearía el recurso
// n+1 por encima del límite queda bloqueada aquí, antes de tocar la DB.
func RequireCapacity(checker subscriptionChecker, resource entity.UsageResource) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if HasAdminBypass(c) {
			return c.Next()
		}
		tenant := GetTenant(c)
		if tenant == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no resuelto"})
		}
		_, plan, err := checker.ActiveSubscription(c.Context(), tenant.ID)
		if err != nil {
			return respondError(c, err)
		}
		if err := checker.CheckLimit(tenant, plan, resource); err != nil {
			return respondError(c, err)
		}
		return c.Next()
	}
}

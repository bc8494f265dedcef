package http

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// Locals keys que deja el middleware de tenant.
const (
	LocalTenant      = "tenant"
	LocalTenantID    = "tenant_id"
	LocalTenantRole  = "tenant_role"
	LocalAdminBypass = "admin_bypass"
)

// tenantResolver contrato mínimo del middleware; lo implementa
// *usecase.TenantService (la interfaz evita el import circular).
type tenantResolver interface {
	Resolve(ctx context.Context, rawID string, bypass bool) (*entity.Tenant, error)
	EffectiveRole(ctx context.Context, userID, tenantID string) (string, error)
}

// TenantMiddleware resuelve el tenant de la petición y verifica la membresía
// del usuario. Debe usarse DESPUÉS de AuthMiddleware.
//
// Precedencia del identificador: header X-Tenant-ID, query tenantId, cuerpo
// JSON tenantId, claim tenant_id del token y por último el claim heredado
// company_id. Aquí está el ÚNICO punto donde se evalúa el bypass superadmin:
// salta la verificación de estado y de membresía, nunca la existencia del
// tenant.
func TenantMiddleware(resolver tenantResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		rawID := extractTenantID(c)
		bypass := IsSuperadmin(c)

		tenant, err := resolver.Resolve(c.Context(), rawID, bypass)
		if err != nil {
			return respondError(c, err)
		}

		role := ""
		if bypass {
			role = entity.TenantRoleOwner
		} else {
			role, err = resolver.EffectiveRole(c.Context(), GetUserID(c), tenant.ID)
			if err != nil {
				return respondError(c, err)
			}
		}

		c.Locals(LocalTenant, tenant)
		c.Locals(LocalTenantID, tenant.ID)
		c.Locals(LocalTenantRole, role)
		c.Locals(LocalAdminBypass, bypass)
		return c.Next()
	}
}

// extractTenantID aplica la precedencia de fuentes del identificador de tenant.
func extractTenantID(c *fiber.Ctx) string {
	if id := c.Get("X-Tenant-ID"); id != "" {
		return id
	}
	if id := c.Query("tenantId"); id != "" {
		return id
	}
	if len(c.Body()) > 0 {
		var body struct {
			TenantID string `json:"tenantId"`
		}
		if err := c.BodyParser(&body); err == nil && body.TenantID != "" {
			return body.TenantID
		}
	}
	if id := localString(c, LocalTokenTenantID); id != "" {
		return id
	}
	return localString(c, LocalLegacyCompanyID)
}

// GetTenant devuelve el tenant resuelto (después de TenantMiddleware).
func GetTenant(c *fiber.Ctx) *entity.Tenant {
	v := c.Locals(LocalTenant)
	if v == nil {
		return nil
	}
	t, _ := v.(*entity.Tenant)
	return t
}

// GetTenantID devuelve el id del tenant resuelto.
func GetTenantID(c *fiber.Ctx) string {
	return localString(c, LocalTenantID)
}

// GetTenantRole devuelve el rol efectivo del usuario en el tenant.
func GetTenantRole(c *fiber.Ctx) string {
	return localString(c, LocalTenantRole)
}

// HasAdminBypass informa si la petición pasó con bypass superadmin.
func HasAdminBypass(c *fiber.Ctx) bool {
	v := c.Locals(LocalAdminBypass)
	if v == nil {
		return false
	}
	b, _ := v.(bool)
	return b
}

// RequireTenantRole exige que el rol efectivo esté en la lista. El bypass
// superadmin ya quedó decidido en TenantMiddleware (rol owner), así que aquí
// solo se compara.
func RequireTenantRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetTenantRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "tenant no resuelto"})
		}
		for _, allowed := range roles {
			if role == allowed {
				return c.Next()
			}
		}
		return respond(c, fiber.StatusForbidden, "INSUFFICIENT_ROLE", "rol insuficiente para la operación")
	}
}

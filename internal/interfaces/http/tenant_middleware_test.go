package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	apphttp "github.com/jhoicas/Ventas-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/Ventas-api/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "ventas-pos-test"
	testExpMin    = 60

	testUserID   = "00000000-0000-0000-0000-000000000001"
	tenantOne    = "00000000-0000-0000-0000-00000000000a"
	tenantTwo    = "00000000-0000-0000-0000-00000000000b"
	tenantFrozen = "00000000-0000-0000-0000-00000000000c"
)

// fakeResolver implementa el contrato del TenantMiddleware en memoria:
// dos tenants operativos, uno suspendido, y una única membresía
// (testUserID → tenantOne, rol cashier).
type fakeResolver struct{}

func (fakeResolver) Resolve(_ context.Context, rawID string, bypass bool) (*entity.Tenant, error) {
	if rawID == "" {
		return nil, domain.ErrTenantRequired
	}
	tenants := map[string]*entity.Tenant{
		tenantOne:    {ID: tenantOne, Status: entity.TenantStatusActive},
		tenantTwo:    {ID: tenantTwo, Status: entity.TenantStatusActive},
		tenantFrozen: {ID: tenantFrozen, Status: entity.TenantStatusSuspended},
	}
	t, ok := tenants[rawID]
	if !ok {
		if len(rawID) != 36 {
			return nil, domain.ErrTenantInvalid
		}
		return nil, domain.ErrTenantNotFound
	}
	if !bypass && !t.IsOperational() {
		return nil, domain.ErrTenantInactive
	}
	return t, nil
}

func (fakeResolver) EffectiveRole(_ context.Context, userID, tenantID string) (string, error) {
	if userID == testUserID && tenantID == tenantOne {
		return entity.TenantRoleCashier, nil
	}
	return "", domain.ErrTenantAccessDenied
}

// buildScopedApp monta una ruta con auth + tenant y un handler que refleja
// el tenant y rol resueltos.
func buildScopedApp(extra ...fiber.Handler) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{
		apphttp.AuthMiddleware(testJWTSecret),
		apphttp.TenantMiddleware(fakeResolver{}),
	}
	handlers = append(handlers, extra...)
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"tenant_id": apphttp.GetTenantID(c),
			"role":      apphttp.GetTenantRole(c),
		})
	})
	app.Get("/resource", handlers...)
	return app
}

func bearerToken(t *testing.T, tenantID, globalRole string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, tenantID, globalRole, testIssuer, testExpMin)
	require.NoError(t, err)
	return "Bearer " + tok
}

func getResource(t *testing.T, app *fiber.App, authHeader, headerTenant string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/resource", nil)
	req.Header.Set("Authorization", authHeader)
	if headerTenant != "" {
		req.Header.Set("X-Tenant-ID", headerTenant)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]string {
	t.Helper()
	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

// ──────────────────────────────────────────────────────────────────────────────
// Resolución de tenant
// ──────────────────────────────────────────────────────────────────────────────

// El claim del token basta cuando no hay header.
func TestTenantMiddleware_ClaimDelToken(t *testing.T) {
	app := buildScopedApp()
	resp := getResource(t, app, bearerToken(t, tenantOne, entity.GlobalRoleUser), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decodeBody(t, resp)
	assert.Equal(t, tenantOne, body["tenant_id"])
	assert.Equal(t, entity.TenantRoleCashier, body["role"])
}

// El header X-Tenant-ID tiene precedencia sobre el claim.
func TestTenantMiddleware_HeaderPrecedeAlClaim(t *testing.T) {
	app := buildScopedApp()
	// Token dice tenantOne, header pide tenantTwo: se intenta tenantTwo
	// y la membresía no alcanza → 403.
	resp := getResource(t, app, bearerToken(t, tenantOne, entity.GlobalRoleUser), tenantTwo)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "TENANT_ACCESS_DENIED")
}

// Sin tenant por ninguna fuente → 400 con el mensaje de contexto requerido.
func TestTenantMiddleware_SinTenant(t *testing.T) {
	app := buildScopedApp()
	resp := getResource(t, app, bearerToken(t, "", entity.GlobalRoleUser), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "Tenant context is required")
}

// Identificador malformado → 400, inexistente → 404.
func TestTenantMiddleware_TenantInvalidoEInexistente(t *testing.T) {
	app := buildScopedApp()

	resp := getResource(t, app, bearerToken(t, tenantOne, entity.GlobalRoleUser), "no-uuid")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp2 := getResource(t, app, bearerToken(t, tenantOne, entity.GlobalRoleUser), "00000000-0000-0000-0000-0000000000ff")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

// Tenant suspendido → 403 para usuarios normales.
func TestTenantMiddleware_TenantSuspendido(t *testing.T) {
	app := buildScopedApp()
	resp := getResource(t, app, bearerToken(t, tenantFrozen, entity.GlobalRoleUser), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "TENANT_INACTIVE")
}

// Aislamiento entre tenants: membresía en tenantOne NO abre tenantTwo.
func TestTenantMiddleware_MembresiaNoCruzaTenants(t *testing.T) {
	app := buildScopedApp()
	resp := getResource(t, app, bearerToken(t, tenantTwo, entity.GlobalRoleUser), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "TENANT_ACCESS_DENIED")
}

// ──────────────────────────────────────────────────────────────────────────────
// Bypass superadmin
// ──────────────────────────────────────────────────────────────────────────────

// Superadmin entra sin membresía e incluso a tenants suspendidos,
// pero sigue necesitando nombrar un tenant existente.
func TestTenantMiddleware_BypassSuperadmin(t *testing.T) {
	app := buildScopedApp()

	resp := getResource(t, app, bearerToken(t, "", entity.GlobalRoleSuperadmin), tenantFrozen)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode, "superadmin opera sobre tenant suspendido")

	resp2 := getResource(t, app, bearerToken(t, "", entity.GlobalRoleSuperadmin), "")
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp2.StatusCode, "superadmin sin tenant explícito → 400")
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireTenantRole
// ──────────────────────────────────────────────────────────────────────────────

// Cashier bloqueado en rutas de manager+ (p. ej. anular ventas).
func TestRequireTenantRole_CashierBloqueado(t *testing.T) {
	app := buildScopedApp(apphttp.RequireTenantRole(
		entity.TenantRoleOwner, entity.TenantRoleAdmin, entity.TenantRoleManager,
	))
	resp := getResource(t, app, bearerToken(t, tenantOne, entity.GlobalRoleUser), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "INSUFFICIENT_ROLE")
}

func TestRequireTenantRole_CashierPermitido(t *testing.T) {
	app := buildScopedApp(apphttp.RequireTenantRole(entity.TenantRoleCashier))
	resp := getResource(t, app, bearerToken(t, tenantOne, entity.GlobalRoleUser), "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Superadmin pasa los checks de rol: el bypass le asigna rol owner.
func TestRequireTenantRole_SuperadminPasa(t *testing.T) {
	app := buildScopedApp(apphttp.RequireTenantRole(entity.TenantRoleOwner))
	resp := getResource(t, app, bearerToken(t, "", entity.GlobalRoleSuperadmin), tenantOne)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

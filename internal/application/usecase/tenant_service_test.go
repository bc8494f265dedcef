package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

const (
	tenantA = "11111111-1111-1111-1111-111111111111"
	tenantB = "22222222-2222-2222-2222-222222222222"
	userOne = "33333333-3333-3333-3333-333333333333"
)

// stubTenantRepo y stubUserRepo cubren solo lo que TenantService consulta.
type stubTenantRepo struct {
	tenants map[string]*entity.Tenant
}

func (r *stubTenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	return r.tenants[id], nil
}
func (r *stubTenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	r.tenants[t.ID] = t
	return nil
}
func (r *stubTenantRepo) AdjustUsage(_ context.Context, _ string, _ entity.UsageResource, _ int) error {
	return nil
}

type stubUserRepo struct {
	memberships map[string]*entity.TenantMembership // key: userID+tenantID
}

func (r *stubUserRepo) GetByID(_ context.Context, _ string) (*entity.User, error)      { return nil, nil }
func (r *stubUserRepo) FindByEmail(_ context.Context, _ string) (*entity.User, error) { return nil, nil }
func (r *stubUserRepo) Create(_ context.Context, _ *entity.User) error                { return nil }
func (r *stubUserRepo) GetMembership(_ context.Context, userID, tenantID string) (*entity.TenantMembership, error) {
	return r.memberships[userID+tenantID], nil
}
func (r *stubUserRepo) ListMemberships(_ context.Context, _ string) ([]*entity.TenantMembership, error) {
	return nil, nil
}
func (r *stubUserRepo) AddMembership(_ context.Context, m *entity.TenantMembership) error {
	r.memberships[m.UserID+m.TenantID] = m
	return nil
}
func (r *stubUserRepo) UpdateCurrentTenant(_ context.Context, _, _ string) error { return nil }

func buildTenantService(status string) *usecase.TenantService {
	tenants := &stubTenantRepo{tenants: map[string]*entity.Tenant{
		tenantA: {ID: tenantA, Name: "Tienda Norte", Status: status},
	}}
	users := &stubUserRepo{memberships: map[string]*entity.TenantMembership{
		userOne + tenantA: {UserID: userOne, TenantID: tenantA, Role: entity.TenantRoleCashier},
	}}
	return usecase.NewTenantService(tenants, users, logger.Nop())
}

func TestResolve_IdentificadorVacio(t *testing.T) {
	svc := buildTenantService(entity.TenantStatusActive)
	_, err := svc.Resolve(context.Background(), "", false)
	assert.ErrorIs(t, err, domain.ErrTenantRequired)
}

func TestResolve_IdentificadorMalformado(t *testing.T) {
	svc := buildTenantService(entity.TenantStatusActive)
	_, err := svc.Resolve(context.Background(), "no-es-un-uuid", false)
	assert.ErrorIs(t, err, domain.ErrTenantInvalid)
}

func TestResolve_TenantInexistente(t *testing.T) {
	svc := buildTenantService(entity.TenantStatusActive)
	_, err := svc.Resolve(context.Background(), tenantB, false)
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestResolve_TenantActivoYTrialPasan(t *testing.T) {
	for _, status := range []string{entity.TenantStatusActive, entity.TenantStatusTrial} {
		svc := buildTenantService(status)
		tenant, err := svc.Resolve(context.Background(), tenantA, false)
		require.NoError(t, err, "status %s debe ser operativo", status)
		assert.Equal(t, tenantA, tenant.ID)
	}
}

func TestResolve_TenantSuspendidoBloqueado(t *testing.T) {
	for _, status := range []string{entity.TenantStatusSuspended, entity.TenantStatusCancelled} {
		svc := buildTenantService(status)
		_, err := svc.Resolve(context.Background(), tenantA, false)
		assert.ErrorIs(t, err, domain.ErrTenantInactive, "status %s no es operativo", status)
	}
}

// El bypass salta la verificación de estado pero el tenant debe existir.
func TestResolve_BypassSuperadmin(t *testing.T) {
	svc := buildTenantService(entity.TenantStatusSuspended)

	tenant, err := svc.Resolve(context.Background(), tenantA, true)
	require.NoError(t, err, "bypass permite operar sobre tenant suspendido")
	assert.Equal(t, tenantA, tenant.ID)

	_, err = svc.Resolve(context.Background(), tenantB, true)
	assert.ErrorIs(t, err, domain.ErrTenantNotFound, "bypass no inventa tenants")

	_, err = svc.Resolve(context.Background(), "", true)
	assert.ErrorIs(t, err, domain.ErrTenantRequired, "bypass sigue exigiendo el identificador")
}

func TestEffectiveRole_ConMembresia(t *testing.T) {
	svc := buildTenantService(entity.TenantStatusActive)
	role, err := svc.EffectiveRole(context.Background(), userOne, tenantA)
	require.NoError(t, err)
	assert.Equal(t, entity.TenantRoleCashier, role)
}

// Membresía en el tenant A no da acceso al tenant B.
func TestEffectiveRole_SinMembresia(t *testing.T) {
	svc := buildTenantService(entity.TenantStatusActive)
	_, err := svc.EffectiveRole(context.Background(), userOne, tenantB)
	assert.ErrorIs(t, err, domain.ErrTenantAccessDenied)
}

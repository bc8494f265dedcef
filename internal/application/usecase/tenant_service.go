package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// TenantService resuelve y valida el tenant de cada petición, y determina
// el rol efectivo del usuario dentro del tenant.
type TenantService struct {
	tenantRepo repository.TenantRepository
	userRepo   repository.UserRepository
	log        *logger.Logger
}

// NewTenantService construye el servicio.
func NewTenantService(tenantRepo repository.TenantRepository, userRepo repository.UserRepository, log *logger.Logger) *TenantService {
	return &TenantService{tenantRepo: tenantRepo, userRepo: userRepo, log: log}
}

// Resolve valida el identificador crudo y carga el tenant. Con bypass
// (superadmin) se omite la verificación de estado operativo, pero el
// identificador sigue siendo obligatorio y debe existir.
func (s *TenantService) Resolve(ctx context.Context, rawID string, bypass bool) (*entity.Tenant, error) {
	if rawID == "" {
		return nil, domain.ErrTenantRequired
	}
	if _, err := uuid.Parse(rawID); err != nil {
		return nil, domain.ErrTenantInvalid
	}

	tenant, err := s.tenantRepo.GetByID(ctx, rawID)
	if err != nil {
		return nil, err
	}
	if tenant == nil {
		return nil, domain.ErrTenantNotFound
	}
	if !bypass && !tenant.IsOperational() {
		s.log.Warn().Str("tenant_id", tenant.ID).Str("status", tenant.Status).Msg("tenant no operativo")
		return nil, domain.ErrTenantInactive
	}
	return tenant, nil
}

// EffectiveRole devuelve el rol del usuario dentro del tenant. Sin membresía
// no hay acceso, sin importar el rol global (el bypass de superadmin se decide
// antes de llegar aquí).
func (s *TenantService) EffectiveRole(ctx context.Context, userID, tenantID string) (string, error) {
	membership, err := s.userRepo.GetMembership(ctx, userID, tenantID)
	if err != nil {
		return "", err
	}
	if membership == nil {
		return "", domain.ErrTenantAccessDenied
	}
	return membership.Role, nil
}

package usecase

import (
	"context"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// SubscriptionService valida suscripción, características del plan y límites
// de uso antes de permitir operaciones de negocio.
type SubscriptionService struct {
	subscriptionRepo repository.SubscriptionRepository
	log              *logger.Logger
	now              func() time.Time
}

// NewSubscriptionService construye el servicio.
func NewSubscriptionService(subscriptionRepo repository.SubscriptionRepository, log *logger.Logger) *SubscriptionService {
	return &SubscriptionService{subscriptionRepo: subscriptionRepo, log: log, now: time.Now}
}

// ActiveSubscription carga la suscripción del tenant y su plan, validando que
// esté vigente. Los errores distinguen la causa para el mapeo HTTP.
func (s *SubscriptionService) ActiveSubscription(ctx context.Context, tenantID string) (*entity.Subscription, *entity.Plan, error) {
	sub, err := s.subscriptionRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		return nil, nil, err
	}
	if sub == nil {
		return nil, nil, domain.ErrNoSubscription
	}

	now := s.now()
	switch sub.Status {
	case entity.SubscriptionCancelled, entity.SubscriptionPastDue:
		return nil, nil, domain.ErrSubscriptionInactive
	case entity.SubscriptionTrialing:
		if sub.IsTrialExpired(now) {
			return nil, nil, domain.ErrTrialExpired
		}
	case entity.SubscriptionActive:
		// vigente salvo vencimiento explícito
	default:
		return nil, nil, domain.ErrSubscriptionInactive
	}
	if sub.IsExpired(now) {
		return nil, nil, domain.ErrSubscriptionInactive
	}

	plan, err := s.subscriptionRepo.GetPlan(ctx, sub.PlanID)
	if err != nil {
		return nil, nil, err
	}
	if plan == nil {
		return nil, nil, domain.ErrNoSubscription
	}
	return sub, plan, nil
}

// CheckFeatures verifica que el plan incluya todas las características.
func (s *SubscriptionService) CheckFeatures(plan *entity.Plan, features ...string) error {
	for _, f := range features {
		if !plan.HasFeature(f) {
			return domain.ErrFeatureNotInPlan
		}
	}
	return nil
}

// CheckLimit compara el contador del tenant contra el límite del plan.
// Límite 0 = ilimitado. Falla cuando el uso actual ya alcanzó el límite,
// de modo que la operación que sumaría uno más queda bloqueada.
func (s *SubscriptionService) CheckLimit(tenant *entity.Tenant, plan *entity.Plan, resource entity.UsageResource) error {
	limit := plan.Limit(resource)
	if limit == 0 {
		return nil
	}
	if tenant.Usage(resource) >= limit {
		s.log.Warn().
			Str("tenant_id", tenant.ID).
			Str("resource", string(resource)).
			Int("limit", limit).
			Msg("límite de plan alcanzado")
		return domain.ErrUsageLimit
	}
	return nil
}

package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// SubscriptionRepository puerto de persistencia para suscripciones y planes.
type SubscriptionRepository interface {
	// GetByTenant devuelve nil (sin error) si el tenant no tiene suscripción.
	GetByTenant(ctx context.Context, tenantID string) (*entity.Subscription, error)
	GetPlan(ctx context.Context, planID string) (*entity.Plan, error)
}

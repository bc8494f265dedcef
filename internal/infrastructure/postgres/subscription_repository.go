package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

// SubscriptionRepo implementación de SubscriptionRepository (usable con pool o tx).
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

// GetByTenant devuelve la suscripción del tenant o nil sin error.
func (r *SubscriptionRepo) GetByTenant(ctx context.Context, tenantID string) (*entity.Subscription, error) {
	query := `
		SELECT id, tenant_id, plan_id, status, trial_ends_at, expires_at, created_at, updated_at
		FROM subscriptions
		WHERE tenant_id = $1`
	var s entity.Subscription
	err := r.q.QueryRow(ctx, query, tenantID).Scan(
		&s.ID, &s.TenantID, &s.PlanID, &s.Status,
		&s.TrialEndsAt, &s.ExpiresAt, &s.CreatedAt, &s.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select subscription: %w", err)
	}
	return &s, nil
}

// GetPlan devuelve el plan o nil si no existe.
func (r *SubscriptionRepo) GetPlan(ctx context.Context, planID string) (*entity.Plan, error) {
	query := `
		SELECT id, name, max_users, max_products, max_customers, max_transactions_per_month, features, created_at, updated_at
		FROM plans
		WHERE id = $1`
	var p entity.Plan
	err := r.q.QueryRow(ctx, query, planID).Scan(
		&p.ID, &p.Name, &p.MaxUsers, &p.MaxProducts, &p.MaxCustomers,
		&p.MaxTransactionsPerMonth, &p.Features, &p.CreatedAt, &p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select plan: %w", err)
	}
	return &p, nil
}

package entity

import "time"

// Estados válidos para Subscription.
const (
	SubscriptionActive    = "active"
	SubscriptionTrialing  = "trialing"
	SubscriptionPastDue   = "past_due"
	SubscriptionCancelled = "cancelled"
)

// Características de plan reconocidas.
const (
	FeatureSales     = "sales"
	FeatureInventory = "inventory"
	FeatureLoyalty   = "loyalty"
	FeatureReports   = "reports"
)

// Subscription representa la suscripción de un tenant a un plan.
type Subscription struct {
	ID          string
	TenantID    string
	PlanID      string
	Status      string // active, trialing, past_due, cancelled
	TrialEndsAt *time.Time
	ExpiresAt   *time.Time // nil = sin vencimiento
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsTrialExpired informa si la suscripción está en trial y ya venció.
func (s *Subscription) IsTrialExpired(now time.Time) bool {
	return s.Status == SubscriptionTrialing && s.TrialEndsAt != nil && now.After(*s.TrialEndsAt)
}

// IsExpired informa si la suscripción tiene fecha de vencimiento y ya pasó.
func (s *Subscription) IsExpired(now time.Time) bool {
	return s.ExpiresAt != nil && now.After(*s.ExpiresAt)
}

// Plan define los límites de recursos y características habilitadas.
// Límite 0 = ilimitado; el código de verificación debe tratar 0 como sin límite.
type Plan struct {
	ID                      string
	Name                    string
	MaxUsers                int
	MaxProducts             int
	MaxCustomers            int
	MaxTransactionsPerMonth int
	Features                []string
	CreatedAt               time.Time
	UpdatedAt               time.Time
}

// HasFeature informa si el plan incluye la característica.
func (p *Plan) HasFeature(name string) bool {
	for _, f := range p.Features {
		if f == name {
			return true
		}
	}
	return false
}

// Limit devuelve el límite del plan para la clase de recurso (0 = ilimitado).
func (p *Plan) Limit(resource UsageResource) int {
	switch resource {
	case ResourceUsers:
		return p.MaxUsers
	case ResourceProducts:
		return p.MaxProducts
	case ResourceCustomers:
		return p.MaxCustomers
	case ResourceTransactions:
		return p.MaxTransactionsPerMonth
	}
	return 0
}

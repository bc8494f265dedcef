package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// CustomerRepository puerto de persistencia para clientes.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Customer, error)

	// ApplyLoyalty aplica pointsDelta y spentDelta en una sola escritura atómica
	// con clamp en cero (GREATEST). touchVisit actualiza last_visit.
	// Devuelve false si el cliente no existe en el tenant.
	ApplyLoyalty(ctx context.Context, tenantID, customerID string, pointsDelta int64, spentDelta decimal.Decimal, touchVisit bool) (bool, error)
}

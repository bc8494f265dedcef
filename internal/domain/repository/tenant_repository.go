package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// TenantRepository puerto de persistencia para tenants.
type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
	Create(ctx context.Context, tenant *entity.Tenant) error
	// AdjustUsage suma delta (puede ser negativo) al contador del recurso.
	// El contador nunca queda por debajo de cero.
	AdjustUsage(ctx context.Context, tenantID string, resource entity.UsageResource, delta int) error
}

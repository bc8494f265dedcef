package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.TenantRepository = (*TenantRepo)(nil)

// TenantRepo implementación de TenantRepository (usable con pool o tx).
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// GetByID devuelve el tenant o nil si no existe.
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	query := `
		SELECT id, name, status, plan_id, total_users, total_products, total_customers, monthly_transactions, created_at, updated_at
		FROM tenants
		WHERE id = $1`
	var t entity.Tenant
	err := r.q.QueryRow(ctx, query, id).Scan(
		&t.ID, &t.Name, &t.Status, &t.PlanID,
		&t.TotalUsers, &t.TotalProducts, &t.TotalCustomers, &t.MonthlyTransactions,
		&t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select tenant: %w", err)
	}
	return &t, nil
}

// Create persiste un tenant nuevo.
func (r *TenantRepo) Create(ctx context.Context, tenant *entity.Tenant) error {
	if tenant.ID == "" {
		tenant.ID = uuid.New().String()
	}
	query := `
		INSERT INTO tenants (id, name, status, plan_id, total_users, total_products, total_customers, monthly_transactions, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		tenant.ID, tenant.Name, tenant.Status, tenant.PlanID,
		tenant.TotalUsers, tenant.TotalProducts, tenant.TotalCustomers, tenant.MonthlyTransactions,
		tenant.CreatedAt, tenant.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert tenant: %w", err)
	}
	return nil
}

// AdjustUsage suma delta al contador del recurso con clamp en cero (GREATEST):
// un delta negativo nunca deja el contador por debajo de cero.
func (r *TenantRepo) AdjustUsage(ctx context.Context, tenantID string, resource entity.UsageResource, delta int) error {
	column, err := usageColumn(resource)
	if err != nil {
		return err
	}
	query := fmt.Sprintf(`
		UPDATE tenants
		SET %s = GREATEST(%s + $2, 0), updated_at = now()
		WHERE id = $1`, column, column)
	tag, err := r.q.Exec(ctx, query, tenantID, delta)
	if err != nil {
		return fmt.Errorf("adjust usage %s: %w", resource, err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrTenantNotFound
	}
	return nil
}

// usageColumn mapea el recurso a su columna; la lista blanca evita interpolar
// entrada externa en el SQL.
func usageColumn(resource entity.UsageResource) (string, error) {
	switch resource {
	case entity.ResourceUsers:
		return "total_users", nil
	case entity.ResourceProducts:
		return "total_products", nil
	case entity.ResourceCustomers:
		return "total_customers", nil
	case entity.ResourceTransactions:
		return "monthly_transactions", nil
	}
	return "", fmt.Errorf("recurso de uso desconocido: %s", resource)
}

package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementación de CustomerRepository (usable con pool o tx).
type CustomerRepo struct {
	q Querier
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{q: q}
}

const customerColumns = `id, tenant_id, name, email, phone, loyalty_points, total_spent, last_visit, created_at, updated_at`

func scanCustomer(row pgx.Row) (*entity.Customer, error) {
	var c entity.Customer
	var email, phone *string
	err := row.Scan(
		&c.ID, &c.TenantID, &c.Name, &email, &phone,
		&c.LoyaltyPoints, &c.TotalSpent, &c.LastVisit,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if email != nil {
		c.Email = *email
	}
	if phone != nil {
		c.Phone = *phone
	}
	return &c, nil
}

// Create persiste un cliente nuevo.
func (r *CustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	if customer.ID == "" {
		customer.ID = uuid.New().String()
	}
	query := `
		INSERT INTO customers (id, tenant_id, name, email, phone, loyalty_points, total_spent, last_visit, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		customer.ID, customer.TenantID, customer.Name,
		nullIfEmpty(customer.Email), nullIfEmpty(customer.Phone),
		customer.LoyaltyPoints, customer.TotalSpent, customer.LastVisit,
		customer.CreatedAt, customer.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert customer: %w", err)
	}
	return nil
}

// GetByID devuelve el cliente del tenant o nil si no existe.
func (r *CustomerRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND tenant_id = $2`
	c, err := scanCustomer(r.q.QueryRow(ctx, query, id, tenantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select customer: %w", err)
	}
	return c, nil
}

// ListByTenant devuelve los clientes del tenant paginados.
func (r *CustomerRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select customers: %w", err)
	}
	defer rows.Close()

	var customers []*entity.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	return customers, rows.Err()
}

// ApplyLoyalty aplica pointsDelta y spentDelta en una sola escritura atómica.
// GREATEST asegura que ni los puntos ni el acumulado gastado queden negativos
// al reversar una venta. Devuelve false si el cliente no existe en el tenant.
func (r *CustomerRepo) ApplyLoyalty(ctx context.Context, tenantID, customerID string, pointsDelta int64, spentDelta decimal.Decimal, touchVisit bool) (bool, error) {
	query := `
		UPDATE customers
		SET loyalty_points = GREATEST(loyalty_points + $3, 0),
		    total_spent    = GREATEST(total_spent + $4, 0),
		    last_visit     = CASE WHEN $5 THEN now() ELSE last_visit END,
		    updated_at     = now()
		WHERE id = $1 AND tenant_id = $2`
	tag, err := r.q.Exec(ctx, query, customerID, tenantID, pointsDelta, spentDelta, touchVisit)
	if err != nil {
		return false, fmt.Errorf("apply loyalty: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementación de SaleRepository (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

const saleColumns = `id, tenant_id, customer_id, receipt_number, subtotal, tax, discount, total,
	payment_method, amount_paid, change, loyalty_points_earned, loyalty_points_used,
	is_void, void_reason, voided_by, voided_at, notes, created_by, created_at, updated_at`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	var voidReason, notes *string
	err := row.Scan(
		&s.ID, &s.TenantID, &s.CustomerID, &s.ReceiptNumber,
		&s.Subtotal, &s.Tax, &s.Discount, &s.Total,
		&s.PaymentMethod, &s.AmountPaid, &s.Change,
		&s.LoyaltyPointsEarned, &s.LoyaltyPointsUsed,
		&s.IsVoid, &voidReason, &s.VoidedBy, &s.VoidedAt,
		&notes, &s.CreatedBy, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if voidReason != nil {
		s.VoidReason = *voidReason
	}
	if notes != nil {
		s.Notes = *notes
	}
	return &s, nil
}

// Create persiste la venta y sus líneas.
func (r *SaleRepo) Create(ctx context.Context, sale *entity.Sale) error {
	query := `
		INSERT INTO sales (id, tenant_id, customer_id, receipt_number, subtotal, tax, discount, total,
			payment_method, amount_paid, change, loyalty_points_earned, loyalty_points_used,
			is_void, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err := r.q.Exec(ctx, query,
		sale.ID, sale.TenantID, sale.CustomerID, sale.ReceiptNumber,
		sale.Subtotal, sale.Tax, sale.Discount, sale.Total,
		sale.PaymentMethod, sale.AmountPaid, sale.Change,
		sale.LoyaltyPointsEarned, sale.LoyaltyPointsUsed,
		sale.IsVoid, nullIfEmpty(sale.Notes), sale.CreatedBy,
		sale.CreatedAt, sale.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}

	itemQuery := `
		INSERT INTO sale_items (id, sale_id, product_id, product_name, quantity, unit_price, discount, total_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, item := range sale.Items {
		_, err := r.q.Exec(ctx, itemQuery,
			item.ID, item.SaleID, item.ProductID, item.ProductName,
			item.Quantity, item.UnitPrice, item.Discount, item.TotalPrice,
		)
		if err != nil {
			return fmt.Errorf("insert sale item: %w", err)
		}
	}
	return nil
}

// GetByID devuelve la venta con sus líneas; nil si no existe en el tenant.
func (r *SaleRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 AND tenant_id = $2`
	return r.getSale(ctx, query, tenantID, id)
}

// GetByIDForUpdate igual que GetByID pero bloquea la fila de la venta;
// usar dentro de una transacción para serializar anulaciones concurrentes.
func (r *SaleRepo) GetByIDForUpdate(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE id = $1 AND tenant_id = $2 FOR UPDATE`
	return r.getSale(ctx, query, tenantID, id)
}

func (r *SaleRepo) getSale(ctx context.Context, query, tenantID, id string) (*entity.Sale, error) {
	sale, err := scanSale(r.q.QueryRow(ctx, query, id, tenantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select sale: %w", err)
	}
	items, err := r.listItems(ctx, sale.ID)
	if err != nil {
		return nil, err
	}
	sale.Items = items
	return sale, nil
}

func (r *SaleRepo) listItems(ctx context.Context, saleID string) ([]entity.SaleItem, error) {
	query := `
		SELECT id, sale_id, product_id, product_name, quantity, unit_price, discount, total_price
		FROM sale_items
		WHERE sale_id = $1
		ORDER BY product_id`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("select sale items: %w", err)
	}
	defer rows.Close()

	var items []entity.SaleItem
	for rows.Next() {
		var item entity.SaleItem
		err := rows.Scan(
			&item.ID, &item.SaleID, &item.ProductID, &item.ProductName,
			&item.Quantity, &item.UnitPrice, &item.Discount, &item.TotalPrice,
		)
		if err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListByTenant devuelve las ventas del tenant (más recientes primero) con sus líneas.
func (r *SaleRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE tenant_id = $1 ORDER BY created_at DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select sales: %w", err)
	}
	defer rows.Close()

	var sales []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		sales = append(sales, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for _, s := range sales {
		items, err := r.listItems(ctx, s.ID)
		if err != nil {
			return nil, err
		}
		s.Items = items
	}
	return sales, nil
}

// MarkVoid marca la venta como anulada de forma condicional: la condición
// is_void = false va en el WHERE, así una segunda anulación no afecta filas.
// Los metadatos de anulación se escriben una sola vez.
func (r *SaleRepo) MarkVoid(ctx context.Context, tenantID, saleID, reason, voidedBy string, at time.Time) (bool, error) {
	query := `
		UPDATE sales
		SET is_void = true, void_reason = $3, voided_by = $4, voided_at = $5, updated_at = $5
		WHERE id = $1 AND tenant_id = $2 AND is_void = false`
	tag, err := r.q.Exec(ctx, query, saleID, tenantID, reason, voidedBy, at)
	if err != nil {
		return false, fmt.Errorf("mark sale void: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

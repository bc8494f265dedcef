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

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación de ProductRepository (usable con pool o tx).
// Todas las queries filtran por tenant_id: un id de otro tenant se comporta
// como inexistente.
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

const productColumns = `id, tenant_id, sku, name, description, price, cost_price, stock, min_stock, status, created_at, updated_at`

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	err := row.Scan(
		&p.ID, &p.TenantID, &p.SKU, &p.Name, &p.Description,
		&p.Price, &p.CostPrice, &p.Stock, &p.MinStock, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create persiste un producto nuevo.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = uuid.New().String()
	}
	query := `
		INSERT INTO products (id, tenant_id, sku, name, description, price, cost_price, stock, min_stock, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.TenantID, product.SKU, product.Name, product.Description,
		product.Price, product.CostPrice, product.Stock, product.MinStock, product.Status,
		product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID devuelve el producto del tenant o nil si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND tenant_id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, id, tenantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select product: %w", err)
	}
	return p, nil
}

// GetBySKU devuelve el producto por SKU dentro del tenant o nil.
func (r *ProductRepo) GetBySKU(ctx context.Context, tenantID, sku string) (*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE sku = $1 AND tenant_id = $2`
	p, err := scanProduct(r.q.QueryRow(ctx, query, sku, tenantID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select product by sku: %w", err)
	}
	return p, nil
}

// ListByTenant devuelve los productos del tenant paginados.
func (r *ProductRepo) ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE tenant_id = $1 ORDER BY name LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, tenantID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	var products []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, p)
	}
	return products, rows.Err()
}

// ReserveStock descuenta qty de forma condicional y atómica: la condición
// stock >= qty va en el WHERE, así dos cajas concurrentes nunca dejan el
// stock negativo. Devuelve false si ninguna fila cumplió (sin stock,
// producto inactivo o inexistente).
func (r *ProductRepo) ReserveStock(ctx context.Context, tenantID, productID string, qty int64) (bool, error) {
	query := `
		UPDATE products
		SET stock = stock - $3, updated_at = now()
		WHERE id = $1 AND tenant_id = $2 AND status = $4 AND stock >= $3`
	tag, err := r.q.Exec(ctx, query, productID, tenantID, qty, entity.ProductStatusActive)
	if err != nil {
		return false, fmt.Errorf("reserve stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// ReleaseStock repone qty (anulación). Devuelve false si el producto ya no existe.
func (r *ProductRepo) ReleaseStock(ctx context.Context, tenantID, productID string, qty int64) (bool, error) {
	query := `
		UPDATE products
		SET stock = stock + $3, updated_at = now()
		WHERE id = $1 AND tenant_id = $2`
	tag, err := r.q.Exec(ctx, query, productID, tenantID, qty)
	if err != nil {
		return false, fmt.Errorf("release stock: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

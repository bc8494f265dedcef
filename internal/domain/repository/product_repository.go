package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// ProductRepository puerto de persistencia para productos.
// Todas las operaciones están acotadas por tenant: un id de otro tenant se
// comporta como inexistente (aislamiento, nunca fuga).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, tenantID, id string) (*entity.Product, error)
	GetBySKU(ctx context.Context, tenantID, sku string) (*entity.Product, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Product, error)

	// ReserveStock descuenta qty de forma condicional y atómica:
	// UPDATE ... SET stock = stock - qty WHERE ... AND status = 'active' AND stock >= qty.
	// Devuelve false si ninguna fila cumplió la condición (sin stock, inactivo o inexistente);
	// el caller distingue la causa con una lectura posterior.
	ReserveStock(ctx context.Context, tenantID, productID string, qty int64) (bool, error)
	// ReleaseStock repone qty (anulación de venta). Devuelve false si el
	// producto ya no existe.
	ReleaseStock(ctx context.Context, tenantID, productID string, qty int64) (bool, error)
}

package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// SaleRepository puerto de persistencia para ventas.
type SaleRepository interface {
	// Create persiste la venta y sus líneas.
	Create(ctx context.Context, sale *entity.Sale) error
	// GetByID devuelve la venta con sus líneas; nil si no existe en el tenant.
	GetByID(ctx context.Context, tenantID, id string) (*entity.Sale, error)
	// GetByIDForUpdate igual que GetByID pero bloquea la fila (SELECT FOR UPDATE);
	// usar dentro de una transacción.
	GetByIDForUpdate(ctx context.Context, tenantID, id string) (*entity.Sale, error)
	ListByTenant(ctx context.Context, tenantID string, limit, offset int) ([]*entity.Sale, error)

	// MarkVoid marca la venta como anulada de forma condicional (is_void = false).
	// Devuelve false si la venta no existe o ya estaba anulada.
	MarkVoid(ctx context.Context, tenantID, saleID, reason, voidedBy string, at time.Time) (bool, error)
}

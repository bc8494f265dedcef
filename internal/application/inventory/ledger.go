package inventory

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// Ledger aplica las mutaciones de stock de una venta. Opera sobre los
// repositorios que le pasa el caller, de modo que reserva y reposición
// participan en la transacción de la venta (mismo patrón que los movimientos
// de inventario: todo se confirma o nada).
type Ledger struct {
	log *logger.Logger
}

// NewLedger construye el ledger de inventario.
func NewLedger(log *logger.Logger) *Ledger {
	return &Ledger{log: log}
}

// Reserve descuenta qty del stock del producto dentro del tenant y devuelve el
// producto como snapshot (nombre y precio para el recibo).
// El descuento es un update condicional (stock >= qty en la misma escritura),
// nunca read-then-write: dos ventas concurrentes del mismo producto no pueden
// sobrevender.
func (l *Ledger) Reserve(ctx context.Context, products repository.ProductRepository, tenantID, productID string, qty int64) (*entity.Product, error) {
	if qty <= 0 {
		return nil, domain.ErrInvalidInput
	}
	product, err := products.GetByID(ctx, tenantID, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if !product.IsActive() {
		return nil, domain.ErrProductInactive
	}
	reserved, err := products.ReserveStock(ctx, tenantID, productID, qty)
	if err != nil {
		return nil, err
	}
	if !reserved {
		// El producto existe y está activo: la condición que falló es stock >= qty.
		return nil, domain.ErrInsufficientStock
	}
	product.Stock -= qty
	return product, nil
}

// Release repone qty al stock (anulación de venta). Si el producto fue
// eliminado después de la venta, se registra y se continúa: la anulación
// no debe fallar por un producto ausente.
func (l *Ledger) Release(ctx context.Context, products repository.ProductRepository, tenantID, productID string, qty int64) error {
	found, err := products.ReleaseStock(ctx, tenantID, productID, qty)
	if err != nil {
		return err
	}
	if !found {
		l.log.Warn().
			Str("tenant_id", tenantID).
			Str("product_id", productID).
			Int64("qty", qty).
			Msg("producto ausente al reponer stock, se omite")
	}
	return nil
}

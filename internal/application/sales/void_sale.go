package sales

import (
	"context"
	"time"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/application/loyalty"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// VoidSaleUseCase anula una venta completada: repone el stock de cada línea,
// reversa la fidelización y marca la venta como Voided — las compensaciones y
// la marca se confirman juntas o ninguna. Voided es terminal: una segunda
// anulación falla con ErrAlreadyVoided y no ajusta nada dos veces.
type VoidSaleUseCase struct {
	txRunner TxRunner
	ledger   *inventory.Ledger
	accrual  *loyalty.Accrual
	log      *logger.Logger
}

// NewVoidSaleUseCase construye el caso de uso.
func NewVoidSaleUseCase(txRunner TxRunner, ledger *inventory.Ledger, accrual *loyalty.Accrual, log *logger.Logger) *VoidSaleUseCase {
	return &VoidSaleUseCase{txRunner: txRunner, ledger: ledger, accrual: accrual, log: log}
}

// Void ejecuta la anulación. reason es obligatorio; actorID queda registrado
// en los metadatos de anulación (se escriben una sola vez).
func (uc *VoidSaleUseCase) Void(ctx context.Context, tenantID, actorID, saleID, reason string) (*dto.SaleResponse, error) {
	if saleID == "" || reason == "" {
		return nil, domain.ErrInvalidInput
	}

	var resp *dto.SaleResponse
	err := uc.txRunner.RunSale(ctx, func(
		products repository.ProductRepository,
		customers repository.CustomerRepository,
		sales repository.SaleRepository,
		tenants repository.TenantRepository,
	) error {
		// Bloquea la fila de la venta: anulaciones concurrentes de la misma
		// venta se serializan aquí.
		sale, err := sales.GetByIDForUpdate(ctx, tenantID, saleID)
		if err != nil {
			return err
		}
		if sale == nil {
			return domain.ErrSaleNotFound
		}
		if sale.IsVoid {
			return domain.ErrAlreadyVoided
		}

		// Compensaciones: reponer stock y reversar fidelización
		for _, item := range sale.Items {
			if err := uc.ledger.Release(ctx, products, tenantID, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}
		if err := uc.accrual.Reverse(ctx, customers, tenantID, sale.CustomerID, sale.Total, sale.LoyaltyPointsEarned, sale.LoyaltyPointsUsed); err != nil {
			return err
		}

		now := time.Now()
		voided, err := sales.MarkVoid(ctx, tenantID, saleID, reason, actorID, now)
		if err != nil {
			return err
		}
		if !voided {
			// La fila estaba bloqueada, así que solo puede ser una carrera perdida
			return domain.ErrAlreadyVoided
		}

		sale.IsVoid = true
		sale.VoidReason = reason
		sale.VoidedBy = &actorID
		sale.VoidedAt = &now
		sale.UpdatedAt = now
		resp = toSaleResponse(sale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("sale_id", saleID).
		Str("voided_by", actorID).
		Msg("venta anulada")

	return resp, nil
}

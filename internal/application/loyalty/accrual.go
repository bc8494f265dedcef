package loyalty

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// pointsDivisor: un punto por cada 10 unidades de moneda del total.
var pointsDivisor = decimal.NewFromInt(10)

// PointsEarned calcula los puntos ganados por una venta: floor(total / 10).
// Un total negativo o cero no gana puntos.
func PointsEarned(saleTotal decimal.Decimal) int64 {
	if !saleTotal.IsPositive() {
		return 0
	}
	return saleTotal.Div(pointsDivisor).Floor().IntPart()
}

// Accrual aplica la contabilidad de fidelización de un cliente. Igual que el
// ledger de inventario, opera sobre el repositorio que le pasa el caller para
// participar en la transacción de la venta.
type Accrual struct {
	log *logger.Logger
}

// NewAccrual construye el servicio de fidelización.
func NewAccrual(log *logger.Logger) *Accrual {
	return &Accrual{log: log}
}

// Accrue acredita los puntos de una venta completada:
// loyaltyPoints += ganados − usados (clamp en 0), totalSpent += total,
// lastVisit = ahora. Devuelve los puntos ganados para el recibo.
// Cliente ausente (venta de mostrador) es un no-op que devuelve 0.
func (a *Accrual) Accrue(ctx context.Context, customers repository.CustomerRepository, tenantID string, customerID *string, saleTotal decimal.Decimal, pointsUsed int64) (int64, error) {
	if customerID == nil || *customerID == "" {
		return 0, nil
	}
	earned := PointsEarned(saleTotal)
	found, err := customers.ApplyLoyalty(ctx, tenantID, *customerID, earned-pointsUsed, saleTotal, true)
	if err != nil {
		return 0, err
	}
	if !found {
		a.log.Warn().
			Str("tenant_id", tenantID).
			Str("customer_id", *customerID).
			Msg("cliente ausente al acreditar puntos, se omite")
		return 0, nil
	}
	return earned, nil
}

// Reverse es la inversa exacta de Accrue, aplicada al anular una venta:
// loyaltyPoints += usados − ganados (clamp en 0), totalSpent −= total
// (clamp en 0). Cliente ausente es un no-op.
func (a *Accrual) Reverse(ctx context.Context, customers repository.CustomerRepository, tenantID string, customerID *string, saleTotal decimal.Decimal, pointsEarned, pointsUsed int64) error {
	if customerID == nil || *customerID == "" {
		return nil
	}
	found, err := customers.ApplyLoyalty(ctx, tenantID, *customerID, pointsUsed-pointsEarned, saleTotal.Neg(), false)
	if err != nil {
		return err
	}
	if !found {
		a.log.Warn().
			Str("tenant_id", tenantID).
			Str("customer_id", *customerID).
			Msg("cliente ausente al reversar puntos, se omite")
	}
	return nil
}

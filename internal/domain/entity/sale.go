package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago reconocidos.
const (
	PaymentCash     = "cash"
	PaymentCard     = "card"
	PaymentTransfer = "transfer"
	PaymentCredit   = "credit"
)

// ValidPaymentMethod informa si el método de pago es uno de los reconocidos.
func ValidPaymentMethod(m string) bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer, PaymentCredit:
		return true
	}
	return false
}

// Sale representa una venta completada del tenant.
// Ciclo de vida: Draft (en memoria) → Completed (persistida) → Voided (terminal).
// Invariante: Total = Subtotal + Tax − Discount − LoyaltyPointsUsed.
// Una vez IsVoid=true la venta es inmutable; los metadatos de anulación se
// escriben una sola vez.
type Sale struct {
	ID            string
	TenantID      string
	CustomerID    *string // nil = venta de mostrador sin cliente
	ReceiptNumber string
	Items         []SaleItem

	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Discount decimal.Decimal
	Total    decimal.Decimal

	PaymentMethod string
	AmountPaid    decimal.Decimal
	Change        decimal.Decimal

	LoyaltyPointsEarned int64
	LoyaltyPointsUsed   int64

	IsVoid     bool
	VoidReason string
	VoidedBy   *string
	VoidedAt   *time.Time

	Notes     string
	CreatedBy string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SaleItem es una línea de venta con snapshot de nombre y precio del producto
// al momento de la venta (el recibo no cambia si el producto cambia después).
type SaleItem struct {
	ID          string
	SaleID      string
	ProductID   string
	ProductName string
	Quantity    int64
	UnitPrice   decimal.Decimal
	Discount    decimal.Decimal
	TotalPrice  decimal.Decimal
}

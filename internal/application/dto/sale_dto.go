package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SaleItemRequest línea de venta. UnitPrice nil usa el precio vigente del
// producto; cero explícito es una línea de cortesía.
type SaleItemRequest struct {
	ProductID string           `json:"product"`
	Quantity  int64            `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unitPrice,omitempty"`
	Discount  decimal.Decimal  `json:"discount"`
}

// CreateSaleRequest cuerpo de POST /api/sales.
type CreateSaleRequest struct {
	Items             []SaleItemRequest `json:"items"`
	CustomerID        *string           `json:"customer"`
	Tax               decimal.Decimal   `json:"tax"`
	Discount          decimal.Decimal   `json:"discount"`
	PaymentMethod     string            `json:"paymentMethod"`
	AmountPaid        decimal.Decimal   `json:"amountPaid"`
	LoyaltyPointsUsed int64             `json:"loyaltyPointsUsed"`
	Notes             string            `json:"notes"`
}

// VoidSaleRequest cuerpo de PUT /api/sales/:id/void.
type VoidSaleRequest struct {
	Reason string `json:"reason"`
}

// SaleItemResponse línea de venta con snapshot de producto.
type SaleItemResponse struct {
	ProductID   string          `json:"product"`
	ProductName string          `json:"productName"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
	Discount    decimal.Decimal `json:"discount"`
	TotalPrice  decimal.Decimal `json:"totalPrice"`
}

// SaleResponse representación pública de una venta.
type SaleResponse struct {
	ID                  string             `json:"id"`
	ReceiptNumber       string             `json:"receiptNumber"`
	CustomerID          *string            `json:"customer,omitempty"`
	Items               []SaleItemResponse `json:"items"`
	Subtotal            decimal.Decimal    `json:"subtotal"`
	Tax                 decimal.Decimal    `json:"tax"`
	Discount            decimal.Decimal    `json:"discount"`
	Total               decimal.Decimal    `json:"total"`
	PaymentMethod       string             `json:"paymentMethod"`
	AmountPaid          decimal.Decimal    `json:"amountPaid"`
	Change              decimal.Decimal    `json:"change"`
	LoyaltyPointsEarned int64              `json:"loyaltyPointsEarned"`
	LoyaltyPointsUsed   int64              `json:"loyaltyPointsUsed"`
	IsVoid              bool               `json:"isVoid"`
	VoidReason          string             `json:"voidReason,omitempty"`
	VoidedBy            *string            `json:"voidedBy,omitempty"`
	VoidedAt            *time.Time         `json:"voidedAt,omitempty"`
	Notes               string             `json:"notes,omitempty"`
	CreatedBy           string             `json:"createdBy"`
	CreatedAt           time.Time          `json:"createdAt"`
}

// SaleListResponse listado paginado de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados válidos para Product.
const (
	ProductStatusActive   = "active"
	ProductStatusInactive = "inactive"
)

// Product representa un producto vendible del tenant.
// SKU es único por tenant (no global). Stock nunca baja de cero: el descuento
// se hace con un update condicional (stock >= cantidad) en la misma escritura.
type Product struct {
	ID          string
	TenantID    string
	SKU         string
	Name        string
	Description string
	Price       decimal.Decimal // precio de venta
	CostPrice   decimal.Decimal // costo de adquisición (>= 0)
	Stock       int64
	MinStock    int64
	Status      string // active, inactive
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsActive informa si el producto puede venderse.
func (p *Product) IsActive() bool {
	return p.Status == ProductStatusActive
}

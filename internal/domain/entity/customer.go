package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Customer representa un cliente del tenant con saldo de fidelización.
// LoyaltyPoints y TotalSpent nunca bajan de cero: las reversas por anulación
// se aplican con clamp en la misma escritura atómica.
type Customer struct {
	ID            string
	TenantID      string
	Name          string
	Email         string
	Phone         string
	LoyaltyPoints int64
	TotalSpent    decimal.Decimal
	LastVisit     *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

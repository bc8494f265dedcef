package entity

import "time"

// Estados válidos para Tenant.
const (
	TenantStatusActive    = "active"
	TenantStatusTrial     = "trial"
	TenantStatusSuspended = "suspended"
	TenantStatusCancelled = "cancelled"
)

// Tenant representa una tienda/negocio del sistema (unidad de aislamiento de datos).
// Los contadores de uso son autoritativos: los ajusta la operación que crea el recurso
// (ventas dentro de su misma transacción), nunca se recalculan escaneando tablas.
type Tenant struct {
	ID     string
	Name   string
	Status string // active, trial, suspended, cancelled
	PlanID string

	// Contadores de uso comparados contra los límites del plan antes de crear recursos.
	TotalUsers          int
	TotalProducts       int
	TotalCustomers      int
	MonthlyTransactions int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsOperational informa si el tenant puede atender peticiones (active o trial).
func (t *Tenant) IsOperational() bool {
	return t.Status == TenantStatusActive || t.Status == TenantStatusTrial
}

// UsageResource clases de recurso limitadas por plan.
type UsageResource string

const (
	ResourceUsers        UsageResource = "users"
	ResourceProducts     UsageResource = "products"
	ResourceCustomers    UsageResource = "customers"
	ResourceTransactions UsageResource = "transactions"
)

// Usage devuelve el contador actual del tenant para la clase de recurso.
func (t *Tenant) Usage(resource UsageResource) int {
	switch resource {
	case ResourceUsers:
		return t.TotalUsers
	case ResourceProducts:
		return t.TotalProducts
	case ResourceCustomers:
		return t.TotalCustomers
	case ResourceTransactions:
		return t.MonthlyTransactions
	}
	return 0
}

package entity

import "time"

// Roles globales del sistema. Superadmin salta todas las verificaciones de tenant;
// el bypass se evalúa en un único punto (middleware de acceso).
const (
	GlobalRoleUser       = "user"
	GlobalRoleSuperadmin = "superadmin"
)

// Roles efectivos dentro de un tenant (por membresía).
const (
	TenantRoleOwner   = "owner"
	TenantRoleAdmin   = "admin"
	TenantRoleManager = "manager"
	TenantRoleCashier = "cashier"
)

// ValidTenantRole informa si el rol es uno de los roles de membresía reconocidos.
func ValidTenantRole(role string) bool {
	switch role {
	case TenantRoleOwner, TenantRoleAdmin, TenantRoleManager, TenantRoleCashier:
		return true
	}
	return false
}

// User representa un usuario del sistema. Un usuario puede pertenecer a varios
// tenants con roles distintos (ver TenantMembership); el rol efectivo para un
// tenant se define únicamente por la membresía, salvo el bypass superadmin.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	GlobalRole   string // user, superadmin
	Status       string // active, inactive, suspended

	// CurrentTenantID es el tenant "actual" del usuario (se emite en el JWT).
	CurrentTenantID string
	// LegacyTenantID campo heredado de la época mono-tenant; último recurso
	// en la resolución de tenant.
	LegacyTenantID string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsSuperadmin informa si el usuario tiene el rol global de bypass.
func (u *User) IsSuperadmin() bool {
	return u.GlobalRole == GlobalRoleSuperadmin
}

// TenantMembership asocia un usuario con un tenant y su rol dentro de él.
type TenantMembership struct {
	UserID   string
	TenantID string
	Role     string // owner, admin, manager, cashier
	JoinedAt time.Time
}

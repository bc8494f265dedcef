package dto

import "time"

// RegisterRequest alta de usuario. TenantID y TenantRole son opcionales:
// si vienen, se crea la membresía inicial con ese rol.
type RegisterRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	Name       string `json:"name"`
	TenantID   string `json:"tenantId"`
	TenantRole string `json:"tenantRole"`
}

// LoginRequest credenciales de acceso.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse token emitido más el usuario autenticado.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

// SwitchTenantRequest cambia el tenant actual del token.
type SwitchTenantRequest struct {
	TenantID string `json:"tenantId"`
}

// UserResponse representación pública de un usuario.
type UserResponse struct {
	ID              string    `json:"id"`
	Email           string    `json:"email"`
	Name            string    `json:"name"`
	GlobalRole      string    `json:"globalRole"`
	Status          string    `json:"status"`
	CurrentTenantID string    `json:"currentTenantId,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// MembershipResponse membresía de un usuario en un tenant.
type MembershipResponse struct {
	TenantID string    `json:"tenantId"`
	Role     string    `json:"role"`
	JoinedAt time.Time `json:"joinedAt"`
}

// MeResponse usuario autenticado con sus membresías.
type MeResponse struct {
	User        UserResponse         `json:"user"`
	Memberships []MembershipResponse `json:"memberships"`
}

package repository

import (
	"context"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// UserRepository puerto de persistencia para usuarios y sus membresías.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Create(ctx context.Context, user *entity.User) error
	// UpdateCurrentTenant persiste el tenant actual del usuario.
	UpdateCurrentTenant(ctx context.Context, userID, tenantID string) error

	// GetMembership devuelve nil (sin error) si el usuario no pertenece al tenant.
	GetMembership(ctx context.Context, userID, tenantID string) (*entity.TenantMembership, error)
	ListMemberships(ctx context.Context, userID string) ([]*entity.TenantMembership, error)
	AddMembership(ctx context.Context, m *entity.TenantMembership) error
}

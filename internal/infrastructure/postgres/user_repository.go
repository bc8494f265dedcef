package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación de UserRepository (usable con pool o tx).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, email, password_hash, name, global_role, status, current_tenant_id, legacy_tenant_id, created_at, updated_at`

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var currentTenant, legacyTenant *string
	err := row.Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.GlobalRole, &u.Status,
		&currentTenant, &legacyTenant, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if currentTenant != nil {
		u.CurrentTenantID = *currentTenant
	}
	if legacyTenant != nil {
		u.LegacyTenantID = *legacyTenant
	}
	return &u, nil
}

// GetByID devuelve el usuario o nil si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select user: %w", err)
	}
	return u, nil
}

// FindByEmail devuelve el usuario por email (único global) o nil.
func (r *UserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(r.q.QueryRow(ctx, query, email))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return u, nil
}

// Create persiste un usuario nuevo.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	query := `
		INSERT INTO users (id, email, password_hash, name, global_role, status, current_tenant_id, legacy_tenant_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		user.ID, user.Email, user.PasswordHash, user.Name, user.GlobalRole, user.Status,
		nullIfEmpty(user.CurrentTenantID), nullIfEmpty(user.LegacyTenantID),
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// UpdateCurrentTenant persiste el tenant actual del usuario.
func (r *UserRepo) UpdateCurrentTenant(ctx context.Context, userID, tenantID string) error {
	query := `UPDATE users SET current_tenant_id = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, userID, nullIfEmpty(tenantID))
	if err != nil {
		return fmt.Errorf("update current tenant: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetMembership devuelve la membresía del usuario en el tenant, o nil sin error.
func (r *UserRepo) GetMembership(ctx context.Context, userID, tenantID string) (*entity.TenantMembership, error) {
	query := `
		SELECT user_id, tenant_id, role, joined_at
		FROM tenant_memberships
		WHERE user_id = $1 AND tenant_id = $2`
	var m entity.TenantMembership
	err := r.q.QueryRow(ctx, query, userID, tenantID).Scan(&m.UserID, &m.TenantID, &m.Role, &m.JoinedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select membership: %w", err)
	}
	return &m, nil
}

// ListMemberships devuelve todas las membresías del usuario.
func (r *UserRepo) ListMemberships(ctx context.Context, userID string) ([]*entity.TenantMembership, error) {
	query := `
		SELECT user_id, tenant_id, role, joined_at
		FROM tenant_memberships
		WHERE user_id = $1
		ORDER BY joined_at`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("select memberships: %w", err)
	}
	defer rows.Close()

	var memberships []*entity.TenantMembership
	for rows.Next() {
		var m entity.TenantMembership
		if err := rows.Scan(&m.UserID, &m.TenantID, &m.Role, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scan membership: %w", err)
		}
		memberships = append(memberships, &m)
	}
	return memberships, rows.Err()
}

// AddMembership persiste una membresía nueva.
func (r *UserRepo) AddMembership(ctx context.Context, m *entity.TenantMembership) error {
	query := `
		INSERT INTO tenant_memberships (user_id, tenant_id, role, joined_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, m.UserID, m.TenantID, m.Role, m.JoinedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

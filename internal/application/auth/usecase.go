package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/pkg/config"
	"github.com/jhoicas/Ventas-api/pkg/jwt"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// UseCase gestiona registro, autenticación y cambio de tenant actual.
type UseCase struct {
	userRepo   repository.UserRepository
	tenantRepo repository.TenantRepository
	jwtCfg     config.JWTConfig
	log        *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(userRepo repository.UserRepository, tenantRepo repository.TenantRepository, jwtCfg config.JWTConfig, log *logger.Logger) *UseCase {
	return &UseCase{userRepo: userRepo, tenantRepo: tenantRepo, jwtCfg: jwtCfg, log: log}
}

// Register da de alta un usuario. El email es único a nivel global.
// Si la petición trae TenantID se crea la membresía inicial (rol cashier por
// defecto).
func (uc *UseCase) Register(ctx context.Context, in dto.RegisterRequest) (*dto.UserResponse, error) {
	if in.Email == "" || in.Password == "" || in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	if len(in.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	user := &entity.User{
		ID:              uuid.New().String(),
		Email:           in.Email,
		PasswordHash:    string(hash),
		Name:            in.Name,
		GlobalRole:      entity.GlobalRoleUser,
		Status:          "active",
		CurrentTenantID: in.TenantID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if err := uc.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}

	if in.TenantID != "" {
		role := in.TenantRole
		if role == "" {
			role = entity.TenantRoleCashier
		}
		if !entity.ValidTenantRole(role) {
			return nil, domain.ErrInvalidInput
		}
		m := &entity.TenantMembership{
			UserID:   user.ID,
			TenantID: in.TenantID,
			Role:     role,
			JoinedAt: now,
		}
		if err := uc.userRepo.AddMembership(ctx, m); err != nil {
			return nil, err
		}
		// La membresía nueva consume cupo de usuarios del tenant
		if err := uc.tenantRepo.AdjustUsage(ctx, in.TenantID, entity.ResourceUsers, 1); err != nil {
			return nil, err
		}
	}

	uc.log.Info().Str("user_id", user.ID).Str("email", user.Email).Msg("usuario registrado")
	return toUserResponse(user), nil
}

// Login verifica credenciales y emite un token con el tenant actual del
// usuario (CurrentTenantID, o el campo heredado si no hay).
func (uc *UseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if in.Email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.FindByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if user.Status != "active" {
		return nil, domain.ErrForbidden
	}

	tenantID := user.CurrentTenantID
	if tenantID == "" {
		tenantID = user.LegacyTenantID
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, tenantID, user.GlobalRole, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("user_id", user.ID).Msg("login exitoso")
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// SwitchTenant verifica la membresía del usuario en el tenant destino
// (superadmin salta la verificación) y reemite el token con ese tenant
// como actual.
func (uc *UseCase) SwitchTenant(ctx context.Context, userID, tenantID string) (*dto.LoginResponse, error) {
	if tenantID == "" {
		return nil, domain.ErrTenantRequired
	}

	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if !user.IsSuperadmin() {
		membership, err := uc.userRepo.GetMembership(ctx, userID, tenantID)
		if err != nil {
			return nil, err
		}
		if membership == nil {
			return nil, domain.ErrTenantAccessDenied
		}
	}

	// Persistir el cambio: el próximo login debe emitir este tenant
	if err := uc.userRepo.UpdateCurrentTenant(ctx, user.ID, tenantID); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, tenantID, user.GlobalRole, uc.jwtCfg.Issuer, uc.jwtCfg.Expiration)
	if err != nil {
		return nil, err
	}

	user.CurrentTenantID = tenantID
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// Me devuelve el usuario autenticado con sus membresías.
func (uc *UseCase) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	memberships, err := uc.userRepo.ListMemberships(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.MeResponse{
		User:        *toUserResponse(user),
		Memberships: make([]dto.MembershipResponse, 0, len(memberships)),
	}
	for _, m := range memberships {
		resp.Memberships = append(resp.Memberships, dto.MembershipResponse{
			TenantID: m.TenantID,
			Role:     m.Role,
			JoinedAt: m.JoinedAt,
		})
	}
	return resp, nil
}

func toUserResponse(u *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:              u.ID,
		Email:           u.Email,
		Name:            u.Name,
		GlobalRole:      u.GlobalRole,
		Status:          u.Status,
		CurrentTenantID: u.CurrentTenantID,
		CreatedAt:       u.CreatedAt,
		UpdatedAt:       u.UpdatedAt,
	}
}

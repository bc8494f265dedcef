package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// CustomerUseCase gestiona los clientes de un tenant.
type CustomerUseCase struct {
	customerRepo repository.CustomerRepository
	tenantRepo   repository.TenantRepository
	log          *logger.Logger
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(customerRepo repository.CustomerRepository, tenantRepo repository.TenantRepository, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{customerRepo: customerRepo, tenantRepo: tenantRepo, log: log}
}

// Create da de alta un cliente con cero puntos de fidelización.
func (uc *CustomerUseCase) Create(ctx context.Context, tenantID string, in dto.CreateCustomerRequest) (*dto.CustomerResponse, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	customer := &entity.Customer{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		Name:          in.Name,
		Email:         in.Email,
		Phone:         in.Phone,
		LoyaltyPoints: 0,
		TotalSpent:    decimal.Zero,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.customerRepo.Create(ctx, customer); err != nil {
		return nil, err
	}
	if err := uc.tenantRepo.AdjustUsage(ctx, tenantID, entity.ResourceCustomers, 1); err != nil {
		return nil, err
	}

	uc.log.Info().Str("tenant_id", tenantID).Str("customer_id", customer.ID).Msg("cliente creado")
	return toCustomerResponse(customer), nil
}

// Get devuelve un cliente del tenant.
func (uc *CustomerUseCase) Get(ctx context.Context, tenantID, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return toCustomerResponse(customer), nil
}

// List devuelve los clientes del tenant paginados.
func (uc *CustomerUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) (*dto.CustomerListResponse, error) {
	page.DefaultPage()
	customers, err := uc.customerRepo.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.CustomerListResponse{
		Items: make([]dto.CustomerResponse, 0, len(customers)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, c := range customers {
		resp.Items = append(resp.Items, *toCustomerResponse(c))
	}
	return resp, nil
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:            c.ID,
		Name:          c.Name,
		Email:         c.Email,
		Phone:         c.Phone,
		LoyaltyPoints: c.LoyaltyPoints,
		TotalSpent:    c.TotalSpent,
		LastVisit:     c.LastVisit,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

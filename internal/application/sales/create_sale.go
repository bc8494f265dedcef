package sales

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/application/inventory"
	"github.com/jhoicas/Ventas-api/internal/application/loyalty"
	"github.com/jhoicas/Ventas-api/internal/domain"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
	"github.com/jhoicas/Ventas-api/pkg/logger"
)

// CreateSaleUseCase crea una venta: valida, reserva stock por línea, acredita
// fidelización y persiste — todo dentro de UNA transacción. Si cualquier línea
// falla (sin stock, producto inactivo) la transacción completa se revierte y
// ninguna reserva queda aplicada.
type CreateSaleUseCase struct {
	txRunner     TxRunner
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	ledger       *inventory.Ledger
	accrual      *loyalty.Accrual
	log          *logger.Logger
}

// NewCreateSaleUseCase construye el caso de uso.
func NewCreateSaleUseCase(
	txRunner TxRunner,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	ledger *inventory.Ledger,
	accrual *loyalty.Accrual,
	log *logger.Logger,
) *CreateSaleUseCase {
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		ledger:       ledger,
		accrual:      accrual,
		log:          log,
	}
}

// Create valida la petición y ejecuta la transacción de venta.
// Estado resultante: Completed (persistida, isVoid=false).
func (uc *CreateSaleUseCase) Create(ctx context.Context, tenantID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateCreate(in); err != nil {
		return nil, err
	}

	// Validar cliente fuera de la tx (solo lectura)
	if in.CustomerID != nil && *in.CustomerID != "" {
		customer, err := uc.customerRepo.GetByID(ctx, tenantID, *in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
	} else if in.LoyaltyPointsUsed > 0 {
		// No se pueden redimir puntos sin cliente
		return nil, domain.ErrInvalidInput
	}

	// Orden canónico por producto: las reservas de dos ventas concurrentes
	// toman los locks en el mismo orden y no se bloquean entre sí.
	items := make([]dto.SaleItemRequest, len(in.Items))
	copy(items, in.Items)
	sort.Slice(items, func(i, j int) bool { return items[i].ProductID < items[j].ProductID })

	now := time.Now()
	sale := &entity.Sale{
		ID:                uuid.New().String(),
		TenantID:          tenantID,
		CustomerID:        normalizeCustomerID(in.CustomerID),
		ReceiptNumber:     receiptNumber(now),
		Tax:               in.Tax,
		Discount:          in.Discount,
		PaymentMethod:     in.PaymentMethod,
		AmountPaid:        in.AmountPaid,
		LoyaltyPointsUsed: in.LoyaltyPointsUsed,
		Notes:             in.Notes,
		CreatedBy:         userID,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err := uc.txRunner.RunSale(ctx, func(
		products repository.ProductRepository,
		customers repository.CustomerRepository,
		sales repository.SaleRepository,
		tenants repository.TenantRepository,
	) error {
		// 1) Reservar stock por línea; cualquier fallo revierte todo
		subtotal := decimal.Zero
		for _, item := range items {
			product, err := uc.ledger.Reserve(ctx, products, tenantID, item.ProductID, item.Quantity)
			if err != nil {
				return err
			}
			// nil = precio vigente del catálogo; cero explícito = línea de cortesía
			unitPrice := product.Price
			if item.UnitPrice != nil {
				unitPrice = *item.UnitPrice
			}
			lineTotal := unitPrice.Mul(decimal.NewFromInt(item.Quantity)).Sub(item.Discount)
			if lineTotal.IsNegative() {
				return domain.ErrInvalidAmount
			}
			subtotal = subtotal.Add(lineTotal)
			sale.Items = append(sale.Items, entity.SaleItem{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    item.Quantity,
				UnitPrice:   unitPrice,
				Discount:    item.Discount,
				TotalPrice:  lineTotal,
			})
		}

		// 2) Totales: total = subtotal + tax − discount − puntos usados
		sale.Subtotal = subtotal
		sale.Total = subtotal.Add(sale.Tax).Sub(sale.Discount).Sub(decimal.NewFromInt(sale.LoyaltyPointsUsed))
		if sale.Total.IsNegative() {
			return domain.ErrInvalidAmount
		}
		sale.Change = decimal.Max(decimal.Zero, sale.AmountPaid.Sub(sale.Total))

		// 3) Fidelización (no-op sin cliente)
		earned, err := uc.accrual.Accrue(ctx, customers, tenantID, sale.CustomerID, sale.Total, sale.LoyaltyPointsUsed)
		if err != nil {
			return err
		}
		sale.LoyaltyPointsEarned = earned

		// 4) Persistir venta Completed
		if err := sales.Create(ctx, sale); err != nil {
			return err
		}

		// 5) Contador mensual de transacciones, en la misma tx que la venta
		return tenants.AdjustUsage(ctx, tenantID, entity.ResourceTransactions, 1)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("tenant_id", tenantID).
		Str("sale_id", sale.ID).
		Str("receipt", sale.ReceiptNumber).
		Msg("venta creada")

	return toSaleResponse(sale), nil
}

// Get devuelve una venta del tenant con sus líneas.
func (uc *CreateSaleUseCase) Get(ctx context.Context, tenantID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrSaleNotFound
	}
	return toSaleResponse(sale), nil
}

// List devuelve las ventas del tenant paginadas.
func (uc *CreateSaleUseCase) List(ctx context.Context, tenantID string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	sales, err := uc.saleRepo.ListByTenant(ctx, tenantID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	resp := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(sales)),
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}
	for _, s := range sales {
		resp.Items = append(resp.Items, *toSaleResponse(s))
	}
	return resp, nil
}

func validateCreate(in dto.CreateSaleRequest) error {
	if len(in.Items) == 0 {
		return domain.ErrInvalidInput
	}
	for _, item := range in.Items {
		if item.ProductID == "" || item.Quantity < 1 {
			return domain.ErrInvalidInput
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return domain.ErrInvalidAmount
		}
		if item.Discount.IsNegative() {
			return domain.ErrInvalidAmount
		}
	}
	if !entity.ValidPaymentMethod(in.PaymentMethod) {
		return domain.ErrInvalidPaymentMethod
	}
	if in.AmountPaid.IsNegative() || in.Tax.IsNegative() || in.Discount.IsNegative() || in.LoyaltyPointsUsed < 0 {
		return domain.ErrInvalidAmount
	}
	return nil
}

func normalizeCustomerID(id *string) *string {
	if id == nil || *id == "" {
		return nil
	}
	return id
}

// receiptNumber genera un consecutivo único por proceso: POS-<unix>-<sufijo>.
// La unicidad dentro del tenant la respalda el índice UNIQUE (tenant_id, receipt_number).
func receiptNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:6])
	return fmt.Sprintf("POS-%d-%s", now.Unix(), suffix)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:                  s.ID,
		ReceiptNumber:       s.ReceiptNumber,
		CustomerID:          s.CustomerID,
		Items:               make([]dto.SaleItemResponse, 0, len(s.Items)),
		Subtotal:            s.Subtotal,
		Tax:                 s.Tax,
		Discount:            s.Discount,
		Total:               s.Total,
		PaymentMethod:       s.PaymentMethod,
		AmountPaid:          s.AmountPaid,
		Change:              s.Change,
		LoyaltyPointsEarned: s.LoyaltyPointsEarned,
		LoyaltyPointsUsed:   s.LoyaltyPointsUsed,
		IsVoid:              s.IsVoid,
		VoidReason:          s.VoidReason,
		VoidedBy:            s.VoidedBy,
		VoidedAt:            s.VoidedAt,
		Notes:               s.Notes,
		CreatedBy:           s.CreatedBy,
		CreatedAt:           s.CreatedAt,
	}
	for _, item := range s.Items {
		resp.Items = append(resp.Items, dto.SaleItemResponse{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			Discount:    item.Discount,
			TotalPrice:  item.TotalPrice,
		})
	}
	return resp
}

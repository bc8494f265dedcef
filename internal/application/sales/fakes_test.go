package sales_test

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Ventas-api/internal/domain/entity"
	"github.com/jhoicas/Ventas-api/internal/domain/repository"
)

// memStore estado compartido en memoria para los fakes; el fakeTxRunner toma
// un snapshot antes del callback y lo restaura si falla, igual que el rollback
// de una transacción real.
type memStore struct {
	tenants   map[string]*entity.Tenant
	products  map[string]*entity.Product
	customers map[string]*entity.Customer
	sales     map[string]*entity.Sale
}

func newMemStore() *memStore {
	return &memStore{
		tenants:   make(map[string]*entity.Tenant),
		products:  make(map[string]*entity.Product),
		customers: make(map[string]*entity.Customer),
		sales:     make(map[string]*entity.Sale),
	}
}

func (s *memStore) snapshot() *memStore {
	c := newMemStore()
	for k, v := range s.tenants {
		cp := *v
		c.tenants[k] = &cp
	}
	for k, v := range s.products {
		cp := *v
		c.products[k] = &cp
	}
	for k, v := range s.customers {
		cp := *v
		c.customers[k] = &cp
	}
	for k, v := range s.sales {
		cp := *v
		cp.Items = append([]entity.SaleItem(nil), v.Items...)
		c.sales[k] = &cp
	}
	return c
}

func (s *memStore) restore(snap *memStore) {
	s.tenants = snap.tenants
	s.products = snap.products
	s.customers = snap.customers
	s.sales = snap.sales
}

// ── Repos en memoria ─────────────────────────────────────────────────────────

type memProductRepo struct{ s *memStore }

var _ repository.ProductRepository = (*memProductRepo)(nil)

func (r *memProductRepo) Create(_ context.Context, p *entity.Product) error {
	cp := *p
	r.s.products[p.ID] = &cp
	return nil
}

func (r *memProductRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Product, error) {
	p, ok := r.s.products[id]
	if !ok || p.TenantID != tenantID {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *memProductRepo) GetBySKU(_ context.Context, tenantID, sku string) (*entity.Product, error) {
	for _, p := range r.s.products {
		if p.TenantID == tenantID && p.SKU == sku {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *memProductRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Product, error) {
	var out []*entity.Product
	for _, p := range r.s.products {
		if p.TenantID == tenantID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memProductRepo) ReserveStock(_ context.Context, tenantID, productID string, qty int64) (bool, error) {
	p, ok := r.s.products[productID]
	if !ok || p.TenantID != tenantID || p.Status != entity.ProductStatusActive || p.Stock < qty {
		return false, nil
	}
	p.Stock -= qty
	return true, nil
}

func (r *memProductRepo) ReleaseStock(_ context.Context, tenantID, productID string, qty int64) (bool, error) {
	p, ok := r.s.products[productID]
	if !ok || p.TenantID != tenantID {
		return false, nil
	}
	p.Stock += qty
	return true, nil
}

type memCustomerRepo struct{ s *memStore }

var _ repository.CustomerRepository = (*memCustomerRepo)(nil)

func (r *memCustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	cp := *c
	r.s.customers[c.ID] = &cp
	return nil
}

func (r *memCustomerRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Customer, error) {
	c, ok := r.s.customers[id]
	if !ok || c.TenantID != tenantID {
		return nil, nil
	}
	cp := *c
	return &cp, nil
}

func (r *memCustomerRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	for _, c := range r.s.customers {
		if c.TenantID == tenantID {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memCustomerRepo) ApplyLoyalty(_ context.Context, tenantID, customerID string, pointsDelta int64, spentDelta decimal.Decimal, touchVisit bool) (bool, error) {
	c, ok := r.s.customers[customerID]
	if !ok || c.TenantID != tenantID {
		return false, nil
	}
	c.LoyaltyPoints += pointsDelta
	if c.LoyaltyPoints < 0 {
		c.LoyaltyPoints = 0
	}
	c.TotalSpent = c.TotalSpent.Add(spentDelta)
	if c.TotalSpent.IsNegative() {
		c.TotalSpent = decimal.Zero
	}
	if touchVisit {
		now := time.Now()
		c.LastVisit = &now
	}
	return true, nil
}

type memSaleRepo struct{ s *memStore }

var _ repository.SaleRepository = (*memSaleRepo)(nil)

func (r *memSaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	cp := *sale
	cp.Items = append([]entity.SaleItem(nil), sale.Items...)
	r.s.sales[sale.ID] = &cp
	return nil
}

func (r *memSaleRepo) GetByID(_ context.Context, tenantID, id string) (*entity.Sale, error) {
	sale, ok := r.s.sales[id]
	if !ok || sale.TenantID != tenantID {
		return nil, nil
	}
	cp := *sale
	cp.Items = append([]entity.SaleItem(nil), sale.Items...)
	return &cp, nil
}

func (r *memSaleRepo) GetByIDForUpdate(ctx context.Context, tenantID, id string) (*entity.Sale, error) {
	return r.GetByID(ctx, tenantID, id)
}

func (r *memSaleRepo) ListByTenant(_ context.Context, tenantID string, _, _ int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	for _, sale := range r.s.sales {
		if sale.TenantID == tenantID {
			cp := *sale
			cp.Items = append([]entity.SaleItem(nil), sale.Items...)
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *memSaleRepo) MarkVoid(_ context.Context, tenantID, saleID, reason, voidedBy string, at time.Time) (bool, error) {
	sale, ok := r.s.sales[saleID]
	if !ok || sale.TenantID != tenantID || sale.IsVoid {
		return false, nil
	}
	sale.IsVoid = true
	sale.VoidReason = reason
	sale.VoidedBy = &voidedBy
	sale.VoidedAt = &at
	return true, nil
}

type memTenantRepo struct{ s *memStore }

var _ repository.TenantRepository = (*memTenantRepo)(nil)

func (r *memTenantRepo) GetByID(_ context.Context, id string) (*entity.Tenant, error) {
	t, ok := r.s.tenants[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (r *memTenantRepo) Create(_ context.Context, t *entity.Tenant) error {
	cp := *t
	r.s.tenants[t.ID] = &cp
	return nil
}

func (r *memTenantRepo) AdjustUsage(_ context.Context, tenantID string, resource entity.UsageResource, delta int) error {
	t, ok := r.s.tenants[tenantID]
	if !ok {
		return errors.New("tenant no encontrado")
	}
	clamp := func(v int) int {
		if v < 0 {
			return 0
		}
		return v
	}
	switch resource {
	case entity.ResourceUsers:
		t.TotalUsers = clamp(t.TotalUsers + delta)
	case entity.ResourceProducts:
		t.TotalProducts = clamp(t.TotalProducts + delta)
	case entity.ResourceCustomers:
		t.TotalCustomers = clamp(t.TotalCustomers + delta)
	case entity.ResourceTransactions:
		t.MonthlyTransactions = clamp(t.MonthlyTransactions + delta)
	}
	return nil
}

// fakeTxRunner simula la atomicidad de la transacción: snapshot antes del
// callback, restore si el callback devuelve error.
type fakeTxRunner struct{ s *memStore }

func (r *fakeTxRunner) RunSale(_ context.Context, fn func(
	products repository.ProductRepository,
	customers repository.CustomerRepository,
	sales repository.SaleRepository,
	tenants repository.TenantRepository,
) error) error {
	snap := r.s.snapshot()
	err := fn(&memProductRepo{r.s}, &memCustomerRepo{r.s}, &memSaleRepo{r.s}, &memTenantRepo{r.s})
	if err != nil {
		r.s.restore(snap)
		return err
	}
	return nil
}

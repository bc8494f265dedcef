package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Ventas-api/internal/application/dto"
	"github.com/jhoicas/Ventas-api/internal/domain"
)

// Anulación: repone el stock, marca la venta y registra los metadatos.
func TestVoidSale_ReponeStockYMarca(t *testing.T) {
	s, createUC, voidUC := buildFixture()
	ctx := context.Background()

	created, err := createUC.Create(ctx, testTenantID, testUserID, saleRequest(
		dto.SaleItemRequest{ProductID: testProductID, Quantity: 3},
	))
	require.NoError(t, err)
	require.EqualValues(t, 7, s.products[testProductID].Stock)

	voided, err := voidUC.Void(ctx, testTenantID, testUserID, created.ID, "cliente se arrepintió")
	require.NoError(t, err)

	assert.True(t, voided.IsVoid)
	assert.Equal(t, "cliente se arrepintió", voided.VoidReason)
	require.NotNil(t, voided.VoidedBy)
	assert.Equal(t, testUserID, *voided.VoidedBy)
	assert.NotNil(t, voided.VoidedAt)

	assert.EqualValues(t, 10, s.products[testProductID].Stock, "stock repuesto 7→10")
	assert.True(t, s.sales[created.ID].IsVoid)
}

// Voided es terminal: la segunda anulación falla y no repone stock dos veces.
func TestVoidSale_SegundaAnulacionFalla(t *testing.T) {
	s, createUC, voidUC := buildFixture()
	ctx := context.Background()

	created, err := createUC.Create(ctx, testTenantID, testUserID, saleRequest(
		dto.SaleItemRequest{ProductID: testProductID, Quantity: 2},
	))
	require.NoError(t, err)

	_, err = voidUC.Void(ctx, testTenantID, testUserID, created.ID, "error de caja")
	require.NoError(t, err)
	require.EqualValues(t, 10, s.products[testProductID].Stock)

	_, err = voidUC.Void(ctx, testTenantID, testUserID, created.ID, "otra vez")
	assert.ErrorIs(t, err, domain.ErrAlreadyVoided)
	assert.EqualValues(t, 10, s.products[testProductID].Stock, "sin doble reposición")
	assert.Equal(t, "error de caja", s.sales[created.ID].VoidReason, "los metadatos no se reescriben")
}

// Ida y vuelta de fidelización: crear y anular deja al cliente como estaba
// (puntos y gasto acumulado).
func TestVoidSale_ReversaFidelizacion(t *testing.T) {
	s, createUC, voidUC := buildFixture()
	ctx := context.Background()
	customerID := testCustomerID

	in := saleRequest(dto.SaleItemRequest{ProductID: testProductID, Quantity: 2})
	in.CustomerID = &customerID
	created, err := createUC.Create(ctx, testTenantID, testUserID, in)
	require.NoError(t, err)
	require.EqualValues(t, 9, s.customers[testCustomerID].LoyaltyPoints)

	_, err = voidUC.Void(ctx, testTenantID, testUserID, created.ID, "devolución completa")
	require.NoError(t, err)

	c := s.customers[testCustomerID]
	assert.EqualValues(t, 5, c.LoyaltyPoints, "puntos de vuelta al valor original")
	assert.True(t, decimal.NewFromInt(100).Equal(c.TotalSpent), "gasto acumulado restaurado")
}

// La reversa nunca deja los puntos negativos aunque el cliente ya los gastó.
func TestVoidSale_ReversaConClampEnCero(t *testing.T) {
	s, createUC, voidUC := buildFixture()
	ctx := context.Background()
	customerID := testCustomerID

	in := saleRequest(dto.SaleItemRequest{ProductID: testProductID, Quantity: 2})
	in.CustomerID = &customerID
	created, err := createUC.Create(ctx, testTenantID, testUserID, in)
	require.NoError(t, err)

	// El cliente gastó sus puntos en otra parte antes de la anulación
	s.customers[testCustomerID].LoyaltyPoints = 1

	_, err = voidUC.Void(ctx, testTenantID, testUserID, created.ID, "devolución")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, s.customers[testCustomerID].LoyaltyPoints, int64(0), "clamp en cero")
}

// Anular una venta cuyo producto ya no existe no falla: la reposición se omite.
func TestVoidSale_ProductoEliminado(t *testing.T) {
	s, createUC, voidUC := buildFixture()
	ctx := context.Background()

	created, err := createUC.Create(ctx, testTenantID, testUserID, saleRequest(
		dto.SaleItemRequest{ProductID: testProductID, Quantity: 1},
	))
	require.NoError(t, err)

	delete(s.products, testProductID)

	voided, err := voidUC.Void(ctx, testTenantID, testUserID, created.ID, "producto retirado")
	require.NoError(t, err)
	assert.True(t, voided.IsVoid)
}

// Errores de entrada y de scope.
func TestVoidSale_Errores(t *testing.T) {
	_, createUC, voidUC := buildFixture()
	ctx := context.Background()

	created, err := createUC.Create(ctx, testTenantID, testUserID, saleRequest(
		dto.SaleItemRequest{ProductID: testProductID, Quantity: 1},
	))
	require.NoError(t, err)

	t.Run("motivo vacio", func(t *testing.T) {
		_, err := voidUC.Void(ctx, testTenantID, testUserID, created.ID, "")
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})

	t.Run("venta inexistente", func(t *testing.T) {
		_, err := voidUC.Void(ctx, testTenantID, testUserID, "77777777-7777-7777-7777-777777777777", "motivo")
		assert.ErrorIs(t, err, domain.ErrSaleNotFound)
	})

	t.Run("venta de otro tenant", func(t *testing.T) {
		_, err := voidUC.Void(ctx, "99999999-9999-9999-9999-999999999999", testUserID, created.ID, "motivo")
		assert.ErrorIs(t, err, domain.ErrSaleNotFound, "otro tenant no puede anularla")
	})
}

// El contador mensual de transacciones NO se decrementa al anular: la venta
// anulada sigue contando contra el cupo del mes.
func TestVoidSale_NoDevuelveCupoMensual(t *testing.T) {
	s, createUC, voidUC := buildFixture()
	ctx := context.Background()

	created, err := createUC.Create(ctx, testTenantID, testUserID, saleRequest(
		dto.SaleItemRequest{ProductID: testProductID, Quantity: 1},
	))
	require.NoError(t, err)
	require.Equal(t, 1, s.tenants[testTenantID].MonthlyTransactions)

	_, err = voidUC.Void(ctx, testTenantID, testUserID, created.ID, "anulada")
	require.NoError(t, err)
	assert.Equal(t, 1, s.tenants[testTenantID].MonthlyTransactions)
}

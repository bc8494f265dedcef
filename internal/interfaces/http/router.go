package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Ventas-api/internal/application/auth"
	"github.com/jhoicas/Ventas-api/internal/application/sales"
	"github.com/jhoicas/Ventas-api/internal/application/usecase"
	"github.com/jhoicas/Ventas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.UseCase
	ProductUC      *usecase.ProductUseCase
	CustomerUC     *usecase.CustomerUseCase
	CreateSale     *sales.CreateSaleUseCase
	VoidSale       *sales.VoidSaleUseCase
	TenantSvc      *usecase.TenantService
	SubscriptionSv *usecase.SubscriptionService
	JWTSecret      string
}

// Router registra las rutas de la API.
//
// Capas de middleware: auth (token) → tenant (resolución + membresía) →
// suscripción/característica/capacidad según la ruta → rol.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas con token pero sin tenant resuelto
	authenticated := api.Group("/", AuthMiddleware(deps.JWTSecret))
	authGroup2 := authenticated.Group("/auth")
	authGroup2.Get("/me", authHandler.Me)
	authGroup2.Post("/switch-tenant", authHandler.SwitchTenant)

	// Rutas con tenant resuelto (membresía verificada)
	scoped := authenticated.Group("/", TenantMiddleware(deps.TenantSvc))

	// Products: crear exige rol admin+ y capacidad del plan
	products := scoped.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/",
		RequireTenantRole(entity.TenantRoleOwner, entity.TenantRoleAdmin),
		RequireCapacity(deps.SubscriptionSv, entity.ResourceProducts),
		productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)

	// Customers: crear exige capacidad del plan
	customers := scoped.Group("/customers")
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers.Post("/",
		RequireCapacity(deps.SubscriptionSv, entity.ResourceCustomers),
		customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Sales: característica "sales" del plan; crear además consume cupo
	// mensual de transacciones; anular exige rol manager+
	salesGroup := scoped.Group("/sales", RequireFeature(deps.SubscriptionSv, entity.FeatureSales))
	saleHandler := NewSaleHandler(deps.CreateSale, deps.VoidSale)
	salesGroup.Post("/",
		RequireCapacity(deps.SubscriptionSv, entity.ResourceTransactions),
		saleHandler.Create)
	salesGroup.Get("/", saleHandler.List)
	salesGroup.Get("/:id", saleHandler.GetByID)
	salesGroup.Put("/:id/void",
		RequireTenantRole(entity.TenantRoleOwner, entity.TenantRoleAdmin, entity.TenantRoleManager),
		saleHandler.Void)
}

package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/vitalcan/haruwen-wms/internal/application/auth"
	"github.com/vitalcan/haruwen-wms/internal/application/billing"
	"github.com/vitalcan/haruwen-wms/internal/application/catalog"
	"github.com/vitalcan/haruwen-wms/internal/application/fulfillment"
	"github.com/vitalcan/haruwen-wms/internal/application/inventory"
	"github.com/vitalcan/haruwen-wms/internal/application/orders"
	"github.com/vitalcan/haruwen-wms/internal/domain/entity"
	"github.com/vitalcan/haruwen-wms/internal/domain/repository"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC    *catalog.UseCase
	InventoryUC  *inventory.UseCase
	OrdersUC     *orders.UseCase
	Orchestrator *fulfillment.Orchestrator
	CustomerUC   *billing.CustomerUseCase
	BalanceUC    *billing.BalanceUseCase
	PaymentUC    *billing.PaymentUseCase
	InvoiceUC    *billing.InvoiceUseCase
	AuthUC       *auth.UseCase
	PositionRepo repository.PositionRepository
	MovementRepo repository.MovementRepository
	JWTSecret    string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth: login público, registro de usuarios solo admin.
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	protected.Post("/auth/register", RequireRole(entity.RoleAdmin), authHandler.Register)

	// Catálogo: lectura para cualquier usuario autenticado; altas y precios
	// restringidos.
	productHandler := NewProductHandler(deps.CatalogUC)
	products := protected.Group("/productos")
	products.Get("/", productHandler.List)
	products.Get("/stock-bajo", productHandler.LowStock)
	products.Post("/precios-masivo", RequireRole(entity.RoleAdmin), productHandler.BulkPriceUpdate)
	products.Get("/:id", productHandler.GetByID)
	products.Post("/", RequireRole(entity.RoleDeposito), productHandler.Create)
	products.Put("/:id", RequireRole(entity.RoleDeposito), productHandler.Update)
	protected.Get("/consulta/:sku", productHandler.ConsultBySKU)

	// Posiciones (protegido, depósito)
	positionHandler := NewPositionHandler(deps.PositionRepo)
	positions := protected.Group("/posiciones", RequireRole(entity.RoleDeposito))
	positions.Post("/", positionHandler.Create)
	positions.Get("/", positionHandler.List)
	positions.Get("/:id", positionHandler.GetByID)

	// Inventario (protegido, depósito)
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.MovementRepo)
	invGroup := protected.Group("/inventario", RequireRole(entity.RoleDeposito))
	invGroup.Post("/recepcion", inventoryHandler.Receive)
	invGroup.Post("/traspaso", inventoryHandler.Transfer)
	invGroup.Post("/ajuste", inventoryHandler.Adjust)
	protected.Get("/movimientos", inventoryHandler.ListMovements)
	protected.Get("/movimientos/producto/:id", inventoryHandler.ListMovementsByProduct)

	// Pedidos: carga por ventas, picking por depósito.
	orderHandler := NewOrderHandler(deps.OrdersUC, deps.Orchestrator)
	ordersGroup := protected.Group("/pedidos")
	ordersGroup.Post("/", RequireRole(entity.RoleVentas), orderHandler.Create)
	ordersGroup.Get("/", orderHandler.List)
	ordersGroup.Get("/:id", orderHandler.GetByID)
	ordersGroup.Post("/:id/picking", RequireRole(entity.RoleDeposito), orderHandler.ProcessPicking)

	// Clientes (protegido, ventas; auditoría solo admin)
	customerHandler := NewCustomerHandler(deps.CustomerUC, deps.BalanceUC)
	customers := protected.Group("/clientes")
	customers.Post("/auditoria", RequireRole(entity.RoleAdmin), customerHandler.Audit)
	customers.Post("/", RequireRole(entity.RoleVentas), customerHandler.Create)
	customers.Get("/", customerHandler.List)
	customers.Get("/:id", customerHandler.GetByID)

	// Pagos (protegido, ventas)
	paymentHandler := NewPaymentHandler(deps.PaymentUC)
	payments := protected.Group("/pagos", RequireRole(entity.RoleVentas))
	payments.Post("/", paymentHandler.Register)
	payments.Get("/pendientes", paymentHandler.ListPending)
	payments.Post("/:id/aprobar", paymentHandler.Approve)

	// Facturas (protegido, solo lectura)
	invoiceHandler := NewInvoiceHandler(deps.InvoiceUC)
	invoices := protected.Group("/facturas")
	invoices.Get("/", invoiceHandler.List)
	invoices.Get("/pedido/:id", invoiceHandler.GetByOrder)
	invoices.Get("/:id/pdf", invoiceHandler.DownloadPDF)
	invoices.Get("/:id", invoiceHandler.GetByID)
}

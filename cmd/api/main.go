package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/vitalcan/haruwen-wms/internal/application/auth"
	"github.com/vitalcan/haruwen-wms/internal/application/billing"
	"github.com/vitalcan/haruwen-wms/internal/application/catalog"
	"github.com/vitalcan/haruwen-wms/internal/application/fulfillment"
	"github.com/vitalcan/haruwen-wms/internal/application/inventory"
	"github.com/vitalcan/haruwen-wms/internal/application/orders"
	infraafip "github.com/vitalcan/haruwen-wms/internal/infrastructure/afip"
	infrapdf "github.com/vitalcan/haruwen-wms/internal/infrastructure/pdf"
	"github.com/vitalcan/haruwen-wms/internal/infrastructure/postgres"
	httpRouter "github.com/vitalcan/haruwen-wms/internal/interfaces/http"
	"github.com/vitalcan/haruwen-wms/pkg/config"
	"github.com/vitalcan/haruwen-wms/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	priceRepo := postgres.NewPriceRepository(pool)
	positionRepo := postgres.NewPositionRepository(pool)
	lotRepo := postgres.NewLotRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Cliente AFIP: en homologación no se llama al servicio real, el
	// simulador devuelve siempre el mismo CAE.
	var authorizer fulfillment.InvoiceAuthorizer
	if cfg.AFIP.Mode == infraafip.ModeHomologacion {
		authorizer = infraafip.NewHomologacionClient(log)
		log.Warn().Msg("AFIP en modo homologación: los CAE emitidos no son reales")
	} else {
		authorizer = infraafip.NewHTTPClient(
			cfg.AFIP.GatewayURL,
			time.Duration(cfg.AFIP.TimeoutSec)*time.Second,
			log,
		)
	}

	balanceUC := billing.NewBalanceUseCase(customerRepo, invoiceRepo, paymentRepo, log)
	customerUC := billing.NewCustomerUseCase(customerRepo)
	paymentUC := billing.NewPaymentUseCase(paymentRepo, customerRepo, balanceUC, log)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(infrapdf.IssuerInfo{
		Name:        cfg.AFIP.IssuerName,
		CUIT:        cfg.AFIP.CUIT,
		Address:     cfg.AFIP.IssuerAddress,
		PointOfSale: cfg.AFIP.PointOfSale,
	})
	invoiceUC := billing.NewInvoiceUseCase(invoiceRepo, pdfGenerator)

	catalogUC := catalog.NewUseCase(productRepo, priceRepo, lotRepo, positionRepo, log)
	inventoryUC := inventory.NewUseCase(txRunner, productRepo, positionRepo, lotRepo, log)
	ordersUC := orders.NewUseCase(txRunner, orderRepo, productRepo, customerRepo, log)
	orchestrator := fulfillment.NewOrchestrator(
		txRunner, orderRepo, productRepo, priceRepo,
		lotRepo, invoiceRepo, authorizer, balanceUC, log,
	)

	authUC := auth.NewUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "HaruwenWMS API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		CatalogUC:    catalogUC,
		InventoryUC:  inventoryUC,
		OrdersUC:     ordersUC,
		Orchestrator: orchestrator,
		CustomerUC:   customerUC,
		BalanceUC:    balanceUC,
		PaymentUC:    paymentUC,
		InvoiceUC:    invoiceUC,
		AuthUC:       authUC,
		PositionRepo: positionRepo,
		MovementRepo: movementRepo,
		JWTSecret:    cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("servidor detenido")
}

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/coolbreeze-api/internal/application/analytics"
	"github.com/jhoicas/coolbreeze-api/internal/application/auth"
	"github.com/jhoicas/coolbreeze-api/internal/application/orders"
	"github.com/jhoicas/coolbreeze-api/internal/application/usecase"
	infragoogle "github.com/jhoicas/coolbreeze-api/internal/infrastructure/google"
	infrapdf "github.com/jhoicas/coolbreeze-api/internal/infrastructure/pdf"
	"github.com/jhoicas/coolbreeze-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/coolbreeze-api/internal/interfaces/http"
	"github.com/jhoicas/coolbreeze-api/pkg/config"
	"github.com/jhoicas/coolbreeze-api/pkg/logger"
	"github.com/jhoicas/coolbreeze-api/pkg/metrics"
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
	approvedRepo := postgres.NewApprovedEmailRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	statsRepo := postgres.NewStatsRepository(pool)
	productTx := postgres.NewProductTxRunner(pool)
	orderTx := postgres.NewOrderTxRunner(pool)

	verifier := infragoogle.NewVerifier(cfg.Google)
	receipts := infrapdf.NewReceiptGenerator(cfg.App.Name)

	authUC := auth.NewAuthUseCase(userRepo, approvedRepo, verifier, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	productUC := usecase.NewProductUseCase(productRepo, productTx)
	userUC := usecase.NewUserUseCase(userRepo, approvedRepo)
	orderUC := orders.NewOrderUseCase(orderRepo, productRepo, userRepo, orderTx, receipts)
	dashboardUC := analytics.NewDashboardUseCase(statsRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	httpMetrics := metrics.NewHTTPMetrics(cfg.App.Name)
	app.Use(httpMetrics.Middleware())
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "CoolBreeze API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		ProductUC:   productUC,
		UserUC:      userUC,
		OrderUC:     orderUC,
		DashboardUC: dashboardUC,
		JWTSecret:   cfg.JWT.Secret,
		Resolver:    authUC,
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

	log.Info().Msg("aplicación detenida")
}

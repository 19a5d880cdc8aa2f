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

	"github.com/jhoicas/Clinivet-api/internal/application/auth"
	"github.com/jhoicas/Clinivet-api/internal/application/stock"
	"github.com/jhoicas/Clinivet-api/internal/application/usecase"
	"github.com/jhoicas/Clinivet-api/internal/database"
	"github.com/jhoicas/Clinivet-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Clinivet-api/internal/interfaces/http"
	"github.com/jhoicas/Clinivet-api/pkg/config"
	"github.com/jhoicas/Clinivet-api/pkg/logger"
	"github.com/jhoicas/Clinivet-api/pkg/retry"
)

// @title Clinivet API
// @version 1.0
// @description API de inventario y libro de movimientos de stock para clínica veterinaria.
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
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

	if err := database.Migrate(cfg.DB.ConnectionString(), log); err != nil {
		log.Fatal().Err(err).Msg("migraciones de base de datos")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	retryCfg := retry.Config{
		MaxAttempts:  cfg.Retry.MaxAttempts,
		InitialDelay: time.Duration(cfg.Retry.InitialDelayMs) * time.Millisecond,
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	clientRepo := postgres.NewClientRepository(pool)
	petRepo := postgres.NewPetRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, retryCfg)
	productUC := usecase.NewProductUseCase(productRepo, retryCfg)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, retryCfg)
	clientUC := usecase.NewClientUseCase(clientRepo, retryCfg)
	petUC := usecase.NewPetUseCase(petRepo, clientRepo, retryCfg)
	ledgerUC := stock.NewLedgerUseCase(txRunner, retryCfg, log)
	summaryUC := stock.NewSummaryUseCase(movementRepo, retryCfg)

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
		Title:    "Clinivet API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		ProductUC:  productUC,
		SupplierUC: supplierUC,
		ClientUC:   clientUC,
		PetUC:      petUC,
		LedgerUC:   ledgerUC,
		SummaryUC:  summaryUC,
		JWTSecret:  cfg.JWT.Secret,
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

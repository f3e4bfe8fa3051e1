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

	"github.com/jhoicas/zonafranca-api/internal/application/auth"
	appledger "github.com/jhoicas/zonafranca-api/internal/application/ledger"
	"github.com/jhoicas/zonafranca-api/internal/application/usecase"
	"github.com/jhoicas/zonafranca-api/internal/infrastructure/events"
	infrapdf "github.com/jhoicas/zonafranca-api/internal/infrastructure/pdf"
	"github.com/jhoicas/zonafranca-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/zonafranca-api/internal/interfaces/http"
	"github.com/jhoicas/zonafranca-api/pkg/config"
	"github.com/jhoicas/zonafranca-api/pkg/logger"
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

	lotRepo := postgres.NewLotRepository(pool)
	txRepo := postgres.NewTransactionRepository(pool)
	auditRepo := postgres.NewAuditLogRepository(pool)
	historyRepo := postgres.NewStatusHistoryRepository(pool)
	partRepo := postgres.NewPartRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	locationRepo := postgres.NewStorageLocationRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Publicador de eventos: Kafka si hay brokers, log estructurado si no
	var publisher appledger.EventPublisher
	if len(cfg.Events.Brokers) > 0 {
		kafkaPub := events.NewKafkaPublisher(cfg.Events.Brokers, cfg.Events.Topic, log)
		defer kafkaPub.Close()
		publisher = kafkaPub
		log.Info().Strs("brokers", cfg.Events.Brokers).Str("topic", cfg.Events.Topic).Msg("eventos hacia Kafka")
	} else {
		publisher = events.NewLogPublisher(log)
		log.Info().Msg("eventos hacia log (sin brokers configurados)")
	}

	ledgerUC := appledger.NewLedgerUseCase(
		txRunner, lotRepo, partRepo, customerRepo, locationRepo,
		publisher, cfg.Ledger.LowStockThreshold,
	)
	reconcileUC := appledger.NewReconcileUseCase(txRunner, lotRepo, txRepo)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	queryUC := appledger.NewLotQueryUseCase(
		lotRepo, txRepo, historyRepo, partRepo, customerRepo, pdfGenerator,
	)

	partUC := usecase.NewPartUseCase(partRepo)
	customerUC := usecase.NewCustomerUseCase(customerRepo)
	locationUC := usecase.NewLocationUseCase(locationRepo)
	auditUC := usecase.NewAuditUseCase(auditRepo)
	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
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
		Title:    "Zona Franca API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		LedgerUC:    ledgerUC,
		QueryUC:     queryUC,
		ReconcileUC: reconcileUC,
		PartUC:      partUC,
		CustomerUC:  customerUC,
		LocationUC:  locationUC,
		AuditUC:     auditUC,
		AuthUC:      authUC,
		JWTSecret:   cfg.JWT.Secret,
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

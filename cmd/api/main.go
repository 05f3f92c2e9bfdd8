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
	"github.com/jhoicas/pos-api/internal/application/analytics"
	"github.com/jhoicas/pos-api/internal/application/catalog"
	"github.com/jhoicas/pos-api/internal/application/inventory"
	"github.com/jhoicas/pos-api/internal/application/loyalty"
	"github.com/jhoicas/pos-api/internal/application/ports"
	"github.com/jhoicas/pos-api/internal/application/sales"
	"github.com/jhoicas/pos-api/internal/application/shift"
	"github.com/jhoicas/pos-api/internal/domain/repository"
	"github.com/jhoicas/pos-api/internal/infrastructure/cache"
	"github.com/jhoicas/pos-api/internal/infrastructure/events"
	"github.com/jhoicas/pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/pos-api/internal/infrastructure/migration"
	infrapdf "github.com/jhoicas/pos-api/internal/infrastructure/pdf"
	"github.com/jhoicas/pos-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/pos-api/internal/interfaces/http"
	"github.com/jhoicas/pos-api/pkg/config"
	"github.com/jhoicas/pos-api/pkg/logger"
)

// txRunner lo cumplen postgres.TxRunner y memory.Store; coincide con el TxRunner de cada caso de uso.
type txRunner interface {
	Run(ctx context.Context, fn func(repos repository.Repositories) error) error
}

// storage backend elegido por STORAGE_DRIVER.
type storage struct {
	tx        txRunner
	repos     repository.Repositories
	analytics repository.AnalyticsRepository
	close     func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("storage", cfg.App.StorageDriver).
		Msg("iniciando aplicación")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	st := openStorage(ctx, cfg, log)
	defer st.close()

	// Guardia rápida de reembolsos: Redis si está configurado (compartida entre instancias), si no en memoria.
	// La política once se decide con sales.refunded_at.
	var guard ports.IdempotencyGuard = cache.NewMemoryGuard()
	if cfg.Redis.Addr != "" {
		redisGuard, err := cache.NewRedisGuard(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer redisGuard.Close()
		guard = redisGuard
	}

	// Eventos: Kafka si hay brokers, si no solo log.
	var publisher ports.EventPublisher = events.NewLogPublisher(log.Component("events"))
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaPub := events.NewKafkaPublisher(cfg.Kafka, log.Component("events"))
		defer func() {
			if err := kafkaPub.Close(); err != nil {
				log.Warn().Err(err).Msg("cerrar publicador Kafka")
			}
		}()
		publisher = kafkaPub
	}

	// Reporte PDF de cierre de turno
	var reporter ports.ShiftReporter = infrapdf.NopReporter{}
	if cfg.Reports.Dir != "" {
		pdfReporter, err := infrapdf.NewShiftReporter(cfg.Reports.Dir)
		if err != nil {
			log.Fatal().Err(err).Msg("directorio de reportes")
		}
		reporter = pdfReporter
	}

	ledger := inventory.NewLedger()
	accrual := loyalty.NewAccrual(st.tx, cfg.POS.ClampLoyaltyPoints)
	salesSvc := sales.NewService(
		st.tx, st.repos,
		inventory.NewRecipeResolver(st.repos.Products),
		ledger, accrual, publisher, guard,
		sales.Options{
			RefundOnce:     cfg.POS.RefundPolicy == config.RefundPolicyOnce,
			RefundGuardTTL: cfg.Redis.KeyTTL,
		},
		log.Component("sales"),
	)
	shiftSvc := shift.NewService(st.tx, st.repos, publisher, reporter, cfg.POS.VarianceTolerance, log.Component("shift"))
	inventoryUC := inventory.NewUseCase(st.tx, ledger, st.repos, log.Component("inventory"))
	dailyUC := analytics.NewDailySummaryUseCase(st.analytics, time.Local)
	catalogUC := catalog.NewUseCase(st.tx, st.repos, log.Component("catalog"))

	autoCloser := shift.NewAutoCloser(shiftSvc, cfg.POS.ShiftAutoCloseAfter, cfg.POS.ShiftAutoCloseInterval, log.Component("shift"))
	if autoCloser.Enabled() {
		go autoCloser.Run(ctx)
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if cfg.HTTP.SwaggerPath != "" {
		if _, err := os.Stat(cfg.HTTP.SwaggerPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: cfg.HTTP.SwaggerPath,
				Path:     "docs",
				Title:    "POS API",
			}))
		}
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		Sales:     salesSvc,
		Shifts:    shiftSvc,
		Inventory: inventoryUC,
		Analytics: dailyUC,
		Catalog:   catalogUC,
		JWTSecret: cfg.JWT.Secret,
		Log:       log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func openStorage(ctx context.Context, cfg *config.Config, log *logger.Logger) storage {
	if cfg.App.StorageDriver == config.StorageDriverMemory {
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
		store := memory.New()
		return storage{tx: store, repos: store.Repositories(), analytics: store.Analytics(), close: func() {}}
	}

	if cfg.DB.MigrateOnStart {
		m, err := migration.New(cfg.DB.ConnectionString(), log.Component("migrate"))
		if err != nil {
			log.Fatal().Err(err).Msg("preparar migraciones")
		}
		if err := m.Up(); err != nil {
			log.Fatal().Err(err).Msg("aplicar migraciones")
		}
		if err := m.Close(); err != nil {
			log.Warn().Err(err).Msg("cerrar migrador")
		}
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	return storage{
		tx:        postgres.NewTxRunner(pool, cfg.DB.TxTimeout),
		repos:     postgres.NewRepositories(pool),
		analytics: postgres.NewAnalyticsRepository(pool),
		close:     pool.Close,
	}
}

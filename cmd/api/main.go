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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/auditoria-precios/internal/application/audit"
	"github.com/jhoicas/auditoria-precios/internal/application/usecase"
	"github.com/jhoicas/auditoria-precios/internal/domain/repository"
	"github.com/jhoicas/auditoria-precios/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/auditoria-precios/internal/infrastructure/pdf"
	"github.com/jhoicas/auditoria-precios/internal/infrastructure/postgres"
	infraxlsx "github.com/jhoicas/auditoria-precios/internal/infrastructure/xlsx"
	httpRouter "github.com/jhoicas/auditoria-precios/internal/interfaces/http"
	"github.com/jhoicas/auditoria-precios/pkg/config"
	"github.com/jhoicas/auditoria-precios/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

// repos implementaciones de persistencia elegidas por DB_DRIVER.
type repos struct {
	products repository.ProductRepository
	lists    repository.SalesPriceListRepository
	logs     repository.PriceChangeLogRepository
	alerts   repository.PriceAlertRepository
	settings repository.PriceAlertSettingsRepository
	auditTx  audit.AuditTxRunner
	priceTx  usecase.PricingTxRunner
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
		Str("db_driver", cfg.DB.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var r repos
	switch cfg.DB.Driver {
	case config.DriverMemory:
		store := memory.NewStore()
		r = repos{
			products: store.Products(),
			lists:    store.PriceLists(),
			logs:     store.PriceChangeLogs(),
			alerts:   store.PriceAlerts(),
			settings: store.AlertSettings(),
			auditTx:  store,
			priceTx:  store,
		}
		log.Warn().Msg("DB_DRIVER=memory: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		txRunner := postgres.NewTxRunner(pool)
		r = repos{
			products: postgres.NewProductRepository(pool),
			lists:    postgres.NewSalesPriceListRepository(pool),
			logs:     postgres.NewPriceChangeLogRepository(pool),
			alerts:   postgres.NewPriceAlertRepository(pool),
			settings: postgres.NewPriceAlertSettingsRepository(pool),
			auditTx:  txRunner,
			priceTx:  txRunner,
		}
	}

	threshold := decimal.NewFromFloat(cfg.Alerts.DefaultThresholdPercent)

	// Motor de auditoría: lo invocan todos los flujos que escriben precios
	auditUC := audit.NewAuditUseCase(r.auditTx, r.settings, threshold, log.Zerolog())
	reportUC := audit.NewReportUseCase(
		r.logs,
		infraxlsx.NewExcelizeReportGenerator(),
		infrapdf.NewMarotoReportGenerator(),
		cfg.Report.MaxRows,
		log.Zerolog(),
	)
	alertUC := audit.NewAlertUseCase(r.alerts, r.settings, threshold)

	productUC := usecase.NewProductUseCase(r.products, auditUC)
	bulkUC := usecase.NewBulkPriceUseCase(r.priceTx, auditUC)
	importUC := usecase.NewImportUseCase(r.products, auditUC, log.Zerolog())
	priceListUC := usecase.NewPriceListUseCase(r.lists, r.products, auditUC)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    usecase.MaxImportBytes + 1<<20,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Auditoría de Precios API",
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger deshabilitado: archivo no encontrado")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:   productUC,
		BulkPriceUC: bulkUC,
		ImportUC:    importUC,
		PriceListUC: priceListUC,
		ReportUC:    reportUC,
		AlertUC:     alertUC,
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

// import_prices aplica un archivo de precios (codigo;precio[;motivo]) sobre los productos
// de una empresa, registrando cada cambio en la auditoría con origen IMPORT.
//
// Uso: go run ./cmd/import_prices -company <uuid> [-user <uuid>] [-charset iso-8859-1] precios.csv
// Lee la conexión de las mismas variables que la API (DATABASE_URL, DB_HOST, ...).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/auditoria-precios/internal/application/audit"
	"github.com/jhoicas/auditoria-precios/internal/application/usecase"
	"github.com/jhoicas/auditoria-precios/internal/infrastructure/postgres"
	"github.com/jhoicas/auditoria-precios/pkg/config"
	"github.com/jhoicas/auditoria-precios/pkg/logger"
)

func main() {
	companyID := flag.String("company", "", "ID de la empresa (requerido)")
	userID := flag.String("user", "", "ID del usuario que firma los cambios")
	charset := flag.String("charset", "utf-8", "utf-8 | iso-8859-1 | windows-1252")
	flag.Parse()

	if *companyID == "" || flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "uso: import_prices -company <id> [-user <id>] [-charset utf-8] archivo.csv")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})
	cli := log.Component("import_prices")

	f, err := os.Open(flag.Arg(0))
	if err != nil {
		cli.Fatal().Err(err).Msg("abrir archivo")
	}
	defer f.Close()

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		cli.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	settingsRepo := postgres.NewPriceAlertSettingsRepository(pool)
	auditUC := audit.NewAuditUseCase(
		postgres.NewTxRunner(pool),
		settingsRepo,
		decimal.NewFromFloat(cfg.Alerts.DefaultThresholdPercent),
		log.Zerolog(),
	)
	importUC := usecase.NewImportUseCase(productRepo, auditUC, log.Zerolog())

	res, err := importUC.Import(ctx, *companyID, *userID, f, *charset)
	if err != nil {
		cli.Error().Err(err).Msg("importación fallida")
		pool.Close()
		os.Exit(1)
	}

	fmt.Printf("Procesadas: %d  Actualizadas: %d  Sin cambio: %d  Alertas: %d  Errores: %d\n",
		res.Processed, res.Updated, res.Unchanged, res.AlertsCreated, len(res.Errors))
	for _, e := range res.Errors {
		fmt.Printf("  línea %d: %s\n", e.Line, e.Message)
	}
}

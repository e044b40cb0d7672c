package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/lushajj14/logline-wms-sub001/cmd"
	httpin "github.com/lushajj14/logline-wms-sub001/internal/adapters/in/http"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/activitylog"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/backorderrepo"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/orderrepo"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/picklinerepo"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/shipmentrepo"
	"github.com/lushajj14/logline-wms-sub001/internal/adapters/out/postgres/workqueuerepo"
	"github.com/lushajj14/logline-wms-sub001/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	configs := getConfigs()

	gormDB := mustOpenDatabase(configs)
	mustMigrate(gormDB)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := jobs.NewJobManager(
		app.CreateReconcilePackageTotalsCommandHandler(),
		app.CreateGetBackorderSummaryQueryHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start background jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs, logger)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:          goDotEnvVariable("HTTP_PORT"),
		DBHost:            goDotEnvVariable("DB_HOST"),
		DBPort:            goDotEnvVariable("DB_PORT"),
		DBUser:            goDotEnvVariable("DB_USER"),
		DBPassword:        goDotEnvVariable("DB_PASSWORD"),
		DBName:            goDotEnvVariable("DB_NAME"),
		DBSslMode:         goDotEnvVariable("DB_SSLMODE"),
		LockTimeoutMs:     goDotEnvIntVariable("LOCK_TIMEOUT_MS", 3000),
		OverScanTolerance: goDotEnvFloatVariable("OVER_SCAN_TOLERANCE", 0),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func goDotEnvIntVariable(key string, fallback int) int {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func goDotEnvFloatVariable(key string, fallback float64) float64 {
	raw := goDotEnvVariable(key)
	if raw == "" {
		return fallback
	}
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Fatalf("Invalid %s: %v", key, err)
	}
	return value
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s",
		configs.DBHost, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBPort, configs.DBSslMode)

	gormDB, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return gormDB
}

func mustMigrate(gormDB *gorm.DB) {
	err := gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.CustomerDTO{},
		&orderrepo.InvoiceDTO{},
		&picklinerepo.PickLineDTO{},
		&shipmentrepo.HeaderDTO{},
		&shipmentrepo.PackageDTO{},
		&shipmentrepo.LineDTO{},
		&backorderrepo.BackorderDTO{},
		&workqueuerepo.WorkQueueDTO{},
		&activitylog.ActivityLogDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true

	server := httpin.NewServer(
		app.CreateRecordScanCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateMarkPackageLoadedCommandHandler(),
		app.CreateGetItemQuantitiesQueryHandler(),
		app.CreateGetPendingOrdersQueryHandler(),
		app.CreateCheckCompletionLockQueryHandler(),
		configs.OverScanTolerance,
	)
	server.RegisterRoutes(e)

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); err != nil {
			logger.Info("Web server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		logger.Error("Web server shutdown failed", "error", err)
	}
}

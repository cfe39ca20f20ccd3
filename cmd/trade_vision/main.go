package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"

	"github.com/GerardFevill/trade-vision/internal/adapters/bridge"
	"github.com/GerardFevill/trade-vision/internal/adapters/database/pgsql"
	portsrepo "github.com/GerardFevill/trade-vision/internal/core/ports/repositories"
	portssvc "github.com/GerardFevill/trade-vision/internal/core/ports/services"
	"github.com/GerardFevill/trade-vision/internal/core/services"
	"github.com/GerardFevill/trade-vision/internal/handlers"
	"github.com/GerardFevill/trade-vision/internal/middleware"
	"github.com/GerardFevill/trade-vision/internal/platform/config"
	"github.com/GerardFevill/trade-vision/pkg/database"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"
)

// @title Trade Vision API
// @version 1.0
// @description Portfolio dashboard backend with monthly profit distribution accounting.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// Initialize database connection pool (for application use)
	dbPool, err := database.NewPgxPool(context.Background(), cfg.DatabaseURL, cfg.EnableDBCheck)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	// Defer closing the connection pool
	defer dbPool.Close()
	logger.Info("Database connection pool established.")

	if err := runMigrations(cfg, logger); err != nil {
		os.Exit(1)
	}

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	terminalBridge := bridge.NewClient(cfg.BridgeURL, bridge.WithTimeout(cfg.BridgeTimeout))
	repos := pgsql.NewRepositoryProvider(dbPool)
	serviceContainer := services.NewServiceContainer(&repos, terminalBridge)

	handlers.RegisterRoutes(r, cfg, serviceContainer)

	scheduler := startScheduler(cfg, &repos, serviceContainer, logger)
	defer scheduler.Stop()

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// runMigrations applies all pending schema migrations from the migrations
// directory using a temporary database/sql connection.
func runMigrations(cfg *config.Config, logger *slog.Logger) error {
	logger.Info("Running database migrations...")
	// Using pgx/v5/stdlib driver to be compatible with the main pool
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to open database connection for migrations", slog.String("error", err.Error()))
		return err
	}
	if err := migrationDB.Ping(); err != nil {
		logger.Error("Failed to ping database for migrations", slog.String("error", err.Error()))
		return err
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		return err
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		return err
	}

	upErr := m.Up()
	if upErr != nil && upErr != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", upErr.Error()))
		return upErr
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		return sourceErr
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		return dbErr
	}

	if upErr == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
	return nil
}

// startScheduler runs the periodic account refresh and the daily balance
// history pruning job.
func startScheduler(cfg *config.Config, repos *portsrepo.RepositoryProvider, services *portssvc.ServiceContainer, logger *slog.Logger) *cron.Cron {
	scheduler := cron.New()

	if _, err := scheduler.AddFunc(cfg.RefreshCronSpec, func() {
		refreshed, err := services.AccountData.RefreshAccounts(context.Background())
		if err != nil {
			logger.Error("Scheduled account refresh failed", slog.String("error", err.Error()))
			return
		}
		logger.Info("Scheduled account refresh completed", slog.Int("refreshed", refreshed))
	}); err != nil {
		logger.Error("Invalid refresh cron spec, periodic refresh disabled",
			slog.String("spec", cfg.RefreshCronSpec), slog.String("error", err.Error()))
	}

	if _, err := scheduler.AddFunc("@daily", func() {
		if err := repos.BalanceHistoryRepo.PruneHistory(context.Background(), cfg.HistoryRetention); err != nil {
			logger.Error("Balance history pruning failed", slog.String("error", err.Error()))
		}
	}); err != nil {
		logger.Error("Failed to schedule history pruning", slog.String("error", err.Error()))
	}

	scheduler.Start()
	return scheduler
}

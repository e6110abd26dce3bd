package main

import (
	"context"
	"database/sql"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	migrate "github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/workexpress/wx_backend/internal/clients/carrier"
	portsrepo "github.com/workexpress/wx_backend/internal/core/ports/repositories"
	portssvc "github.com/workexpress/wx_backend/internal/core/ports/services"
	"github.com/workexpress/wx_backend/internal/core/services"
	"github.com/workexpress/wx_backend/internal/handlers"
	"github.com/workexpress/wx_backend/internal/middleware"
	"github.com/workexpress/wx_backend/internal/platform/config"
	"github.com/workexpress/wx_backend/internal/platform/mail"
	"github.com/workexpress/wx_backend/internal/repositories/database/mongodb"
	"github.com/workexpress/wx_backend/internal/repositories/database/pgsql"
	"github.com/workexpress/wx_backend/internal/scheduler"
	"github.com/workexpress/wx_backend/pkg/database"
)

// @title WorkExpress Backend API
// @version 1.0
// @description Cash closure lifecycle and cargo tracking backend for WorkExpress.

// @host localhost:8080
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

// @security BearerAuth
func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx := context.Background()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.ClosePgxPool(dbPool)

	runMigrations(cfg, logger)

	mongoDB, err := database.NewMongoDatabase(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		logger.Error("Failed to connect to mongo", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer database.CloseMongoClient(mongoDB)

	if err := mongodb.EnsurePackageIndexes(ctx, mongoDB); err != nil {
		logger.Error("Failed to ensure mongo indexes", slog.String("error", err.Error()))
		os.Exit(1)
	}

	relational := pgsql.NewRelationalRepositories(dbPool)
	documents := mongodb.NewDocumentRepositories(mongoDB)
	repos := &portsrepo.RepositoryProvider{
		CashClosureRepo:   relational.CashClosureRepo,
		TransactionRepo:   relational.TransactionRepo,
		PaymentMethodRepo: relational.PaymentMethodRepo,
		PackageRepo:       documents.PackageRepo,
		OperatorRepo:      documents.OperatorRepo,
	}

	carrierClient := carrier.NewClient(cfg.CarrierBaseURL, cfg.CarrierDetailURL, cfg.CarrierAuthToken)
	notifier := mail.NewClosureMailer(cfg)

	serviceContainer, err := services.NewServiceContainer(cfg, repos, carrierClient, notifier)
	if err != nil {
		logger.Error("Failed to build services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	jobs, err := startScheduler(cfg, serviceContainer, logger)
	if err != nil {
		logger.Error("Failed to start scheduler", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer jobs.Stop()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	middleware.InitMetrics()
	r.Use(
		middleware.StructuredLoggingMiddleware(logger),
		gin.Recovery(),
		middleware.PrometheusMiddleware(),
		cors.Default(),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, serviceContainer, jobs)

	// Shut the scheduler down cleanly on SIGINT/SIGTERM.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-stop
		logger.Info("Shutdown signal received")
		jobs.Stop()
		os.Exit(0)
	}()

	logger.Info("Server starting", slog.String("port", cfg.Port))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func runMigrations(cfg *config.Config, logger *slog.Logger) {
	migrationDB, err := sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		logger.Error("Could not open migration DB connection", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer func() {
		if cerr := migrationDB.Close(); cerr != nil {
			logger.Error("Error closing migration DB connection", slog.String("error", cerr.Error()))
		}
	}()

	driver, err := postgres.WithInstance(migrationDB, &postgres.Config{})
	if err != nil {
		logger.Error("Could not create postgres driver instance for migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	m, err := migrate.NewWithDatabaseInstance("file://migrations", "postgres", driver)
	if err != nil {
		logger.Error("Could not create migrate instance", slog.String("error", err.Error()))
		os.Exit(1)
	}

	err = m.Up()
	if err != nil && err != migrate.ErrNoChange {
		logger.Error("Failed to apply migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sourceErr, dbErr := m.Close()
	if sourceErr != nil {
		logger.Error("Migration source error", slog.String("error", sourceErr.Error()))
		os.Exit(1)
	}
	if dbErr != nil {
		logger.Error("Migration database error", slog.String("error", dbErr.Error()))
		os.Exit(1)
	}

	if err == migrate.ErrNoChange {
		logger.Info("No new migrations to apply.")
	} else {
		logger.Info("Database migrations applied successfully.")
	}
}

func startScheduler(cfg *config.Config, svcs *portssvc.ServiceContainer, logger *slog.Logger) (*scheduler.Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, err
	}
	openHour, openMinute, err := config.ParseClock(cfg.CashClosureOpenTime)
	if err != nil {
		return nil, err
	}
	closeHour, closeMinute, err := config.ParseClock(cfg.CashClosureCloseTime)
	if err != nil {
		return nil, err
	}

	jobs, err := scheduler.New(svcs.CashClosure, location, openHour, openMinute, closeHour, closeMinute, logger)
	if err != nil {
		return nil, err
	}
	jobs.StartAsync()
	return jobs, nil
}

package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/aussiebroadwan/entrabackup/internal/backup/http"
	"github.com/aussiebroadwan/entrabackup/internal/backup/service"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store/drivers/postgres"
	"github.com/aussiebroadwan/entrabackup/internal/backup/store/drivers/sqlite"
	"github.com/aussiebroadwan/entrabackup/pkg/graph"
	"github.com/aussiebroadwan/entrabackup/pkg/httpx"
	"github.com/aussiebroadwan/entrabackup/pkg/metricsx"
	"github.com/aussiebroadwan/entrabackup/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"

	basicRealm = "entrabackup"

	tokenWarmUpTimeout = 30 * time.Second
)

// Application encapsulates the backup service with all its dependencies
type Application struct {
	cfg     Config
	logger  *slog.Logger
	metrics *metricsx.Metrics

	// Core dependencies
	db     store.Store
	tokens *graph.TokenCache
	graph  *graph.Client

	// Services
	backupService       *service.BackupService
	webhookService      *service.WebhookService
	subscriptionService *service.SubscriptionService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "entrabackup",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
			Tenant:  cfg.TenantID,
		}),
		metrics: metricsx.New(),
	}

	if err := loadKeeperCredentials(&app.cfg); err != nil {
		return nil, err
	}
	if app.cfg.KSMConfig != "" {
		app.logger.Info("entra credentials loaded from keeper", "record_uid", app.cfg.KSMRecordUID)
	}

	if err := app.cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initGraph()
	app.initServices()

	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	ctx := slogx.WithContext(context.Background(), app.logger)
	if err := app.subscriptionService.Restore(ctx); err != nil {
		_ = app.db.Close()
		return nil, fmt.Errorf("failed to restore subscription state: %w", err)
	}

	return app, nil
}

// Handler returns the fully wired HTTP handler.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.warmUpToken()

	// Start housekeeping service
	app.housekeepingService.Start()

	app.logger.Info("entrabackup starting", "port", app.cfg.Port, "version", BuildVersion)

	// Start server in a goroutine
	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	// Setup signal handling for graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a shutdown signal or server error
	select {
	case err := <-serverErrors:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down entrabackup...")

	// Give outstanding requests a deadline for completion
	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("entrabackup stopped")
	return nil
}

// warmUpToken fetches the first access token so configuration problems show
// up at startup. Failure is logged; the next request retries.
func (app *Application) warmUpToken() {
	ctx, cancel := context.WithTimeout(slogx.WithContext(context.Background(), app.logger), tokenWarmUpTimeout)
	defer cancel()

	if _, err := app.tokens.AccessToken(ctx); err != nil {
		app.logger.Warn("token warm-up failed", "error", err)
		return
	}
	app.logger.Info("token warm-up succeeded", "expires_at", app.tokens.ExpiresAt())
}

// initDatabase opens the configured driver and applies migrations
func (app *Application) initDatabase() error {
	var (
		db  store.Store
		err error
	)

	switch app.cfg.DatabaseDriver {
	case "postgres":
		db, err = postgres.NewStore(app.cfg.DatabaseURL)
	default:
		db, err = sqlite.NewStore(fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseURL))
	}
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully", "driver", app.cfg.DatabaseDriver)
	return nil
}

// initGraph creates the token cache and directory client
func (app *Application) initGraph() {
	httpClient := &http.Client{Timeout: app.cfg.UpstreamTimeout}

	app.tokens = graph.NewTokenCache(graph.TokenConfig{
		TenantID:     app.cfg.TenantID,
		ClientID:     app.cfg.ClientID,
		ClientSecret: app.cfg.ClientSecret,
		Authority:    app.cfg.Authority,
		HTTPClient:   httpClient,
		OnRefresh:    app.metrics.TokenRefreshed,
	})
	app.graph = graph.NewClient(app.cfg.GraphBaseURL, httpClient)
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	app.backupService = &service.BackupService{
		Store:     app.db,
		Tokens:    app.tokens,
		Directory: app.graph,
		TenantID:  app.cfg.TenantID,
		Metrics:   app.metrics,
	}

	app.subscriptionService = &service.SubscriptionService{
		Store:           app.db,
		Tokens:          app.tokens,
		Client:          app.graph,
		NotificationURL: app.cfg.WebhookURL,
	}

	app.webhookService = &service.WebhookService{
		Store:         app.db,
		Subscriptions: app.subscriptionService,
		Metrics:       app.metrics,
	}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	creds, err := httpx.NewBasicCredentials(app.cfg.AuthUsername, app.cfg.AuthPassword, basicRealm)
	if err != nil {
		return fmt.Errorf("failed to prepare basic auth credentials: %w", err)
	}

	router := httpapi.NewRouter(BuildVersion, app.db, creds, app.metrics, app.logger)

	// Wire services to router
	router.BackupService = app.backupService
	router.WebhookService = app.webhookService
	router.SubscriptionService = app.subscriptionService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}

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

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/aussiebroadwan/lexdesk/internal/api/blob"
	"github.com/aussiebroadwan/lexdesk/internal/api/blob/local"
	blobminio "github.com/aussiebroadwan/lexdesk/internal/api/blob/minio"
	"github.com/aussiebroadwan/lexdesk/internal/api/domain"
	httpapi "github.com/aussiebroadwan/lexdesk/internal/api/http"
	"github.com/aussiebroadwan/lexdesk/internal/api/notify"
	"github.com/aussiebroadwan/lexdesk/internal/api/service"
	"github.com/aussiebroadwan/lexdesk/internal/api/store"
	"github.com/aussiebroadwan/lexdesk/internal/api/store/drivers/postgres"
	"github.com/aussiebroadwan/lexdesk/internal/api/store/drivers/sqlite"
	"github.com/aussiebroadwan/lexdesk/pkg/cryptox"
	"github.com/aussiebroadwan/lexdesk/pkg/httpx"
	"github.com/aussiebroadwan/lexdesk/pkg/jwtx"
	"github.com/aussiebroadwan/lexdesk/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v0.1.0"
)

// migrator is implemented by every store driver.
type migrator interface {
	ApplyMigrations() error
	SchemaVersion(ctx context.Context) (int64, error)
}

// Application encapsulates the API with all its dependencies
type Application struct {
	cfg    Config
	logger *slog.Logger

	// Core dependencies
	db       store.Store
	cipher   *cryptox.PIICipher
	issuer   *jwtx.SessionIssuer
	blobs    blob.Storage
	notifier notify.Notifier

	// Services
	authService         *service.AuthService
	intakeService       *service.IntakeService
	adminService        *service.AdminService
	reviewService       *service.ReviewService
	analyticsService    *service.AnalyticsService
	uploadService       *service.UploadService
	catalogService      *service.CatalogService
	cartService         *service.CartService
	orderService        *service.OrderService
	housekeepingService *service.HousekeepingService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
// Secrets are checked before anything touches the database.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "lexdesk-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	if err := app.initSecrets(); err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := app.initDatabase(ctx); err != nil {
		return nil, err
	}
	if err := app.initBlobs(ctx); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	app.initServices()
	if err := app.initHTTP(); err != nil {
		_ = app.db.Close()
		return nil, err
	}

	if err := app.authService.EnsureConfiguredUsers(slogx.WithContext(ctx, app.logger),
		cfg.Root.account(), cfg.Admin1.account(), cfg.Admin2.account(),
	); err != nil {
		// Logins for the affected accounts fail until the next restart.
		app.logger.Error("failed to ensure configured users", "error", err)
	}

	return app, nil
}

// Handler exposes the router, mainly for tests.
func (app *Application) Handler() http.Handler {
	return app.router
}

// Run starts the application and blocks until shutdown is requested
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("lexdesk api starting", "port", app.cfg.Port, "version", BuildVersion,
		"production", app.cfg.IsProduction())

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
	app.logger.Info("shutting down lexdesk api...")

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
	app.reviewService.Wait()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("lexdesk api stopped")
	return nil
}

// initSecrets parses the PII key and builds the session issuer.
func (app *Application) initSecrets() error {
	cipher, err := cryptox.NewPIICipherFromBase64(app.cfg.PIIKeyB64)
	if err != nil {
		return fmt.Errorf("invalid PII_ENC_KEY_B64: %w", err)
	}
	app.cipher = cipher

	issuer, err := jwtx.NewSessionIssuer([]byte(app.cfg.JWT.Secret), app.cfg.JWT.Issuer,
		jwtx.DefaultSessionTTL, jwtx.WithRoles(domain.Roles()...))
	if err != nil {
		return fmt.Errorf("failed to initialize session issuer: %w", err)
	}
	app.issuer = issuer
	return nil
}

// initDatabase opens the configured store and applies migrations when the
// migration policy allows it.
func (app *Application) initDatabase(ctx context.Context) error {
	var (
		db  store.Store
		mig migrator
	)
	switch app.cfg.Database.Driver {
	case "postgres":
		pg, err := postgres.NewStore(ctx, app.cfg.Database.URL)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db, mig = pg, pg
	default:
		host := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", app.cfg.Database.File)
		if app.cfg.Database.File == ":memory:" {
			host = ":memory:"
		}
		lite, err := sqlite.NewStore(host)
		if err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		db, mig = lite, lite
	}
	app.db = db

	if !app.cfg.ShouldAutoMigrate() {
		version, err := mig.SchemaVersion(ctx)
		if err != nil {
			app.logger.Warn("database schema version unknown", "driver", app.cfg.Database.Driver, "error", err)
		}
		app.logger.Info("database migrations skipped", "driver", app.cfg.Database.Driver, "schema_version", version)
		return nil
	}
	if err := mig.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	version, err := mig.SchemaVersion(ctx)
	if err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to read schema version: %w", err)
	}
	app.logger.Info("database migrations applied successfully", "driver", app.cfg.Database.Driver, "schema_version", version)
	return nil
}

// initBlobs selects the upload storage backend.
func (app *Application) initBlobs(ctx context.Context) error {
	switch app.cfg.Uploads.Driver {
	case "minio":
		s := app.cfg.Storage
		client, err := minio.New(s.Endpoint, &minio.Options{
			Creds:  credentials.NewStaticV4(s.AccessKey, s.SecretKey, ""),
			Secure: s.UseSSL,
		})
		if err != nil {
			return fmt.Errorf("failed to create minio client: %w", err)
		}
		storageClient, err := blobminio.NewClient(ctx, client, s.Bucket)
		if err != nil {
			return fmt.Errorf("failed to initialize storage client: %w", err)
		}
		app.blobs = storageClient
	default:
		dir, err := local.New(app.cfg.Uploads.Dir)
		if err != nil {
			return err
		}
		app.blobs = dir
	}
	return nil
}

// initServices initializes all business logic services
func (app *Application) initServices() {
	smtpCfg := app.cfg.SMTPConfig()
	if smtpCfg.Enabled() {
		app.notifier = notify.NewSMTP(smtpCfg)
	} else {
		app.logger.Info("smtp not configured, notifications disabled")
		app.notifier = notify.Noop{}
	}

	app.authService = &service.AuthService{
		Store:  app.db,
		Hasher: cryptox.NewPasswordHasher(app.cfg.PasswordPepper),
		Issuer: app.issuer,
	}
	app.intakeService = &service.IntakeService{
		Store:    app.db,
		Cipher:   app.cipher,
		Notifier: app.notifier,
	}
	app.adminService = &service.AdminService{Store: app.db, Cipher: app.cipher}
	app.reviewService = &service.ReviewService{Store: app.db, Notifier: app.notifier}
	app.analyticsService = &service.AnalyticsService{Store: app.db}
	app.uploadService = &service.UploadService{Blobs: app.blobs}
	app.catalogService = &service.CatalogService{Store: app.db}
	app.cartService = &service.CartService{Store: app.db}
	app.orderService = &service.OrderService{Store: app.db, Cipher: app.cipher, Notifier: app.notifier}

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
		app.cfg.AuditRetention,
	)
}

// initHTTP initializes the HTTP router and server
func (app *Application) initHTTP() error {
	cors := httpx.NewCORSConfig(app.cfg.WebOrigin, app.cfg.ExtraOrigins...)
	router, err := httpapi.NewRouter(
		app.issuer,
		app.cfg.CookiePolicy(),
		cors,
		app.cfg.RateLimits,
		app.cfg.TrustProxy,
		BuildVersion,
		app.db,
		app.logger,
	)
	if err != nil {
		return fmt.Errorf("failed to initialize router: %w", err)
	}

	// Wire services to router
	router.AuthService = app.authService
	router.IntakeService = app.intakeService
	router.AdminService = app.adminService
	router.ReviewService = app.reviewService
	router.AnalyticsService = app.analyticsService
	router.UploadService = app.uploadService
	router.CatalogService = app.catalogService
	router.CartService = app.cartService
	router.OrderService = app.orderService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
	return nil
}

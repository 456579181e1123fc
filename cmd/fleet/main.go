package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/rapidsphere/fleet-erp/internal/app"
	"github.com/rapidsphere/fleet-erp/internal/audit"
	"github.com/rapidsphere/fleet-erp/internal/auth"
	"github.com/rapidsphere/fleet-erp/internal/fleet"
	"github.com/rapidsphere/fleet-erp/internal/observability"
	"github.com/rapidsphere/fleet-erp/internal/platform/cache"
	"github.com/rapidsphere/fleet-erp/internal/platform/db"
	"github.com/rapidsphere/fleet-erp/internal/rbac"
	"github.com/rapidsphere/fleet-erp/internal/shared"
	"github.com/rapidsphere/fleet-erp/internal/view"
	"github.com/rapidsphere/fleet-erp/jobs"
)

const sessionCookie = "fleet_session"

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}
	logger := app.NewLogger(cfg)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("fleet server", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *app.Config, logger *slog.Logger) error {
	redisClient, err := cache.New(ctx, cfg.Redis())
	if err != nil {
		return err
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	var pool *pgxpool.Pool
	if cfg.AuthProvider == app.AuthProviderPostgres || cfg.AuditEnabled {
		pool, err = db.New(ctx, cfg.Postgres())
		if err != nil {
			return err
		}
		defer pool.Close()
		if cfg.PGMigrate {
			if err := db.Migrate(ctx, pool); err != nil {
				return err
			}
		}
	}

	var provider auth.Provider
	switch cfg.AuthProvider {
	case app.AuthProviderPostgres:
		provider = auth.NewPGProvider(pool)
	default:
		static, err := auth.NewStaticProvider(0, auth.DemoAccounts()...)
		if err != nil {
			return err
		}
		provider = static
	}
	logger.Info("credential provider ready", slog.String("provider", cfg.AuthProvider))

	redisOpts := cfg.Redis().AsynqOpts()
	var events auth.EventSink = auth.NopEventSink{}
	var jobHandler *jobs.Handler
	var auditHandler *audit.Handler
	if cfg.AuditEnabled {
		client := jobs.NewClient(redisOpts)
		defer func() {
			if err := client.Close(); err != nil {
				logger.Warn("jobs client close", slog.Any("error", err))
			}
		}()
		events = client

		inspector := asynq.NewInspector(redisOpts)
		defer func() {
			if err := inspector.Close(); err != nil {
				logger.Warn("inspector close", slog.Any("error", err))
			}
		}()
		jobHandler = jobs.NewHandler(inspector, logger)
		auditHandler = audit.NewHandler(logger, audit.NewService(audit.NewPGRepository(pool)))
	}

	templates, err := view.NewEngine()
	if err != nil {
		return err
	}
	sessionManager := shared.NewSessionManager(redisClient, sessionCookie, cfg.SessionTTL, cfg.IsProduction())
	csrfManager := shared.NewCSRFManager(cfg.CSRFSecret)
	metrics := observability.NewMetrics()
	rbacMiddleware := rbac.Middleware{Logger: logger}

	authHandler := auth.NewHandler(logger, templates, sessionManager, csrfManager, auth.HandlerConfig{
		Events:         events,
		Metrics:        metrics,
		LoginRateLimit: cfg.LoginRateLimit,
	})

	router := app.NewRouter(app.RouterParams{
		Logger:             logger,
		Config:             cfg,
		SessionManager:     sessionManager,
		CSRFManager:        csrfManager,
		Provider:           provider,
		AuthHandler:        authHandler,
		FleetHandler:       fleet.NewHandler(logger, fleet.NewCatalog(), templates, csrfManager, rbacMiddleware),
		PermissionsHandler: rbac.NewPermissionsHandler(logger, templates, csrfManager, rbacMiddleware),
		JobHandler:         jobHandler,
		AuditHandler:       auditHandler,
		RBACMiddleware:     rbacMiddleware,
		Metrics:            metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return server.Shutdown(shutdownCtx)
	})
	return g.Wait()
}

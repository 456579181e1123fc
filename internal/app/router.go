package app

import (
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/rapidsphere/fleet-erp/internal/audit"
	"github.com/rapidsphere/fleet-erp/internal/auth"
	"github.com/rapidsphere/fleet-erp/internal/fleet"
	"github.com/rapidsphere/fleet-erp/internal/observability"
	"github.com/rapidsphere/fleet-erp/internal/rbac"
	"github.com/rapidsphere/fleet-erp/internal/shared"
	"github.com/rapidsphere/fleet-erp/jobs"
	"github.com/rapidsphere/fleet-erp/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger             *slog.Logger
	Config             *Config
	SessionManager     *shared.SessionManager
	CSRFManager        *shared.CSRFManager
	Provider           auth.Provider
	AuthHandler        *auth.Handler
	FleetHandler       *fleet.Handler
	PermissionsHandler *rbac.PermissionsHandler
	JobHandler         *jobs.Handler
	AuditHandler       *audit.Handler
	RBACMiddleware     rbac.Middleware
	Metrics            *observability.Metrics
}

// NewRouter constructs the chi.Router with fleet defaults.
func NewRouter(params RouterParams) http.Handler {
	if params.Logger == nil {
		params.Logger = slog.Default()
	}
	if err := registerStaticMimeTypes(); err != nil {
		params.Logger.Warn("static mime types", slog.Any("error", err))
	}

	r := chi.NewRouter()

	if !InTestMode() {
		r.Use(chimw.Logger)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})
	if params.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", params.Metrics.Handler())
	}

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	r.Group(func(r chi.Router) {
		for _, mw := range MiddlewareStack(MiddlewareConfig{
			Logger:         params.Logger,
			Config:         params.Config,
			SessionManager: params.SessionManager,
			CSRFManager:    params.CSRFManager,
			Provider:       params.Provider,
			Metrics:        params.Metrics,
		}) {
			r.Use(mw)
		}

		r.Route("/auth", params.AuthHandler.MountRoutes)
		r.Route("/api/v1", func(r chi.Router) {
			params.AuthHandler.MountAPIRoutes(r)
			if params.FleetHandler != nil {
				params.FleetHandler.MountAPIRoutes(r)
			}
			if params.PermissionsHandler != nil {
				params.PermissionsHandler.MountAPIRoutes(r)
			}
			if params.JobHandler != nil {
				r.Route("/jobs", func(r chi.Router) {
					r.Use(params.RBACMiddleware.Require(auth.RoleAdmin))
					params.JobHandler.MountRoutes(r)
				})
			}
			if params.AuditHandler != nil {
				r.Route("/audit", func(r chi.Router) {
					r.Use(params.RBACMiddleware.Require(auth.RoleAdmin))
					params.AuditHandler.MountRoutes(r)
				})
			}
		})
		if params.FleetHandler != nil {
			params.FleetHandler.MountRoutes(r)
		}
		if params.PermissionsHandler != nil {
			r.Route(rbac.PathSettings, params.PermissionsHandler.MountRoutes)
		}
	})

	return r
}

// staticCacheHandler lets browsers cache static assets for an hour.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}

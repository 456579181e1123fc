package rbac

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rapidsphere/fleet-erp/internal/auth"
	"github.com/rapidsphere/fleet-erp/internal/platform/httpx"
	"github.com/rapidsphere/fleet-erp/internal/shared"
	"github.com/rapidsphere/fleet-erp/internal/view"
)

// AccessRow is one destination of the access matrix.
type AccessRow struct {
	Title   string
	Path    string
	Minimum string
	Allowed []bool
}

// AccessMatrix shows, for every destination, which roles can reach it.
type AccessMatrix struct {
	Roles []string
	Rows  []AccessRow
}

// BuildAccessMatrix evaluates every destination against every known role.
func BuildAccessMatrix() AccessMatrix {
	roles := auth.Roles()
	matrix := AccessMatrix{Roles: make([]string, len(roles))}
	for i, role := range roles {
		matrix.Roles[i] = role.String()
	}
	for _, d := range Navigation() {
		row := AccessRow{Title: d.Title, Path: d.Path, Allowed: make([]bool, len(roles))}
		if floor, ok := MinimumRole(d.Roles...); ok {
			row.Minimum = floor.String()
		}
		for i, role := range roles {
			row.Allowed[i] = RolePermits(role, d.Roles...)
		}
		matrix.Rows = append(matrix.Rows, row)
	}
	return matrix
}

// PermissionsHandler serves the settings page with the role access matrix.
type PermissionsHandler struct {
	logger    *slog.Logger
	templates *view.Engine
	csrf      *shared.CSRFManager
	rbac      Middleware
}

// NewPermissionsHandler builds PermissionsHandler instance.
func NewPermissionsHandler(logger *slog.Logger, templates *view.Engine, csrf *shared.CSRFManager, rbac Middleware) *PermissionsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &PermissionsHandler{logger: logger, templates: templates, csrf: csrf, rbac: rbac}
}

// MountRoutes registers the settings routes.
func (h *PermissionsHandler) MountRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(h.rbac.RequireDestination(PathSettings))
		r.Get("/", h.showMatrix)
	})
}

// MountAPIRoutes registers the navigation endpoint for the signed-in identity.
func (h *PermissionsHandler) MountAPIRoutes(r chi.Router) {
	r.With(h.rbac.Require(auth.Roles()...)).Get("/navigation", h.navigation)
}

func (h *PermissionsHandler) showMatrix(w http.ResponseWriter, r *http.Request) {
	data := PageData(r, h.csrf, "Settings", BuildAccessMatrix())
	if err := h.templates.Render(w, http.StatusOK, "pages/settings.html", data); err != nil {
		h.logger.Error("render settings", slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

type navigationEntry struct {
	Title string `json:"title"`
	Path  string `json:"path"`
}

func (h *PermissionsHandler) navigation(w http.ResponseWriter, r *http.Request) {
	identity, _ := auth.CurrentIdentity(r.Context())
	visible := Visible(&identity)
	out := make([]navigationEntry, 0, len(visible))
	for _, d := range visible {
		out = append(out, navigationEntry{Title: d.Title, Path: d.Path})
	}
	httpx.JSON(w, http.StatusOK, out)
}

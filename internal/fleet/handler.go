package fleet

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rapidsphere/fleet-erp/internal/auth"
	"github.com/rapidsphere/fleet-erp/internal/platform/httpx"
	"github.com/rapidsphere/fleet-erp/internal/rbac"
	"github.com/rapidsphere/fleet-erp/internal/shared"
	"github.com/rapidsphere/fleet-erp/internal/view"
)

// Handler serves the record pages and their JSON mirrors.
type Handler struct {
	logger    *slog.Logger
	catalog   *Catalog
	templates *view.Engine
	csrf      *shared.CSRFManager
	rbac      rbac.Middleware
}

// NewHandler builds Handler instance.
func NewHandler(
	logger *slog.Logger,
	catalog *Catalog,
	templates *view.Engine,
	csrf *shared.CSRFManager,
	rbac rbac.Middleware,
) *Handler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Handler{
		logger:    logger,
		catalog:   catalog,
		templates: templates,
		csrf:      csrf,
		rbac:      rbac,
	}
}

// MountRoutes registers the HTML pages, each guarded by its navigation role set.
func (h *Handler) MountRoutes(r chi.Router) {
	r.With(h.rbac.RequireDestination(rbac.PathDashboard)).Get(rbac.PathDashboard, h.showDashboard)
	r.With(h.rbac.RequireDestination(rbac.PathUsers)).Get(rbac.PathUsers, h.showUsers)
	r.With(h.rbac.RequireDestination(rbac.PathClients)).Get(rbac.PathClients, h.showClients)
	r.With(h.rbac.RequireDestination(rbac.PathVehicles)).Get(rbac.PathVehicles, h.showVehicles)
	r.With(h.rbac.RequireDestination(rbac.PathDrivers)).Get(rbac.PathDrivers, h.showDrivers)
	r.With(h.rbac.RequireDestination(rbac.PathAttendance)).Get(rbac.PathAttendance, h.showAttendance)
	r.With(h.rbac.RequireDestination(rbac.PathDiesel)).Get(rbac.PathDiesel, h.showDiesel)
	r.With(h.rbac.RequireDestination(rbac.PathReports)).Get(rbac.PathReports, h.showReports)
	r.With(h.rbac.RequireDestination(rbac.PathNotifications)).Get(rbac.PathNotifications, h.showNotifications)
}

// MountAPIRoutes registers the JSON endpoints under the API prefix.
func (h *Handler) MountAPIRoutes(r chi.Router) {
	r.With(h.rbac.RequireDestination(rbac.PathDashboard)).Get("/dashboard", h.apiDashboard)
	r.With(h.rbac.RequireDestination(rbac.PathUsers)).Get("/users", h.apiUsers)
	r.With(h.rbac.RequireDestination(rbac.PathClients)).Get("/clients", h.apiClients)
	r.With(h.rbac.RequireDestination(rbac.PathVehicles)).Get("/vehicles", h.apiVehicles)
	r.With(h.rbac.RequireDestination(rbac.PathDrivers)).Get("/drivers", h.apiDrivers)
	r.With(h.rbac.RequireDestination(rbac.PathAttendance)).Get("/attendance", h.apiAttendance)
	r.With(h.rbac.RequireDestination(rbac.PathDiesel)).Get("/diesel", h.apiDiesel)
	r.With(h.rbac.RequireDestination(rbac.PathReports)).Get("/reports", h.apiReports)
}

type dashboardPage struct {
	Greeting string
	Dashboard
}

type vehiclesPage struct {
	Filter   VehicleFilter
	Vehicles []Vehicle
	Clients  []string
	Stats    VehicleStats
}

type driversPage struct {
	Filter  DriverFilter
	Drivers []Driver
	Stats   DriverStats
}

type clientsPage struct {
	Filter  ClientFilter
	Clients []Client
	Stats   ClientStats
}

type attendancePage struct {
	Filter AttendanceFilter
	AttendanceView
}

type dieselPage struct {
	Filter DieselFilter
	DieselView
}

type usersPage struct {
	Filter UserFilter
	Users  []DirectoryUser
	Roles  []string
	Stats  UserStats
}

type reportsPage struct {
	Type    string
	Types   []string
	Reports []Report
	Alerts  int
}

type placeholderPage struct {
	Message string
}

func (h *Handler) showDashboard(w http.ResponseWriter, r *http.Request) {
	page := dashboardPage{Dashboard: h.catalog.Dashboard()}
	if identity, ok := auth.CurrentIdentity(r.Context()); ok {
		page.Greeting = "Welcome back, " + identity.Name + "!"
	}
	h.render(w, r, "Dashboard", "pages/dashboard.html", page)
}

func (h *Handler) showVehicles(w http.ResponseWriter, r *http.Request) {
	filter := vehicleFilter(r)
	h.render(w, r, "Vehicles", "pages/vehicles.html", vehiclesPage{
		Filter:   filter,
		Vehicles: h.catalog.Vehicles(filter),
		Clients:  h.catalog.VehicleClients(),
		Stats:    h.catalog.VehicleStats(),
	})
}

func (h *Handler) showDrivers(w http.ResponseWriter, r *http.Request) {
	filter := driverFilter(r)
	h.render(w, r, "Drivers", "pages/drivers.html", driversPage{
		Filter:  filter,
		Drivers: h.catalog.Drivers(filter),
		Stats:   h.catalog.DriverStats(),
	})
}

func (h *Handler) showClients(w http.ResponseWriter, r *http.Request) {
	filter := ClientFilter{Search: r.URL.Query().Get("search")}
	h.render(w, r, "Clients", "pages/clients.html", clientsPage{
		Filter:  filter,
		Clients: h.catalog.Clients(filter),
		Stats:   h.catalog.ClientStats(),
	})
}

func (h *Handler) showAttendance(w http.ResponseWriter, r *http.Request) {
	filter := attendanceFilter(r)
	h.render(w, r, "Attendance", "pages/attendance.html", attendancePage{
		Filter:         filter,
		AttendanceView: h.catalog.Attendance(filter),
	})
}

func (h *Handler) showDiesel(w http.ResponseWriter, r *http.Request) {
	filter := dieselFilter(r)
	h.render(w, r, "Diesel Entry", "pages/diesel.html", dieselPage{
		Filter:     filter,
		DieselView: h.catalog.Diesel(filter),
	})
}

func (h *Handler) showUsers(w http.ResponseWriter, r *http.Request) {
	filter := userFilter(r)
	roles := auth.Roles()
	names := make([]string, len(roles))
	for i, role := range roles {
		names[i] = role.String()
	}
	h.render(w, r, "Users", "pages/users.html", usersPage{
		Filter: filter,
		Users:  h.catalog.Users(filter),
		Roles:  names,
		Stats:  h.catalog.UserStats(),
	})
}

func (h *Handler) showReports(w http.ResponseWriter, r *http.Request) {
	reportType := optionParam(r, "type")
	h.render(w, r, "Reports", "pages/reports.html", reportsPage{
		Type:    reportType,
		Types:   ReportTypes(),
		Reports: h.catalog.Reports(reportType),
		Alerts:  h.catalog.ReportAlerts(),
	})
}

func (h *Handler) showNotifications(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, "Notifications", "pages/placeholder.html", placeholderPage{
		Message: "Notification center coming soon.",
	})
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, title, name string, data any) {
	page := rbac.PageData(r, h.csrf, title, data)
	if err := h.templates.Render(w, http.StatusOK, name, page); err != nil {
		h.logger.Error("render page", slog.String("template", name), slog.Any("error", err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
	}
}

func (h *Handler) apiDashboard(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, h.catalog.Dashboard())
}

func (h *Handler) apiVehicles(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"vehicles": nonNil(h.catalog.Vehicles(vehicleFilter(r))),
		"clients":  h.catalog.VehicleClients(),
		"stats":    h.catalog.VehicleStats(),
	})
}

func (h *Handler) apiDrivers(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"drivers": nonNil(h.catalog.Drivers(driverFilter(r))),
		"stats":   h.catalog.DriverStats(),
	})
}

func (h *Handler) apiClients(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"clients": nonNil(h.catalog.Clients(ClientFilter{Search: r.URL.Query().Get("search")})),
		"stats":   h.catalog.ClientStats(),
	})
}

func (h *Handler) apiAttendance(w http.ResponseWriter, r *http.Request) {
	out := h.catalog.Attendance(attendanceFilter(r))
	out.Records = nonNil(out.Records)
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) apiDiesel(w http.ResponseWriter, r *http.Request) {
	out := h.catalog.Diesel(dieselFilter(r))
	out.Entries = nonNil(out.Entries)
	httpx.JSON(w, http.StatusOK, out)
}

func (h *Handler) apiUsers(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"users": nonNil(h.catalog.Users(userFilter(r))),
		"stats": h.catalog.UserStats(),
	})
}

func (h *Handler) apiReports(w http.ResponseWriter, r *http.Request) {
	httpx.JSON(w, http.StatusOK, map[string]any{
		"reports": nonNil(h.catalog.Reports(optionParam(r, "type"))),
	})
}

// optionParam reads a select filter, defaulting to AllOption.
func optionParam(r *http.Request, key string) string {
	if v := r.URL.Query().Get(key); v != "" {
		return v
	}
	return AllOption
}

func vehicleFilter(r *http.Request) VehicleFilter {
	return VehicleFilter{
		Search: r.URL.Query().Get("search"),
		Status: optionParam(r, "status"),
		Client: optionParam(r, "client"),
	}
}

func driverFilter(r *http.Request) DriverFilter {
	return DriverFilter{
		Search:  r.URL.Query().Get("search"),
		Status:  optionParam(r, "status"),
		License: optionParam(r, "license"),
	}
}

func userFilter(r *http.Request) UserFilter {
	return UserFilter{
		Search: r.URL.Query().Get("search"),
		Role:   optionParam(r, "role"),
		Status: optionParam(r, "status"),
	}
}

func attendanceFilter(r *http.Request) AttendanceFilter {
	q := r.URL.Query()
	date := q.Get("date")
	if !q.Has("date") {
		date = DefaultAttendanceDate
	}
	return AttendanceFilter{
		Date:   date,
		Client: optionParam(r, "client"),
		Site:   optionParam(r, "site"),
		Search: q.Get("search"),
	}
}

// dieselFilter opens on the default day; an explicit empty date shows every day.
func dieselFilter(r *http.Request) DieselFilter {
	q := r.URL.Query()
	date := q.Get("date")
	if !q.Has("date") {
		date = DefaultDieselDate
	}
	return DieselFilter{
		Search: q.Get("search"),
		Status: optionParam(r, "status"),
		Date:   date,
	}
}

// nonNil keeps empty lists encoding as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

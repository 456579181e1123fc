package rbac

import (
	"net/http"
	"strings"

	"github.com/rapidsphere/fleet-erp/internal/auth"
	"github.com/rapidsphere/fleet-erp/internal/shared"
	"github.com/rapidsphere/fleet-erp/internal/view"
)

// Destination is a navigable page guarded by a required-role set.
type Destination struct {
	Title string
	Path  string
	Roles []auth.Role
}

var (
	everyone   = []auth.Role{auth.RoleAdmin, auth.RoleSupervisor, auth.RoleSiteManager, auth.RoleDriver}
	management = []auth.Role{auth.RoleAdmin, auth.RoleSupervisor, auth.RoleSiteManager}
	adminOnly  = []auth.Role{auth.RoleAdmin}
)

// Destination paths.
const (
	PathDashboard     = "/"
	PathUsers         = "/users"
	PathClients       = "/clients"
	PathVehicles      = "/vehicles"
	PathDrivers       = "/drivers"
	PathAttendance    = "/attendance"
	PathDiesel        = "/diesel"
	PathReports       = "/reports"
	PathNotifications = "/notifications"
	PathSettings      = "/settings"
)

var navigation = []Destination{
	{Title: "Dashboard", Path: PathDashboard, Roles: everyone},
	{Title: "Users", Path: PathUsers, Roles: adminOnly},
	{Title: "Clients", Path: PathClients, Roles: management},
	{Title: "Vehicles", Path: PathVehicles, Roles: management},
	{Title: "Drivers", Path: PathDrivers, Roles: management},
	{Title: "Attendance", Path: PathAttendance, Roles: management},
	{Title: "Diesel Entry", Path: PathDiesel, Roles: management},
	{Title: "Reports", Path: PathReports, Roles: management},
	{Title: "Notifications", Path: PathNotifications, Roles: management},
	{Title: "Settings", Path: PathSettings, Roles: adminOnly},
}

// Navigation returns a copy of the destination table in sidebar order.
func Navigation() []Destination {
	out := make([]Destination, len(navigation))
	for i, d := range navigation {
		d.Roles = append([]auth.Role(nil), d.Roles...)
		out[i] = d
	}
	return out
}

// Lookup finds the destination registered for path.
func Lookup(path string) (Destination, bool) {
	for _, d := range navigation {
		if d.Path == path {
			d.Roles = append([]auth.Role(nil), d.Roles...)
			return d, true
		}
	}
	return Destination{}, false
}

// RolesFor returns the role set guarding path. Unknown paths fall back to admin only.
func RolesFor(path string) []auth.Role {
	if d, ok := Lookup(path); ok {
		return d.Roles
	}
	return append([]auth.Role(nil), adminOnly...)
}

// Visible lists the destinations identity may reach.
func Visible(identity *auth.Identity) []Destination {
	var out []Destination
	for _, d := range Navigation() {
		if Permits(identity, d.Roles...) {
			out = append(out, d)
		}
	}
	return out
}

// IsActive reports whether currentPath belongs to d. The dashboard only matches exactly.
func IsActive(d Destination, currentPath string) bool {
	if d.Path == PathDashboard {
		return currentPath == PathDashboard
	}
	return currentPath == d.Path || strings.HasPrefix(currentPath, d.Path+"/")
}

// NavItems builds the sidebar for identity with the active entry marked.
func NavItems(identity *auth.Identity, currentPath string) []view.NavItem {
	visible := Visible(identity)
	items := make([]view.NavItem, 0, len(visible))
	for _, d := range visible {
		items = append(items, view.NavItem{Title: d.Title, Path: d.Path, Active: IsActive(d, currentPath)})
	}
	return items
}

// Viewer converts identity for the layout; nil when logged out.
func Viewer(identity *auth.Identity) *view.Viewer {
	if identity == nil {
		return nil
	}
	return &view.Viewer{
		ID:       identity.ID,
		Username: identity.Username,
		Name:     identity.Name,
		Role:     identity.Role.String(),
		Email:    identity.Email,
	}
}

// PageData assembles the layout data for a page rendered to the current identity.
func PageData(r *http.Request, csrf *shared.CSRFManager, title string, data any) view.TemplateData {
	sess := shared.SessionFromContext(r.Context())
	var csrfToken string
	if csrf != nil {
		csrfToken, _ = csrf.EnsureToken(r.Context(), sess)
	}
	var flash *shared.FlashMessage
	if sess != nil {
		flash = sess.PopFlash()
	}
	var current *auth.Identity
	if identity, ok := auth.CurrentIdentity(r.Context()); ok {
		current = &identity
	}
	return view.TemplateData{
		Title:       title,
		CSRFToken:   csrfToken,
		Flash:       flash,
		CurrentPath: r.URL.Path,
		Viewer:      Viewer(current),
		Navigation:  NavItems(current, r.URL.Path),
		Data:        data,
	}
}

package rbac

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rapidsphere/fleet-erp/internal/auth"
	"github.com/rapidsphere/fleet-erp/internal/shared"
)

func titles(ds []Destination) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Title
	}
	return out
}

func TestVisiblePerRole(t *testing.T) {
	management := []string{"Dashboard", "Clients", "Vehicles", "Drivers", "Attendance", "Diesel Entry", "Reports", "Notifications"}
	tests := []struct {
		role auth.Role
		want []string
	}{
		{auth.RoleAdmin, []string{"Dashboard", "Users", "Clients", "Vehicles", "Drivers", "Attendance", "Diesel Entry", "Reports", "Notifications", "Settings"}},
		{auth.RoleSupervisor, management},
		{auth.RoleSiteManager, management},
		{auth.RoleDriver, []string{"Dashboard"}},
	}
	for _, tt := range tests {
		t.Run(tt.role.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, titles(Visible(&auth.Identity{Role: tt.role})))
		})
	}
	assert.Empty(t, Visible(nil))
}

func TestNavigationReturnsCopies(t *testing.T) {
	nav := Navigation()
	nav[0].Roles[0] = auth.RoleUnknown
	nav[1].Title = "Changed"

	again := Navigation()
	assert.Equal(t, auth.RoleAdmin, again[0].Roles[0])
	assert.Equal(t, "Users", again[1].Title)
}

func TestRolesFor(t *testing.T) {
	assert.Len(t, RolesFor(PathDashboard), 4)
	assert.Equal(t, []auth.Role{auth.RoleAdmin}, RolesFor(PathUsers))
	assert.Equal(t, []auth.Role{auth.RoleAdmin}, RolesFor("/unknown"))

	_, ok := Lookup("/unknown")
	assert.False(t, ok)
}

func TestIsActive(t *testing.T) {
	dashboard, _ := Lookup(PathDashboard)
	vehicles, _ := Lookup(PathVehicles)

	assert.True(t, IsActive(dashboard, "/"))
	assert.False(t, IsActive(dashboard, "/vehicles"))
	assert.True(t, IsActive(vehicles, "/vehicles"))
	assert.True(t, IsActive(vehicles, "/vehicles/42"))
	assert.False(t, IsActive(vehicles, "/vehiclesx"))
}

func TestNavItemsMarksActive(t *testing.T) {
	items := NavItems(&auth.Identity{Role: auth.RoleSupervisor}, "/drivers")
	require.Len(t, items, 8)
	var active []string
	for _, item := range items {
		if item.Active {
			active = append(active, item.Title)
		}
	}
	assert.Equal(t, []string{"Drivers"}, active)
}

func TestPageData(t *testing.T) {
	sess := &shared.Session{ID: "sid"}
	sess.AddFlash(shared.FlashMessage{Kind: "success", Message: "hi"})
	store := auth.NewStore(auth.NewMemoryStorage(), nil, nil)

	req := httptest.NewRequest("GET", "/reports", nil)
	ctx := shared.ContextWithSession(req.Context(), sess)
	ctx = auth.ContextWithStore(ctx, store)
	req = req.WithContext(ctx)

	data := PageData(req, shared.NewCSRFManager("k"), "Reports", 1)
	assert.Equal(t, "Reports", data.Title)
	assert.NotEmpty(t, data.CSRFToken)
	require.NotNil(t, data.Flash)
	assert.Equal(t, "hi", data.Flash.Message)
	assert.Nil(t, data.Viewer)
	assert.Empty(t, data.Navigation)
	assert.Equal(t, "/reports", data.CurrentPath)
}

func TestBuildAccessMatrix(t *testing.T) {
	m := BuildAccessMatrix()
	assert.Equal(t, []string{"Admin", "Supervisor", "Site Manager", "Driver"}, m.Roles)
	require.Len(t, m.Rows, len(Navigation()))

	byTitle := make(map[string]AccessRow)
	for _, row := range m.Rows {
		byTitle[row.Title] = row
	}
	assert.Equal(t, []bool{true, true, true, true}, byTitle["Dashboard"].Allowed)
	assert.Equal(t, "Driver", byTitle["Dashboard"].Minimum)
	assert.Equal(t, []bool{true, false, false, false}, byTitle["Users"].Allowed)
	assert.Equal(t, []bool{true, true, true, false}, byTitle["Reports"].Allowed)
	assert.Equal(t, "Site Manager", byTitle["Reports"].Minimum)
}

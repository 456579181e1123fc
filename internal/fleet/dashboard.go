package fleet

import "fmt"

// Alert severities.
const (
	AlertWarning = "warning"
	AlertInfo    = "info"
)

// KPI is one headline card on the dashboard.
type KPI struct {
	Title  string `json:"title"`
	Value  string `json:"value"`
	Change string `json:"change"`
}

// Alert is an actionable notice derived from record state.
type Alert struct {
	Type        string `json:"type"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Path        string `json:"path"`
}

// Dashboard is the landing page summary.
type Dashboard struct {
	KPIs   []KPI   `json:"kpis"`
	Alerts []Alert `json:"alerts"`
}

// Dashboard derives KPIs and alerts from the records.
func (c *Catalog) Dashboard() Dashboard {
	clients := c.ClientStats()
	vehicles := c.VehicleStats()
	drivers := c.DriverStats()
	attendance := c.Attendance(AttendanceFilter{Date: DefaultAttendanceDate})

	present := attendance.Stats.CheckedIn + attendance.Stats.CheckedOut + attendance.Stats.Late
	rate := 0
	if attendance.Stats.Total > 0 {
		rate = present * 100 / attendance.Stats.Total
	}

	out := Dashboard{
		KPIs: []KPI{
			{Title: "Total Clients", Value: fmt.Sprint(clients.Total), Change: fmt.Sprintf("%d sites", clients.TotalSites)},
			{Title: "Active Vehicles", Value: fmt.Sprint(vehicles.Active), Change: fmt.Sprintf("of %d in fleet", vehicles.Total)},
			{Title: "Total Drivers", Value: fmt.Sprint(drivers.Total), Change: fmt.Sprintf("%d active", drivers.Active)},
			{Title: "Attendance Today", Value: fmt.Sprintf("%d%%", rate), Change: fmt.Sprintf("%d/%d checked in", present, attendance.Stats.Total)},
		},
	}

	if vehicles.ComplianceAlerts > 0 {
		out.Alerts = append(out.Alerts, Alert{
			Type:        AlertWarning,
			Title:       "Vehicle Compliance",
			Description: fmt.Sprintf("%d vehicles have insurance or permits expiring or expired", vehicles.ComplianceAlerts),
			Path:        "/vehicles",
		})
	}
	if renewals := drivers.ExpiredLicenses + drivers.ExpiringLicenses; renewals > 0 {
		out.Alerts = append(out.Alerts, Alert{
			Type:        AlertInfo,
			Title:       "Driver License Renewal",
			Description: fmt.Sprintf("%d drivers need license renewal", renewals),
			Path:        "/drivers",
		})
	}
	if pending := c.PendingDiesel(); pending > 0 {
		out.Alerts = append(out.Alerts, Alert{
			Type:        AlertInfo,
			Title:       "Diesel Entries Pending",
			Description: fmt.Sprintf("%d diesel entries awaiting approval", pending),
			Path:        "/diesel",
		})
	}
	return out
}

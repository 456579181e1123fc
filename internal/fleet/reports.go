package fleet

// Report types.
const (
	ReportExpiry     = "expiry"
	ReportAttendance = "attendance"
	ReportFuel       = "fuel"
	ReportVehicle    = "vehicle"
	ReportDriver     = "driver"
)

// ReportTypes lists the report type filter options.
func ReportTypes() []string {
	return []string{ReportExpiry, ReportAttendance, ReportFuel, ReportVehicle, ReportDriver}
}

// Report describes a generated report available for download.
type Report struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Type          string `json:"type"`
	LastGenerated string `json:"last_generated"`
	Records       int    `json:"records"`
	Alerts        int    `json:"alerts"`
}

// Reports returns the reports of reportType, or all of them for "" and AllOption.
func (c *Catalog) Reports(reportType string) []Report {
	var out []Report
	for _, r := range c.reports {
		if matchesOption(reportType, r.Type) {
			out = append(out, r)
		}
	}
	return out
}

// ReportAlerts sums the alerts raised by every report.
func (c *Catalog) ReportAlerts() int {
	total := 0
	for _, r := range c.reports {
		total += r.Alerts
	}
	return total
}

func sampleReports() []Report {
	return []Report{
		{ID: "1", Title: "Vehicle Expiry Reminders", Description: "Insurance, permits, and compliance expiry tracking", Type: ReportExpiry, LastGenerated: "2024-09-12 09:00", Records: 156, Alerts: 8},
		{ID: "2", Title: "Driver License Expiry", Description: "Driving license renewal and compliance status", Type: ReportExpiry, LastGenerated: "2024-09-12 08:30", Records: 89, Alerts: 5},
		{ID: "3", Title: "Daily Attendance Report", Description: "Driver attendance and duty assignment summary", Type: ReportAttendance, LastGenerated: "2024-09-12 10:00", Records: 89, Alerts: 3},
		{ID: "4", Title: "Weekly Attendance Summary", Description: "Site-wise attendance compliance and trends", Type: ReportAttendance, LastGenerated: "2024-09-11 18:00", Records: 623, Alerts: 12},
		{ID: "5", Title: "Fuel Efficiency Report", Description: "Vehicle-wise mileage and fuel consumption analysis", Type: ReportFuel, LastGenerated: "2024-09-12 07:30", Records: 156, Alerts: 15},
		{ID: "6", Title: "Monthly Fuel Summary", Description: "Fleet fuel consumption and cost analysis", Type: ReportFuel, LastGenerated: "2024-09-01 09:00", Records: 892, Alerts: 0},
		{ID: "7", Title: "Vehicle Maintenance Report", Description: "Service schedules and maintenance tracking", Type: ReportVehicle, LastGenerated: "2024-09-10 15:30", Records: 156, Alerts: 22},
		{ID: "8", Title: "Driver Performance Report", Description: "Driver efficiency and compliance metrics", Type: ReportDriver, LastGenerated: "2024-09-11 16:00", Records: 89, Alerts: 8},
	}
}

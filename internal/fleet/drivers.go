package fleet

import "strings"

// Driver statuses.
const (
	DriverActive    = "active"
	DriverSuspended = "suspended"
	DriverInactive  = "inactive"
)

// Driver is a staff driver with licence and payroll details.
type Driver struct {
	ID               string   `json:"id"`
	DriverID         string   `json:"driver_id"`
	Name             string   `json:"name"`
	Phone            string   `json:"phone"`
	Email            string   `json:"email"`
	Experience       int      `json:"experience"`
	LicenseNumber    string   `json:"license_number"`
	LicenseExpiry    string   `json:"license_expiry"`
	LicenseStatus    string   `json:"license_status"`
	EligibleVehicles []string `json:"eligible_vehicles"`
	HeavyBadge       bool     `json:"heavy_badge"`
	BankName         string   `json:"bank_name"`
	AccountNumber    string   `json:"account_number"`
	IFSCCode         string   `json:"ifsc_code"`
	Status           string   `json:"status"`
	CurrentVehicle   string   `json:"current_vehicle,omitempty"`
	JoinDate         string   `json:"join_date"`
	LastDuty         string   `json:"last_duty"`
}

// DriverFilter narrows the driver list.
type DriverFilter struct {
	Search  string
	Status  string
	License string
}

// Match applies the filter. Name and staff ID match ignoring case; the phone number
// matches as typed.
func (f DriverFilter) Match(d Driver) bool {
	search := anyContainsFold(f.Search, d.Name, d.DriverID) || strings.Contains(d.Phone, f.Search)
	return search &&
		matchesOption(f.Status, d.Status) &&
		matchesOption(f.License, d.LicenseStatus)
}

// DriverStats are the headline counts of the driver page.
type DriverStats struct {
	Total            int `json:"total"`
	Active           int `json:"active"`
	ExpiredLicenses  int `json:"expired_licenses"`
	ExpiringLicenses int `json:"expiring_licenses"`
}

// Drivers returns the drivers matching f.
func (c *Catalog) Drivers(f DriverFilter) []Driver {
	var out []Driver
	for _, d := range c.drivers {
		if f.Match(d) {
			d.EligibleVehicles = append([]string(nil), d.EligibleVehicles...)
			out = append(out, d)
		}
	}
	return out
}

// DriverStats counts over all drivers.
func (c *Catalog) DriverStats() DriverStats {
	stats := DriverStats{Total: len(c.drivers)}
	for _, d := range c.drivers {
		if d.Status == DriverActive {
			stats.Active++
		}
		switch d.LicenseStatus {
		case DocExpired:
			stats.ExpiredLicenses++
		case DocExpiring:
			stats.ExpiringLicenses++
		}
	}
	return stats
}

func sampleDrivers() []Driver {
	return []Driver{
		{
			ID: "1", DriverID: "STAFF001", Name: "John Doe", Phone: "+91 98765 43210", Email: "john.doe@fleet.com",
			Experience: 8, LicenseNumber: "DL1420110012345", LicenseExpiry: "2025-03-15", LicenseStatus: DocValid,
			EligibleVehicles: []string{"Heavy Truck", "Medium Truck"}, HeavyBadge: true,
			BankName: "HDFC Bank", AccountNumber: "1234567890", IFSCCode: "HDFC0001234",
			Status: DriverActive, CurrentVehicle: "MH12-AB-1234", JoinDate: "2022-01-15", LastDuty: "2024-09-12",
		},
		{
			ID: "2", DriverID: "ROUTE002", Name: "Jane Smith", Phone: "+91 87654 32109", Email: "jane.smith@fleet.com",
			Experience: 5, LicenseNumber: "DL1420110067890", LicenseExpiry: "2024-11-20", LicenseStatus: DocExpiring,
			EligibleVehicles: []string{"Light Vehicle", "Medium Truck"}, HeavyBadge: false,
			BankName: "SBI Bank", AccountNumber: "0987654321", IFSCCode: "SBIN0001234",
			Status: DriverActive, CurrentVehicle: "KA05-CD-5678", JoinDate: "2023-03-20", LastDuty: "2024-09-12",
		},
		{
			ID: "3", DriverID: "CASH003", Name: "Mike Johnson", Phone: "+91 76543 21098", Email: "mike.johnson@fleet.com",
			Experience: 12, LicenseNumber: "DL1420110011111", LicenseExpiry: "2024-09-30", LicenseStatus: DocExpired,
			EligibleVehicles: []string{"Heavy Truck", "Medium Truck", "Light Vehicle"}, HeavyBadge: true,
			BankName: "ICICI Bank", AccountNumber: "5555666677", IFSCCode: "ICIC0001234",
			Status: DriverSuspended, JoinDate: "2020-06-10", LastDuty: "2024-09-08",
		},
		{
			ID: "4", DriverID: "STAFF004", Name: "Sarah Wilson", Phone: "+91 65432 10987", Email: "sarah.wilson@fleet.com",
			Experience: 3, LicenseNumber: "DL1420110022222", LicenseExpiry: "2025-12-10", LicenseStatus: DocValid,
			EligibleVehicles: []string{"Light Vehicle"}, HeavyBadge: false,
			BankName: "Axis Bank", AccountNumber: "9999888877", IFSCCode: "UTIB0001234",
			Status: DriverActive, JoinDate: "2024-02-01", LastDuty: "2024-09-11",
		},
	}
}

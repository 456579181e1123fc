package fleet

// Document states shared by insurance, permits and licences.
const (
	DocValid    = "valid"
	DocExpiring = "expiring"
	DocExpired  = "expired"
)

// Vehicle statuses.
const (
	VehicleActive      = "active"
	VehicleMaintenance = "maintenance"
	VehicleInactive    = "inactive"
)

// Compliance labels derived from insurance and permit state.
const (
	ComplianceOK       = "Compliant"
	ComplianceExpiring = "Expiring Soon"
	ComplianceFailed   = "Non-Compliant"
)

// Document is an expiring document attached to a vehicle.
type Document struct {
	Expiry string `json:"expiry"`
	Status string `json:"status"`
}

// Vehicle is a fleet vehicle assigned to a client site.
type Vehicle struct {
	ID           string   `json:"id"`
	Registration string   `json:"registration"`
	Type         string   `json:"type"`
	Brand        string   `json:"brand"`
	Year         int      `json:"year"`
	Client       string   `json:"client"`
	Site         string   `json:"site"`
	Driver       string   `json:"driver"`
	Status       string   `json:"status"`
	Insurance    Document `json:"insurance"`
	Permit       Document `json:"permit"`
	LastService  string   `json:"last_service"`
	Mileage      int      `json:"mileage"`
}

// Compliance summarises the vehicle's documents: any expired document makes it
// non-compliant, otherwise any expiring one flags it.
func (v Vehicle) Compliance() string {
	switch {
	case v.Insurance.Status == DocExpired || v.Permit.Status == DocExpired:
		return ComplianceFailed
	case v.Insurance.Status == DocExpiring || v.Permit.Status == DocExpiring:
		return ComplianceExpiring
	default:
		return ComplianceOK
	}
}

// VehicleFilter narrows the vehicle list.
type VehicleFilter struct {
	Search string
	Status string
	Client string
}

// Match applies the filter to one vehicle. Search covers registration, brand and driver.
func (f VehicleFilter) Match(v Vehicle) bool {
	return anyContainsFold(f.Search, v.Registration, v.Brand, v.Driver) &&
		matchesOption(f.Status, v.Status) &&
		matchesOption(f.Client, v.Client)
}

// VehicleStats are the headline counts of the vehicle page.
type VehicleStats struct {
	Total            int `json:"total"`
	Active           int `json:"active"`
	ComplianceAlerts int `json:"compliance_alerts"`
}

// Vehicles returns the vehicles matching f.
func (c *Catalog) Vehicles(f VehicleFilter) []Vehicle {
	var out []Vehicle
	for _, v := range c.vehicles {
		if f.Match(v) {
			out = append(out, v)
		}
	}
	return out
}

// VehicleClients lists the distinct clients in catalog order.
func (c *Catalog) VehicleClients() []string {
	names := make([]string, 0, len(c.vehicles))
	for _, v := range c.vehicles {
		names = append(names, v.Client)
	}
	return uniqueInOrder(names)
}

// VehicleStats counts over the whole fleet, not the filtered view. A vehicle raises a
// compliance alert when any of its documents is not valid.
func (c *Catalog) VehicleStats() VehicleStats {
	stats := VehicleStats{Total: len(c.vehicles)}
	for _, v := range c.vehicles {
		if v.Status == VehicleActive {
			stats.Active++
		}
		if v.Compliance() != ComplianceOK {
			stats.ComplianceAlerts++
		}
	}
	return stats
}

func sampleVehicles() []Vehicle {
	return []Vehicle{
		{
			ID: "1", Registration: "MH12-AB-1234", Type: "Heavy Truck", Brand: "Tata", Year: 2020,
			Client: "TechCorp Solutions", Site: "Mumbai Office", Driver: "John Doe", Status: VehicleActive,
			Insurance: Document{Expiry: "2024-12-15", Status: DocValid},
			Permit:    Document{Expiry: "2024-10-30", Status: DocExpiring},
			LastService: "2024-09-01", Mileage: 45000,
		},
		{
			ID: "2", Registration: "KA05-CD-5678", Type: "Light Vehicle", Brand: "Mahindra", Year: 2021,
			Client: "Global Industries", Site: "Bangalore Hub", Driver: "Jane Smith", Status: VehicleActive,
			Insurance: Document{Expiry: "2025-03-20", Status: DocValid},
			Permit:    Document{Expiry: "2025-01-15", Status: DocValid},
			LastService: "2024-08-15", Mileage: 32000,
		},
		{
			ID: "3", Registration: "DL08-EF-9012", Type: "Medium Truck", Brand: "Ashok Leyland", Year: 2019,
			Client: "Metro Logistics", Site: "Delhi Warehouse", Driver: "Mike Johnson", Status: VehicleMaintenance,
			Insurance: Document{Expiry: "2024-09-30", Status: DocExpired},
			Permit:    Document{Expiry: "2024-11-10", Status: DocValid},
			LastService: "2024-09-10", Mileage: 78000,
		},
	}
}

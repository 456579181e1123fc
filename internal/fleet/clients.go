package fleet

// Site is a client location vehicles and drivers are assigned to.
type Site struct {
	ID               string `json:"id"`
	Name             string `json:"name"`
	Address          string `json:"address"`
	AssignedVehicles int    `json:"assigned_vehicles"`
	AssignedDrivers  int    `json:"assigned_drivers"`
}

// Client is a contracted customer company.
type Client struct {
	ID            string `json:"id"`
	CompanyName   string `json:"company_name"`
	ContactPerson string `json:"contact_person"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	City          string `json:"city"`
	State         string `json:"state"`
	Country       string `json:"country"`
	PostalCode    string `json:"postal_code"`
	Sites         []Site `json:"sites"`
	Status        string `json:"status"`
	ContractStart string `json:"contract_start"`
	TotalVehicles int    `json:"total_vehicles"`
}

// ClientFilter narrows the client list by company, contact or email.
type ClientFilter struct {
	Search string
}

// Match applies the filter.
func (f ClientFilter) Match(c Client) bool {
	return anyContainsFold(f.Search, c.CompanyName, c.ContactPerson, c.Email)
}

// ClientStats are the headline counts of the client page.
type ClientStats struct {
	Total         int `json:"total"`
	Active        int `json:"active"`
	TotalSites    int `json:"total_sites"`
	TotalVehicles int `json:"total_vehicles"`
}

// Clients returns the clients matching f.
func (c *Catalog) Clients(f ClientFilter) []Client {
	var out []Client
	for _, cl := range c.clients {
		if f.Match(cl) {
			cl.Sites = append([]Site(nil), cl.Sites...)
			out = append(out, cl)
		}
	}
	return out
}

// ClientStats sums over all clients.
func (c *Catalog) ClientStats() ClientStats {
	stats := ClientStats{Total: len(c.clients)}
	for _, cl := range c.clients {
		if cl.Status == "active" {
			stats.Active++
		}
		stats.TotalSites += len(cl.Sites)
		stats.TotalVehicles += cl.TotalVehicles
	}
	return stats
}

func sampleClients() []Client {
	return []Client{
		{
			ID: "1", CompanyName: "TechCorp Solutions", ContactPerson: "David Johnson",
			Email: "david@techcorp.com", Phone: "+91 98765 43210",
			Address: "Tech Park, Sector 5", City: "Mumbai", State: "Maharashtra", Country: "India", PostalCode: "400001",
			Status: "active", ContractStart: "2024-01-15", TotalVehicles: 25,
			Sites: []Site{
				{ID: "1", Name: "Mumbai Office", Address: "Bandra Kurla Complex, Mumbai", AssignedVehicles: 15, AssignedDrivers: 18},
				{ID: "2", Name: "Pune Branch", Address: "Hinjewadi IT Park, Pune", AssignedVehicles: 10, AssignedDrivers: 12},
			},
		},
		{
			ID: "2", CompanyName: "Global Industries Ltd", ContactPerson: "Sarah Williams",
			Email: "sarah@globalind.com", Phone: "+91 87654 32109",
			Address: "Industrial Area, Phase 2", City: "Bangalore", State: "Karnataka", Country: "India", PostalCode: "560001",
			Status: "active", ContractStart: "2024-02-01", TotalVehicles: 18,
			Sites: []Site{
				{ID: "3", Name: "Bangalore Hub", Address: "Electronic City, Bangalore", AssignedVehicles: 18, AssignedDrivers: 22},
			},
		},
		{
			ID: "3", CompanyName: "Metro Logistics", ContactPerson: "Rajesh Kumar",
			Email: "rajesh@metrologistics.com", Phone: "+91 76543 21098",
			Address: "Logistics Park, Gurgaon", City: "Delhi", State: "Delhi", Country: "India", PostalCode: "110001",
			Status: "active", ContractStart: "2024-03-10", TotalVehicles: 32,
			Sites: []Site{
				{ID: "4", Name: "Delhi Warehouse", Address: "Industrial Area, Gurgaon", AssignedVehicles: 20, AssignedDrivers: 25},
				{ID: "5", Name: "Noida Distribution Center", Address: "Sector 63, Noida", AssignedVehicles: 12, AssignedDrivers: 15},
			},
		},
	}
}

package fleet

// Diesel entry approval states.
const (
	DieselPending  = "pending"
	DieselApproved = "approved"
	DieselRejected = "rejected"
)

// DefaultDieselDate is the day the diesel page opens on.
const DefaultDieselDate = "2024-09-12"

// DieselEntry is one refuelling with odometer and bill details.
type DieselEntry struct {
	ID              string  `json:"id"`
	Date            string  `json:"date"`
	VehicleNumber   string  `json:"vehicle_number"`
	DriverName      string  `json:"driver_name"`
	Quantity        float64 `json:"quantity"`
	OdometerReading int     `json:"odometer_reading"`
	PreviousReading int     `json:"previous_reading"`
	DistanceCovered int     `json:"distance_covered"`
	Mileage         float64 `json:"mileage"`
	IdealMileage    float64 `json:"ideal_mileage"`
	Efficiency      string  `json:"efficiency"`
	BillAmount      float64 `json:"bill_amount"`
	BillNumber      string  `json:"bill_number"`
	ApprovedBy      string  `json:"approved_by,omitempty"`
	Status          string  `json:"status"`
	EnteredBy       string  `json:"entered_by"`
	Notes           string  `json:"notes,omitempty"`
}

// DieselFilter narrows diesel entries. An empty Date matches every day.
type DieselFilter struct {
	Search string
	Status string
	Date   string
}

// Match applies the filter.
func (f DieselFilter) Match(e DieselEntry) bool {
	return anyContainsFold(f.Search, e.VehicleNumber, e.DriverName) &&
		matchesOption(f.Status, e.Status) &&
		(f.Date == "" || e.Date == f.Date)
}

// DieselStats summarise the filtered entries.
type DieselStats struct {
	TotalEntries int     `json:"total_entries"`
	TotalFuel    float64 `json:"total_fuel"`
	TotalAmount  float64 `json:"total_amount"`
	AvgMileage   float64 `json:"avg_mileage"`
	Pending      int     `json:"pending"`
}

// DieselView is the filtered diesel page.
type DieselView struct {
	Entries []DieselEntry `json:"entries"`
	Stats   DieselStats   `json:"stats"`
}

// Diesel filters entries and summarises them. Average mileage is zero when nothing matches.
func (c *Catalog) Diesel(f DieselFilter) DieselView {
	var view DieselView
	var mileage float64
	for _, e := range c.diesel {
		if !f.Match(e) {
			continue
		}
		view.Entries = append(view.Entries, e)
		view.Stats.TotalEntries++
		view.Stats.TotalFuel += e.Quantity
		view.Stats.TotalAmount += e.BillAmount
		mileage += e.Mileage
		if e.Status == DieselPending {
			view.Stats.Pending++
		}
	}
	if view.Stats.TotalEntries > 0 {
		view.Stats.AvgMileage = mileage / float64(view.Stats.TotalEntries)
	}
	return view
}

// PendingDiesel counts entries awaiting approval across all days.
func (c *Catalog) PendingDiesel() int {
	n := 0
	for _, e := range c.diesel {
		if e.Status == DieselPending {
			n++
		}
	}
	return n
}

func sampleDiesel() []DieselEntry {
	return []DieselEntry{
		{
			ID: "1", Date: "2024-09-12", VehicleNumber: "MH12-AB-1234", DriverName: "John Doe",
			Quantity: 50, OdometerReading: 45250, PreviousReading: 45000, DistanceCovered: 250,
			Mileage: 5.0, IdealMileage: 4.5, Efficiency: "excellent",
			BillAmount: 4500, BillNumber: "PB-2024-001", ApprovedBy: "Manager Mike",
			Status: DieselApproved, EnteredBy: "Supervisor Jane", Notes: "Highway driving, good efficiency",
		},
		{
			ID: "2", Date: "2024-09-12", VehicleNumber: "KA05-CD-5678", DriverName: "Jane Smith",
			Quantity: 40, OdometerReading: 32150, PreviousReading: 32000, DistanceCovered: 150,
			Mileage: 3.75, IdealMileage: 4.2, Efficiency: "poor",
			BillAmount: 3600, BillNumber: "PB-2024-002",
			Status: DieselPending, EnteredBy: "Supervisor Mike", Notes: "City traffic, low efficiency",
		},
		{
			ID: "3", Date: "2024-09-11", VehicleNumber: "DL08-EF-9012", DriverName: "Mike Johnson",
			Quantity: 60, OdometerReading: 78500, PreviousReading: 78200, DistanceCovered: 300,
			Mileage: 5.0, IdealMileage: 4.8, Efficiency: "good",
			BillAmount: 5400, BillNumber: "PB-2024-003", ApprovedBy: "Manager Sarah",
			Status: DieselApproved, EnteredBy: "Supervisor David",
		},
	}
}

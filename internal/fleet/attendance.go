package fleet

// Attendance statuses.
const (
	AttendanceCheckedIn  = "checked-in"
	AttendanceCheckedOut = "checked-out"
	AttendanceAbsent     = "absent"
	AttendanceLate       = "late"
)

// AttendanceRecord is one driver's duty for a day at a client site.
type AttendanceRecord struct {
	ID            string `json:"id"`
	Date          string `json:"date"`
	ClientName    string `json:"client_name"`
	SiteName      string `json:"site_name"`
	VehicleNumber string `json:"vehicle_number"`
	DriverName    string `json:"driver_name"`
	CheckInTime   string `json:"check_in_time,omitempty"`
	CheckOutTime  string `json:"check_out_time,omitempty"`
	DutyType      string `json:"duty_type"`
	Status        string `json:"status"`
	Locked        bool   `json:"locked"`
	MarkedBy      string `json:"marked_by"`
}

// DefaultAttendanceDate is the day the attendance page opens on.
const DefaultAttendanceDate = "2024-09-12"

// AttendanceFilter narrows attendance records. Date must match exactly.
type AttendanceFilter struct {
	Date   string
	Client string
	Site   string
	Search string
}

// Match applies the filter.
func (f AttendanceFilter) Match(r AttendanceRecord) bool {
	return r.Date == f.Date &&
		matchesOption(f.Client, r.ClientName) &&
		matchesOption(f.Site, r.SiteName) &&
		anyContainsFold(f.Search, r.DriverName, r.VehicleNumber)
}

// AttendanceStats counts the filtered records by status.
type AttendanceStats struct {
	Total      int `json:"total"`
	CheckedIn  int `json:"checked_in"`
	CheckedOut int `json:"checked_out"`
	Absent     int `json:"absent"`
	Late       int `json:"late"`
}

// AttendanceView is the filtered attendance page.
type AttendanceView struct {
	Records []AttendanceRecord `json:"records"`
	Clients []string           `json:"clients"`
	Sites   []string           `json:"sites"`
	Stats   AttendanceStats    `json:"stats"`
}

// Attendance filters the records and derives the select options. Site options are
// limited to the selected client; stats count the filtered records only.
func (c *Catalog) Attendance(f AttendanceFilter) AttendanceView {
	view := AttendanceView{}
	clients := make([]string, 0, len(c.attendance))
	var sites []string
	for _, r := range c.attendance {
		clients = append(clients, r.ClientName)
		if matchesOption(f.Client, r.ClientName) {
			sites = append(sites, r.SiteName)
		}
		if !f.Match(r) {
			continue
		}
		view.Records = append(view.Records, r)
		view.Stats.Total++
		switch r.Status {
		case AttendanceCheckedIn:
			view.Stats.CheckedIn++
		case AttendanceCheckedOut:
			view.Stats.CheckedOut++
		case AttendanceAbsent:
			view.Stats.Absent++
		case AttendanceLate:
			view.Stats.Late++
		}
	}
	view.Clients = uniqueInOrder(clients)
	view.Sites = uniqueInOrder(sites)
	return view
}

func sampleAttendance() []AttendanceRecord {
	return []AttendanceRecord{
		{
			ID: "1", Date: "2024-09-12", ClientName: "TechCorp Solutions", SiteName: "Mumbai Office",
			VehicleNumber: "MH12-AB-1234", DriverName: "John Doe", CheckInTime: "08:30",
			DutyType: "Full Day", Status: AttendanceCheckedIn, MarkedBy: "Supervisor Jane",
		},
		{
			ID: "2", Date: "2024-09-12", ClientName: "Global Industries", SiteName: "Bangalore Hub",
			VehicleNumber: "KA05-CD-5678", DriverName: "Jane Smith", CheckInTime: "09:15", CheckOutTime: "17:30",
			DutyType: "Full Day", Status: AttendanceCheckedOut, Locked: true, MarkedBy: "Supervisor Mike",
		},
		{
			ID: "3", Date: "2024-09-12", ClientName: "Metro Logistics", SiteName: "Delhi Warehouse",
			VehicleNumber: "DL08-EF-9012", DriverName: "Mike Johnson",
			DutyType: "Full Day", Status: AttendanceAbsent, MarkedBy: "System",
		},
		{
			ID: "4", Date: "2024-09-12", ClientName: "TechCorp Solutions", SiteName: "Pune Branch",
			VehicleNumber: "MH20-XY-5555", DriverName: "Sarah Wilson", CheckInTime: "10:30",
			DutyType: "Half Day", Status: AttendanceLate, MarkedBy: "Supervisor David",
		},
	}
}

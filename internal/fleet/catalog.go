// Package fleet serves the dashboard's record pages: vehicles, drivers, clients,
// attendance, diesel entries, the user directory and reports.
//
// Records are fixed sample data. Filters are plain predicates over those lists.
package fleet

import "strings"

// AllOption is the filter value that disables a select filter.
const AllOption = "all"

// Catalog holds the sample records. It is read-only after construction and safe for
// concurrent use; accessors return copies.
type Catalog struct {
	vehicles   []Vehicle
	drivers    []Driver
	clients    []Client
	attendance []AttendanceRecord
	diesel     []DieselEntry
	users      []DirectoryUser
	reports    []Report
}

// NewCatalog returns the catalog with the bundled sample records.
func NewCatalog() *Catalog {
	return &Catalog{
		vehicles:   sampleVehicles(),
		drivers:    sampleDrivers(),
		clients:    sampleClients(),
		attendance: sampleAttendance(),
		diesel:     sampleDiesel(),
		users:      sampleUsers(),
		reports:    sampleReports(),
	}
}

// matchesOption treats an empty value or AllOption as "no filter".
func matchesOption(selected, value string) bool {
	return selected == "" || selected == AllOption || selected == value
}

// containsFold reports whether needle occurs in haystack ignoring case.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func anyContainsFold(needle string, fields ...string) bool {
	for _, f := range fields {
		if containsFold(f, needle) {
			return true
		}
	}
	return false
}

// uniqueInOrder keeps the first occurrence of each value.
func uniqueInOrder(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

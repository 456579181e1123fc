package fleet

// Directory account states.
const (
	UserActive   = "active"
	UserDisabled = "disabled"
)

// DirectoryUser is an account listed on the user management page.
type DirectoryUser struct {
	ID        string `json:"id"`
	Username  string `json:"username"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	LastLogin string `json:"last_login"`
	CreatedAt string `json:"created_at"`
}

// UserFilter narrows the directory. Role compares against the role display name.
type UserFilter struct {
	Search string
	Role   string
	Status string
}

// Match applies the filter.
func (f UserFilter) Match(u DirectoryUser) bool {
	return anyContainsFold(f.Search, u.Name, u.Email, u.Username) &&
		matchesOption(f.Role, u.Role) &&
		matchesOption(f.Status, u.Status)
}

// UserStats are the headline counts of the directory.
type UserStats struct {
	Total    int `json:"total"`
	Active   int `json:"active"`
	Disabled int `json:"disabled"`
	Admins   int `json:"admins"`
}

// Users returns the directory entries matching f.
func (c *Catalog) Users(f UserFilter) []DirectoryUser {
	var out []DirectoryUser
	for _, u := range c.users {
		if f.Match(u) {
			out = append(out, u)
		}
	}
	return out
}

// UserStats counts over the whole directory.
func (c *Catalog) UserStats() UserStats {
	stats := UserStats{Total: len(c.users)}
	for _, u := range c.users {
		switch u.Status {
		case UserActive:
			stats.Active++
		case UserDisabled:
			stats.Disabled++
		}
		if u.Role == "Admin" {
			stats.Admins++
		}
	}
	return stats
}

func sampleUsers() []DirectoryUser {
	return []DirectoryUser{
		{ID: "1", Username: "admin", Name: "John Admin", Email: "admin@fleet.com", Role: "Admin", Status: UserActive, LastLogin: "2024-09-12 09:30", CreatedAt: "2024-01-15"},
		{ID: "2", Username: "supervisor1", Name: "Jane Supervisor", Email: "supervisor@fleet.com", Role: "Supervisor", Status: UserActive, LastLogin: "2024-09-12 08:45", CreatedAt: "2024-02-20"},
		{ID: "3", Username: "manager1", Name: "Mike Manager", Email: "manager@fleet.com", Role: "Site Manager", Status: UserActive, LastLogin: "2024-09-11 16:20", CreatedAt: "2024-03-10"},
		{ID: "4", Username: "driver1", Name: "Sam Driver", Email: "driver@fleet.com", Role: "Driver", Status: UserActive, LastLogin: "2024-09-12 07:15", CreatedAt: "2024-04-05"},
		{ID: "5", Username: "manager2", Name: "Lisa Wilson", Email: "lisa.wilson@fleet.com", Role: "Site Manager", Status: UserDisabled, LastLogin: "2024-09-08 14:30", CreatedAt: "2024-05-12"},
	}
}

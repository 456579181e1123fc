package auth

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidCredentials indicates a username/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrUnknownRole is returned when a role name is outside the known set.
	ErrUnknownRole = errors.New("auth: unknown role")
)

// Role is a privilege level. Higher values outrank lower ones.
type Role int

// Known roles, lowest to highest privilege.
const (
	RoleUnknown Role = iota
	RoleDriver
	RoleSiteManager
	RoleSupervisor
	RoleAdmin
)

var roleNames = map[Role]string{
	RoleDriver:      "Driver",
	RoleSiteManager: "Site Manager",
	RoleSupervisor:  "Supervisor",
	RoleAdmin:       "Admin",
}

// Roles lists the known roles from highest to lowest privilege.
func Roles() []Role {
	return []Role{RoleAdmin, RoleSupervisor, RoleSiteManager, RoleDriver}
}

// ParseRole maps a display name such as "Site Manager" to its Role.
func ParseRole(name string) (Role, error) {
	for role, n := range roleNames {
		if n == name {
			return role, nil
		}
	}
	return RoleUnknown, fmt.Errorf("%w: %q", ErrUnknownRole, name)
}

// Valid reports whether r is one of the four known roles.
func (r Role) Valid() bool {
	_, ok := roleNames[r]
	return ok
}

// Rank returns the position of the role in the privilege ordering; 0 for unknown roles.
func (r Role) Rank() int {
	if !r.Valid() {
		return 0
	}
	return int(r)
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Role(%d)", int(r))
}

// MarshalText encodes the role as its display name.
func (r Role) MarshalText() ([]byte, error) {
	name, ok := roleNames[r]
	if !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownRole, int(r))
	}
	return []byte(name), nil
}

// UnmarshalText rejects anything but the four known display names.
func (r *Role) UnmarshalText(text []byte) error {
	role, err := ParseRole(string(text))
	if err != nil {
		return err
	}
	*r = role
	return nil
}

// Identity is the authenticated user held by a Store. It never carries a password.
type Identity struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Name     string `json:"name"`
	Role     Role   `json:"role"`
	Email    string `json:"email,omitempty"`
}

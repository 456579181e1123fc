// Package rbac decides which destinations an identity may reach.
//
// Access uses a rank floor: a role satisfies a requirement set when it ranks at or above
// any role in the set. A Supervisor therefore reaches a destination that only lists
// Site Manager.
package rbac

import "github.com/rapidsphere/fleet-erp/internal/auth"

// RolePermits reports whether current ranks at or above any role in required.
// Unknown roles never satisfy and are never satisfied; an empty set permits nothing.
func RolePermits(current auth.Role, required ...auth.Role) bool {
	if !current.Valid() {
		return false
	}
	for _, role := range required {
		if role.Valid() && current.Rank() >= role.Rank() {
			return true
		}
	}
	return false
}

// Permits applies RolePermits to an identity; a nil identity is never permitted.
func Permits(identity *auth.Identity, required ...auth.Role) bool {
	if identity == nil {
		return false
	}
	return RolePermits(identity.Role, required...)
}

// MinimumRole returns the lowest valid role in required, i.e. the floor a caller must reach.
func MinimumRole(required ...auth.Role) (auth.Role, bool) {
	floor := auth.RoleUnknown
	for _, role := range required {
		if !role.Valid() {
			continue
		}
		if floor == auth.RoleUnknown || role.Rank() < floor.Rank() {
			floor = role
		}
	}
	return floor, floor != auth.RoleUnknown
}

// Package authz is the single source of truth for role-based access.
//
// Every protected resource is named by a Capability, and each capability maps
// to its allowed role set in one table. Both enforcement layers, the
// per-route guard and the coarse path-prefix guard, consult this package, so
// there is exactly one place to edit when access rules change. ADMIN's
// implicit staff powers come from membership in the staff capability's set,
// never from a hand-written comparison in a handler.
package authz

import (
	"strings"

	"staffly/internal/data/entity"
)

type Capability string

const (
	// ManageUsers covers the admin user directory and all user mutations.
	ManageUsers Capability = "manage_users"

	// ViewAnalytics covers the admin dashboard and analytics surfaces.
	ViewAnalytics Capability = "view_analytics"

	// AccessStaffFeatures covers the staff dashboard and staff-only pages.
	AccessStaffFeatures Capability = "access_staff_features"

	// ViewDashboard is the baseline capability of any authenticated user.
	ViewDashboard Capability = "view_dashboard"
)

var grants = map[Capability][]entity.Role{
	ManageUsers:         {entity.RoleAdmin},
	ViewAnalytics:       {entity.RoleAdmin},
	AccessStaffFeatures: {entity.RoleAdmin, entity.RoleStaff},
	ViewDashboard:       {entity.RoleAdmin, entity.RoleStaff, entity.RoleUser},
}

// Allows reports whether role is in the allowed set of c.
// Unknown capabilities allow nothing.
func Allows(c Capability, role entity.Role) bool {
	for _, r := range grants[c] {
		if r == role {
			return true
		}
	}
	return false
}

// AllowedRoles returns a copy of the allowed role set for c.
func AllowedRoles(c Capability) []entity.Role {
	roles := grants[c]
	out := make([]entity.Role, len(roles))
	copy(out, roles)
	return out
}

// pathRules keys URL-path prefixes to the capability protecting them. This is
// the coarse, defense-in-depth layer; it resolves to the same grants table as
// the per-route guard, so the two can never drift apart.
var pathRules = []struct {
	prefix     string
	capability Capability
}{
	{"/accounts/users", ManageUsers},
	{"/analytics", ViewAnalytics},
	{"/dashboard/admin", ViewAnalytics},
	{"/dashboard/staff", AccessStaffFeatures},
	{"/staff", AccessStaffFeatures},
}

// CapabilityForPath returns the capability guarding the given request path,
// if any prefix rule matches.
func CapabilityForPath(path string) (Capability, bool) {
	for _, rule := range pathRules {
		if strings.HasPrefix(path, rule.prefix) {
			return rule.capability, true
		}
	}
	return "", false
}

// DashboardPath routes a role to its landing dashboard. Pure function:
// ADMIN to the admin view, STAFF to the staff view, anything else to the
// regular user view.
func DashboardPath(role entity.Role) string {
	switch role {
	case entity.RoleAdmin:
		return "/dashboard/admin/"
	case entity.RoleStaff:
		return "/dashboard/staff/"
	default:
		return "/dashboard/user/"
	}
}

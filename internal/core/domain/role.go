package domain

import (
	"errors"
	"fmt"
)

// Role identifies which of the portal's three account classes an actor
// belongs to. It is a closed set: ParseRole is the only constructor and
// rejects everything outside the three constants.
type Role string

const (
	RoleCitizen Role = "citizen"
	RoleCompany Role = "company"
	RoleAdmin   Role = "admin"
)

// dashboardRoutes is the single role → dashboard mapping. Every piece of
// redirect logic consults this table instead of switching on the role string.
var dashboardRoutes = map[Role]string{
	RoleCitizen: "/citizen-dashboard",
	RoleCompany: "/company-dashboard",
	RoleAdmin:   "/admin-dashboard",
}

var ErrUnknownRole = errors.New("unknown role")

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleCitizen, RoleCompany, RoleAdmin:
		return Role(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
}

// Valid reports whether r is one of the three portal roles.
func (r Role) Valid() bool {
	_, ok := dashboardRoutes[r]
	return ok
}

// DashboardRoute returns the dashboard path an authenticated actor with this
// role lands on after login or signup.
func (r Role) DashboardRoute() string {
	return dashboardRoutes[r]
}

func (r Role) String() string {
	return string(r)
}

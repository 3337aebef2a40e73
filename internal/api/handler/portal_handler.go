package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/optigov/ndpr-portal/internal/core/domain"
)

// PortalHandler serves the unauthenticated entry points: the landing page
// and the login entry the route guard redirects to.
type PortalHandler struct{}

func NewPortalHandler() *PortalHandler {
	return &PortalHandler{}
}

// Landing serves GET /.
func (h *PortalHandler) Landing(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"name":        "OptiGov NDPR Compliance Portal",
		"description": "Role-based data-protection-compliance portal for citizens, companies, and regulators.",
		"login":       "/login",
	})
}

type roleTab struct {
	Role      string `json:"role"`
	Label     string `json:"label"`
	Dashboard string `json:"dashboard"`
}

// LoginEntry serves GET /login: the role tabs and the endpoints the login
// and signup forms submit to.
func (h *PortalHandler) LoginEntry(c echo.Context) error {
	tabs := []roleTab{
		{Role: domain.RoleCitizen.String(), Label: "Citizen", Dashboard: domain.RoleCitizen.DashboardRoute()},
		{Role: domain.RoleCompany.String(), Label: "Company", Dashboard: domain.RoleCompany.DashboardRoute()},
		{Role: domain.RoleAdmin.String(), Label: "Admin", Dashboard: domain.RoleAdmin.DashboardRoute()},
	}
	return c.JSON(http.StatusOK, map[string]any{
		"tabs":   tabs,
		"login":  "/auth/login",
		"signup": "/auth/signup",
	})
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/optigov/ndpr-portal/internal/api/middleware"
	"github.com/optigov/ndpr-portal/internal/core/domain"
	"github.com/optigov/ndpr-portal/internal/core/ports"
)

// DashboardHandler serves the role dashboards. Each dashboard returns the
// caller's identity plus directory-derived figures; presentation is the
// front end's job.
type DashboardHandler struct {
	directory ports.UserDirectory
}

func NewDashboardHandler(directory ports.UserDirectory) *DashboardHandler {
	return &DashboardHandler{directory: directory}
}

type dashboardResponse struct {
	User       *domain.Identity     `json:"user"`
	RoleCounts map[string]int64     `json:"role_counts,omitempty"`
	Companies  []*domain.StoredUser `json:"companies,omitempty"`
}

// Citizen serves GET /citizen-dashboard.
//
// @Summary      Citizen dashboard
// @Tags         dashboards
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       /citizen-dashboard [get]
func (h *DashboardHandler) Citizen(c echo.Context) error {
	return c.JSON(http.StatusOK, dashboardResponse{User: middleware.IdentityFrom(c)})
}

// Company serves GET /company-dashboard.
//
// @Summary      Company dashboard
// @Tags         dashboards
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       /company-dashboard [get]
func (h *DashboardHandler) Company(c echo.Context) error {
	return c.JSON(http.StatusOK, dashboardResponse{User: middleware.IdentityFrom(c)})
}

// Admin serves GET /admin-dashboard with per-role account counts and the
// registered company accounts.
//
// @Summary      Admin dashboard
// @Tags         dashboards
// @Produce      json
// @Success      200  {object}  dashboardResponse
// @Router       /admin-dashboard [get]
func (h *DashboardHandler) Admin(c echo.Context) error {
	ctx := c.Request().Context()

	counts, err := h.directory.CountByRole(ctx)
	if err != nil {
		return err
	}
	companies, err := h.directory.ListByRole(ctx, domain.RoleCompany)
	if err != nil {
		return err
	}

	roleCounts := make(map[string]int64, len(counts))
	for role, n := range counts {
		roleCounts[role.String()] = n
	}

	return c.JSON(http.StatusOK, dashboardResponse{
		User:       middleware.IdentityFrom(c),
		RoleCounts: roleCounts,
		Companies:  companies,
	})
}

// CompanyDetail serves GET /company/:id, the admin-only detail view of a
// registered company account. Non-company records are reported as not
// found rather than leaked.
//
// @Summary      Company detail (admin only)
// @Tags         dashboards
// @Produce      json
// @Param        id   path      string  true  "Company account id"
// @Success      200  {object}  domain.StoredUser
// @Failure      404  {object}  map[string]string
// @Router       /company/{id} [get]
func (h *DashboardHandler) CompanyDetail(c echo.Context) error {
	user, err := h.directory.FindByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	if user.Role != domain.RoleCompany {
		return domain.ErrUserNotFound
	}
	return c.JSON(http.StatusOK, user)
}

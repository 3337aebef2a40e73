package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/optigov/ndpr-portal/internal/api/metrics"
	"github.com/optigov/ndpr-portal/internal/core/domain"
)

// loginRoute is the single entry point every refused access lands on.
// There is no separate forbidden page.
const loginRoute = "/login"

// Decision is the outcome of a route-guard check.
type Decision int

const (
	DecisionRender Decision = iota
	DecisionRedirectLogin
)

// Decide is the pure guard rule: render when an identity exists and its
// role is in the allowed set, redirect to login otherwise.
func Decide(identity *domain.Identity, allowed ...domain.Role) Decision {
	if identity == nil {
		return DecisionRedirectLogin
	}
	for _, role := range allowed {
		if identity.Role == role {
			return DecisionRender
		}
	}
	return DecisionRedirectLogin
}

// Guard protects a route for the given roles. The navigation side effect —
// a redirect to the login entry point — lives here; the decision itself is
// Decide and stays testable in isolation.
func Guard(allowed ...domain.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if Decide(IdentityFrom(c), allowed...) == DecisionRedirectLogin {
				metrics.GuardRedirectsTotal.WithLabelValues(c.Path()).Inc()
				return c.Redirect(http.StatusFound, loginRoute)
			}
			return next(c)
		}
	}
}

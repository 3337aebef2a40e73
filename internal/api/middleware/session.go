package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/optigov/ndpr-portal/internal/core/domain"
	"github.com/optigov/ndpr-portal/internal/core/ports"
)

const (
	// SessionCookie is the cookie carrying the session token for browser
	// clients.
	SessionCookie = "portal_session"

	// identityKey is where the resolved Identity lives in the echo context.
	identityKey = "identity"
)

// Session resolves the caller's Identity from the session cookie or a
// bearer token and injects it into the request context. Absence of a
// session is not an error here; the route guard decides what happens.
func Session(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if identity := resolveIdentity(c, sessions); identity != nil {
				c.Set(identityKey, identity)
			}
			return next(c)
		}
	}
}

func resolveIdentity(c echo.Context, sessions ports.SessionService) *domain.Identity {
	ctx := c.Request().Context()

	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if identity, err := sessions.Resolve(ctx, cookie.Value); err == nil {
			return identity
		}
	}

	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return nil
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return nil
	}
	identity, err := sessions.ResolveBearer(ctx, parts[1])
	if err != nil {
		return nil
	}
	return identity
}

// IdentityFrom returns the Identity the Session middleware resolved, or nil
// when the request is unauthenticated.
func IdentityFrom(c echo.Context) *domain.Identity {
	identity, _ := c.Get(identityKey).(*domain.Identity)
	return identity
}

// SessionTokenFrom returns the raw session token from the request cookie,
// or the empty string.
func SessionTokenFrom(c echo.Context) string {
	cookie, err := c.Cookie(SessionCookie)
	if err != nil {
		return ""
	}
	return cookie.Value
}

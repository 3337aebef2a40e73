package ports

import (
	"context"

	"github.com/optigov/ndpr-portal/internal/core/domain"
)

// AuthResult is what a successful signup or login hands back to the caller:
// the opened session and the dashboard the actor should land on.
type AuthResult struct {
	Identity     *domain.Identity
	SessionToken string
	BearerToken  string
	RedirectTo   string
}

// AuthService orchestrates the signup and login flows.
type AuthService interface {
	Signup(ctx context.Context, role domain.Role, form *domain.SignupForm) (*AuthResult, error)
	Login(ctx context.Context, role domain.Role, form *domain.LoginForm) (*AuthResult, error)
	Logout(ctx context.Context, token string) error
}

// SessionService resolves and manages session tokens.
type SessionService interface {
	Open(ctx context.Context, email string, role domain.Role, name string) (*domain.Identity, string, string, error)
	Resolve(ctx context.Context, token string) (*domain.Identity, error)
	ResolveBearer(ctx context.Context, bearer string) (*domain.Identity, error)
	Close(ctx context.Context, token string) error
}

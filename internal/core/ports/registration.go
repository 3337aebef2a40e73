package ports

import (
	"context"

	"github.com/optigov/ndpr-portal/internal/core/domain"
)

// RegistrationClient talks to the remote user-registration service. A
// rejection carries the service's own message as *domain.RegistrationError;
// transport failures are returned as ordinary errors.
type RegistrationClient interface {
	Register(ctx context.Context, form *domain.SignupForm) error
}

package ports

import (
	"context"

	"github.com/optigov/ndpr-portal/internal/core/domain"
)

// SessionStore persists the Identity for each session token.
//
// Load must fail soft: a corrupt record is discarded (the slot deleted) and
// reported as domain.ErrSessionNotFound, never as a parse error.
type SessionStore interface {
	Load(ctx context.Context, token string) (*domain.Identity, error)
	Save(ctx context.Context, token string, identity *domain.Identity) error
	Delete(ctx context.Context, token string) error
}

package ports

import (
	"context"

	"github.com/optigov/ndpr-portal/internal/core/domain"
)

// UserDirectory is the append-only collection of signup records that the
// login flow reads.
type UserDirectory interface {
	// Append stores a new record. A record with the same email or phone
	// already present yields domain.ErrUserExists.
	Append(ctx context.Context, user *domain.StoredUser) (*domain.StoredUser, error)

	// FindByLogin returns the record whose email or phone equals
	// emailOrPhone and whose role equals role, or domain.ErrUserNotFound.
	// Password checking is the caller's job.
	FindByLogin(ctx context.Context, emailOrPhone string, role domain.Role) (*domain.StoredUser, error)

	// FindByID returns a single record by its id, or domain.ErrUserNotFound.
	FindByID(ctx context.Context, id string) (*domain.StoredUser, error)

	// CountByRole returns the number of records per role.
	CountByRole(ctx context.Context) (map[domain.Role]int64, error)

	// ListByRole returns all records with the given role, oldest first.
	ListByRole(ctx context.Context, role domain.Role) ([]*domain.StoredUser, error)
}

package ports

import (
	"context"

	"github.com/bookworks/book-app/internal/core/domain"
)

// PrincipalStore is the persistence abstraction for principal records,
// keyed by username within each principal kind. The store is the authority
// on username uniqueness: the service-level existence check and the save are
// separate operations, so under a concurrent race the store's unique
// constraint must reject the second write (ErrUsernameTaken).
type PrincipalStore interface {
	FindByUsername(ctx context.Context, kind domain.Role, username string) (*domain.Principal, error)
	FindByID(ctx context.Context, kind domain.Role, id string) (*domain.Principal, error)
	Create(ctx context.Context, p *domain.Principal) (*domain.Principal, error)
	DeleteByID(ctx context.Context, kind domain.Role, id string) error
}

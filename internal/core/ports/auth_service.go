package ports

import (
	"context"

	"github.com/bookworks/book-app/internal/core/domain"
)

// RegisterInput carries the fields accepted by public registration.
type RegisterInput struct {
	Name     string
	Surname  string
	Username string
	Password string
}

// AuthService orchestrates registration and login for all principal kinds.
// Both operations return a signed token on success.
type AuthService interface {
	Register(ctx context.Context, kind domain.Role, in RegisterInput) (string, error)
	Authenticate(ctx context.Context, kind domain.Role, username, password string) (string, error)
}

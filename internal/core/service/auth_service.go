package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookworks/book-app/internal/core/domain"
	"github.com/bookworks/book-app/internal/core/ports"
)

// AuthService implements registration and login for all principal kinds with
// a single flow parameterized by kind, instead of one near-identical method
// set per kind.
type AuthService struct {
	store  ports.PrincipalStore
	hasher PasswordHasher
	tokens *TokenIssuer
	log    zerolog.Logger
}

func NewAuthService(store ports.PrincipalStore, hasher PasswordHasher, tokens *TokenIssuer, log zerolog.Logger) *AuthService {
	return &AuthService{store: store, hasher: hasher, tokens: tokens, log: log}
}

// Register creates a new principal of the given kind and returns a token for
// it. The existence check and the save are two separate store operations;
// concurrent registrations of the same username race, and the store's unique
// index rejects the second write.
func (s *AuthService) Register(ctx context.Context, kind domain.Role, in ports.RegisterInput) (string, error) {
	if !kind.Registrable() {
		return "", domain.NewValidationError("role", "registration is not available for this role")
	}
	username := domain.NormalizeUsername(in.Username)
	if username == "" {
		return "", domain.NewValidationError("username", "username can not be empty")
	}
	if strings.TrimSpace(in.Password) == "" {
		return "", domain.NewValidationError("password", "password can not be empty")
	}

	if _, err := s.store.FindByUsername(ctx, kind, username); err == nil {
		return "", domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrPrincipalNotFound) {
		return "", fmt.Errorf("register %s: %w", strings.ToLower(string(kind)), err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return "", fmt.Errorf("register %s: hash password: %w", strings.ToLower(string(kind)), err)
	}

	now := time.Now().UTC()
	principal := &domain.Principal{
		Name:         in.Name,
		Surname:      in.Surname,
		Username:     username,
		PasswordHash: hash,
		Role:         kind,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.store.Create(ctx, principal)
	if err != nil {
		return "", err
	}

	s.log.Info().
		Str("username", created.Username).
		Str("role", string(created.Role)).
		Msg("principal registered")

	return s.tokens.Issue(created)
}

// Authenticate verifies a principal's credentials and returns a fresh token.
// Unknown username and wrong password fail with the same error so the
// response never reveals which half was wrong.
func (s *AuthService) Authenticate(ctx context.Context, kind domain.Role, username, password string) (string, error) {
	username = domain.NormalizeUsername(username)
	if username == "" || password == "" {
		return "", domain.ErrInvalidCredentials
	}

	principal, err := s.store.FindByUsername(ctx, kind, username)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			return "", domain.ErrInvalidCredentials
		}
		return "", fmt.Errorf("authenticate %s: %w", strings.ToLower(string(kind)), err)
	}

	if !s.hasher.Verify(password, principal.PasswordHash) {
		return "", domain.ErrInvalidCredentials
	}

	s.log.Debug().
		Str("username", principal.Username).
		Str("role", string(principal.Role)).
		Msg("principal authenticated")

	return s.tokens.Issue(principal)
}

// EnsureAdmin provisions the configured admin account at startup when it
// does not exist yet. Admins have no public registration endpoint.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	username = domain.NormalizeUsername(username)
	if username == "" || password == "" {
		return nil
	}

	if _, err := s.store.FindByUsername(ctx, domain.RoleAdmin, username); err == nil {
		return nil
	} else if !errors.Is(err, domain.ErrPrincipalNotFound) {
		return fmt.Errorf("ensure admin: %w", err)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("ensure admin: hash password: %w", err)
	}

	now := time.Now().UTC()
	if _, err := s.store.Create(ctx, &domain.Principal{
		Username:     username,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CreatedAt:    now,
		UpdatedAt:    now,
	}); err != nil {
		// A concurrent replica may have seeded it first.
		if errors.Is(err, domain.ErrUsernameTaken) {
			return nil
		}
		return fmt.Errorf("ensure admin: %w", err)
	}

	s.log.Info().Str("username", username).Msg("admin account provisioned")
	return nil
}

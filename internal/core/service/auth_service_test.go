package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/bookworks/book-app/internal/core/domain"
	"github.com/bookworks/book-app/internal/core/ports"
)

type stubPrincipalStore struct {
	records map[string]*domain.Principal // keyed by kind/username
	nextID  int
}

func newStubPrincipalStore() *stubPrincipalStore {
	return &stubPrincipalStore{records: make(map[string]*domain.Principal)}
}

func storeKey(kind domain.Role, username string) string {
	return string(kind) + "/" + username
}

func clonePrincipal(p *domain.Principal) *domain.Principal {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (s *stubPrincipalStore) FindByUsername(_ context.Context, kind domain.Role, username string) (*domain.Principal, error) {
	if p, ok := s.records[storeKey(kind, username)]; ok {
		return clonePrincipal(p), nil
	}
	return nil, domain.ErrPrincipalNotFound
}

func (s *stubPrincipalStore) FindByID(_ context.Context, kind domain.Role, id string) (*domain.Principal, error) {
	for _, p := range s.records {
		if p.Role == kind && p.ID == id {
			return clonePrincipal(p), nil
		}
	}
	return nil, domain.ErrPrincipalNotFound
}

func (s *stubPrincipalStore) Create(_ context.Context, p *domain.Principal) (*domain.Principal, error) {
	key := storeKey(p.Role, p.Username)
	if _, exists := s.records[key]; exists {
		return nil, domain.ErrUsernameTaken
	}
	s.nextID++
	copy := clonePrincipal(p)
	copy.ID = fmt.Sprintf("id-%d", s.nextID)
	s.records[key] = clonePrincipal(copy)
	return copy, nil
}

func (s *stubPrincipalStore) DeleteByID(_ context.Context, kind domain.Role, id string) error {
	for key, p := range s.records {
		if p.Role == kind && p.ID == id {
			delete(s.records, key)
			return nil
		}
	}
	return domain.ErrPrincipalNotFound
}

func newTestAuthService(store *stubPrincipalStore) *AuthService {
	hasher := NewPasswordHasher(4) // minimum cost keeps tests fast
	tokens := NewTokenIssuer("secret", time.Hour)
	return NewAuthService(store, hasher, tokens, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	store := newStubPrincipalStore()
	svc := newTestAuthService(store)

	token, err := svc.Register(context.Background(), domain.RoleReader, registerInput("Alice", "A", "alice", "p@ss1234"))
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if token == "" {
		t.Fatalf("expected token, got empty")
	}

	claims, err := NewTokenIssuer("secret", time.Hour).Parse(token)
	if err != nil {
		t.Fatalf("issued token does not parse: %v", err)
	}
	if claims.Subject != "alice" {
		t.Fatalf("expected subject alice, got %q", claims.Subject)
	}
	if claims.Role != domain.RoleReader {
		t.Fatalf("expected role READER, got %s", claims.Role)
	}

	stored, err := store.FindByUsername(context.Background(), domain.RoleReader, "alice")
	if err != nil {
		t.Fatalf("record not persisted: %v", err)
	}
	if stored.PasswordHash == "p@ss1234" {
		t.Fatalf("expected password to be hashed")
	}
	if !NewPasswordHasher(4).Verify("p@ss1234", stored.PasswordHash) {
		t.Fatalf("stored hash does not match password")
	}
}

func TestAuthService_Register_NormalizesUsername(t *testing.T) {
	store := newStubPrincipalStore()
	svc := newTestAuthService(store)

	if _, err := svc.Register(context.Background(), domain.RoleAuthor, registerInput("Bob", "B", "  BoB  ", "pass")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := store.FindByUsername(context.Background(), domain.RoleAuthor, "bob"); err != nil {
		t.Fatalf("expected username stored lowercased: %v", err)
	}

	// Same account through a different casing at login.
	if _, err := svc.Authenticate(context.Background(), domain.RoleAuthor, "BOB", "pass"); err != nil {
		t.Fatalf("authenticate with different casing failed: %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	store := newStubPrincipalStore()
	svc := newTestAuthService(store)

	if _, err := svc.Register(context.Background(), domain.RoleReader, registerInput("Alice", "A", "alice", "pass")); err != nil {
		t.Fatalf("first register failed: %v", err)
	}

	before := len(store.records)
	if _, err := svc.Register(context.Background(), domain.RoleReader, registerInput("Alice", "A", "alice", "other")); err != domain.ErrUsernameTaken {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if len(store.records) != before {
		t.Fatalf("duplicate registration persisted a record")
	}
}

func TestAuthService_Register_SameUsernameDifferentKind(t *testing.T) {
	store := newStubPrincipalStore()
	svc := newTestAuthService(store)

	if _, err := svc.Register(context.Background(), domain.RoleReader, registerInput("Alice", "A", "alice", "pass")); err != nil {
		t.Fatalf("reader register failed: %v", err)
	}
	// Uniqueness is per kind, not across kinds.
	if _, err := svc.Register(context.Background(), domain.RoleAuthor, registerInput("Alice", "A", "alice", "pass")); err != nil {
		t.Fatalf("author register with same username failed: %v", err)
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	store := newStubPrincipalStore()
	svc := newTestAuthService(store)

	for name, in := range map[string]struct {
		kind     domain.Role
		username string
		password string
	}{
		"blank username": {domain.RoleReader, "   ", "pass"},
		"empty username": {domain.RoleReader, "", "pass"},
		"blank password": {domain.RoleReader, "alice", "   "},
		"admin kind":     {domain.RoleAdmin, "root", "pass"},
	} {
		_, err := svc.Register(context.Background(), in.kind, registerInput("A", "B", in.username, in.password))
		var ve *domain.ValidationError
		if !errors.As(err, &ve) {
			t.Fatalf("%s: expected ValidationError, got %v", name, err)
		}
	}
	if len(store.records) != 0 {
		t.Fatalf("invalid registration persisted a record")
	}
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	store := newStubPrincipalStore()
	svc := newTestAuthService(store)

	if _, err := svc.Register(context.Background(), domain.RoleAuthor, registerInput("Carol", "C", "carol", "s3cret")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	token, err := svc.Authenticate(context.Background(), domain.RoleAuthor, "carol", "s3cret")
	if err != nil {
		t.Fatalf("authenticate failed: %v", err)
	}

	claims, err := NewTokenIssuer("secret", time.Hour).Parse(token)
	if err != nil {
		t.Fatalf("token invalid: %v", err)
	}
	if claims.Subject != "carol" || claims.Role != domain.RoleAuthor {
		t.Fatalf("unexpected claims: subject=%q role=%s", claims.Subject, claims.Role)
	}
}

func TestAuthService_Authenticate_UniformFailure(t *testing.T) {
	store := newStubPrincipalStore()
	svc := newTestAuthService(store)

	if _, err := svc.Register(context.Background(), domain.RoleReader, registerInput("Dave", "D", "dave", "goodpass")); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	// Wrong password and unknown username must fail identically.
	_, wrongPass := svc.Authenticate(context.Background(), domain.RoleReader, "dave", "badpass")
	_, unknown := svc.Authenticate(context.Background(), domain.RoleReader, "ghost", "goodpass")
	if wrongPass != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", wrongPass)
	}
	if unknown != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials for unknown user, got %v", unknown)
	}
	if wrongPass.Error() != unknown.Error() {
		t.Fatalf("failure messages differ: %q vs %q", wrongPass, unknown)
	}
}

func TestAuthService_Authenticate_KindIsolation(t *testing.T) {
	store := newStubPrincipalStore()
	svc := newTestAuthService(store)

	if _, err := svc.Register(context.Background(), domain.RoleReader, registerInput("Eve", "E", "eve", "pass")); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	// A reader account must not authenticate as an author.
	if _, err := svc.Authenticate(context.Background(), domain.RoleAuthor, "eve", "pass"); err != domain.ErrInvalidCredentials {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_EnsureAdmin(t *testing.T) {
	store := newStubPrincipalStore()
	svc := newTestAuthService(store)

	if err := svc.EnsureAdmin(context.Background(), "root", "rootpass"); err != nil {
		t.Fatalf("EnsureAdmin failed: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), domain.RoleAdmin, "root", "rootpass"); err != nil {
		t.Fatalf("admin login failed: %v", err)
	}

	// Second call is a no-op, not a duplicate error.
	if err := svc.EnsureAdmin(context.Background(), "root", "otherpass"); err != nil {
		t.Fatalf("EnsureAdmin rerun failed: %v", err)
	}
	if _, err := svc.Authenticate(context.Background(), domain.RoleAdmin, "root", "rootpass"); err != nil {
		t.Fatalf("original admin password stopped working: %v", err)
	}
}

func registerInput(name, surname, username, password string) ports.RegisterInput {
	return ports.RegisterInput{
		Name:     name,
		Surname:  surname,
		Username: username,
		Password: password,
	}
}

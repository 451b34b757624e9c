package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Role identifies the kind of principal and is embedded in issued tokens.
type Role string

const (
	RoleAuthor Role = "AUTHOR"
	RoleReader Role = "READER"
	RoleAdmin  Role = "ADMIN"
)

// Registrable reports whether accounts of this role can be created through
// the public registration flow. Admin accounts are provisioned out-of-band.
func (r Role) Registrable() bool {
	return r == RoleAuthor || r == RoleReader
}

// Valid reports whether r is one of the three known roles.
func (r Role) Valid() bool {
	return r == RoleAuthor || r == RoleReader || r == RoleAdmin
}

// Principal models an authenticated actor: an author, a reader, or an admin.
// The three kinds share a shape but live in separate collections; usernames
// are unique within a kind, not across kinds.
type Principal struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Surname      string    `json:"surname"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// NormalizeUsername applies the single username policy used everywhere:
// trim surrounding whitespace and lowercase. Registration and login both
// normalize, so "Alice" and "alice" are the same account.
func NormalizeUsername(username string) string {
	return strings.ToLower(strings.TrimSpace(username))
}

var (
	ErrUsernameTaken      = errors.New("Username already exists")
	ErrInvalidCredentials = errors.New("Username or password is incorrect")
	ErrPrincipalNotFound  = errors.New("principal not found")
	ErrAuthorNotFound     = errors.New("Author is not found")
	ErrReaderNotFound     = errors.New("Reader is not found")
)

// ValidationError carries per-field messages for a rejected request body.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for field, msg := range e.Fields {
		msgs = append(msgs, fmt.Sprintf("%s: %s", field, msg))
	}
	sort.Strings(msgs)
	return strings.Join(msgs, "; ")
}

// NewValidationError builds a ValidationError for a single field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: map[string]string{field: message}}
}

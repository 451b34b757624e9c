package ports

import "context"

// AuthorDetails is the public view of an author record (no password hash).
type AuthorDetails struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
	Username string `json:"username"`
}

// AdminService exposes the administrative operations: permanent deletion of
// author and reader accounts, and author profile lookup. Deletion does not
// cascade to related records.
type AdminService interface {
	DeleteAuthor(ctx context.Context, id string) error
	DeleteReader(ctx context.Context, id string) error
	GetAuthor(ctx context.Context, id string) (*AuthorDetails, error)
}

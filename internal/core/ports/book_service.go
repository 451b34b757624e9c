package ports

import (
	"context"

	"github.com/bookworks/book-app/internal/core/domain"
)

// CreateBookInput carries a new book submitted by an authenticated author.
// AuthorUsername comes from the token, never from the request body.
type CreateBookInput struct {
	Title          string
	Genre          string
	Description    string
	AuthorUsername string
}

// BookService manages the book catalog.
type BookService interface {
	Create(ctx context.Context, in CreateBookInput) (*domain.Book, error)
	Get(ctx context.Context, id string) (*domain.Book, error)
	List(ctx context.Context) ([]domain.Book, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Book, error)
	Delete(ctx context.Context, id string) error
}

package ports

import (
	"context"

	"github.com/bookworks/book-app/internal/core/domain"
)

// BookRepository defines the interface for book persistence.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) (*domain.Book, error)
	FindByID(ctx context.Context, id string) (*domain.Book, error)
	FindByAuthor(ctx context.Context, authorID string) ([]domain.Book, error)
	FindAll(ctx context.Context) ([]domain.Book, error)
	DeleteByID(ctx context.Context, id string) error
}

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

// BookCache abstracts the read-through cache for single-book lookups (Redis).
// Cache failures are best-effort: a miss is returned instead of an error.
type BookCache interface {
	Get(ctx context.Context, id string) (*domain.Book, bool)
	Set(ctx context.Context, book *domain.Book)
	Invalidate(ctx context.Context, id string)
}

// BookService manages the book catalog. Writes go straight to the
// repository; single-book reads consult the cache first.
type BookService struct {
	repo  ports.BookRepository
	store ports.PrincipalStore
	cache BookCache
	log   zerolog.Logger
}

func NewBookService(repo ports.BookRepository, store ports.PrincipalStore, cache BookCache, log zerolog.Logger) *BookService {
	return &BookService{repo: repo, store: store, cache: cache, log: log}
}

// Create persists a book owned by the author identified in the token. The
// author is resolved by username so a token for a since-deleted author is
// rejected rather than producing an orphan owner reference.
func (s *BookService) Create(ctx context.Context, in ports.CreateBookInput) (*domain.Book, error) {
	if strings.TrimSpace(in.Title) == "" {
		return nil, domain.NewValidationError("title", "title can not be empty")
	}

	author, err := s.store.FindByUsername(ctx, domain.RoleAuthor, domain.NormalizeUsername(in.AuthorUsername))
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("create book: resolve author: %w", err)
	}

	book := &domain.Book{
		Title:       strings.TrimSpace(in.Title),
		Genre:       in.Genre,
		Description: in.Description,
		AuthorID:    author.ID,
		CreatedAt:   time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, book)
	if err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	s.cache.Set(ctx, created)
	s.log.Info().
		Str("book_id", created.ID).
		Str("author_id", created.AuthorID).
		Msg("book created")

	return created, nil
}

func (s *BookService) Get(ctx context.Context, id string) (*domain.Book, error) {
	if book, ok := s.cache.Get(ctx, id); ok {
		return book, nil
	}

	book, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Set(ctx, book)
	return book, nil
}

func (s *BookService) List(ctx context.Context) ([]domain.Book, error) {
	return s.repo.FindAll(ctx)
}

func (s *BookService) ListByAuthor(ctx context.Context, authorID string) ([]domain.Book, error) {
	return s.repo.FindByAuthor(ctx, authorID)
}

func (s *BookService) Delete(ctx context.Context, id string) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate(ctx, id)
	s.log.Info().Str("book_id", id).Msg("book deleted")
	return nil
}

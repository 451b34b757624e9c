package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/bookworks/book-app/internal/core/domain"
	"github.com/bookworks/book-app/internal/core/ports"
)

// AdminService implements administrative deletion and author lookup.
// Deletion is permanent and does not cascade to books.
type AdminService struct {
	store ports.PrincipalStore
	log   zerolog.Logger
}

func NewAdminService(store ports.PrincipalStore, log zerolog.Logger) *AdminService {
	return &AdminService{store: store, log: log}
}

func (s *AdminService) DeleteAuthor(ctx context.Context, id string) error {
	if err := s.store.DeleteByID(ctx, domain.RoleAuthor, id); err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			return domain.ErrAuthorNotFound
		}
		return fmt.Errorf("delete author: %w", err)
	}
	s.log.Info().Str("author_id", id).Msg("author deleted")
	return nil
}

func (s *AdminService) DeleteReader(ctx context.Context, id string) error {
	if err := s.store.DeleteByID(ctx, domain.RoleReader, id); err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			return domain.ErrReaderNotFound
		}
		return fmt.Errorf("delete reader: %w", err)
	}
	s.log.Info().Str("reader_id", id).Msg("reader deleted")
	return nil
}

func (s *AdminService) GetAuthor(ctx context.Context, id string) (*ports.AuthorDetails, error) {
	author, err := s.store.FindByID(ctx, domain.RoleAuthor, id)
	if err != nil {
		if errors.Is(err, domain.ErrPrincipalNotFound) {
			return nil, domain.ErrAuthorNotFound
		}
		return nil, fmt.Errorf("get author: %w", err)
	}
	return &ports.AuthorDetails{
		ID:       author.ID,
		Name:     author.Name,
		Surname:  author.Surname,
		Username: author.Username,
	}, nil
}

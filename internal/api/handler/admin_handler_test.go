package handler

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/bookworks/book-app/internal/core/domain"
	"github.com/bookworks/book-app/internal/core/ports"
)

type stubAdminService struct {
	deleteAuthorFn func(ctx context.Context, id string) error
	deleteReaderFn func(ctx context.Context, id string) error
	getAuthorFn    func(ctx context.Context, id string) (*ports.AuthorDetails, error)
}

func (s *stubAdminService) DeleteAuthor(ctx context.Context, id string) error {
	return s.deleteAuthorFn(ctx, id)
}

func (s *stubAdminService) DeleteReader(ctx context.Context, id string) error {
	return s.deleteReaderFn(ctx, id)
}

func (s *stubAdminService) GetAuthor(ctx context.Context, id string) (*ports.AuthorDetails, error) {
	return s.getAuthorFn(ctx, id)
}

func TestAdminHandler_DeleteAuthor_Success(t *testing.T) {
	stub := &stubAdminService{
		deleteAuthorFn: func(_ context.Context, id string) error {
			if id != "abc123" {
				t.Fatalf("unexpected id: %s", id)
			}
			return nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/", "")
	c.SetParamNames("authorId")
	c.SetParamValues("abc123")

	if err := h.DeleteAuthor(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if rec.Body.String() != "Author is deleted" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestAdminHandler_DeleteAuthor_NotFound(t *testing.T) {
	stub := &stubAdminService{
		deleteAuthorFn: func(context.Context, string) error {
			return domain.ErrAuthorNotFound
		},
	}
	h := NewAdminHandler(stub)

	c, _ := newTestContext(t, http.MethodDelete, "/", "")
	c.SetParamNames("authorId")
	c.SetParamValues("missing")

	if err := h.DeleteAuthor(c); !errors.Is(err, domain.ErrAuthorNotFound) {
		t.Fatalf("expected ErrAuthorNotFound, got %v", err)
	}
}

func TestAdminHandler_DeleteReader_Success(t *testing.T) {
	stub := &stubAdminService{
		deleteReaderFn: func(context.Context, string) error { return nil },
	}
	h := NewAdminHandler(stub)

	c, rec := newTestContext(t, http.MethodDelete, "/", "")
	c.SetParamNames("readerId")
	c.SetParamValues("r1")

	if err := h.DeleteReader(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Body.String() != "Reader is deleted" {
		t.Fatalf("unexpected body: %q", rec.Body.String())
	}
}

func TestAdminHandler_GetAuthor(t *testing.T) {
	stub := &stubAdminService{
		getAuthorFn: func(_ context.Context, id string) (*ports.AuthorDetails, error) {
			return &ports.AuthorDetails{ID: id, Name: "Jane", Surname: "Austen", Username: "austen"}, nil
		},
	}
	h := NewAdminHandler(stub)

	c, rec := newTestContext(t, http.MethodGet, "/", "")
	c.SetParamNames("authorId")
	c.SetParamValues("a1")

	if err := h.GetAuthor(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	for _, want := range []string{`"austen"`, `"Jane"`, `"a1"`} {
		if !strings.Contains(rec.Body.String(), want) {
			t.Fatalf("response missing %s: %s", want, rec.Body.String())
		}
	}
}

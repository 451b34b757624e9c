package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookworks/book-app/internal/api/metrics"
	"github.com/bookworks/book-app/internal/core/domain"
	"github.com/bookworks/book-app/internal/core/ports"
)

// BookHandler handles HTTP requests for the book catalog.
type BookHandler struct {
	bookService ports.BookService
}

func NewBookHandler(bookService ports.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

type createBookRequest struct {
	Title       string `json:"title" validate:"required,notblank"`
	Genre       string `json:"genre"`
	Description string `json:"description"`
}

type bookListResponse struct {
	Books []domain.Book `json:"books"`
}

// Create adds a new book owned by the authenticated author.
//
// @Summary      Create a book
// @Tags         books
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createBookRequest  true  "Book details"
// @Success      201   {object}  domain.Book
// @Failure      400   {object}  map[string]any
// @Router       /book [post]
func (h *BookHandler) Create(c echo.Context) error {
	var req createBookRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	username, _, err := ctxIdentity(c)
	if err != nil {
		return err
	}

	book, err := h.bookService.Create(c.Request().Context(), ports.CreateBookInput{
		Title:          req.Title,
		Genre:          req.Genre,
		Description:    req.Description,
		AuthorUsername: username,
	})
	if err != nil {
		return err
	}

	metrics.BooksCreatedTotal.Inc()
	return c.JSON(http.StatusCreated, book)
}

// Get returns a single book by id.
//
// @Summary      Get a book
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        bookId  path      string  true  "Book id"
// @Success      200     {object}  domain.Book
// @Failure      404     {object}  map[string]any
// @Router       /book/{bookId} [get]
func (h *BookHandler) Get(c echo.Context) error {
	book, err := h.bookService.Get(c.Request().Context(), c.Param("bookId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, book)
}

// List returns the whole catalog.
//
// @Summary      List all books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  bookListResponse
// @Router       /book [get]
func (h *BookHandler) List(c echo.Context) error {
	books, err := h.bookService.List(c.Request().Context())
	if err != nil {
		return err
	}
	if books == nil {
		books = []domain.Book{}
	}
	return c.JSON(http.StatusOK, bookListResponse{Books: books})
}

// ListByAuthor returns all books owned by one author.
//
// @Summary      List an author's books
// @Tags         books
// @Produce      json
// @Security     BearerAuth
// @Param        authorId  path      string  true  "Author id"
// @Success      200       {object}  bookListResponse
// @Router       /author/{authorId}/books [get]
func (h *BookHandler) ListByAuthor(c echo.Context) error {
	books, err := h.bookService.ListByAuthor(c.Request().Context(), c.Param("authorId"))
	if err != nil {
		return err
	}
	if books == nil {
		books = []domain.Book{}
	}
	return c.JSON(http.StatusOK, bookListResponse{Books: books})
}

// Delete permanently removes a book.
//
// @Summary      Delete a book
// @Tags         books
// @Produce      plain
// @Security     BearerAuth
// @Param        bookId  path      string  true  "Book id"
// @Success      200     {string}  string  "Book is deleted"
// @Failure      404     {object}  map[string]any
// @Router       /book/{bookId} [delete]
func (h *BookHandler) Delete(c echo.Context) error {
	if err := h.bookService.Delete(c.Request().Context(), c.Param("bookId")); err != nil {
		return err
	}
	return c.String(http.StatusOK, "Book is deleted")
}

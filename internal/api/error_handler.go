package api

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/bookworks/book-app/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
// Fields carries per-field validation messages when applicable.
type errorResponse struct {
	Message   string            `json:"message"`
	Status    int               `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Fields    map[string]string `json:"fields,omitempty"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"message", "status", "timestamp"}.
//
// Invalid-credential failures keep one uniform message regardless of whether
// the username was unknown or the password wrong.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg, fields := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{
			Message:   msg,
			Status:    code,
			Timestamp: time.Now().UTC(),
			Fields:    fields,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, map[string]string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message), nil
	}

	// Rejected request bodies carry a per-field message map.
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, ve.Error(), ve.Fields
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUsernameTaken):
		return http.StatusBadRequest, domain.ErrUsernameTaken.Error(), nil
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, domain.ErrInvalidCredentials.Error(), nil
	case errors.Is(err, domain.ErrAuthorNotFound):
		return http.StatusNotFound, domain.ErrAuthorNotFound.Error(), nil
	case errors.Is(err, domain.ErrReaderNotFound):
		return http.StatusNotFound, domain.ErrReaderNotFound.Error(), nil
	case errors.Is(err, domain.ErrBookNotFound):
		return http.StatusNotFound, domain.ErrBookNotFound.Error(), nil
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error", nil
}

package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookworks/book-app/internal/api/metrics"
	"github.com/bookworks/book-app/internal/core/domain"
	"github.com/bookworks/book-app/internal/core/ports"
)

// AdminHandler handles administrative deletion and author lookup.
type AdminHandler struct {
	adminService ports.AdminService
}

func NewAdminHandler(adminService ports.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// DeleteAuthor permanently removes an author account.
//
// @Summary      Delete an author
// @Tags         admin
// @Produce      plain
// @Security     BearerAuth
// @Param        authorId  path      string  true  "Author id"
// @Success      200       {string}  string  "Author is deleted"
// @Failure      404       {object}  map[string]any
// @Router       /admin/author/{authorId} [delete]
func (h *AdminHandler) DeleteAuthor(c echo.Context) error {
	if err := h.adminService.DeleteAuthor(c.Request().Context(), c.Param("authorId")); err != nil {
		return err
	}
	metrics.PrincipalsDeletedTotal.WithLabelValues(string(domain.RoleAuthor)).Inc()
	return c.String(http.StatusOK, "Author is deleted")
}

// DeleteReader permanently removes a reader account.
//
// @Summary      Delete a reader
// @Tags         admin
// @Produce      plain
// @Security     BearerAuth
// @Param        readerId  path      string  true  "Reader id"
// @Success      200       {string}  string  "Reader is deleted"
// @Failure      404       {object}  map[string]any
// @Router       /admin/reader/{readerId} [delete]
func (h *AdminHandler) DeleteReader(c echo.Context) error {
	if err := h.adminService.DeleteReader(c.Request().Context(), c.Param("readerId")); err != nil {
		return err
	}
	metrics.PrincipalsDeletedTotal.WithLabelValues(string(domain.RoleReader)).Inc()
	return c.String(http.StatusOK, "Reader is deleted")
}

// GetAuthor returns an author's public profile.
//
// @Summary      Get author details
// @Tags         author
// @Produce      json
// @Security     BearerAuth
// @Param        authorId  path      string  true  "Author id"
// @Success      200       {object}  ports.AuthorDetails
// @Failure      404       {object}  map[string]any
// @Router       /author/{authorId} [get]
func (h *AdminHandler) GetAuthor(c echo.Context) error {
	details, err := h.adminService.GetAuthor(c.Request().Context(), c.Param("authorId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, details)
}

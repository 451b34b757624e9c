package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/bookworks/book-app/internal/api/metrics"
	"github.com/bookworks/book-app/internal/core/domain"
	"github.com/bookworks/book-app/internal/core/ports"
)

// AuthHandler exposes registration and login for authors, readers, and
// admins. Admins have no registration endpoint; their accounts are
// provisioned at startup.
type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

type registerRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
	Name     string `json:"name"`
	Surname  string `json:"surname"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required,notblank"`
	Password string `json:"password" validate:"required,notblank"`
}

type tokenResponse struct {
	Token string `json:"token"`
}

// RegisterAuthor registers a new author account.
//
// @Summary      Register a new author
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Author registration details"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]any
// @Router       /author/register [post]
func (h *AuthHandler) RegisterAuthor(c echo.Context) error {
	return h.register(c, domain.RoleAuthor)
}

// RegisterReader registers a new reader account.
//
// @Summary      Register a new reader
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Reader registration details"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]any
// @Router       /reader/register [post]
func (h *AuthHandler) RegisterReader(c echo.Context) error {
	return h.register(c, domain.RoleReader)
}

// LoginAuthor authenticates an author and returns a JWT token.
//
// @Summary      Author login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Author credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]any
// @Router       /author/login [post]
func (h *AuthHandler) LoginAuthor(c echo.Context) error {
	return h.login(c, domain.RoleAuthor)
}

// LoginReader authenticates a reader and returns a JWT token.
//
// @Summary      Reader login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Reader credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]any
// @Router       /reader/login [post]
func (h *AuthHandler) LoginReader(c echo.Context) error {
	return h.login(c, domain.RoleReader)
}

// LoginAdmin authenticates an admin and returns a JWT token.
//
// @Summary      Admin login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Admin credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  map[string]any
// @Router       /admin/login [post]
func (h *AuthHandler) LoginAdmin(c echo.Context) error {
	return h.login(c, domain.RoleAdmin)
}

func (h *AuthHandler) register(c echo.Context, kind domain.Role) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.authService.Register(c.Request().Context(), kind, ports.RegisterInput{
		Name:     req.Name,
		Surname:  req.Surname,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(string(kind)).Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

func (h *AuthHandler) login(c echo.Context, kind domain.Role) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.authService.Authenticate(c.Request().Context(), kind, req.Username, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues(string(kind), "failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues(string(kind), "success").Inc()
	return c.JSON(http.StatusOK, tokenResponse{Token: token})
}

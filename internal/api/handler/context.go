package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// ctxIdentity extracts the identity injected by the Auth middleware and
// fast-fails before any service call: a non-empty username and role prove
// the middleware ran.
func ctxIdentity(c echo.Context) (username, role string, err error) {
	username, _ = c.Get("username").(string)
	role, _ = c.Get("role").(string)
	if username == "" || role == "" {
		return "", "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return username, role, nil
}

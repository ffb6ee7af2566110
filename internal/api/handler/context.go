package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/fsociety/forum/internal/api/middleware"
)

// ctxUserID returns the subject injected by the Auth middleware. An empty
// value means the route was mounted without Auth; reject with 401.
func ctxUserID(c echo.Context) (string, error) {
	id, _ := c.Get(middleware.CtxUserID).(string)
	if id == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return id, nil
}

package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireAdmin gates a route on the is_admin flag carried by the session
// token. No finer-grained permission evaluation happens here.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if !IsAdminFromContext(c) {
			return echo.NewHTTPError(http.StatusForbidden, "forbidden")
		}
		return next(c)
	}
}

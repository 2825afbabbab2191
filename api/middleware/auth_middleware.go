package middleware

import (
	"net/http"
	"strings"

	"authcore/internal/utils"

	"github.com/labstack/echo/v4"
)

type AuthMiddleware struct {
	Tokens *utils.TokenManager
}

// RequireAuth verifies the bearer token's signature before trusting any of
// its claims and attaches the payload to the request context.
func (m AuthMiddleware) RequireAuth(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if m.Tokens == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized")
		}
		token := extractBearerToken(c.Request())
		if token == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized, no token")
		}
		claims, err := m.Tokens.VerifySessionToken(token)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "unauthorized, invalid/expired token")
		}
		SetAuthContext(c, claims.Subject, claims.Email, claims.IsAdmin)
		return next(c)
	}
}

func extractBearerToken(r *http.Request) string {
	authorization := r.Header.Get("Authorization")
	if authorization == "" {
		return ""
	}
	parts := strings.SplitN(authorization, " ", 2)
	if len(parts) != 2 {
		return ""
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

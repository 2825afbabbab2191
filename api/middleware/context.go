package middleware

import "github.com/labstack/echo/v4"

const (
	contextUserIDKey  = "auth_user_id"
	contextEmailKey   = "auth_email"
	contextIsAdminKey = "auth_is_admin"
)

func SetAuthContext(c echo.Context, userID string, email string, isAdmin bool) {
	c.Set(contextUserIDKey, userID)
	c.Set(contextEmailKey, email)
	c.Set(contextIsAdminKey, isAdmin)
}

func UserIDFromContext(c echo.Context) (string, bool) {
	userID, ok := c.Get(contextUserIDKey).(string)
	return userID, ok
}

func IsAdminFromContext(c echo.Context) bool {
	isAdmin, ok := c.Get(contextIsAdminKey).(bool)
	return ok && isAdmin
}

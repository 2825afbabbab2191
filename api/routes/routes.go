package routes

import (
	"net/http"
	"time"

	"authcore/api/handler"
	"authcore/api/middleware"

	"github.com/labstack/echo/v4"
	"golang.org/x/time/rate"
)

type Router struct {
	Echo           *echo.Echo
	Auth           *handler.AuthHandler
	AuthMiddleware middleware.AuthMiddleware
	AuthRate       *middleware.RateLimiter
	LoginRate      *middleware.RateLimiter
}

func NewRouter(e *echo.Echo, authHandler *handler.AuthHandler, authMiddleware middleware.AuthMiddleware) *Router {
	return &Router{
		Echo:           e,
		Auth:           authHandler,
		AuthMiddleware: authMiddleware,
		AuthRate:       middleware.NewRateLimiter(rate.Limit(5), 10, 5*time.Minute),
		LoginRate:      middleware.NewRateLimiter(rate.Limit(2), 4, 10*time.Minute),
	}
}

func (r *Router) RegisterRoutes() {
	e := r.Echo

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	e.POST("/auth/register", r.Auth.Register, r.AuthRate.Middleware())
	e.POST("/auth/confirm-email/:userId", r.Auth.ConfirmEmail, r.AuthRate.Middleware())
	e.POST("/auth/login", r.Auth.Login, r.LoginRate.Middleware())

	// Canonical reset flow: emailed code.
	e.POST("/auth/forgot-password", r.Auth.ForgotPassword, r.LoginRate.Middleware())
	e.POST("/auth/reset-password/:email", r.Auth.ResetPassword, r.AuthRate.Middleware())

	// Signed-link variant. Not interoperable with the code flow.
	e.POST("/auth/forgot-password/link", r.Auth.ForgotPasswordLink, r.LoginRate.Middleware())
	e.POST("/auth/reset-password/link/:token", r.Auth.ResetPasswordLink, r.AuthRate.Middleware())

	e.GET("/me", r.Auth.Me, r.AuthMiddleware.RequireAuth)
	e.GET("/admin/users", r.Auth.AdminListUsers, r.AuthMiddleware.RequireAuth, middleware.RequireAdmin)
	e.POST("/admin/groups", r.Auth.AdminCreateGroup, r.AuthMiddleware.RequireAuth, middleware.RequireAdmin)
	e.GET("/admin/groups", r.Auth.AdminListGroups, r.AuthMiddleware.RequireAuth, middleware.RequireAdmin)
	e.POST("/admin/permissions", r.Auth.AdminCreatePermission, r.AuthMiddleware.RequireAuth, middleware.RequireAdmin)
	e.GET("/admin/permissions", r.Auth.AdminListPermissions, r.AuthMiddleware.RequireAuth, middleware.RequireAdmin)
}

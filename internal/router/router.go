package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // the Echo web framework handles routing
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/secure-auth-api/internal/config"
	"github.com/iliyamo/secure-auth-api/internal/handler"
	"github.com/iliyamo/secure-auth-api/internal/middleware"
	"github.com/iliyamo/secure-auth-api/internal/model"
)

// RegisterRoutes wires every endpoint of the service onto the provided Echo
// instance.  The authentication gate (JWTAuth) protects everything that
// needs a session; the authorization gate (RequireRole) additionally guards
// the admin surface.  The Redis-backed rate limiter throttles login
// attempts and degrades to a pass-through when rdb is nil.
func RegisterRoutes(e *echo.Echo, cfg config.Config, a *handler.AuthHandler, u *handler.UserHandler, rdb *redis.Client) {
	api := e.Group("/api")

	// Liveness probe for load balancers and monitoring.
	api.GET("/health", handler.Health)

	authGate := middleware.JWTAuth(cfg)
	loginLimiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Session lifecycle.  register/login/refresh establish or renew a
	// session and therefore run without the gate; logout and me require a
	// valid access token.
	auth := api.Group("/auth")
	auth.POST("/register", a.Register)
	auth.POST("/login", a.Login, loginLimiter)
	auth.POST("/refresh", a.Refresh)
	auth.POST("/logout", a.Logout, authGate)
	auth.GET("/me", a.Me, authGate)

	// Authenticated user surface.
	users := api.Group("/users", authGate)
	users.GET("/profile", u.Profile)
	users.GET("/records", u.Records)

	// Admin surface: authentication gate plus ADMIN allow-list.
	admin := api.Group("/admin", authGate, middleware.RequireRole(model.RoleAdmin))
	admin.GET("/users", u.ListUsers)
	admin.PUT("/users/:userId", u.UpdateUser)
	admin.DELETE("/users/:userId", u.DeleteUser)
}

package middleware // middleware provides shared request processing for handlers

import (
	"net/http" // standard HTTP status codes

	"github.com/labstack/echo/v4" // echo provides middleware chaining and context

	"github.com/iliyamo/secure-auth-api/internal/response"
)

// RequireRole returns the authorization gate: a middleware that enforces
// that the authenticated principal's role is in the given allow-list.  The
// role checked is the snapshot embedded in the access token at issuance; it
// is not re-read from the user store, which keeps authorization stateless
// at the cost of role changes only taking effect once the access token
// expires.  A request that never passed the authentication gate fails with
// 401; a principal with a role outside the allow-list fails with 403.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	// Build a set of allowed roles for constant-time lookups.
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			claims, ok := Principal(c)
			if !ok {
				return response.Error(c, http.StatusUnauthorized, "Authentication required")
			}
			if !allowed[claims.Role] {
				return response.Error(c, http.StatusForbidden, "Access denied. Insufficient permissions")
			}
			return next(c)
		}
	}
}

package middleware // declare the middleware package; contains reusable HTTP middleware functions

import (
	"net/http" // HTTP status codes for responses
	"strings"  // prefix checking and trimming for the Authorization header

	"github.com/labstack/echo/v4" // Echo framework used for defining middleware

	"github.com/iliyamo/secure-auth-api/internal/config"
	"github.com/iliyamo/secure-auth-api/internal/response"
	"github.com/iliyamo/secure-auth-api/internal/utils"
)

// principalKey is the context key under which the authenticated principal
// snapshot is stored.
const principalKey = "principal"

// JWTAuth returns the authentication gate: an Echo middleware that extracts
// the access token from the request, validates it, and attaches the derived
// principal {userId, email, role} to the request context.  The principal is
// taken from the token claims alone; no store round trip happens here.
//
// The token is read from the accessToken cookie, with an Authorization
// Bearer header accepted as a fallback for non-browser clients.  A missing
// credential and an invalid or expired one both fail with 401, with
// distinct messages so clients know whether to re-authenticate or simply
// retry after a refresh.
func JWTAuth(cfg config.Config) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw := ""
			if ck, err := c.Cookie(config.AccessTokenCookie); err == nil && ck.Value != "" {
				raw = ck.Value
			} else if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
				raw = strings.TrimPrefix(auth, "Bearer ")
			}
			if raw == "" {
				return response.Error(c, http.StatusUnauthorized, "Access token not found")
			}

			claims, err := utils.ParseAccessToken(cfg.JWTSecret, raw)
			if err != nil {
				// Expired and forged tokens are deliberately indistinguishable
				// to the caller beyond this single message.
				return response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
			}

			c.Set(principalKey, claims)
			return next(c)
		}
	}
}

// Principal returns the principal snapshot stored by JWTAuth.  The second
// return value is false when the request never passed the authentication
// gate.
func Principal(c echo.Context) (utils.Claims, bool) {
	claims, ok := c.Get(principalKey).(utils.Claims)
	return claims, ok
}

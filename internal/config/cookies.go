package config

import (
	"net/http"
	"time"
)

// Cookie names under which the two credentials travel.  Both cookies are
// HttpOnly and SameSite=Strict: unreadable from script contexts and never
// sent cross-site.
const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"
)

// AuthCookie builds a credential cookie under the process cookie policy.
// The Secure flag follows cfg.CookieSecure, which is forced on in prod.
func (c Config) AuthCookie(name, value string, maxAge time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    value,
		Path:     "/",
		MaxAge:   int(maxAge / time.Second),
		HttpOnly: true,
		Secure:   c.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}

// ClearCookie builds an expired cookie that removes the named credential
// from the client.
func (c Config) ClearCookie(name string) *http.Cookie {
	return &http.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.CookieSecure,
		SameSite: http.SameSiteStrictMode,
	}
}

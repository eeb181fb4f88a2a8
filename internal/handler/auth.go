package handler

import (
	"context"  // context with timeout for store calls
	"errors"   // sentinel error discrimination
	"net/http" // HTTP status codes
	"strings"  // input normalization
	"time"     // timeouts and audit timestamps

	"github.com/labstack/echo/v4" // Echo framework for HTTP routing

	"github.com/iliyamo/secure-auth-api/internal/config"
	"github.com/iliyamo/secure-auth-api/internal/middleware"
	"github.com/iliyamo/secure-auth-api/internal/model"
	"github.com/iliyamo/secure-auth-api/internal/queue"
	"github.com/iliyamo/secure-auth-api/internal/repository"
	"github.com/iliyamo/secure-auth-api/internal/response"
	"github.com/iliyamo/secure-auth-api/internal/utils"
)

// dbTimeout bounds every store call made from a handler.  A store timeout
// surfaces as a retryable 500, never as an authentication failure.
const dbTimeout = 5 * time.Second

// AuthHandler orchestrates the session lifecycle: login, logout, refresh
// and "who am I".  It composes the credential check (Users + bcrypt), the
// token issuer and the refresh-session store; Audit is an optional sink
// for the auth event stream (nil disables it).
type AuthHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
	Audit  *queue.Publisher
}

func NewAuthHandler(cfg config.Config, u UserStore, t TokenStore, audit *queue.Publisher) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: u, Tokens: t, Audit: audit}
}

// ----- DTOs -----

type registerReq struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      string `json:"role"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"` // claimed role, verified against the stored one
}

type userData struct {
	User model.PublicUser `json:"user"`
}

// Register creates a principal.  No tokens are issued; the client logs in
// afterwards.
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.FirstName = strings.TrimSpace(req.FirstName)
	req.LastName = strings.TrimSpace(req.LastName)
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))

	if fieldErrs := utils.ValidateRegister(req.Email, req.Password, req.FirstName, req.LastName, req.Role); len(fieldErrs) > 0 {
		return response.ValidationError(c, http.StatusBadRequest, "Validation failed", fieldErrs)
	}
	if req.Role == "" {
		req.Role = model.RoleUser
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.Create(ctx, repository.NewUser{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
	}, h.Cfg.BcryptCost)
	if err != nil {
		if errors.Is(err, repository.ErrEmailExists) {
			return response.Error(c, http.StatusConflict, "User with this email already exists")
		}
		return h.serverError(c, "register: create user", err)
	}

	h.audit(c, queue.EventUserRegistered, u)
	return response.OK(c, http.StatusCreated, userData{User: u.Sanitized()}, "User registered successfully")
}

// Login verifies the credentials and the claimed role, stamps last_login,
// mints both tokens, persists the refresh session, and delivers the two
// credentials as cookies.
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	req.Role = strings.ToUpper(strings.TrimSpace(req.Role))

	if fieldErrs := utils.ValidateLogin(req.Email, req.Password, req.Role); len(fieldErrs) > 0 {
		return response.ValidationError(c, http.StatusBadRequest, "Validation failed", fieldErrs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			// Unknown email and wrong password are indistinguishable.
			return response.Error(c, http.StatusUnauthorized, "Invalid credentials")
		}
		return h.serverError(c, "login: query user", err)
	}
	if !u.IsActive {
		return response.Error(c, http.StatusForbidden, "Account is deactivated")
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return response.Error(c, http.StatusUnauthorized, "Invalid credentials")
	}
	if u.Role != req.Role {
		// Role mismatch issues no tokens and leaves last_login untouched.
		return response.Error(c, http.StatusUnauthorized, "Invalid role selected")
	}

	if err := h.Users.UpdateLastLogin(ctx, u.UserID); err != nil {
		return h.serverError(c, "login: update last login", err)
	}
	now := time.Now().UTC()
	u.LastLogin = &now

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.UserID, u.Email, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return h.serverError(c, "login: issue access token", err)
	}
	refresh, err := utils.NewRefreshToken(h.Cfg.JWTSecret, u.UserID, h.Cfg.RefreshTTLDays)
	if err != nil {
		return h.serverError(c, "login: issue refresh token", err)
	}
	if err := h.Tokens.Store(ctx, refresh.Raw, u.UserID, refresh.Exp); err != nil {
		return h.serverError(c, "login: save refresh session", err)
	}

	c.SetCookie(h.Cfg.AuthCookie(config.AccessTokenCookie, access.Token,
		time.Duration(h.Cfg.AccessTTLMin)*time.Minute))
	c.SetCookie(h.Cfg.AuthCookie(config.RefreshTokenCookie, refresh.Raw,
		time.Duration(h.Cfg.RefreshTTLDays)*24*time.Hour))

	h.audit(c, queue.EventUserLogin, u)
	return response.OK(c, http.StatusOK, userData{User: u.Sanitized()}, "Login successful")
}

// Logout revokes the presented refresh session and clears both credential
// cookies.  Revocation is idempotent and store failures are swallowed: the
// client ends up logged out either way.
func (h *AuthHandler) Logout(c echo.Context) error {
	if ck, err := c.Cookie(config.RefreshTokenCookie); err == nil && ck.Value != "" {
		ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
		defer cancel()
		_ = h.Tokens.Revoke(ctx, ck.Value)
	}
	h.clearAuthCookies(c)

	if claims, ok := middleware.Principal(c); ok {
		h.audit(c, queue.EventUserLogout, model.User{
			UserID: claims.UserID, Email: claims.Email, Role: claims.Role,
		})
	}
	return response.OK(c, http.StatusOK, nil, "Logout successful")
}

// Refresh exchanges a valid refresh session for a new access token.  The
// refresh token itself is not rotated; it stays usable until its own
// expiry or explicit revocation.  Any credential failure clears both
// cookies, forcing re-authentication.
func (h *AuthHandler) Refresh(c echo.Context) error {
	ck, err := c.Cookie(config.RefreshTokenCookie)
	if err != nil || ck.Value == "" {
		return response.Error(c, http.StatusUnauthorized, "Refresh token not found")
	}
	raw := ck.Value

	userID, err := utils.ParseRefreshToken(h.Cfg.JWTSecret, raw)
	if err != nil {
		h.clearAuthCookies(c)
		if errors.Is(err, utils.ErrTokenExpired) {
			return response.Error(c, http.StatusUnauthorized, "Token has expired")
		}
		return response.Error(c, http.StatusUnauthorized, "Invalid or expired token")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	sess, err := h.Tokens.Find(ctx, raw)
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			h.clearAuthCookies(c)
			return response.Error(c, http.StatusUnauthorized, "Token not found")
		}
		return h.serverError(c, "refresh: load session", err)
	}
	if sess.IsRevoked() {
		h.clearAuthCookies(c)
		return response.Error(c, http.StatusUnauthorized, "Token has been revoked")
	}
	if sess.Expired(time.Now().UTC()) {
		h.clearAuthCookies(c)
		return response.Error(c, http.StatusUnauthorized, "Token has expired")
	}

	// Re-fetch the principal: the account may have vanished or been
	// deactivated since the session began.
	u, err := h.Users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			h.clearAuthCookies(c)
			return response.Error(c, http.StatusUnauthorized, "User not found")
		}
		return h.serverError(c, "refresh: load user", err)
	}
	if !u.IsActive {
		h.clearAuthCookies(c)
		return response.Error(c, http.StatusForbidden, "Account is deactivated")
	}

	access, err := utils.NewAccessToken(h.Cfg.JWTSecret, u.UserID, u.Email, u.Role, h.Cfg.AccessTTLMin)
	if err != nil {
		return h.serverError(c, "refresh: issue access token", err)
	}
	c.SetCookie(h.Cfg.AuthCookie(config.AccessTokenCookie, access.Token,
		time.Duration(h.Cfg.AccessTTLMin)*time.Minute))

	h.audit(c, queue.EventTokenRefreshed, u)
	return response.OK(c, http.StatusOK, userData{User: u.Sanitized()}, "Token refreshed successfully")
}

// Me returns the current principal, re-fetched from the store so the
// response reflects the live record rather than the token snapshot.
func (h *AuthHandler) Me(c echo.Context) error {
	claims, ok := middleware.Principal(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "Authentication required")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.Error(c, http.StatusNotFound, "User not found")
		}
		return h.serverError(c, "me: load user", err)
	}
	return response.OK(c, http.StatusOK, userData{User: u.Sanitized()}, "User retrieved successfully")
}

// clearAuthCookies removes both credential artifacts from the client.
func (h *AuthHandler) clearAuthCookies(c echo.Context) {
	c.SetCookie(h.Cfg.ClearCookie(config.AccessTokenCookie))
	c.SetCookie(h.Cfg.ClearCookie(config.RefreshTokenCookie))
}

// serverError logs the internal detail and returns a generic 500 envelope.
func (h *AuthHandler) serverError(c echo.Context, op string, err error) error {
	c.Logger().Errorf("%s: %v", op, err)
	return response.Error(c, http.StatusInternalServerError, "Internal server error")
}

// audit fires an auth event at the audit sink without blocking the request.
func (h *AuthHandler) audit(c echo.Context, eventType string, u model.User) {
	if h.Audit == nil {
		return
	}
	ev := queue.AuthEvent{
		Type:   eventType,
		UserID: u.UserID,
		Email:  u.Email,
		Role:   u.Role,
		IP:     c.RealIP(),
		At:     time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), dbTimeout)
		defer cancel()
		_ = h.Audit.Publish(ctx, ev)
	}()
}

package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/secure-auth-api/internal/config"
	"github.com/iliyamo/secure-auth-api/internal/middleware"
	"github.com/iliyamo/secure-auth-api/internal/model"
	"github.com/iliyamo/secure-auth-api/internal/repository"
	"github.com/iliyamo/secure-auth-api/internal/response"
	"github.com/iliyamo/secure-auth-api/internal/utils"
)

// UserHandler serves the authenticated profile/records endpoints and the
// admin-only user management surface.  The admin routes are the consumers
// of the role gate; they run behind RequireRole(ADMIN).
type UserHandler struct {
	Cfg    config.Config
	Users  UserStore
	Tokens TokenStore
}

func NewUserHandler(cfg config.Config, u UserStore, t TokenStore) *UserHandler {
	return &UserHandler{Cfg: cfg, Users: u, Tokens: t}
}

type updateUserReq struct {
	Email     *string `json:"email"`
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *string `json:"role"`
	IsActive  *bool   `json:"isActive"`
}

type usersData struct {
	Users []model.PublicUser `json:"users"`
	Count int                `json:"count"`
}

// Profile returns the caller's own principal record.
func (h *UserHandler) Profile(c echo.Context) error {
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
		return h.serverError(c, "profile: load user", err)
	}
	return response.OK(c, http.StatusOK, userData{User: u.Sanitized()}, "Profile retrieved successfully")
}

// record is a demo document returned by the records endpoint.
type record struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AccessLevel string `json:"accessLevel"`
	Date        string `json:"date"`
}

var standardRecords = []record{
	{1, "Financial Report Q1", "Quarterly financial summary", "Standard", "2026-01-15"},
	{2, "Project Proposal", "New project initiative details", "Standard", "2026-01-20"},
	{3, "Team Meeting Notes", "Weekly team sync notes", "Standard", "2026-02-01"},
	{4, "Client Feedback", "Customer satisfaction survey results", "Standard", "2026-02-05"},
	{5, "Marketing Campaign", "Q1 marketing strategy document", "Standard", "2026-02-10"},
}

var adminOnlyRecords = []record{
	{6, "Salary Information", "Employee compensation data", "Admin Only", "2026-01-10"},
	{7, "Security Audit", "System security assessment report", "Admin Only", "2026-01-25"},
	{8, "Budget Allocation", "Department budget breakdown", "Admin Only", "2026-02-01"},
	{9, "Performance Reviews", "Annual employee evaluations", "Admin Only", "2026-02-08"},
	{10, "Strategic Planning", "Company 5-year strategic plan", "Admin Only", "2026-02-12"},
	{11, "Legal Contracts", "Vendor and partner agreements", "Admin Only", "2026-02-14"},
	{12, "Board Meeting Minutes", "Executive board decisions", "Admin Only", "2026-02-16"},
	{13, "Risk Assessment", "Enterprise risk management report", "Admin Only", "2026-02-20"},
}

// maxRecordsDelay caps the artificial delay of the records endpoint.
const maxRecordsDelay = 5 * time.Second

type recordsData struct {
	Records []record `json:"records"`
	Count   int      `json:"count"`
}

// Records returns demo documents for the caller's role; admins additionally
// see the restricted set.  An optional ?delay=<ms> query parameter adds an
// artificial, cancellation-aware pause for exercising slow-request handling
// in clients.
func (h *UserHandler) Records(c echo.Context) error {
	claims, ok := middleware.Principal(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "Authentication required")
	}

	if ms, err := strconv.Atoi(c.QueryParam("delay")); err == nil && ms > 0 {
		d := time.Duration(ms) * time.Millisecond
		if d > maxRecordsDelay {
			d = maxRecordsDelay
		}
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-c.Request().Context().Done():
			return c.Request().Context().Err()
		}
	}

	records := standardRecords
	if claims.Role == model.RoleAdmin {
		records = append(append([]record{}, standardRecords...), adminOnlyRecords...)
	}
	return response.OK(c, http.StatusOK, recordsData{Records: records, Count: len(records)},
		"Records retrieved successfully")
}

// ListUsers returns every principal, sanitized.  Admin only.
func (h *UserHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	users, err := h.Users.List(ctx)
	if err != nil {
		return h.serverError(c, "list users", err)
	}
	out := make([]model.PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, u.Sanitized())
	}
	return response.OK(c, http.StatusOK, usersData{Users: out, Count: len(out)},
		"Users retrieved successfully")
}

// UpdateUser applies a partial update to a principal.  Password changes are
// not expressible through this endpoint.  Admin only.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id := c.Param("userId")

	var req updateUserReq
	if err := c.Bind(&req); err != nil {
		return response.Error(c, http.StatusBadRequest, "Invalid request body")
	}

	var fieldErrs []utils.FieldError
	if req.Email == nil && req.FirstName == nil && req.LastName == nil && req.Role == nil && req.IsActive == nil {
		fieldErrs = append(fieldErrs, utils.FieldError{Field: "body", Message: "At least one field is required"})
	}
	if req.Email != nil {
		norm := strings.ToLower(strings.TrimSpace(*req.Email))
		req.Email = &norm
		if !utils.IsEmail(norm) {
			fieldErrs = append(fieldErrs, utils.FieldError{Field: "email", Message: "Please provide a valid email address"})
		}
	}
	if req.FirstName != nil && !utils.NameOK(strings.TrimSpace(*req.FirstName)) {
		fieldErrs = append(fieldErrs, utils.FieldError{Field: "firstName", Message: "First name must be between 2 and 50 characters"})
	}
	if req.LastName != nil && !utils.NameOK(strings.TrimSpace(*req.LastName)) {
		fieldErrs = append(fieldErrs, utils.FieldError{Field: "lastName", Message: "Last name must be between 2 and 50 characters"})
	}
	if req.Role != nil {
		norm := strings.ToUpper(strings.TrimSpace(*req.Role))
		req.Role = &norm
		if !model.ValidRole(norm) {
			fieldErrs = append(fieldErrs, utils.FieldError{Field: "role", Message: "Role must be either ADMIN or USER"})
		}
	}
	if len(fieldErrs) > 0 {
		return response.ValidationError(c, http.StatusBadRequest, "Validation failed", fieldErrs)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	u, err := h.Users.Update(ctx, id, repository.UserUpdate{
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      req.Role,
		IsActive:  req.IsActive,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return response.Error(c, http.StatusNotFound, "User not found")
		case errors.Is(err, repository.ErrEmailExists):
			return response.Error(c, http.StatusConflict, "User with this email already exists")
		}
		return h.serverError(c, "update user", err)
	}
	// Deactivation kills every outstanding session so the account cannot
	// keep refreshing access tokens.
	if req.IsActive != nil && !*req.IsActive {
		if err := h.Tokens.RevokeAllForUser(ctx, id); err != nil {
			return h.serverError(c, "update user: revoke sessions", err)
		}
	}
	return response.OK(c, http.StatusOK, userData{User: u.Sanitized()}, "User updated successfully")
}

// DeleteUser removes a principal.  The acting admin cannot delete their own
// account.  Admin only.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id := c.Param("userId")

	claims, ok := middleware.Principal(c)
	if !ok {
		return response.Error(c, http.StatusUnauthorized, "Authentication required")
	}
	if id == claims.UserID {
		return response.Error(c, http.StatusBadRequest, "Cannot delete your own account")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), dbTimeout)
	defer cancel()

	if err := h.Users.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return response.Error(c, http.StatusNotFound, "User not found")
		}
		return h.serverError(c, "delete user", err)
	}
	if err := h.Tokens.RevokeAllForUser(ctx, id); err != nil {
		return h.serverError(c, "delete user: revoke sessions", err)
	}
	return response.OK(c, http.StatusOK, nil, "User deleted successfully")
}

func (h *UserHandler) serverError(c echo.Context, op string, err error) error {
	c.Logger().Errorf("%s: %v", op, err)
	return response.Error(c, http.StatusInternalServerError, "Internal server error")
}

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/secure-auth-api/internal/utils"
)

func runRoleGate(t *testing.T, claims *utils.Claims, allowed ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if claims != nil {
		c.Set(principalKey, *claims)
	}
	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	if err := RequireRole(allowed...)(next)(c); err != nil {
		t.Fatalf("gate returned error: %v", err)
	}
	return rec
}

func TestRequireRoleNoPrincipal(t *testing.T) {
	rec := runRoleGate(t, nil, "ADMIN")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without principal, got %d", rec.Code)
	}
}

func TestRequireRoleForbidden(t *testing.T) {
	rec := runRoleGate(t, &utils.Claims{UserID: "u1", Role: "USER"}, "ADMIN")
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for disallowed role, got %d", rec.Code)
	}
}

func TestRequireRoleAllowed(t *testing.T) {
	rec := runRoleGate(t, &utils.Claims{UserID: "u1", Role: "ADMIN"}, "ADMIN")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for allowed role, got %d", rec.Code)
	}
}

func TestRequireRoleMultipleAllowed(t *testing.T) {
	rec := runRoleGate(t, &utils.Claims{UserID: "u1", Role: "USER"}, "ADMIN", "USER")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 when role is in allow-list, got %d", rec.Code)
	}
}

package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/secure-auth-api/internal/config"
	"github.com/iliyamo/secure-auth-api/internal/utils"
)

const testSecret = "middleware-test-secret"

func testCfg() config.Config {
	return config.Config{JWTSecret: testSecret, AccessTTLMin: 15}
}

// okHandler records the principal it sees so tests can assert the gate
// populated the context.
func okHandler(got *utils.Claims) echo.HandlerFunc {
	return func(c echo.Context) error {
		if claims, ok := Principal(c); ok {
			*got = claims
		}
		return c.NoContent(http.StatusOK)
	}
}

func runGate(t *testing.T, cfg config.Config, mutate func(*http.Request)) (*httptest.ResponseRecorder, utils.Claims) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if mutate != nil {
		mutate(req)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var got utils.Claims
	if err := JWTAuth(cfg)(okHandler(&got))(c); err != nil {
		t.Fatalf("gate returned error: %v", err)
	}
	return rec, got
}

func TestJWTAuthMissingToken(t *testing.T) {
	rec, _ := runGate(t, testCfg(), nil)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body["success"] != false || body["message"] != "Access token not found" {
		t.Fatalf("unexpected envelope %v", body)
	}
}

func TestJWTAuthInvalidToken(t *testing.T) {
	rec, _ := runGate(t, testCfg(), func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: config.AccessTokenCookie, Value: "garbage"})
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestJWTAuthExpiredToken(t *testing.T) {
	cfg := testCfg()
	tok, err := utils.NewAccessToken(cfg.JWTSecret, "u1", "u@test.com", "USER", -1)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, _ := runGate(t, cfg, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: config.AccessTokenCookie, Value: tok.Token})
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 for expired token, got %d", rec.Code)
	}
}

func TestJWTAuthValidCookie(t *testing.T) {
	cfg := testCfg()
	tok, err := utils.NewAccessToken(cfg.JWTSecret, "u1", "u@test.com", "ADMIN", cfg.AccessTTLMin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, got := runGate(t, cfg, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: config.AccessTokenCookie, Value: tok.Token})
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	want := utils.Claims{UserID: "u1", Email: "u@test.com", Role: "ADMIN"}
	if got != want {
		t.Fatalf("principal = %+v, want %+v", got, want)
	}
}

func TestJWTAuthBearerFallback(t *testing.T) {
	cfg := testCfg()
	tok, err := utils.NewAccessToken(cfg.JWTSecret, "u1", "u@test.com", "USER", cfg.AccessTTLMin)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}
	rec, got := runGate(t, cfg, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+tok.Token)
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 via bearer header, got %d", rec.Code)
	}
	if got.UserID != "u1" {
		t.Fatalf("principal not populated from bearer token")
	}
}

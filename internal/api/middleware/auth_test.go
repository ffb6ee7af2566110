package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/fsociety/forum/internal/core/domain"
)

type stubResolver struct {
	users map[string]*domain.User
}

func (s stubResolver) Resolve(_ context.Context, id string) (*domain.User, error) {
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

var resolver = stubResolver{users: map[string]*domain.User{
	"admin-1": {ID: "admin-1", Username: "Lukha", IsAdmin: true},
	"user-1":  {ID: "user-1", Username: "neo"},
}}

func sign(t *testing.T, claims jwt.MapClaims, secret string) string {
	t.Helper()
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func runAuth(t *testing.T, header string) (*httptest.ResponseRecorder, bool) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret", resolver)(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		e.HTTPErrorHandler(err, c)
	}
	return rec, called
}

func TestAuthMiddleware_ValidToken(t *testing.T) {
	e := echo.New()
	signed := sign(t, jwt.MapClaims{
		"sub":      "admin-1",
		"username": "Lukha",
		"role":     "admin",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}, "secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	called := false
	handler := Auth("secret", resolver)(func(c echo.Context) error {
		called = true
		if c.Get(CtxUserID) != "admin-1" {
			t.Fatalf("user_id not set")
		}
		if c.Get(CtxUsername) != "Lukha" {
			t.Fatalf("username not set")
		}
		if c.Get(CtxRole) != domain.RoleAdmin {
			t.Fatalf("role not set")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatalf("next not called")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAuthMiddleware_RoleComesFromStoredUser(t *testing.T) {
	e := echo.New()
	signed := sign(t, jwt.MapClaims{"sub": "user-1", "role": "admin"}, "secret")

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	c := e.NewContext(req, httptest.NewRecorder())

	handler := Auth("secret", resolver)(func(c echo.Context) error {
		if c.Get(CtxRole) != domain.RoleMember {
			t.Fatalf("expected member role, got %v", c.Get(CtxRole))
		}
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	cases := map[string]string{
		"missing header":  "",
		"invalid format":  "Token abc",
		"malformed token": "Bearer not-a-token",
		"wrong secret":    "Bearer " + sign(t, jwt.MapClaims{"sub": "user-1"}, "other"),
		"expired":         "Bearer " + sign(t, jwt.MapClaims{"sub": "user-1", "exp": time.Now().Add(-time.Minute).Unix()}, "secret"),
		"no subject":      "Bearer " + sign(t, jwt.MapClaims{"username": "neo"}, "secret"),
		"unknown subject": "Bearer " + sign(t, jwt.MapClaims{"sub": "user-gone"}, "secret"),
	}

	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec, called := runAuth(t, header)
			if called {
				t.Fatalf("should not reach next")
			}
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
		})
	}
}

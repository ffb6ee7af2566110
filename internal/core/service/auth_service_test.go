package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fsociety/forum/internal/core/domain"
)

func newTestAuthService(t *testing.T) *AuthService {
	t.Helper()
	return NewAuthService(newTestUserStore(t, newStubBlobStore()), "secret", time.Hour)
}

func parseClaims(t *testing.T, token string) jwt.MapClaims {
	t.Helper()
	claims := jwt.MapClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if err != nil || !parsed.Valid {
		t.Fatalf("token invalid: %v", err)
	}
	return claims
}

func TestAuthService_Register_Success(t *testing.T) {
	svc := newTestAuthService(t)

	token, user, err := svc.Register(context.Background(), "alice", "alice@example.com", "pass123")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user == nil || user.IsAdmin {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := parseClaims(t, token)
	if claims["sub"] != user.ID {
		t.Fatalf("expected sub %s, got %v", user.ID, claims["sub"])
	}
	if claims["role"] != domain.RoleMember {
		t.Fatalf("expected role %s, got %v", domain.RoleMember, claims["role"])
	}
}

func TestAuthService_Register_Validation(t *testing.T) {
	svc := newTestAuthService(t)

	if _, _, err := svc.Register(context.Background(), "", "a@example.com", "pass"); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	svc := newTestAuthService(t)

	_, _, _ = svc.Register(context.Background(), "bob", "bob@example.com", "pass")
	if _, _, err := svc.Register(context.Background(), "bob2", "bob@example.com", "pass2"); !errors.Is(err, domain.ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}
}

func TestAuthService_Login_SeedAdmin(t *testing.T) {
	svc := newTestAuthService(t)

	token, user, err := svc.Login(context.Background(), domain.SeedAdminUsername, domain.SeedAdminPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != domain.SeedAdminID {
		t.Fatalf("unexpected user: %+v", user)
	}

	claims := parseClaims(t, token)
	if claims["role"] != domain.RoleAdmin {
		t.Fatalf("expected role %s, got %v", domain.RoleAdmin, claims["role"])
	}
	if claims["username"] != domain.SeedAdminUsername {
		t.Fatalf("unexpected username claim: %v", claims["username"])
	}
}

func TestAuthService_Login_TokenExpiry(t *testing.T) {
	svc := newTestAuthService(t)
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }

	token, _, err := svc.Login(context.Background(), domain.SeedAdminUsername, domain.SeedAdminPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	_, err = jwt.Parse(token, func(token *jwt.Token) (interface{}, error) {
		return []byte("secret"), nil
	})
	if !errors.Is(err, jwt.ErrTokenExpired) {
		t.Fatalf("expected expired token, got %v", err)
	}
}

func TestAuthService_Login_InvalidCredentials(t *testing.T) {
	svc := newTestAuthService(t)
	_, _, _ = svc.Register(context.Background(), "dave", "dave@example.com", "goodpass")

	cases := map[string][2]string{
		"bad password":   {"dave", "badpass"},
		"unknown user":   {"ghost", "pass"},
		"empty password": {"dave", ""},
		"email as login": {"dave@example.com", "goodpass"},
	}
	for name, c := range cases {
		t.Run(name, func(t *testing.T) {
			if _, _, err := svc.Login(context.Background(), c[0], c[1]); !errors.Is(err, domain.ErrAuthFailure) {
				t.Fatalf("expected ErrAuthFailure, got %v", err)
			}
		})
	}
}

func TestAuthService_Resolve(t *testing.T) {
	svc := newTestAuthService(t)

	user, err := svc.Resolve(context.Background(), domain.SeedAdminID)
	if err != nil || user.Username != domain.SeedAdminUsername {
		t.Fatalf("resolve seed: %+v, %v", user, err)
	}
	if _, err := svc.Resolve(context.Background(), "user-missing"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAuthService_DefaultTTL(t *testing.T) {
	svc := NewAuthService(nil, "secret", 0)
	if svc.tokenTTL != 24*time.Hour {
		t.Fatalf("expected 24h default, got %s", svc.tokenTTL)
	}
}

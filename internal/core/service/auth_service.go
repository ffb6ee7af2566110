package service

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/fsociety/forum/internal/core/domain"
	"github.com/fsociety/forum/internal/core/ports"
)

var _ ports.AuthService = (*AuthService)(nil)

// AuthService implements registration and login for the networked variant.
// The session is carried by a signed bearer token instead of a stored blob.
type AuthService struct {
	users     *UserStore
	jwtSecret string
	tokenTTL  time.Duration
	now       func() time.Time
}

func NewAuthService(users *UserStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	if tokenTTL <= 0 {
		tokenTTL = 24 * time.Hour
	}
	return &AuthService{users: users, jwtSecret: jwtSecret, tokenTTL: tokenTTL, now: time.Now}
}

// Register creates an account and returns a token for it, mirroring the
// auto-login that follows registration in the browser client.
func (s *AuthService) Register(ctx context.Context, username, email, password string) (string, *domain.User, error) {
	user, err := s.users.Register(ctx, username, email, password)
	if err != nil {
		return "", nil, err
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Login(_ context.Context, username, password string) (string, *domain.User, error) {
	if username == "" || password == "" {
		return "", nil, domain.ErrAuthFailure
	}

	user, ok := s.users.Authenticate(username, password)
	if !ok {
		return "", nil, domain.ErrAuthFailure
	}

	token, err := s.generateToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *AuthService) Resolve(_ context.Context, userID string) (*domain.User, error) {
	user, ok := s.users.FindByID(userID)
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *AuthService) CreateUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	return s.users.Register(ctx, username, email, password)
}

func (s *AuthService) generateToken(user *domain.User) (string, error) {
	now := s.now()
	claims := jwt.MapClaims{
		"sub":      user.ID,
		"username": user.Username,
		"role":     user.Role(),
		"iat":      now.Unix(),
		"exp":      now.Add(s.tokenTTL).Unix(),
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString([]byte(s.jwtSecret))
}

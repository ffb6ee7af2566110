package ports

import (
	"context"

	"github.com/fsociety/forum/internal/core/domain"
)

// AuthService is the networked counterpart of the user store and session
// manager: a bearer token stands in for the persisted session blob.
type AuthService interface {
	Register(ctx context.Context, username, email, password string) (string, *domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
	// Resolve maps a token subject back to the user it names.
	Resolve(ctx context.Context, userID string) (*domain.User, error)
	// CreateUser adds an account on behalf of an administrator without issuing a token.
	CreateUser(ctx context.Context, username, email, password string) (*domain.User, error)
}

package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/fsociety/forum/internal/core/domain"
	"github.com/fsociety/forum/internal/core/persist"
)

// UserResolver resolves a session's user id.
type UserResolver interface {
	FindByID(id string) (*domain.User, bool)
}

// SessionManager tracks the single active user of a blob store. Sessions do
// not expire; they end on Logout or when the stored blob disappears.
type SessionManager struct {
	mu      sync.RWMutex
	current *domain.User
	db      *persist.Adapter
	log     zerolog.Logger
}

func NewSessionManager(db *persist.Adapter, log zerolog.Logger) *SessionManager {
	return &SessionManager{db: db, log: log}
}

// Initialize restores the persisted session. A session naming an unknown user
// leaves the manager logged out.
func (m *SessionManager) Initialize(ctx context.Context, users UserResolver) error {
	s, ok, err := m.db.LoadSession(ctx)
	if err != nil {
		return fmt.Errorf("initialize session: %w", err)
	}

	var current *domain.User
	if ok {
		if u, found := users.FindByID(s.UserID); found {
			current = u
		} else {
			m.log.Debug().Str("user_id", s.UserID).Msg("stored session points at unknown user")
		}
	}

	m.mu.Lock()
	m.current = current
	m.mu.Unlock()
	return nil
}

func (m *SessionManager) Login(ctx context.Context, user domain.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.db.SaveSession(ctx, domain.Session{UserID: user.ID}); err != nil {
		return fmt.Errorf("login: %w", err)
	}
	m.current = &user
	return nil
}

func (m *SessionManager) Logout(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.db.ClearSession(ctx); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	m.current = nil
	return nil
}

func (m *SessionManager) Current() (*domain.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.current == nil {
		return nil, false
	}
	u := *m.current
	return &u, true
}

func (m *SessionManager) State() domain.SessionState {
	if _, ok := m.Current(); ok {
		return domain.StateLoggedIn
	}
	return domain.StateLoggedOut
}

package service

import (
	"context"
	"crypto/subtle"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/fsociety/forum/internal/core/domain"
	"github.com/fsociety/forum/internal/core/persist"
)

// newID returns an identifier of the form "<prefix>-<uuid>".
func newID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

// UserStore keeps the ordered user list in memory and writes it through to
// the persistence adapter after every mutation.
type UserStore struct {
	mu    sync.RWMutex
	users []domain.User
	db    *persist.Adapter
	now   func() time.Time
	log   zerolog.Logger
}

func NewUserStore(db *persist.Adapter, log zerolog.Logger) *UserStore {
	return &UserStore{db: db, now: time.Now, log: log}
}

// Initialize replaces the in-memory list with the persisted one and appends
// the seed admin when no user carries its username. Calling it repeatedly
// never duplicates the seed.
func (s *UserStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	loaded, _, err := s.db.LoadUsers(ctx)
	if err != nil {
		return fmt.Errorf("initialize users: %w", err)
	}

	users := s.dedupe(loaded)
	if !slices.ContainsFunc(users, func(u domain.User) bool { return u.Username == domain.SeedAdminUsername }) {
		users = append(users, domain.NewSeedAdmin(s.now()))
		if err := s.db.SaveUsers(ctx, users); err != nil {
			return fmt.Errorf("initialize users: seed admin: %w", err)
		}
		s.log.Info().Str("user_id", domain.SeedAdminID).Msg("seed admin created")
	}

	s.users = users
	return nil
}

// Register appends a new non-admin user. Username and email must be unused
// (exact, case-sensitive match).
func (s *UserStore) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	if username == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: username, email and password are required", domain.ErrInvalidInput)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.Username == username || u.Email == email {
			return nil, domain.ErrConflict
		}
	}

	user := domain.User{
		ID:        newID("user"),
		Username:  username,
		Email:     email,
		Password:  password,
		Avatar:    domain.DefaultAvatar,
		CreatedAt: s.now().UTC(),
		IsAdmin:   false,
	}

	next := append(slices.Clone(s.users), user)
	if err := s.db.SaveUsers(ctx, next); err != nil {
		return nil, fmt.Errorf("register user: %w", err)
	}
	s.users = next

	s.log.Info().Str("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return &user, nil
}

// Authenticate returns the first user whose username and password both match
// exactly.
func (s *UserStore) Authenticate(username, password string) (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if u.Username == username && subtle.ConstantTimeCompare([]byte(u.Password), []byte(password)) == 1 {
			return &u, true
		}
	}
	return nil, false
}

func (s *UserStore) FindByID(id string) (*domain.User, bool) {
	return s.find(func(u domain.User) bool { return u.ID == id })
}

func (s *UserStore) FindByUsername(username string) (*domain.User, bool) {
	return s.find(func(u domain.User) bool { return u.Username == username })
}

// List returns a snapshot in insertion order.
func (s *UserStore) List() []domain.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.users)
}

func (s *UserStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.users)
}

func (s *UserStore) find(match func(domain.User) bool) (*domain.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.users, match)
	if i < 0 {
		return nil, false
	}
	u := s.users[i]
	return &u, true
}

// dedupe keeps the first record for every id, username and email.
func (s *UserStore) dedupe(users []domain.User) []domain.User {
	ids := make(map[string]struct{}, len(users))
	names := make(map[string]struct{}, len(users))
	emails := make(map[string]struct{}, len(users))

	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		_, dupID := ids[u.ID]
		_, dupName := names[u.Username]
		_, dupEmail := emails[u.Email]
		if dupID || dupName || dupEmail {
			s.log.Warn().Str("user_id", u.ID).Str("username", u.Username).Msg("duplicate stored user dropped")
			continue
		}
		ids[u.ID] = struct{}{}
		names[u.Username] = struct{}{}
		emails[u.Email] = struct{}{}
		out = append(out, u)
	}
	return out
}

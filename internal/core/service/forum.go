package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fsociety/forum/internal/core/domain"
	"github.com/fsociety/forum/internal/core/persist"
	"github.com/fsociety/forum/internal/core/ports"
)

// Options configures a Forum.
type Options struct {
	// Prefix is prepended to every logical key. Defaults to persist.DefaultPrefix.
	Prefix string
	Log    zerolog.Logger
}

// Forum bundles the stores that share one blob store and exposes the flows
// the single-user client drives: register, login, logout, publish.
type Forum struct {
	Users    *UserStore
	Posts    *PostStore
	Session  *SessionManager
	Transfer *Transfer

	log zerolog.Logger
}

// New wires the stores without touching storage. Call Reload before use.
func New(store ports.BlobStore, opts Options) *Forum {
	prefix := opts.Prefix
	if prefix == "" {
		prefix = persist.DefaultPrefix
	}
	db := persist.New(store, prefix, opts.Log)

	f := &Forum{
		Users:   NewUserStore(db, opts.Log),
		Posts:   NewPostStore(db, opts.Log),
		Session: NewSessionManager(db, opts.Log),
		log:     opts.Log,
	}
	f.Transfer = NewTransfer(f.Users, f.Posts, db, f.Reload, opts.Log)
	return f
}

// Open builds a Forum and loads its state.
func Open(ctx context.Context, store ports.BlobStore, opts Options) (*Forum, error) {
	f := New(store, opts)
	if err := f.Reload(ctx); err != nil {
		return nil, err
	}
	return f, nil
}

// Reload re-reads users, posts and the session from storage, in that order.
func (f *Forum) Reload(ctx context.Context) error {
	if err := f.Users.Initialize(ctx); err != nil {
		return err
	}
	if err := f.Posts.Initialize(ctx); err != nil {
		return err
	}
	return f.Session.Initialize(ctx, f.Users)
}

// Register creates an account and logs it in.
func (f *Forum) Register(ctx context.Context, username, email, password string) (*domain.User, error) {
	user, err := f.Users.Register(ctx, username, email, password)
	if err != nil {
		return nil, err
	}
	if err := f.Session.Login(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login authenticates and opens a session. On failure the current session is
// left as it was.
func (f *Forum) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, ok := f.Users.Authenticate(username, password)
	if !ok {
		f.log.Debug().Str("username", username).Msg("login rejected")
		return nil, domain.ErrAuthFailure
	}
	if err := f.Session.Login(ctx, *user); err != nil {
		return nil, err
	}
	return user, nil
}

func (f *Forum) Logout(ctx context.Context) error {
	return f.Session.Logout(ctx)
}

// Publish creates a post authored by the current user.
func (f *Forum) Publish(ctx context.Context, title, content string) (*domain.Post, error) {
	author, ok := f.Session.Current()
	if !ok {
		return nil, fmt.Errorf("publish: %w", domain.ErrAuthFailure)
	}
	return f.Posts.Create(ctx, *author, title, content)
}

// CreateUser adds an account from the admin panel. The current user must be
// an administrator; the new account is not logged in.
func (f *Forum) CreateUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	current, ok := f.Session.Current()
	if !ok {
		return nil, fmt.Errorf("create user: %w", domain.ErrAuthFailure)
	}
	if !current.IsAdmin {
		return nil, fmt.Errorf("create user: %w", domain.ErrForbidden)
	}
	return f.Users.Register(ctx, username, email, password)
}

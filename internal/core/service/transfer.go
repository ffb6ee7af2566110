package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/fsociety/forum/internal/core/domain"
	"github.com/fsociety/forum/internal/core/persist"
)

// Transfer implements bulk export and import of the non-seed dataset.
type Transfer struct {
	users  *UserStore
	posts  *PostStore
	db     *persist.Adapter
	reload func(ctx context.Context) error
	log    zerolog.Logger
}

func NewTransfer(users *UserStore, posts *PostStore, db *persist.Adapter, reload func(context.Context) error, log zerolog.Logger) *Transfer {
	return &Transfer{users: users, posts: posts, db: db, reload: reload, log: log}
}

// Export returns every user except the seed admin and every post.
func (t *Transfer) Export(_ context.Context) domain.Dump {
	all := t.users.List()
	users := make([]domain.User, 0, len(all))
	for _, u := range all {
		if !u.IsSeed() {
			users = append(users, u)
		}
	}
	return domain.Dump{Users: users, Posts: t.posts.List()}
}

// Import applies a raw bulk document. Users, when present, replace every
// non-seed user; posts, when present, replace the feed. Nothing is written
// unless the whole document is valid. State is reloaded from storage after
// the write.
func (t *Transfer) Import(ctx context.Context, raw []byte) error {
	var dump *domain.Dump
	if err := json.Unmarshal(raw, &dump); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrInvalidImport, err)
	}
	if dump == nil {
		return fmt.Errorf("%w: document is not an object", domain.ErrInvalidImport)
	}

	if err := t.apply(ctx, dump); err != nil {
		return err
	}
	return t.reload(ctx)
}

// apply validates and writes the document while holding the user and post
// locks, so a concurrent Register or Create cannot save a list copied before
// the import.
func (t *Transfer) apply(ctx context.Context, dump *domain.Dump) error {
	t.users.mu.Lock()
	defer t.users.mu.Unlock()
	t.posts.mu.Lock()
	defer t.posts.mu.Unlock()

	var users []domain.User
	if dump.Users != nil {
		merged, err := mergeUsers(t.users.users, dump.Users, t.db)
		if err != nil {
			return err
		}
		users = merged
	}

	var posts []domain.Post
	if dump.Posts != nil {
		posts = make([]domain.Post, 0, len(dump.Posts))
		for i, p := range dump.Posts {
			if err := t.db.Validate(p); err != nil {
				return fmt.Errorf("%w: posts[%d]: %v", domain.ErrInvalidImport, i, err)
			}
			p.Normalize()
			posts = append(posts, p)
		}
	}

	if users != nil {
		if err := t.db.SaveUsers(ctx, users); err != nil {
			return fmt.Errorf("import users: %w", err)
		}
		t.users.users = users
	}
	if posts != nil {
		if err := t.db.SavePosts(ctx, posts); err != nil {
			return fmt.Errorf("import posts: %w", err)
		}
		t.posts.posts = posts
	}

	t.log.Info().
		Bool("users_replaced", users != nil).
		Bool("posts_replaced", posts != nil).
		Int("users", len(users)).
		Int("posts", len(posts)).
		Msg("bulk import applied")
	return nil
}

// mergeUsers prepends the current seed record to the imported users. Seed
// records inside the document are ignored.
func mergeUsers(current, imported []domain.User, db *persist.Adapter) ([]domain.User, error) {
	merged := make([]domain.User, 0, len(imported)+1)
	for _, u := range current {
		if u.IsSeed() {
			merged = append(merged, u)
		}
	}

	ids := make(map[string]struct{})
	names := make(map[string]struct{})
	emails := make(map[string]struct{})
	for _, u := range merged {
		ids[u.ID] = struct{}{}
		names[u.Username] = struct{}{}
		emails[u.Email] = struct{}{}
	}

	for i, u := range imported {
		if u.IsSeed() {
			continue
		}
		if err := db.Validate(u); err != nil {
			return nil, fmt.Errorf("%w: users[%d]: %v", domain.ErrInvalidImport, i, err)
		}
		_, dupID := ids[u.ID]
		_, dupName := names[u.Username]
		_, dupEmail := emails[u.Email]
		if dupID || dupName || dupEmail {
			return nil, fmt.Errorf("%w: users[%d]: duplicate user %q", domain.ErrInvalidImport, i, u.Username)
		}
		ids[u.ID] = struct{}{}
		names[u.Username] = struct{}{}
		emails[u.Email] = struct{}{}
		merged = append(merged, u)
	}
	return merged, nil
}

// Package persist is the typed boundary between the forum stores and a raw
// blob store. Absent or malformed blobs load as "not found" and are never
// reported as errors; only transport failures of the backing store are.
package persist

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/fsociety/forum/internal/core/domain"
	"github.com/fsociety/forum/internal/core/ports"
)

// Logical keys. The physical key is the adapter prefix followed by one of these.
const (
	KeyUsers   = "users"
	KeyPosts   = "posts"
	KeySession = "session"
)

// DefaultPrefix matches the key names the browser client used.
const DefaultPrefix = "fsociety-"

type Adapter struct {
	store    ports.BlobStore
	prefix   string
	validate *validator.Validate
	log      zerolog.Logger
}

func New(store ports.BlobStore, prefix string, log zerolog.Logger) *Adapter {
	return &Adapter{
		store:    store,
		prefix:   prefix,
		validate: validator.New(),
		log:      log,
	}
}

// Key returns the physical key for a logical one.
func (a *Adapter) Key(logical string) string {
	return a.prefix + logical
}

// Validate checks a record against its struct tags.
func (a *Adapter) Validate(rec any) error {
	return a.validate.Struct(rec)
}

func (a *Adapter) LoadUsers(ctx context.Context) ([]domain.User, bool, error) {
	return loadRecords[domain.User](ctx, a, KeyUsers)
}

func (a *Adapter) LoadPosts(ctx context.Context) ([]domain.Post, bool, error) {
	posts, ok, err := loadRecords[domain.Post](ctx, a, KeyPosts)
	for i := range posts {
		posts[i].Normalize()
	}
	return posts, ok, err
}

func (a *Adapter) LoadSession(ctx context.Context) (domain.Session, bool, error) {
	b, ok, err := a.raw(ctx, KeySession)
	if err != nil || !ok {
		return domain.Session{}, false, err
	}

	var s domain.Session
	if err := json.Unmarshal(b, &s); err != nil {
		a.log.Warn().Err(err).Str("key", a.Key(KeySession)).Msg("malformed session blob ignored")
		return domain.Session{}, false, nil
	}
	if err := a.validate.Struct(s); err != nil {
		a.log.Warn().Err(err).Str("key", a.Key(KeySession)).Msg("invalid session blob ignored")
		return domain.Session{}, false, nil
	}
	return s, true, nil
}

func (a *Adapter) SaveUsers(ctx context.Context, users []domain.User) error {
	if users == nil {
		users = []domain.User{}
	}
	return a.save(ctx, KeyUsers, users)
}

func (a *Adapter) SavePosts(ctx context.Context, posts []domain.Post) error {
	if posts == nil {
		posts = []domain.Post{}
	}
	return a.save(ctx, KeyPosts, posts)
}

func (a *Adapter) SaveSession(ctx context.Context, s domain.Session) error {
	return a.save(ctx, KeySession, s)
}

func (a *Adapter) ClearSession(ctx context.Context) error {
	if err := a.store.Delete(ctx, a.Key(KeySession)); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	return nil
}

func (a *Adapter) raw(ctx context.Context, logical string) ([]byte, bool, error) {
	b, err := a.store.Get(ctx, a.Key(logical))
	if errors.Is(err, domain.ErrBlobNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("load %s: %w", logical, err)
	}
	return b, true, nil
}

func (a *Adapter) save(ctx context.Context, logical string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", logical, err)
	}
	if err := a.store.Put(ctx, a.Key(logical), b); err != nil {
		return fmt.Errorf("save %s: %w", logical, err)
	}
	return nil
}

// loadRecords decodes a JSON array blob element by element. A blob that is not
// an array counts as absent; elements that fail to decode or validate are
// dropped so one bad record does not discard the collection.
func loadRecords[T any](ctx context.Context, a *Adapter, logical string) ([]T, bool, error) {
	b, ok, err := a.raw(ctx, logical)
	if err != nil || !ok {
		return nil, false, err
	}

	var items []json.RawMessage
	if err := json.Unmarshal(b, &items); err != nil || items == nil {
		a.log.Warn().Err(err).Str("key", a.Key(logical)).Msg("malformed blob ignored, using default")
		return nil, false, nil
	}

	out := make([]T, 0, len(items))
	for i, item := range items {
		var rec T
		if err := json.Unmarshal(item, &rec); err != nil {
			a.log.Warn().Err(err).Str("key", a.Key(logical)).Int("index", i).Msg("undecodable record dropped")
			continue
		}
		if err := a.validate.Struct(rec); err != nil {
			a.log.Warn().Err(err).Str("key", a.Key(logical)).Int("index", i).Msg("invalid record dropped")
			continue
		}
		out = append(out, rec)
	}
	return out, true, nil
}

package service

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/fsociety/forum/internal/core/domain"
	"github.com/fsociety/forum/internal/core/persist"
)

// PostStore keeps posts newest first. New posts are prepended.
type PostStore struct {
	mu    sync.RWMutex
	posts []domain.Post
	db    *persist.Adapter
	now   func() time.Time
	log   zerolog.Logger
}

func NewPostStore(db *persist.Adapter, log zerolog.Logger) *PostStore {
	return &PostStore{db: db, now: time.Now, log: log}
}

// Initialize replaces the in-memory feed with the persisted one, or an empty
// feed when nothing usable is stored.
func (s *PostStore) Initialize(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	posts, _, err := s.db.LoadPosts(ctx)
	if err != nil {
		return fmt.Errorf("initialize posts: %w", err)
	}
	if posts == nil {
		posts = []domain.Post{}
	}

	s.posts = posts
	return nil
}

// Create publishes a post by author. An empty title or content is rejected
// with ErrInvalidInput and leaves the feed unchanged. Inputs are not trimmed.
func (s *PostStore) Create(ctx context.Context, author domain.User, title, content string) (*domain.Post, error) {
	if title == "" || content == "" {
		return nil, fmt.Errorf("%w: title and content are required", domain.ErrInvalidInput)
	}

	post := domain.Post{
		ID:             newID("post"),
		Title:          title,
		Content:        content,
		AuthorID:       author.ID,
		AuthorUsername: author.Username,
		AuthorAvatar:   author.Avatar,
		CreatedAt:      s.now().UTC(),
		Comments:       []domain.Comment{},
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]domain.Post, 0, len(s.posts)+1)
	next = append(next, post)
	next = append(next, s.posts...)
	if err := s.db.SavePosts(ctx, next); err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.posts = next

	s.log.Info().Str("post_id", post.ID).Str("author_id", author.ID).Msg("post created")
	return &post, nil
}

// List returns a snapshot of the feed, newest first.
func (s *PostStore) List() []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.posts)
}

func (s *PostStore) Get(id string) (*domain.Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := slices.IndexFunc(s.posts, func(p domain.Post) bool { return p.ID == id })
	if i < 0 {
		return nil, false
	}
	p := s.posts[i]
	return &p, true
}

func (s *PostStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.posts)
}

package service

import (
	"context"

	"github.com/fsociety/forum/internal/core/domain"
	"github.com/fsociety/forum/internal/core/ports"
)

var (
	_ ports.PostService     = (*PostService)(nil)
	_ ports.TransferService = (*Transfer)(nil)
)

// PostService serves the feed to token-authenticated callers.
type PostService struct {
	posts *PostStore
	users *UserStore
}

func NewPostService(posts *PostStore, users *UserStore) *PostService {
	return &PostService{posts: posts, users: users}
}

func (s *PostService) List(_ context.Context) []domain.Post {
	return s.posts.List()
}

func (s *PostService) Get(_ context.Context, id string) (*domain.Post, error) {
	post, ok := s.posts.Get(id)
	if !ok {
		return nil, domain.ErrPostNotFound
	}
	return post, nil
}

// Create publishes on behalf of authorID. An author that no longer exists is
// treated as an authentication failure.
func (s *PostService) Create(ctx context.Context, authorID, title, content string) (*domain.Post, error) {
	author, ok := s.users.FindByID(authorID)
	if !ok {
		return nil, domain.ErrAuthFailure
	}
	return s.posts.Create(ctx, *author, title, content)
}

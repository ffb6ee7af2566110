package ports

import (
	"context"

	"github.com/fsociety/forum/internal/core/domain"
)

// PostService exposes the feed over the networked variant.
type PostService interface {
	List(ctx context.Context) []domain.Post
	Get(ctx context.Context, id string) (*domain.Post, error)
	Create(ctx context.Context, authorID, title, content string) (*domain.Post, error)
}

// TransferService moves the whole non-seed dataset in and out of the forum.
type TransferService interface {
	Export(ctx context.Context) domain.Dump
	// Import applies a raw bulk document and reloads all state from storage.
	Import(ctx context.Context, raw []byte) error
}

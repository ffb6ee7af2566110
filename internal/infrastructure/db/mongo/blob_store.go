package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/fsociety/forum/internal/core/domain"
)

const blobCollection = "blobs"

// BlobStore keeps one document per key in the blobs collection.
type BlobStore struct {
	client *mongo.Client
	coll   *mongo.Collection
}

func NewBlobStore(db *mongo.Database) *BlobStore {
	return &BlobStore{client: db.Client(), coll: db.Collection(blobCollection)}
}

type blobDoc struct {
	Key       string    `bson:"_id"`
	Value     []byte    `bson:"value"`
	UpdatedAt time.Time `bson:"updated_at"`
}

func (s *BlobStore) Get(ctx context.Context, key string) ([]byte, error) {
	var doc blobDoc
	if err := s.coll.FindOne(ctx, bson.M{"_id": key}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBlobNotFound
		}
		return nil, fmt.Errorf("find blob %s: %w", key, err)
	}
	return doc.Value, nil
}

func (s *BlobStore) Put(ctx context.Context, key string, value []byte) error {
	doc := blobDoc{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	_, err := s.coll.ReplaceOne(ctx, bson.M{"_id": key}, doc, options.Replace().SetUpsert(true))
	if err != nil {
		return fmt.Errorf("upsert blob %s: %w", key, err)
	}
	return nil
}

func (s *BlobStore) Delete(ctx context.Context, key string) error {
	if _, err := s.coll.DeleteOne(ctx, bson.M{"_id": key}); err != nil {
		return fmt.Errorf("delete blob %s: %w", key, err)
	}
	return nil
}

func (s *BlobStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, nil)
}

func (s *BlobStore) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// Package db selects and opens the blob store backend named by configuration.
package db

import (
	"context"
	"fmt"

	"github.com/fsociety/forum/internal/core/ports"
	"github.com/fsociety/forum/internal/infrastructure/db/memory"
	"github.com/fsociety/forum/internal/infrastructure/db/mongo"
	"github.com/fsociety/forum/internal/infrastructure/db/redis"
	"github.com/fsociety/forum/internal/infrastructure/db/sqlite"
	"github.com/fsociety/forum/internal/pkg/config"
)

// Open connects the backend selected by cfg.Store.Backend.
func Open(ctx context.Context, cfg *config.Config) (ports.Backend, error) {
	switch cfg.Store.Backend {
	case config.BackendMemory:
		return memory.New(), nil

	case config.BackendSQLite:
		store, err := sqlite.Open(ctx, cfg.SQLite.Path)
		if err != nil {
			return nil, err
		}
		return store, nil

	case config.BackendRedis:
		client, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return nil, err
		}
		return redis.NewBlobStore(client), nil

	case config.BackendMongo:
		database, err := mongo.Connect(ctx, mongo.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		return mongo.NewBlobStore(database), nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

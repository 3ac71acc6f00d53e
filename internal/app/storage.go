package app

import (
	"context"
	"fmt"

	"github.com/Anusha-2024/Mini-Journal/internal/adapter/filestore"
	"github.com/Anusha-2024/Mini-Journal/internal/adapter/memstore"
	mongostore "github.com/Anusha-2024/Mini-Journal/internal/adapter/mongo"
	"github.com/Anusha-2024/Mini-Journal/internal/adapter/postgres"
	"github.com/Anusha-2024/Mini-Journal/internal/adapter/postgres/kvstore"
	redisstore "github.com/Anusha-2024/Mini-Journal/internal/adapter/redis"
	"github.com/Anusha-2024/Mini-Journal/internal/adapter/sqlite"
	"github.com/Anusha-2024/Mini-Journal/internal/config"
	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

// Store is the key-value backend holding the collection.
type Store interface {
	Read(ctx context.Context, key string) (domain.Blob, error)
	Write(ctx context.Context, key string, value []byte, etag string) (string, error)
	Ping(ctx context.Context) error
	Close() error
}

// OpenStore connects to the backend named by cfg.Driver.
func OpenStore(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		return memstore.New(), nil

	case config.DriverFile:
		s, err := filestore.New(cfg.File.Dir)
		if err != nil {
			return nil, fmt.Errorf("open file storage: %w", err)
		}
		return s, nil

	case config.DriverSQLite:
		s, err := sqlite.Open(cfg.SQLite)
		if err != nil {
			return nil, fmt.Errorf("open sqlite storage: %w", err)
		}
		return s, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.Postgres)
		if err != nil {
			return nil, fmt.Errorf("open postgres storage: %w", err)
		}
		return kvstore.New(pool), nil

	case config.DriverRedis:
		s, err := redisstore.Open(ctx, cfg.Redis)
		if err != nil {
			return nil, fmt.Errorf("open redis storage: %w", err)
		}
		return s, nil

	case config.DriverMongo:
		s, err := mongostore.Open(ctx, cfg.Mongo)
		if err != nil {
			return nil, fmt.Errorf("open mongo storage: %w", err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.Driver)
	}
}

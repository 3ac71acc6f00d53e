// Package redis implements the blob store on Redis. Compare-and-swap uses
// WATCH/MULTI: the ETag is the xxhash of the stored value, and a write
// aborts if the key changes between the check and EXEC.
package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	goredis "github.com/redis/go-redis/v9"

	"github.com/Anusha-2024/Mini-Journal/internal/config"
	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

// Store is a Redis-backed blob store.
type Store struct {
	client *goredis.Client
	prefix string
}

// Open parses cfg.URL, applies pool settings and pings the server.
func Open(ctx context.Context, cfg config.RedisConfig) (*Store, error) {
	opt, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("redis: parse url: %w", err)
	}

	opt.PoolSize = cfg.PoolSize
	opt.DialTimeout = cfg.DialTimeout
	opt.ReadTimeout = cfg.ReadTimeout
	opt.WriteTimeout = cfg.WriteTimeout

	client := goredis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping: %w", err)
	}

	return New(client, cfg.KeyPrefix), nil
}

// New wraps an existing client. Keys are stored as prefix+key.
func New(client *goredis.Client, prefix string) *Store {
	return &Store{client: client, prefix: prefix}
}

// Read returns the blob under key, or domain.ErrNotFound.
func (s *Store) Read(ctx context.Context, key string) (domain.Blob, error) {
	value, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		return domain.Blob{}, mapError(err, key)
	}
	return domain.Blob{Value: value, ETag: hash(value)}, nil
}

// Write sets key to value if the stored value still hashes to expected
// (expected == "" requires the key to be absent).
func (s *Store) Write(ctx context.Context, key string, value []byte, expected string) (string, error) {
	full := s.prefix + key

	err := s.client.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := tx.Get(ctx, full).Bytes()
		switch {
		case errors.Is(err, goredis.Nil):
			if expected != "" {
				return domain.ErrConflict
			}
		case err != nil:
			return err
		default:
			if hash(current) != expected {
				return domain.ErrConflict
			}
		}

		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, full, value, 0)
			return nil
		})
		return err
	}, full)
	if err != nil {
		return "", mapError(err, key)
	}

	return hash(value), nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

// Close closes the client.
func (s *Store) Close() error {
	return s.client.Close()
}

func mapError(err error, key string) error {
	switch {
	case errors.Is(err, goredis.Nil):
		return fmt.Errorf("key %q: %w", key, domain.ErrNotFound)
	case errors.Is(err, goredis.TxFailedErr), errors.Is(err, domain.ErrConflict):
		return fmt.Errorf("key %q: %w", key, domain.ErrConflict)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return fmt.Errorf("key %q: %w", key, err)
	}
	return fmt.Errorf("redis: key %q: %w", key, err)
}

func hash(data []byte) string {
	return "x" + strconv.FormatUint(xxhash.Sum64(data), 16)
}

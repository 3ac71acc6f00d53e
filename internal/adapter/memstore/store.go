// Package memstore implements an in-process key-value blob store.
// It backs tests and the "memory" driver; contents are lost on exit.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"sync"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

type record struct {
	value   []byte
	version uint64
}

// Store is a concurrency-safe map of blobs with a per-key version counter.
type Store struct {
	mu   sync.RWMutex
	data map[string]record
}

// New creates an empty store.
func New() *Store {
	return &Store{data: make(map[string]record)}
}

// Read returns a copy of the blob under key, or domain.ErrNotFound.
func (s *Store) Read(ctx context.Context, key string) (domain.Blob, error) {
	if err := ctx.Err(); err != nil {
		return domain.Blob{}, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.data[key]
	if !ok {
		return domain.Blob{}, fmt.Errorf("key %q: %w", key, domain.ErrNotFound)
	}
	return domain.Blob{Value: slices.Clone(rec.value), ETag: etag(rec.version)}, nil
}

// Write stores value if the current version matches expected.
// An empty expected ETag requires the key to be absent.
func (s *Store) Write(ctx context.Context, key string, value []byte, expected string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rec, ok := s.data[key]
	current := ""
	if ok {
		current = etag(rec.version)
	}
	if current != expected {
		return "", fmt.Errorf("key %q: %w", key, domain.ErrConflict)
	}

	next := record{value: slices.Clone(value), version: rec.version + 1}
	s.data[key] = next
	return etag(next.version), nil
}

// Ping always succeeds.
func (s *Store) Ping(context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() error { return nil }

func etag(v uint64) string { return strconv.FormatUint(v, 10) }

// Package filestore persists blobs as one JSON file per key inside a
// directory. Writes go to a temp file that is renamed over the target, so a
// reader sees either the previous file or the new one.
//
// Compare-and-swap holds within one process only: the ETag is the xxhash of
// the file content and the check-then-rename runs under a mutex.
package filestore

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

const fileExt = ".json"

// Store is a directory of blob files.
type Store struct {
	dir string
	mu  sync.Mutex
}

// New creates the directory if needed and returns a store rooted at it.
func New(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("filestore: create dir %s: %w", dir, err)
	}
	return &Store{dir: dir}, nil
}

// Dir returns the root directory.
func (s *Store) Dir() string { return s.dir }

// Read loads the file for key. A missing file is domain.ErrNotFound.
func (s *Store) Read(ctx context.Context, key string) (domain.Blob, error) {
	if err := ctx.Err(); err != nil {
		return domain.Blob{}, err
	}
	path, err := s.path(key)
	if err != nil {
		return domain.Blob{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	return readFile(path, key)
}

// Write replaces the file for key when its content hash equals expected.
// An empty expected ETag requires the file to be absent.
func (s *Store) Write(ctx context.Context, key string, value []byte, expected string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	path, err := s.path(key)
	if err != nil {
		return "", err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current, err := readFile(path, key)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		current = domain.Blob{}
	case err != nil:
		return "", err
	}
	if current.ETag != expected {
		return "", fmt.Errorf("key %q: %w", key, domain.ErrConflict)
	}

	if err := writeAtomic(s.dir, path, value); err != nil {
		return "", fmt.Errorf("filestore: write %s: %w", key, err)
	}
	return hash(value), nil
}

// Ping checks that the directory is still accessible.
func (s *Store) Ping(context.Context) error {
	info, err := os.Stat(s.dir)
	if err != nil {
		return fmt.Errorf("filestore: stat %s: %w", s.dir, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("filestore: %s is not a directory", s.dir)
	}
	return nil
}

// Close is a no-op.
func (s *Store) Close() error { return nil }

func (s *Store) path(key string) (string, error) {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return "", fmt.Errorf("filestore: invalid key %q", key)
	}
	return filepath.Join(s.dir, key+fileExt), nil
}

func readFile(path, key string) (domain.Blob, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Blob{}, fmt.Errorf("key %q: %w", key, domain.ErrNotFound)
		}
		return domain.Blob{}, fmt.Errorf("filestore: read %s: %w", key, err)
	}
	return domain.Blob{Value: data, ETag: hash(data)}, nil
}

func writeAtomic(dir, path string, value []byte) error {
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}

// hash never returns "", so an existing empty file still differs from absent.
func hash(data []byte) string {
	return "x" + strconv.FormatUint(xxhash.Sum64(data), 16)
}

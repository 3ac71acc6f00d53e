package journal

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Anusha-2024/Mini-Journal/internal/config"
	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

// ---------------------------------------------------------------------------
// Consumer-defined interfaces (private)
// ---------------------------------------------------------------------------

type blobStore interface {
	Read(ctx context.Context, key string) (domain.Blob, error)
	Write(ctx context.Context, key string, value []byte, etag string) (string, error)
}

type clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// ---------------------------------------------------------------------------
// Service
// ---------------------------------------------------------------------------

// Service is the entry store: CRUD plus import/export over one collection
// held under a fixed key of the backend. Mutations are serialized by an
// in-process mutex and guarded against other writers by compare-and-swap.
type Service struct {
	log   *slog.Logger
	store blobStore
	cfg   config.JournalConfig
	clock clock
	newID func() string

	mu sync.Mutex
}

// Option customizes a Service.
type Option func(*Service)

// WithClock overrides the time source.
func WithClock(c clock) Option {
	return func(s *Service) { s.clock = c }
}

// WithIDGenerator overrides how new entry ids are produced.
func WithIDGenerator(fn func() string) Option {
	return func(s *Service) { s.newID = fn }
}

// NewService creates a new journal service.
func NewService(logger *slog.Logger, store blobStore, cfg config.JournalConfig, opts ...Option) *Service {
	s := &Service{
		log:   logger.With("service", "journal"),
		store: store,
		cfg:   cfg,
		clock: realClock{},
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StorageKey returns the key the collection is stored under.
func (s *Service) StorageKey() string { return s.cfg.StorageKey }

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// load reads and decodes the collection. An absent key is an empty
// collection with an empty ETag. Malformed content is logged and treated as
// empty, keeping the ETag so the next write replaces it. Backend errors are
// returned.
func (s *Service) load(ctx context.Context) ([]domain.JournalEntry, string, error) {
	blob, err := s.store.Read(ctx, s.cfg.StorageKey)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return []domain.JournalEntry{}, "", nil
		}
		return nil, "", err
	}

	entries, err := decodeCollection(blob.Value)
	if err != nil {
		s.log.WarnContext(ctx, "stored collection is malformed, treating as empty",
			slog.String("key", s.cfg.StorageKey),
			slog.Int("bytes", len(blob.Value)),
			slog.String("error", err.Error()),
		)
		return []domain.JournalEntry{}, blob.ETag, nil
	}
	return entries, blob.ETag, nil
}

// mutation computes the next collection from the current one. Returning
// write=false leaves the store untouched.
type mutation func(current []domain.JournalEntry) (next []domain.JournalEntry, write bool, err error)

// mutate runs fn as one read-modify-write critical section. A lost
// compare-and-swap re-reads and recomputes up to MaxConflictRetries times.
func (s *Service) mutate(ctx context.Context, op string, fn mutation) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	attempts := s.cfg.MaxConflictRetries + 1
	for attempt := 1; attempt <= attempts; attempt++ {
		current, etag, err := s.load(ctx)
		if err != nil {
			return domain.NewPersistenceError(op, fmt.Errorf("read: %w", err))
		}

		next, write, err := fn(current)
		if err != nil {
			return err
		}
		if !write {
			return nil
		}

		data, err := encodeCollection(next)
		if err != nil {
			return domain.NewPersistenceError(op, fmt.Errorf("encode: %w", err))
		}

		_, err = s.store.Write(ctx, s.cfg.StorageKey, data, etag)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrConflict) {
			return domain.NewPersistenceError(op, err)
		}

		s.log.DebugContext(ctx, "collection changed concurrently, retrying",
			slog.String("op", op),
			slog.Int("attempt", attempt),
		)
	}

	return domain.NewPersistenceError(op, fmt.Errorf("gave up after %d attempts: %w", attempts, domain.ErrConflict))
}

func (s *Service) now() time.Time {
	return domain.Timestamp(s.clock.Now())
}

func later(a, b time.Time) time.Time {
	if b.After(a) {
		return b
	}
	return a
}

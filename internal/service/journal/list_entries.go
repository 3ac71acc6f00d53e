package journal

import (
	"context"
	"log/slog"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

// ---------------------------------------------------------------------------
// 1. ListEntries
// ---------------------------------------------------------------------------

// ListEntries returns the whole collection in stored order, newest first.
// Read failures degrade to an empty collection.
func (s *Service) ListEntries(ctx context.Context) []domain.JournalEntry {
	entries, _, err := s.load(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "read collection failed, returning empty",
			slog.String("key", s.cfg.StorageKey),
			slog.String("error", err.Error()),
		)
		return []domain.JournalEntry{}
	}
	return entries
}

// ---------------------------------------------------------------------------
// 2. GetEntry
// ---------------------------------------------------------------------------

// GetEntry looks an entry up by id.
func (s *Service) GetEntry(ctx context.Context, id string) (*domain.JournalEntry, bool) {
	entries := s.ListEntries(ctx)
	idx := domain.IndexOf(entries, id)
	if idx < 0 {
		return nil, false
	}
	e := entries[idx].Clone()
	return &e, true
}

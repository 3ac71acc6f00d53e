package journal

import (
	"context"
	"log/slog"
	"slices"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

// ---------------------------------------------------------------------------
// 4. DeleteEntry
// ---------------------------------------------------------------------------

// DeleteEntry removes the entry with the given id and reports whether one
// was removed. An unknown id performs no write.
func (s *Service) DeleteEntry(ctx context.Context, id string) (bool, error) {
	var removed bool

	err := s.mutate(ctx, "delete entry", func(current []domain.JournalEntry) ([]domain.JournalEntry, bool, error) {
		idx := domain.IndexOf(current, id)
		if idx < 0 {
			removed = false
			return current, false, nil
		}
		removed = true
		return slices.Delete(current, idx, idx+1), true, nil
	})
	if err != nil {
		return false, err
	}

	if removed {
		s.log.InfoContext(ctx, "entry deleted", slog.String("entry_id", id))
	}
	return removed, nil
}

package journal

import (
	"context"
	"log/slog"
	"slices"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

// ---------------------------------------------------------------------------
// 3. SaveEntry
// ---------------------------------------------------------------------------

// SaveEntry creates or replaces an entry and returns the stored record.
//
//   - no id: a new id is generated and the entry is prepended;
//   - id of a stored entry: replaced in place, createdAt kept;
//   - unknown id: inserted at the front with that id.
//
// updatedAt never moves backwards for an entry.
func (s *Service) SaveEntry(ctx context.Context, in SaveInput) (*domain.JournalEntry, error) {
	if err := in.Validate(s.cfg.MaxTitleLength, s.cfg.MaxMoodLength, s.cfg.MaxStickers); err != nil {
		return nil, err
	}

	var (
		saved   domain.JournalEntry
		created bool
	)
	err := s.mutate(ctx, "save entry", func(current []domain.JournalEntry) ([]domain.JournalEntry, bool, error) {
		now := s.now()
		rec := in.entry().WithDefaults(s.cfg.DefaultTitle, s.cfg.DefaultMood)

		if rec.ID == "" {
			rec.ID = s.newID()
			rec.CreatedAt = now
			rec.UpdatedAt = now
			saved, created = rec, true
			return slices.Insert(current, 0, rec), true, nil
		}

		if idx := domain.IndexOf(current, rec.ID); idx >= 0 {
			prev := current[idx]
			rec.CreatedAt = prev.CreatedAt
			rec.Extra = prev.Extra
			rec.UpdatedAt = later(now, prev.UpdatedAt)
			current[idx] = rec
			saved, created = rec, false
			return current, true, nil
		}

		rec.CreatedAt = now
		if !in.CreatedAt.IsZero() {
			rec.CreatedAt = domain.Timestamp(in.CreatedAt)
		}
		rec.UpdatedAt = now
		saved, created = rec, true
		return slices.Insert(current, 0, rec), true, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "entry saved",
		slog.String("entry_id", saved.ID),
		slog.Bool("created", created),
	)

	out := saved.Clone()
	return &out, nil
}

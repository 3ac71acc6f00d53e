package journal

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

// ---------------------------------------------------------------------------
// 6. ImportCollection
// ---------------------------------------------------------------------------

// ImportCollection replaces the stored collection with the entries in blob
// and returns them. The records are kept as-is unless import_fill_defaults
// is set, in which case defaults and missing ids are filled in.
//
// A payload that is not a JSON array of entries, or is larger than
// max_import_bytes, is a *domain.FormatError. A record over the save limits
// is a *domain.ValidationError. On any error the store is left unchanged.
func (s *Service) ImportCollection(ctx context.Context, blob []byte) ([]domain.JournalEntry, error) {
	if int64(len(blob)) > s.cfg.MaxImportBytes {
		return nil, domain.NewFormatError(fmt.Sprintf("payload too large (max %d bytes)", s.cfg.MaxImportBytes), nil)
	}

	entries, err := decodeImport(blob)
	if err != nil {
		return nil, err
	}
	if err := validateImport(entries, s.cfg.MaxTitleLength, s.cfg.MaxMoodLength, s.cfg.MaxStickers); err != nil {
		return nil, err
	}

	if s.cfg.ImportFillDefaults {
		for i, e := range entries {
			e = e.WithDefaults(s.cfg.DefaultTitle, s.cfg.DefaultMood)
			if e.ID == "" {
				e.ID = s.newID()
			}
			entries[i] = e
		}
	}

	err = s.mutate(ctx, "import", func([]domain.JournalEntry) ([]domain.JournalEntry, bool, error) {
		return domain.CloneAll(entries), true, nil
	})
	if err != nil {
		return nil, err
	}

	s.log.InfoContext(ctx, "collection imported", slog.Int("entries", len(entries)))
	return entries, nil
}

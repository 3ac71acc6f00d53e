package journal

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

// ExportFilePrefix starts every backup filename.
const ExportFilePrefix = "mini-memory-journal-backup-"

// ---------------------------------------------------------------------------
// 5. ExportCollection
// ---------------------------------------------------------------------------

// ExportCollection returns the collection as pretty-printed JSON. Like
// ListEntries it never fails on a read: malformed stored content and an
// unreachable backend both export as "[]".
func (s *Service) ExportCollection(ctx context.Context) ([]byte, error) {
	entries, _, err := s.load(ctx)
	if err != nil {
		s.log.WarnContext(ctx, "read collection failed, exporting empty",
			slog.String("key", s.cfg.StorageKey),
			slog.String("error", err.Error()),
		)
		entries = []domain.JournalEntry{}
	}

	data, err := encodeExport(entries)
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return data, nil
}

// ExportFilename returns the suggested backup filename for the day of now.
func ExportFilename(now time.Time) string {
	return ExportFilePrefix + now.Format(time.DateOnly) + ".json"
}

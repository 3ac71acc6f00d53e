// Package browse is the query layer over a loaded collection: search, mood
// filter, ordering and dashboard statistics. It never touches storage and
// never mutates its input.
package browse

import (
	"bytes"
	"slices"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

// Browser filters and sorts entries using a fixed locale for title
// collation.
type Browser struct {
	locale language.Tag
}

// New creates a Browser for locale.
func New(locale language.Tag) *Browser {
	return &Browser{locale: locale}
}

// Locale returns the collation locale.
func (b *Browser) Locale() language.Tag { return b.locale }

// FilterAndSort returns the entries matching q in the requested order.
// The search term is matched as a raw case-folded substring of title or text.
// An empty sort key means newest first; an unknown key keeps stored order.
func (b *Browser) FilterAndSort(entries []domain.JournalEntry, q domain.EntryQuery) []domain.JournalEntry {
	// Casers and collators keep internal state; both are built per call.
	fold := cases.Fold()
	term := fold.String(q.Search)

	out := make([]domain.JournalEntry, 0, len(entries))
	for _, e := range entries {
		if q.HasMoodFilter() && e.Mood != q.Mood {
			continue
		}
		if term != "" && !matches(fold, e, term) {
			continue
		}
		out = append(out, e.Clone())
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = domain.SortNewest
	}

	switch sortBy {
	case domain.SortNewest:
		slices.SortStableFunc(out, func(a, c domain.JournalEntry) int {
			return c.CreatedAt.Compare(a.CreatedAt)
		})
	case domain.SortOldest:
		slices.SortStableFunc(out, func(a, c domain.JournalEntry) int {
			return a.CreatedAt.Compare(c.CreatedAt)
		})
	case domain.SortTitle:
		col := collate.New(b.locale)
		var buf collate.Buffer
		keys := make(map[string][]byte, len(out))
		for _, e := range out {
			if _, ok := keys[e.Title]; !ok {
				keys[e.Title] = slices.Clone(col.KeyFromString(&buf, e.Title))
				buf.Reset()
			}
		}
		slices.SortStableFunc(out, func(a, c domain.JournalEntry) int {
			return bytes.Compare(keys[a.Title], keys[c.Title])
		})
	}

	return out
}

func matches(fold cases.Caser, e domain.JournalEntry, term string) bool {
	return strings.Contains(fold.String(e.Title), term) ||
		strings.Contains(fold.String(e.Text), term)
}

// ParseSortKey turns a raw query value into a SortKey. An empty value is
// SortNewest; anything unknown is a *domain.ValidationError.
func ParseSortKey(raw string) (domain.SortKey, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	if raw == "" {
		return domain.SortNewest, nil
	}
	k := domain.SortKey(raw)
	if !k.IsValid() {
		return "", domain.NewValidationError("sort", "invalid value (allowed: newest, oldest, title)")
	}
	return k, nil
}

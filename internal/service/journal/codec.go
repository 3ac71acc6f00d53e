package journal

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

func decodeCollection(data []byte) ([]domain.JournalEntry, error) {
	var entries []domain.JournalEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	if entries == nil {
		entries = []domain.JournalEntry{}
	}
	return entries, nil
}

// encodeCollection produces the compact stored form.
func encodeCollection(entries []domain.JournalEntry) ([]byte, error) {
	return json.Marshal(storable(entries))
}

// encodeExport produces the pretty-printed backup form.
func encodeExport(entries []domain.JournalEntry) ([]byte, error) {
	return json.MarshalIndent(storable(entries), "", "  ")
}

// storable guarantees "[]" for an empty collection and for nil stickers.
func storable(entries []domain.JournalEntry) []domain.JournalEntry {
	out := make([]domain.JournalEntry, len(entries))
	for i, e := range entries {
		if e.Stickers == nil {
			e.Stickers = []string{}
		}
		out[i] = e
	}
	return out
}

// decodeImport parses an import payload. Anything other than a JSON array of
// objects shaped like entries is a *domain.FormatError.
func decodeImport(data []byte) ([]domain.JournalEntry, error) {
	trimmed := bytes.TrimSpace(data)
	if !json.Valid(trimmed) {
		return nil, domain.NewFormatError("not valid JSON", nil)
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return nil, domain.NewFormatError("not a JSON array", nil)
	}
	if raw == nil {
		return nil, domain.NewFormatError("not a JSON array", nil)
	}

	entries := make([]domain.JournalEntry, 0, len(raw))
	for i, elem := range raw {
		elem = bytes.TrimSpace(elem)
		if len(elem) == 0 || elem[0] != '{' {
			return nil, domain.NewFormatError(fmt.Sprintf("element %d is not an object", i), nil)
		}
		var e domain.JournalEntry
		if err := json.Unmarshal(elem, &e); err != nil {
			return nil, domain.NewFormatError(fmt.Sprintf("element %d is not an entry", i), err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

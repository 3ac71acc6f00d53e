package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"slices"
	"strings"
	"time"
)

// TimestampLayout is the persisted timestamp form: UTC with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// entryFields lists the JSON members owned by JournalEntry, lower-cased.
// encoding/json matches member names case-insensitively, so Extra must too.
var entryFields = map[string]struct{}{
	"id": {}, "title": {}, "text": {}, "imageurl": {}, "doodledataurl": {},
	"mood": {}, "stickers": {}, "musicurl": {}, "createdat": {}, "updatedat": {},
}

type entryWire struct {
	ID            string   `json:"id"`
	Title         string   `json:"title"`
	Text          string   `json:"text"`
	ImageURL      string   `json:"imageURL"`
	DoodleDataURL string   `json:"doodleDataURL"`
	Mood          string   `json:"mood"`
	Stickers      []string `json:"stickers"`
	MusicURL      string   `json:"musicURL"`
	CreatedAt     string   `json:"createdAt,omitempty"`
	UpdatedAt     string   `json:"updatedAt,omitempty"`
}

// MarshalJSON writes the known fields in a fixed order followed by Extra
// sorted by key. Zero timestamps are omitted.
func (e JournalEntry) MarshalJSON() ([]byte, error) {
	data, err := json.Marshal(entryWire{
		ID:            e.ID,
		Title:         e.Title,
		Text:          e.Text,
		ImageURL:      e.ImageURL,
		DoodleDataURL: e.DoodleDataURL,
		Mood:          e.Mood,
		Stickers:      e.Stickers,
		MusicURL:      e.MusicURL,
		CreatedAt:     formatTimestamp(e.CreatedAt),
		UpdatedAt:     formatTimestamp(e.UpdatedAt),
	})
	if err != nil || len(e.Extra) == 0 {
		return data, err
	}

	keys := make([]string, 0, len(e.Extra))
	for k := range e.Extra {
		if _, known := entryFields[strings.ToLower(k)]; !known {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)

	var buf bytes.Buffer
	buf.Grow(len(data) + 64*len(keys))
	buf.Write(data[:len(data)-1])
	for _, k := range keys {
		name, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		value := e.Extra[k]
		if !json.Valid(value) {
			return nil, fmt.Errorf("entry %q: extra member %q is not valid JSON", e.ID, k)
		}
		buf.WriteByte(',')
		buf.Write(name)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON reads the known fields and keeps every other member in
// Extra. Missing or null timestamps stay zero.
func (e *JournalEntry) UnmarshalJSON(data []byte) error {
	var w entryWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	created, err := parseTimestamp("createdAt", w.CreatedAt)
	if err != nil {
		return err
	}
	updated, err := parseTimestamp("updatedAt", w.UpdatedAt)
	if err != nil {
		return err
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return err
	}
	var extra map[string]json.RawMessage
	for k, v := range members {
		if _, known := entryFields[strings.ToLower(k)]; known {
			continue
		}
		if extra == nil {
			extra = make(map[string]json.RawMessage)
		}
		extra[k] = slices.Clone(v)
	}

	*e = JournalEntry{
		ID:            w.ID,
		Title:         w.Title,
		Text:          w.Text,
		ImageURL:      w.ImageURL,
		DoodleDataURL: w.DoodleDataURL,
		Mood:          w.Mood,
		Stickers:      w.Stickers,
		MusicURL:      w.MusicURL,
		CreatedAt:     created,
		UpdatedAt:     updated,
		Extra:         extra,
	}
	return nil
}

func formatTimestamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(TimestampLayout)
}

func parseTimestamp(field, s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%s: %w", field, err)
	}
	return t, nil
}

package domain

import (
	"encoding/json"
	"maps"
	"slices"
	"time"
)

const (
	// DefaultTitle is used when an entry is saved without a title.
	DefaultTitle = "Untitled Entry"
	// DefaultMood is used when an entry is saved without a mood.
	DefaultMood = "😊"
)

// JournalEntry is one journal record. JSON field names match the persisted
// collection format, so the struct doubles as the import/export shape; see
// entry_json.go for the wire encoding.
type JournalEntry struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Text          string    `json:"text"`
	ImageURL      string    `json:"imageURL"`
	DoodleDataURL string    `json:"doodleDataURL"`
	Mood          string    `json:"mood"`
	Stickers      []string  `json:"stickers"`
	MusicURL      string    `json:"musicURL"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`

	// Extra holds members of an imported record that are not entry fields.
	// They are written back unchanged after the known fields.
	Extra map[string]json.RawMessage `json:"-"`
}

// Clone returns a deep copy of Stickers and Extra.
func (e JournalEntry) Clone() JournalEntry {
	c := e
	if e.Stickers != nil {
		c.Stickers = slices.Clone(e.Stickers)
	}
	if e.Extra != nil {
		c.Extra = maps.Clone(e.Extra)
	}
	return c
}

// WithDefaults returns a copy with empty title, mood and stickers replaced by
// their defaults. An empty defaultMood or defaultTitle falls back to the
// package constants.
func (e JournalEntry) WithDefaults(defaultTitle, defaultMood string) JournalEntry {
	if defaultTitle == "" {
		defaultTitle = DefaultTitle
	}
	if defaultMood == "" {
		defaultMood = DefaultMood
	}

	c := e.Clone()
	if c.Title == "" {
		c.Title = defaultTitle
	}
	if c.Mood == "" {
		c.Mood = defaultMood
	}
	if c.Stickers == nil {
		c.Stickers = []string{}
	}
	return c
}

// Timestamp normalizes t to the precision and zone used for persisted
// timestamps: UTC, milliseconds.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Millisecond)
}

// IndexOf returns the position of the entry with the given id, or -1.
func IndexOf(entries []JournalEntry, id string) int {
	return slices.IndexFunc(entries, func(e JournalEntry) bool { return e.ID == id })
}

// CloneAll deep-copies a collection. A nil input yields an empty, non-nil slice.
func CloneAll(entries []JournalEntry) []JournalEntry {
	out := make([]JournalEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

// Blob is the raw serialized collection as held by a storage backend.
// ETag identifies the stored version for compare-and-swap writes; callers
// treat it as opaque.
type Blob struct {
	Value []byte
	ETag  string
}

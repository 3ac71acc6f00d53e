package domain

import (
	"testing"
	"time"
)

func TestJournalEntry_WithDefaults(t *testing.T) {
	t.Parallel()

	t.Run("fills empty fields", func(t *testing.T) {
		t.Parallel()
		e := JournalEntry{Text: "hello"}.WithDefaults("", "")
		if e.Title != DefaultTitle {
			t.Errorf("title = %q, want %q", e.Title, DefaultTitle)
		}
		if e.Mood != DefaultMood {
			t.Errorf("mood = %q, want %q", e.Mood, DefaultMood)
		}
		if e.Stickers == nil || len(e.Stickers) != 0 {
			t.Errorf("stickers = %#v, want empty non-nil slice", e.Stickers)
		}
	})

	t.Run("keeps provided fields", func(t *testing.T) {
		t.Parallel()
		e := JournalEntry{Title: "Day One", Mood: "😢", Stickers: []string{"🌸"}}.WithDefaults("x", "y")
		if e.Title != "Day One" || e.Mood != "😢" || len(e.Stickers) != 1 {
			t.Errorf("unexpected entry: %+v", e)
		}
	})

	t.Run("custom defaults", func(t *testing.T) {
		t.Parallel()
		e := JournalEntry{}.WithDefaults("Dear diary", "🌙")
		if e.Title != "Dear diary" || e.Mood != "🌙" {
			t.Errorf("unexpected entry: %+v", e)
		}
	})
}

func TestJournalEntry_CloneIsDeep(t *testing.T) {
	t.Parallel()

	orig := JournalEntry{ID: "a", Stickers: []string{"✨", "🌟"}}
	c := orig.Clone()
	c.Stickers[0] = "🎈"

	if orig.Stickers[0] != "✨" {
		t.Error("mutating the clone must not affect the original")
	}
}

func TestTimestamp(t *testing.T) {
	t.Parallel()

	loc := time.FixedZone("UTC+3", 3*3600)
	in := time.Date(2026, 10, 14, 12, 30, 0, 123456789, loc)
	got := Timestamp(in)

	if got.Location() != time.UTC {
		t.Errorf("location = %v, want UTC", got.Location())
	}
	if got.Nanosecond() != 123000000 {
		t.Errorf("nanos = %d, want millisecond truncation", got.Nanosecond())
	}
	if !got.Equal(in.Truncate(time.Millisecond)) {
		t.Error("instant must be preserved")
	}
}

func TestIndexOf(t *testing.T) {
	t.Parallel()

	entries := []JournalEntry{{ID: "a"}, {ID: "b"}, {ID: "c"}}
	if got := IndexOf(entries, "b"); got != 1 {
		t.Errorf("IndexOf(b) = %d, want 1", got)
	}
	if got := IndexOf(entries, "zzz"); got != -1 {
		t.Errorf("IndexOf(zzz) = %d, want -1", got)
	}
	if got := IndexOf(nil, "a"); got != -1 {
		t.Errorf("IndexOf on nil = %d, want -1", got)
	}
}

func TestCloneAll_NilIsEmpty(t *testing.T) {
	t.Parallel()

	got := CloneAll(nil)
	if got == nil || len(got) != 0 {
		t.Errorf("CloneAll(nil) = %#v, want empty non-nil slice", got)
	}
}

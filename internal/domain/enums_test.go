package domain

import "testing"

func TestSortKey_IsValid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		key  SortKey
		want bool
	}{
		{SortNewest, true},
		{SortOldest, true},
		{SortTitle, true},
		{"", false},
		{"NEWEST", false},
		{"updated", false},
	}
	for _, tt := range tests {
		if got := tt.key.IsValid(); got != tt.want {
			t.Errorf("SortKey(%q).IsValid() = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestEntryQuery_Validate(t *testing.T) {
	t.Parallel()

	if err := (EntryQuery{}).Validate(); err != nil {
		t.Errorf("zero query should be valid, got %v", err)
	}
	if err := (EntryQuery{SortBy: SortTitle, Mood: MoodAll}).Validate(); err != nil {
		t.Errorf("title/all query should be valid, got %v", err)
	}
	if err := (EntryQuery{SortBy: "random"}).Validate(); err == nil {
		t.Error("unknown sort key should be rejected")
	}
}

func TestEntryQuery_HasMoodFilter(t *testing.T) {
	t.Parallel()

	if (EntryQuery{}).HasMoodFilter() {
		t.Error("empty mood should not filter")
	}
	if (EntryQuery{Mood: MoodAll}).HasMoodFilter() {
		t.Error("\"all\" should not filter")
	}
	if !(EntryQuery{Mood: "😢"}).HasMoodFilter() {
		t.Error("concrete mood should filter")
	}
}

func TestPalettes(t *testing.T) {
	t.Parallel()

	if len(Moods) != 10 {
		t.Errorf("expected 10 moods, got %d", len(Moods))
	}
	if Moods[0] != DefaultMood {
		t.Errorf("default mood should lead the palette, got %q", Moods[0])
	}
	if len(Stickers) != 20 {
		t.Errorf("expected 20 stickers, got %d", len(Stickers))
	}
}

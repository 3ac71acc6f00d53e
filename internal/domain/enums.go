package domain

// SortKey selects the display order of entries.
type SortKey string

const (
	SortNewest SortKey = "newest"
	SortOldest SortKey = "oldest"
	SortTitle  SortKey = "title"
)

func (k SortKey) String() string { return string(k) }

func (k SortKey) IsValid() bool {
	switch k {
	case SortNewest, SortOldest, SortTitle:
		return true
	}
	return false
}

// Moods is the mood palette offered by the editor and the dashboard filter.
// Entries may carry any mood string; the palette is a suggestion.
var Moods = []string{"😊", "😢", "😍", "😴", "🤔", "😤", "🎉", "😌", "🥰", "😎"}

// Stickers is the sticker palette offered by the editor.
var Stickers = []string{
	"💖", "✨", "🌟", "🦋", "🌸", "🌺", "🍀", "🌈", "☀️", "🌙",
	"⭐", "💫", "🎈", "🎀", "🎨", "📝", "💌", "📚", "🎵", "🎭",
}

package journal

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

const maxIDLength = 128

// SaveInput holds the editable fields of an entry. An empty ID creates a new
// entry. CreatedAt is honored only when ID names an entry not yet stored.
type SaveInput struct {
	ID            string
	Title         string
	Text          string
	ImageURL      string
	DoodleDataURL string
	Mood          string
	Stickers      []string
	MusicURL      string
	CreatedAt     time.Time
}

// Validate checks field limits and collects all errors.
func (i *SaveInput) Validate(maxTitle, maxMood, maxStickers int) error {
	if errs := i.fieldErrors("", maxTitle, maxMood, maxStickers); len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

// fieldErrors reports every limit i exceeds, with field names prefixed.
func (i *SaveInput) fieldErrors(prefix string, maxTitle, maxMood, maxStickers int) []domain.FieldError {
	var errs []domain.FieldError

	if len(i.ID) > maxIDLength {
		errs = append(errs, domain.FieldError{Field: prefix + "id", Message: fmt.Sprintf("too long (max %d)", maxIDLength)})
	}
	if utf8.RuneCountInString(i.Title) > maxTitle {
		errs = append(errs, domain.FieldError{Field: prefix + "title", Message: fmt.Sprintf("too long (max %d)", maxTitle)})
	}
	if utf8.RuneCountInString(i.Mood) > maxMood {
		errs = append(errs, domain.FieldError{Field: prefix + "mood", Message: fmt.Sprintf("too long (max %d)", maxMood)})
	}
	if len(i.Stickers) > maxStickers {
		errs = append(errs, domain.FieldError{Field: prefix + "stickers", Message: fmt.Sprintf("too many (max %d)", maxStickers)})
	}
	return errs
}

// validateImport applies the save limits to every imported record.
func validateImport(entries []domain.JournalEntry, maxTitle, maxMood, maxStickers int) error {
	var errs []domain.FieldError
	for idx, e := range entries {
		in := SaveInput{ID: e.ID, Title: e.Title, Mood: e.Mood, Stickers: e.Stickers}
		errs = append(errs, in.fieldErrors(fmt.Sprintf("entries[%d].", idx), maxTitle, maxMood, maxStickers)...)
	}
	if len(errs) > 0 {
		return domain.NewValidationErrors(errs)
	}
	return nil
}

func (i *SaveInput) entry() domain.JournalEntry {
	e := domain.JournalEntry{
		ID:            i.ID,
		Title:         i.Title,
		Text:          i.Text,
		ImageURL:      i.ImageURL,
		DoodleDataURL: i.DoodleDataURL,
		Mood:          i.Mood,
		MusicURL:      i.MusicURL,
	}
	if i.Stickers != nil {
		e.Stickers = append([]string(nil), i.Stickers...)
	}
	return e
}

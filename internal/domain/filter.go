package domain

// MoodAll disables the mood filter.
const MoodAll = "all"

// EntryQuery holds the display criteria applied to a collection.
type EntryQuery struct {
	Search string
	Mood   string
	SortBy SortKey
}

// HasMoodFilter reports whether the query restricts entries by mood.
func (q EntryQuery) HasMoodFilter() bool {
	return q.Mood != "" && q.Mood != MoodAll
}

// Validate checks all fields and collects all errors.
func (q EntryQuery) Validate() error {
	var errs []FieldError

	if q.SortBy != "" && !q.SortBy.IsValid() {
		errs = append(errs, FieldError{Field: "sort", Message: "invalid value (allowed: newest, oldest, title)"})
	}
	if len(q.Search) > 500 {
		errs = append(errs, FieldError{Field: "search", Message: "too long (max 500)"})
	}

	if len(errs) > 0 {
		return NewValidationErrors(errs)
	}
	return nil
}

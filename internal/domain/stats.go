package domain

// MoodCount is the number of entries carrying one mood.
type MoodCount struct {
	Mood  string `json:"mood"`
	Count int    `json:"count"`
}

// Stats summarizes a collection for the dashboard.
type Stats struct {
	TotalEntries      int         `json:"totalEntries"`
	MostUsedMood      string      `json:"mostUsedMood"`
	MoodCounts        []MoodCount `json:"moodCounts"`
	EntriesThisMonth  int         `json:"entriesThisMonth"`
	AverageTextLength int         `json:"averageTextLength"`
	MeanTextLength    float64     `json:"meanTextLength"`
}

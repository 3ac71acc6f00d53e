package browse

import (
	"math"
	"time"
	"unicode/utf8"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
)

// ComputeStats summarizes entries. The month is the calendar month of now in
// loc (nil means UTC). Ties for the most used mood go to the mood seen first
// in collection order.
func ComputeStats(entries []domain.JournalEntry, now time.Time, loc *time.Location) domain.Stats {
	if loc == nil {
		loc = time.UTC
	}

	stats := domain.Stats{
		TotalEntries: len(entries),
		MoodCounts:   []domain.MoodCount{},
	}
	if len(entries) == 0 {
		return stats
	}

	local := now.In(loc)
	year, month := local.Year(), local.Month()

	index := make(map[string]int)
	totalRunes := 0
	for _, e := range entries {
		if i, ok := index[e.Mood]; ok {
			stats.MoodCounts[i].Count++
		} else {
			index[e.Mood] = len(stats.MoodCounts)
			stats.MoodCounts = append(stats.MoodCounts, domain.MoodCount{Mood: e.Mood, Count: 1})
		}

		created := e.CreatedAt.In(loc)
		if created.Year() == year && created.Month() == month {
			stats.EntriesThisMonth++
		}

		totalRunes += utf8.RuneCountInString(e.Text)
	}

	best := 0
	for i, mc := range stats.MoodCounts {
		if mc.Count > stats.MoodCounts[best].Count {
			best = i
		}
	}
	stats.MostUsedMood = stats.MoodCounts[best].Mood

	stats.MeanTextLength = float64(totalRunes) / float64(len(entries))
	stats.AverageTextLength = int(math.Round(stats.MeanTextLength))

	return stats
}

package rest

import (
	"fmt"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/Anusha-2024/Mini-Journal/internal/domain"
	"github.com/Anusha-2024/Mini-Journal/internal/service/journal"
)

const (
	spreadsheetSheet       = "Journal"
	spreadsheetContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	spreadsheetTimeLayout  = "2006-01-02 15:04"
)

var spreadsheetHeaders = []string{"Created", "Updated", "Title", "Mood", "Stickers", "Text", "Image", "Music", "ID"}

// newWorkbook lays the collection out one entry per row in stored order.
// Doodles are left out; a data URL does not fit a cell.
func newWorkbook(entries []domain.JournalEntry, loc *time.Location) (*excelize.File, error) {
	f := excelize.NewFile()

	if err := f.SetSheetName("Sheet1", spreadsheetSheet); err != nil {
		f.Close() //nolint:errcheck
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		f.Close() //nolint:errcheck
		return nil, fmt.Errorf("header style: %w", err)
	}

	for i, h := range spreadsheetHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(spreadsheetSheet, cell, h); err != nil {
			f.Close() //nolint:errcheck
			return nil, fmt.Errorf("set header: %w", err)
		}
	}
	last, _ := excelize.CoordinatesToCellName(len(spreadsheetHeaders), 1)
	if err := f.SetCellStyle(spreadsheetSheet, "A1", last, bold); err != nil {
		f.Close() //nolint:errcheck
		return nil, fmt.Errorf("apply header style: %w", err)
	}

	for idx, e := range entries {
		row := []any{
			e.CreatedAt.In(loc).Format(spreadsheetTimeLayout),
			e.UpdatedAt.In(loc).Format(spreadsheetTimeLayout),
			e.Title,
			e.Mood,
			strings.Join(e.Stickers, " "),
			e.Text,
			e.ImageURL,
			e.MusicURL,
			e.ID,
		}
		cell, _ := excelize.CoordinatesToCellName(1, idx+2)
		if err := f.SetSheetRow(spreadsheetSheet, cell, &row); err != nil {
			f.Close() //nolint:errcheck
			return nil, fmt.Errorf("set row %d: %w", idx+2, err)
		}
	}

	widths := []struct {
		from, to string
		width    float64
	}{
		{"A", "B", 17},
		{"C", "C", 30},
		{"D", "E", 12},
		{"F", "F", 60},
		{"G", "I", 24},
	}
	for _, w := range widths {
		if err := f.SetColWidth(spreadsheetSheet, w.from, w.to, w.width); err != nil {
			f.Close() //nolint:errcheck
			return nil, fmt.Errorf("set column width: %w", err)
		}
	}

	return f, nil
}

func spreadsheetFilename(now time.Time) string {
	return journal.ExportFilePrefix + now.Format(time.DateOnly) + ".xlsx"
}

// Package render draws a year of contribution days for terminals and as SVG.
package render

import (
	"fmt"
	"sort"
	"time"

	"github.com/naka-gawa/contrib-graph/internal/domain"
)

const isoDate = "2006-01-02"

var monthNames = [12]string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}

// week is one column of the calendar, Sunday first. Nil entries are padding.
type week [7]*domain.DayRecord

// weeksGrid lays days out in Sunday-first week columns. Column 0 is the week
// of the earliest day; each day sits in the row of its weekday, so missing
// dates leave nil cells. For a repeated date the first record wins.
func weeksGrid(days []domain.DayRecord) ([]week, error) {
	sorted := append([]domain.DayRecord(nil), days...)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	var weeks []week
	var firstSunday time.Time
	for i := range sorted {
		t, err := time.Parse(isoDate, sorted[i].Date)
		if err != nil {
			return nil, fmt.Errorf("%w: date %q", domain.ErrInvalidField, sorted[i].Date)
		}
		if i == 0 {
			firstSunday = t.AddDate(0, 0, -int(t.Weekday()))
		}
		col := int(t.Sub(firstSunday)/(24*time.Hour)) / 7
		for len(weeks) <= col {
			weeks = append(weeks, week{})
		}
		if row := int(t.Weekday()); weeks[col][row] == nil {
			weeks[col][row] = &sorted[i]
		}
	}
	return weeks, nil
}

// monthStarts returns, for each month, the first week column holding one of its days.
func monthStarts(weeks []week) []monthStart {
	var starts []monthStart
	seen := make(map[time.Month]bool)
	for col, w := range weeks {
		for _, d := range w {
			if d == nil {
				continue
			}
			t, err := time.Parse(isoDate, d.Date)
			if err == nil && !seen[t.Month()] {
				seen[t.Month()] = true
				starts = append(starts, monthStart{month: t.Month(), col: col})
			}
			break
		}
	}
	return starts
}

type monthStart struct {
	month time.Month
	col   int
}

func clampLevel(level int) int {
	return max(0, min(domain.MaxIntensity, level))
}

func totalCount(days []domain.DayRecord) int {
	total := 0
	for _, d := range days {
		total += d.Count
	}
	return total
}

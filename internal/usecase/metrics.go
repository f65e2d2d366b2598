package usecase

import (
	"sort"
	"time"

	"github.com/montanaflynn/stats"
	"github.com/naka-gawa/contrib-graph/internal/domain"
)

// ComputeMetrics derives streaks, monthly totals and daily-count statistics
// from days. The input order does not matter and is left untouched.
//
// Streaks count neighbouring records of the date-sorted input, not
// calendar-adjacent dates: a missing date between two active days does not
// break a run, and overlapping year pages count a repeated date twice.
func ComputeMetrics(days []domain.DayRecord) domain.Metrics {
	sorted := make([]domain.DayRecord, 0, len(days))
	for _, d := range days {
		if d.Date != "" {
			sorted = append(sorted, d)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date < sorted[j].Date
	})

	m := domain.Metrics{
		Days:    len(sorted),
		Monthly: make([]domain.MonthTotal, 12),
	}
	for i := range m.Monthly {
		m.Monthly[i].Month = i + 1
	}

	counts := make(stats.Float64Data, 0, len(sorted))
	var current domain.Streak
	for i, d := range sorted {
		counts = append(counts, float64(d.Count))
		m.Contributions += d.Count

		if t, err := time.Parse(isoDate, d.Date); err == nil {
			m.Monthly[t.Month()-1].Contributions += d.Count
		}

		if m.MostActive == nil || d.Count > m.MostActive.Count {
			m.MostActive = &sorted[i]
		}

		if d.Count <= 0 {
			current = domain.Streak{}
			continue
		}
		m.ActiveDays++
		if m.FirstActive == nil {
			m.FirstActive = &sorted[i]
		}
		if current.Length == 0 {
			current.Start = d.Date
		}
		current.Length++
		current.End = d.Date
		if current.Length > m.LongestStreak.Length {
			m.LongestStreak = current
		}
	}
	m.CurrentStreak = current

	if len(counts) == 0 {
		return m
	}
	// Errors are only returned for empty input, which is handled above.
	m.DailyMean, _ = stats.Mean(counts)
	m.DailyMedian, _ = stats.Median(counts)
	m.DailyP90, _ = stats.Percentile(counts, 90)
	m.DailyMax, _ = stats.Max(counts)

	return m
}

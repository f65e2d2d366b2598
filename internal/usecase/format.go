package usecase

import (
	"fmt"
	"sort"
	"time"

	"github.com/naka-gawa/contrib-graph/internal/domain"
)

const isoDate = "2006-01-02"

// Format serializes years into the requested shape.
func Format(years []domain.YearContributions, shape domain.Shape) (domain.Dataset, error) {
	switch shape {
	case domain.ShapeNested:
		nested, err := FormatNested(years)
		if err != nil {
			return nil, err
		}
		return nested, nil
	case domain.ShapeFlat, "":
		return FormatFlat(years), nil
	default:
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidShape, shape)
	}
}

// FormatFlat concatenates every day, most recent first, and lists the
// summaries in the order the years were given.
func FormatFlat(years []domain.YearContributions) domain.FlatDataset {
	summaries := make([]domain.YearSummary, 0, len(years))
	total := 0
	for _, y := range years {
		summaries = append(summaries, y.YearSummary)
		total += len(y.Contributions)
	}

	days := make([]domain.DayRecord, 0, total)
	for _, y := range years {
		days = append(days, y.Contributions...)
	}
	sort.SliceStable(days, func(i, j int) bool {
		return days[i].Date > days[j].Date
	})

	return domain.FlatDataset{
		Years:         summaries,
		Contributions: days,
	}
}

// FormatNested keys summaries by label and days by year, month and day of month.
func FormatNested(years []domain.YearContributions) (domain.NestedDataset, error) {
	summaries := make(map[string]domain.YearSummary, len(years))
	days := make(domain.NestedDays)

	for _, y := range years {
		summaries[y.Year] = y.YearSummary
		for _, record := range y.Contributions {
			date, err := time.Parse(isoDate, record.Date)
			if err != nil {
				return domain.NestedDataset{}, fmt.Errorf("%w: date %q", domain.ErrInvalidField, record.Date)
			}
			year, month, day := date.Year(), int(date.Month()), date.Day()
			if days[year] == nil {
				days[year] = make(map[int]map[int]domain.DayRecord)
			}
			if days[year][month] == nil {
				days[year][month] = make(map[int]domain.DayRecord)
			}
			days[year][month][day] = record
		}
	}

	return domain.NestedDataset{
		Years:         summaries,
		Contributions: days,
	}, nil
}

package usecase

import (
	"github.com/naka-gawa/contrib-graph/internal/domain"
	"github.com/naka-gawa/contrib-graph/internal/parser"
)

// BuildYearSummary wraps an extraction into a year with its date range.
// The range is the first and last record in extraction order, which is
// chronological for the source calendar. It is not re-derived by min/max.
func BuildYearSummary(label string, extraction parser.Extraction) (domain.YearContributions, error) {
	records := extraction.Records
	if len(records) == 0 {
		return domain.YearContributions{}, domain.ErrEmptyRange
	}

	return domain.YearContributions{
		YearSummary: domain.YearSummary{
			Year:  label,
			Total: extraction.Total,
			Range: domain.DateRange{
				Start: records[0].Date,
				End:   records[len(records)-1].Date,
			},
		},
		Contributions: records,
	}, nil
}

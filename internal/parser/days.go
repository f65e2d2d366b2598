package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/naka-gawa/contrib-graph/internal/domain"
)

var (
	totalPattern = regexp.MustCompile(`^([0-9,]+)\s`)
	countPattern = regexp.MustCompile(`(?i)(\d{1,3}(?:,\d{3})*|\d+)\s+contribution`)
)

// Extraction is the raw result of parsing one year page.
type Extraction struct {
	Total   int
	Records []domain.DayRecord
}

// DayRecords extracts the header total and every calendar cell of a year page,
// in document order.
func (p *Parser) DayRecords(doc *goquery.Document) (Extraction, error) {
	total := parseTotal(doc)

	cells := doc.Find(daySelector)
	if cells.Length() == 0 {
		return Extraction{}, domain.ErrEmptyCalendar
	}

	labels := collectLabels(doc)
	records := make([]domain.DayRecord, 0, cells.Length())

	var err error
	cells.EachWithBreak(func(i int, s *goquery.Selection) bool {
		var record domain.DayRecord
		record, err = p.parseDay(i, s, labels)
		if err != nil {
			return false
		}
		records = append(records, record)
		return true
	})
	if err != nil {
		return Extraction{}, err
	}

	return Extraction{Total: total, Records: records}, nil
}

func (p *Parser) parseDay(i int, s *goquery.Selection, labels map[string]string) (domain.DayRecord, error) {
	date, ok := s.Attr("data-date")
	if !ok || date == "" {
		return domain.DayRecord{}, fmt.Errorf("%w: data-date on cell %d", domain.ErrMissingField, i)
	}
	level, ok := s.Attr("data-level")
	if !ok {
		return domain.DayRecord{}, fmt.Errorf("%w: data-level on cell %d (%s)", domain.ErrMissingField, i, date)
	}
	intensity, err := strconv.Atoi(strings.TrimSpace(level))
	if err != nil {
		return domain.DayRecord{}, fmt.Errorf("%w: data-level %q on %s", domain.ErrInvalidField, level, date)
	}
	if intensity < 0 || intensity > domain.MaxIntensity {
		return domain.DayRecord{}, fmt.Errorf("%w: data-level %d out of range on %s", domain.ErrInvalidField, intensity, date)
	}

	count := 0
	if id, ok := s.Attr("id"); ok && id != "" {
		count = parseCount(labels[id])
	}

	return domain.DayRecord{
		Date:      date,
		Count:     count,
		Color:     p.palette.Color(intensity),
		Intensity: intensity,
	}, nil
}

// parseTotal reads the yearly total from the header. Header drift yields 0.
func parseTotal(doc *goquery.Document) int {
	text := strings.TrimSpace(doc.Find(totalSelector).Text())
	match := totalPattern.FindStringSubmatch(text)
	if match == nil {
		return 0
	}
	return atoiSeparated(match[1])
}

// collectLabels indexes label text by the id it refers to.
func collectLabels(doc *goquery.Document) map[string]string {
	labels := make(map[string]string)
	doc.Find(labelSelector).Each(func(_ int, s *goquery.Selection) {
		target, _ := s.Attr("for")
		labels[target] += s.Text()
	})
	return labels
}

// parseCount reads "N contributions" out of a tooltip label. No match yields 0.
func parseCount(label string) int {
	label = strings.TrimSpace(label)
	if label == "" {
		return 0
	}
	match := countPattern.FindStringSubmatch(label)
	if match == nil {
		return 0
	}
	return atoiSeparated(match[1])
}

func atoiSeparated(s string) int {
	n, err := strconv.Atoi(strings.ReplaceAll(s, ",", ""))
	if err != nil {
		return 0
	}
	return n
}

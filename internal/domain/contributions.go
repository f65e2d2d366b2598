// Package domain contains the core data structures and domain logic for the application.
package domain

import "fmt"

// DayRecord holds the activity of a single calendar day as rendered by the
// contribution calendar. Count and Intensity are sourced independently and
// are never cross-checked.
type DayRecord struct {
	Date      string `json:"date"`
	Count     int    `json:"count"`
	Color     string `json:"color"`
	Intensity int    `json:"intensity"`
}

// DateRange is an inclusive range of ISO dates (YYYY-MM-DD).
type DateRange struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// YearSummary is the aggregate of one year page.
// Year is an opaque label as displayed by the source; it is not parsed.
type YearSummary struct {
	Year  string    `json:"year"`
	Total int       `json:"total"`
	Range DateRange `json:"range"`
}

// YearContributions is a YearSummary together with every extracted day.
type YearContributions struct {
	YearSummary
	Contributions []DayRecord `json:"contributions"`
}

// YearLink is a discovered year: the relative fetch path and its display label.
type YearLink struct {
	Path  string `json:"href"`
	Label string `json:"text"`
}

// Shape selects the serialization of a multi-year dataset.
type Shape string

const (
	ShapeFlat   Shape = "flat"
	ShapeNested Shape = "nested"
)

// ParseShape converts a user supplied value into a Shape.
// An empty value selects the flat shape.
func ParseShape(s string) (Shape, error) {
	switch Shape(s) {
	case "", ShapeFlat:
		return ShapeFlat, nil
	case ShapeNested:
		return ShapeNested, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidShape, s)
	}
}

// Dataset is the result of a full multi-year fetch, in one of its two shapes.
type Dataset interface {
	Shape() Shape
}

// FlatDataset lists years in discovery order and every day, most recent first.
type FlatDataset struct {
	Years         []YearSummary `json:"years"`
	Contributions []DayRecord   `json:"contributions"`
}

// Shape implements Dataset.
func (FlatDataset) Shape() Shape { return ShapeFlat }

// NestedDays maps year -> month (1-12) -> day of month -> record.
type NestedDays map[int]map[int]map[int]DayRecord

// NestedDataset keys year summaries by label and days by calendar position.
type NestedDataset struct {
	Years         map[string]YearSummary `json:"years"`
	Contributions NestedDays             `json:"contributions"`
}

// Shape implements Dataset.
func (NestedDataset) Shape() Shape { return ShapeNested }

// Profile is the public identity of a user, used for badges.
type Profile struct {
	Login     string `json:"login"`
	Name      string `json:"name"`
	ID        int64  `json:"id"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

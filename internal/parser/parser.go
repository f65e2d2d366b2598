// Package parser extracts year links and calendar days from contribution pages.
package parser

import (
	"net/url"

	"github.com/naka-gawa/contrib-graph/internal/domain"
)

const (
	yearLinkSelector = ".js-year-link.filter-item"
	totalSelector    = ".js-yearly-contributions h2"
	daySelector      = "table.ContributionCalendar-grid td.ContributionCalendar-day"
	labelSelector    = "[for]"

	contributionsTab = "contributions"
)

// Parser turns parsed pages into domain values.
type Parser struct {
	baseURL *url.URL
	palette domain.Palette
}

// New creates a Parser that resolves links against baseURL and colors days with palette.
func New(baseURL *url.URL, palette domain.Palette) *Parser {
	u := *baseURL
	return &Parser{
		baseURL: &u,
		palette: palette,
	}
}

package parser

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/naka-gawa/contrib-graph/internal/domain"
)

// YearLinks returns the year filter links of a profile page in document order.
// A link without an href fails the whole extraction.
func (p *Parser) YearLinks(doc *goquery.Document) ([]domain.YearLink, error) {
	selection := doc.Find(yearLinkSelector)
	links := make([]domain.YearLink, 0, selection.Length())

	var err error
	selection.EachWithBreak(func(i int, s *goquery.Selection) bool {
		href, ok := s.Attr("href")
		if !ok || href == "" {
			err = fmt.Errorf("%w: link %d", domain.ErrMissingAttribute, i)
			return false
		}
		var path string
		path, err = p.normalizeYearPath(href)
		if err != nil {
			return false
		}
		links = append(links, domain.YearLink{
			Path:  path,
			Label: strings.TrimSpace(s.Text()),
		})
		return true
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

// normalizeYearPath resolves href against the base URL, forces the
// contributions tab and keeps only the path and query.
func (p *Parser) normalizeYearPath(href string) (string, error) {
	ref, err := url.Parse(href)
	if err != nil {
		return "", fmt.Errorf("failed to parse year link %q: %w", href, err)
	}
	resolved := p.baseURL.ResolveReference(ref)

	resolved.RawQuery = setQueryParam(resolved.RawQuery, "tab", contributionsTab)

	path := resolved.EscapedPath()
	if resolved.RawQuery != "" {
		path += "?" + resolved.RawQuery
	}
	return path, nil
}

// setQueryParam sets key to value in rawQuery without reordering the other
// parameters. The first occurrence of key is replaced in place and later ones
// are removed; a missing key is appended.
func setQueryParam(rawQuery, key, value string) string {
	pair := url.QueryEscape(key) + "=" + url.QueryEscape(value)
	var parts []string
	found := false
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		name, _, _ := strings.Cut(part, "=")
		if unescaped, err := url.QueryUnescape(name); err == nil && unescaped == key {
			if !found {
				parts = append(parts, pair)
				found = true
			}
			continue
		}
		parts = append(parts, part)
	}
	if !found {
		parts = append(parts, pair)
	}
	return strings.Join(parts, "&")
}

// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/naka-gawa/contrib-graph/internal/domain"
	"github.com/naka-gawa/contrib-graph/internal/gateway"
	"github.com/naka-gawa/contrib-graph/internal/parser"
	"golang.org/x/sync/errgroup"
)

// Assembler is the use case for building contribution datasets.
// It orchestrates year discovery, the per-year fetches and the final shaping.
type Assembler struct {
	fetcher gateway.MarkupFetcher
	parser  *parser.Parser
	logger  *log.Logger
}

// NewAssembler creates a new Assembler instance.
func NewAssembler(fetcher gateway.MarkupFetcher, parser *parser.Parser, logger *log.Logger) *Assembler {
	return &Assembler{
		fetcher: fetcher,
		parser:  parser,
		logger:  logger,
	}
}

// ListYears returns the years available for username in document order.
// An empty result is not an error.
func (a *Assembler) ListYears(ctx context.Context, username string) ([]domain.YearLink, error) {
	links, err := a.discover(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch available years for %s: %w", username, err)
	}
	return links, nil
}

// FetchAllYears fetches every available year concurrently and serializes the
// result into shape. A single failing year fails the whole call.
func (a *Assembler) FetchAllYears(ctx context.Context, username string, shape domain.Shape) (domain.Dataset, error) {
	years, err := a.FetchYears(ctx, username)
	if err != nil {
		return nil, err
	}
	dataset, err := Format(years, shape)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contributions for %s: %w", username, err)
	}
	return dataset, nil
}

// FetchYears fetches every available year concurrently. The result is in
// discovery order.
func (a *Assembler) FetchYears(ctx context.Context, username string) ([]domain.YearContributions, error) {
	a.logger.Printf("Usecase: Discovering years for %s...", username)
	links, err := a.discover(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contributions for %s: %w", username, err)
	}
	if len(links) == 0 {
		return nil, fmt.Errorf("failed to fetch contributions for %s: %w", username, domain.ErrNoData)
	}

	years := make([]domain.YearContributions, len(links))

	// Use an errgroup to fetch all years concurrently.
	eg, egCtx := errgroup.WithContext(ctx)
	for i, link := range links {
		eg.Go(func() error {
			year, err := a.fetchYear(egCtx, link)
			if err != nil {
				return err
			}
			years[i] = year
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return nil, fmt.Errorf("failed to fetch contributions for %s: %w", username, err)
	}
	a.logger.Printf("Usecase: All %d years fetched successfully.", len(years))

	return years, nil
}

// FetchOneYear fetches the year whose label equals year exactly.
func (a *Assembler) FetchOneYear(ctx context.Context, username, year string) (domain.YearContributions, error) {
	wrap := func(err error) error {
		return fmt.Errorf("failed to fetch %s contributions for %s: %w", year, username, err)
	}

	links, err := a.discover(ctx, username)
	if err != nil {
		return domain.YearContributions{}, wrap(err)
	}
	if len(links) == 0 {
		return domain.YearContributions{}, wrap(domain.ErrNoData)
	}

	for _, link := range links {
		if link.Label == year {
			result, err := a.fetchYear(ctx, link)
			if err != nil {
				return domain.YearContributions{}, wrap(err)
			}
			return result, nil
		}
	}
	return domain.YearContributions{}, wrap(fmt.Errorf("%w: %s", domain.ErrYearNotFound, year))
}

// discover fetches the profile landing page and extracts its year links.
func (a *Assembler) discover(ctx context.Context, username string) ([]domain.YearLink, error) {
	if err := validateUsername(username); err != nil {
		return nil, err
	}
	doc, err := a.fetcher.FetchMarkup(ctx, "/"+url.PathEscape(username)+"?tab=contributions")
	if err != nil {
		return nil, err
	}
	return a.parser.YearLinks(doc)
}

// fetchYear runs fetch, extraction and aggregation for a single year.
func (a *Assembler) fetchYear(ctx context.Context, link domain.YearLink) (domain.YearContributions, error) {
	a.logger.Printf("  Fetching year %s...", link.Label)
	doc, err := a.fetcher.FetchMarkup(ctx, link.Path)
	if err != nil {
		return domain.YearContributions{}, err
	}
	extraction, err := a.parser.DayRecords(doc)
	if err != nil {
		return domain.YearContributions{}, fmt.Errorf("year %s: %w", link.Label, err)
	}
	return BuildYearSummary(link.Label, extraction)
}

func validateUsername(username string) error {
	if strings.TrimSpace(username) == "" || strings.ContainsAny(username, "/?#") {
		return fmt.Errorf("%w: %q", domain.ErrInvalidIdentity, username)
	}
	return nil
}

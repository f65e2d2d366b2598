// Package gateway provides access to the contribution pages of the source site
// and to the public REST API used for profile lookups.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/naka-gawa/contrib-graph/internal/domain"
)

const (
	// DefaultBaseURL is the origin every page path is resolved against.
	DefaultBaseURL = "https://github.com"
	// DefaultUserAgent is sent with every page request. The source varies its
	// markup on this header.
	DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	// DefaultRequestedWith marks requests as XHR so the source returns the calendar fragment.
	DefaultRequestedWith = "XMLHttpRequest"
)

// Config describes the source site a PageFetcher talks to.
type Config struct {
	BaseURL       string
	UserAgent     string
	RequestedWith string
	Timeout       time.Duration
}

// DefaultConfig returns the configuration for the public site.
func DefaultConfig() Config {
	return Config{
		BaseURL:       DefaultBaseURL,
		UserAgent:     DefaultUserAgent,
		RequestedWith: DefaultRequestedWith,
		Timeout:       15 * time.Second,
	}
}

// MarkupFetcher defines the behavior of a gateway that returns parsed pages.
type MarkupFetcher interface {
	FetchMarkup(ctx context.Context, path string) (*goquery.Document, error)
}

// PageFetcher is the concrete implementation of MarkupFetcher.
// Every call issues exactly one GET request; nothing is cached or retried.
type PageFetcher struct {
	baseURL *url.URL
	headers http.Header
	client  *http.Client
	logger  *log.Logger
}

// NewPageFetcher is a constructor that creates a new instance of PageFetcher.
// A nil client is replaced by one honoring cfg.Timeout.
func NewPageFetcher(cfg Config, client *http.Client, logger *log.Logger) (*PageFetcher, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse base URL %q: %w", cfg.BaseURL, err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base URL %q must be absolute", cfg.BaseURL)
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}

	headers := make(http.Header)
	headers.Set("X-Requested-With", cfg.RequestedWith)
	headers.Set("User-Agent", cfg.UserAgent)

	return &PageFetcher{
		baseURL: base,
		headers: headers,
		client:  client,
		logger:  logger,
	}, nil
}

// BaseURL returns the origin that relative paths are resolved against.
func (f *PageFetcher) BaseURL() *url.URL {
	u := *f.baseURL
	return &u
}

// FetchMarkup requests path and parses the body into a document tree.
// path may be relative to the base URL or absolute.
func (f *PageFetcher) FetchMarkup(ctx context.Context, path string) (*goquery.Document, error) {
	ref, err := url.Parse(path)
	if err != nil {
		return nil, &domain.FetchError{Path: path, Err: err}
	}
	target := f.baseURL.ResolveReference(ref)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target.String(), nil)
	if err != nil {
		return nil, &domain.FetchError{Path: path, Err: err}
	}
	req.Header = f.headers.Clone()

	f.logger.Printf("  GET %s", target)
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &domain.FetchError{Path: path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &domain.FetchError{Path: path, Status: resp.StatusCode}
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, &domain.FetchError{Path: path, Err: fmt.Errorf("failed to parse markup: %w", err)}
	}
	return doc, nil
}

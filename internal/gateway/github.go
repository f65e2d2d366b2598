package gateway

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"github.com/gofri/go-github-ratelimit/github_ratelimit"
	"github.com/naka-gawa/contrib-graph/internal/domain"
)

// ProfileFetcher defines the behavior of a gateway for fetching public profiles.
type ProfileFetcher interface {
	FetchProfile(ctx context.Context, login string) (domain.Profile, error)
}

// ProfileGateway is the concrete implementation of the ProfileFetcher interface.
type ProfileGateway struct {
	restClient *github.Client
	logger     *log.Logger
}

// ProfileConfig configures the REST client used for profile lookups.
// Token is optional; anonymous requests are subject to a lower rate limit.
type ProfileConfig struct {
	APIBaseURL    string
	Token         string
	RateLimitWait time.Duration
}

// NewProfileGateway is a constructor that creates a new instance of ProfileGateway.
func NewProfileGateway(cfg ProfileConfig, logger *log.Logger) (*ProfileGateway, error) {
	rateLimitWaiter, err := github_ratelimit.NewRateLimitWaiter(nil, github_ratelimit.WithSingleSleepLimit(cfg.RateLimitWait, nil))
	if err != nil {
		return nil, fmt.Errorf("failed to create rate limit waiter: %w", err)
	}

	var transport http.RoundTripper = rateLimitWaiter
	if cfg.Token != "" {
		transport = &oauth2.Transport{
			Base:   rateLimitWaiter,
			Source: oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token}),
		}
	}

	restClient := github.NewClient(&http.Client{Transport: transport})
	if cfg.APIBaseURL != "" {
		baseURL, err := url.Parse(cfg.APIBaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse API base URL %q: %w", cfg.APIBaseURL, err)
		}
		if !strings.HasSuffix(baseURL.Path, "/") {
			baseURL.Path += "/"
		}
		restClient.BaseURL = baseURL
	}

	return &ProfileGateway{
		restClient: restClient,
		logger:     logger,
	}, nil
}

// FetchProfile returns the public profile of login.
func (g *ProfileGateway) FetchProfile(ctx context.Context, login string) (domain.Profile, error) {
	g.logger.Printf("Fetching profile of %s using REST API...", login)
	user, _, err := g.restClient.Users.Get(ctx, login)
	if err != nil {
		var errResp *github.ErrorResponse
		if errors.As(err, &errResp) && errResp.Response != nil && errResp.Response.StatusCode == http.StatusNotFound {
			return domain.Profile{}, fmt.Errorf("%w: %s", domain.ErrNoData, login)
		}
		return domain.Profile{}, fmt.Errorf("failed to get user with REST API: %w", err)
	}

	return domain.Profile{
		Login:     user.GetLogin(),
		Name:      user.GetName(),
		ID:        user.GetID(),
		AvatarURL: user.GetAvatarURL(),
		HTMLURL:   user.GetHTMLURL(),
	}, nil
}

// Package api exposes contribution datasets and renderings over HTTP using chi.
package api

import (
	"context"
	"log"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/naka-gawa/contrib-graph/internal/domain"
)

// Contributions is the use case consumed by the handlers.
type Contributions interface {
	ListYears(ctx context.Context, username string) ([]domain.YearLink, error)
	FetchAllYears(ctx context.Context, username string, shape domain.Shape) (domain.Dataset, error)
	FetchYears(ctx context.Context, username string) ([]domain.YearContributions, error)
	FetchOneYear(ctx context.Context, username, year string) (domain.YearContributions, error)
}

// NewRouter creates a chi router with all API routes mounted.
// now is the clock used for defaults such as the current year.
func NewRouter(svc Contributions, version string, logger *log.Logger, now func() time.Time) chi.Router {
	h := NewHandler(svc, version, logger, now)

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestLogger(&middleware.DefaultLogFormatter{Logger: logger, NoColor: true}))
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/status", h.Status)

		r.Route("/github/{username}", func(r chi.Router) {
			r.Get("/", h.Contributions)
			r.Get("/years", h.Years)
			r.Get("/terminal", h.Terminal)
			r.Get("/svg", h.SVG)
			r.Get("/stats", h.Stats)
		})
	})

	return r
}

package api

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/naka-gawa/contrib-graph/internal/domain"
	"github.com/naka-gawa/contrib-graph/internal/render"
	"github.com/naka-gawa/contrib-graph/internal/usecase"
)

// Handler holds API route handlers.
type Handler struct {
	svc     Contributions
	version string
	logger  *log.Logger
	now     func() time.Time
}

// NewHandler creates a new Handler.
func NewHandler(svc Contributions, version string, logger *log.Logger, now func() time.Time) *Handler {
	if now == nil {
		now = time.Now
	}
	return &Handler{svc: svc, version: version, logger: logger, now: now}
}

// Status handles GET /api/status.
func (h *Handler) Status(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, map[string]any{
		"status":    "healthy",
		"timestamp": h.now().UTC().Format(time.RFC3339),
		"version":   h.version,
		"endpoints": map[string]string{
			"contributions": "/api/github/{username}",
			"years":         "/api/github/{username}/years",
			"specific_year": "/api/github/{username}?year={year}",
			"nested_format": "/api/github/{username}?format=nested",
			"terminal":      "/api/github/{username}/terminal?year={year}&color={color}&compact=true",
			"svg":           "/api/github/{username}/svg?year={year}",
			"stats":         "/api/github/{username}/stats?year={year}",
		},
	})
}

// Contributions handles GET /api/github/{username}.
// ?year selects a single year; otherwise ?format selects the dataset shape.
func (h *Handler) Contributions(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	q := r.URL.Query()

	if year := q.Get("year"); year != "" {
		result, err := h.svc.FetchOneYear(r.Context(), username, year)
		if err != nil {
			h.writeError(w, err)
			return
		}
		writeJSON(w, h.logger, http.StatusOK, result)
		return
	}

	shape, err := domain.ParseShape(q.Get("format"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	dataset, err := h.svc.FetchAllYears(r.Context(), username, shape)
	if err != nil {
		h.writeError(w, err)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, dataset)
}

// Years handles GET /api/github/{username}/years.
func (h *Handler) Years(w http.ResponseWriter, r *http.Request) {
	links, err := h.svc.ListYears(r.Context(), chi.URLParam(r, "username"))
	if err != nil {
		h.writeError(w, err)
		return
	}
	years := make([]string, 0, len(links))
	for _, link := range links {
		years = append(years, link.Label)
	}
	writeJSON(w, h.logger, http.StatusOK, map[string][]string{"years": years})
}

// Terminal handles GET /api/github/{username}/terminal.
// Errors are reported as plain text so that curl output stays readable.
func (h *Handler) Terminal(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	q := r.URL.Query()
	year := q.Get("year")
	if year == "" {
		year = strconv.Itoa(h.now().Year())
	}

	result, err := h.svc.FetchOneYear(r.Context(), username, year)
	if err != nil {
		h.logger.Printf("terminal graph failed: %v", err)
		writeText(w, http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("Error: "+err.Error()+"\n"))
		return
	}

	var buf bytes.Buffer
	opts := render.TerminalOptions{
		Color:   q.Get("color"),
		Compact: q.Get("compact") == "true",
		NoColor: q.Get("nocolor") == "true",
	}
	if err := render.Terminal(&buf, username, year, result.Contributions, opts); err != nil {
		writeText(w, http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("Error: "+err.Error()+"\n"))
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeText(w, http.StatusOK, "text/plain; charset=utf-8", buf.Bytes())
}

// SVG handles GET /api/github/{username}/svg.
func (h *Handler) SVG(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")
	q := r.URL.Query()
	year := q.Get("year")
	if year == "" {
		writeText(w, http.StatusBadRequest, "text/plain; charset=utf-8", []byte("Missing username or year parameter"))
		return
	}

	opts, err := svgOptions(q.Get)
	if err != nil {
		writeText(w, http.StatusBadRequest, "text/plain; charset=utf-8", []byte(err.Error()))
		return
	}

	result, err := h.svc.FetchOneYear(r.Context(), username, year)
	if err != nil {
		h.logger.Printf("svg graph failed: %v", err)
		writeText(w, http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("Error: "+err.Error()))
		return
	}

	var buf bytes.Buffer
	if err := render.SVG(&buf, username, year, result.Contributions, opts); err != nil {
		writeText(w, http.StatusInternalServerError, "text/plain; charset=utf-8", []byte("Error: "+err.Error()))
		return
	}
	w.Header().Set("Cache-Control", "public, max-age=3600")
	writeText(w, http.StatusOK, "image/svg+xml", buf.Bytes())
}

// Stats handles GET /api/github/{username}/stats.
// Without ?year the metrics span every available year.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	var days []domain.DayRecord
	if year := r.URL.Query().Get("year"); year != "" {
		result, err := h.svc.FetchOneYear(r.Context(), username, year)
		if err != nil {
			h.writeError(w, err)
			return
		}
		days = result.Contributions
	} else {
		years, err := h.svc.FetchYears(r.Context(), username)
		if err != nil {
			h.writeError(w, err)
			return
		}
		for _, y := range years {
			days = append(days, y.Contributions...)
		}
	}
	writeJSON(w, h.logger, http.StatusOK, usecase.ComputeMetrics(days))
}

func (h *Handler) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, domain.ErrInvalidShape) || errors.Is(err, domain.ErrInvalidIdentity) {
		status = http.StatusBadRequest
	}
	h.logger.Printf("request failed: %v", err)
	writeJSON(w, h.logger, status, errorBody(err.Error()))
}

func writeText(w http.ResponseWriter, status int, contentType string, body []byte) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

// svgOptions reads SVG options from query parameters, keeping defaults for absent ones.
func svgOptions(get func(string) string) (render.SVGOptions, error) {
	opts := render.DefaultSVGOptions()

	ints := map[string]*int{"size": &opts.Size, "gap": &opts.Gap}
	for key, dst := range ints {
		if v := get(key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return opts, fmt.Errorf("invalid %s %q", key, v)
			}
			*dst = n
		}
	}
	floats := map[string]*float64{"minOpacity": &opts.MinOpacity, "maxOpacity": &opts.MaxOpacity}
	for key, dst := range floats {
		if v := get(key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return opts, fmt.Errorf("invalid %s %q", key, v)
			}
			*dst = f
		}
	}
	if v := get("shape"); v != "" {
		opts.Shape = v
	}
	if v := get("baseColor"); v != "" {
		opts.BaseColor = strings.TrimPrefix(v, "#")
	}
	return opts, opts.Validate()
}

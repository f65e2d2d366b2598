package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	svg "github.com/ajstarks/svgo"
	"github.com/naka-gawa/contrib-graph/internal/domain"
)

// Cell shapes accepted by SVGOptions.
const (
	ShapeSquare  = "square"
	ShapeRounded = "rounded"
	ShapeCircle  = "circle"
)

// SVGOptions controls the SVG graph.
type SVGOptions struct {
	Size       int
	Gap        int
	Shape      string
	BaseColor  string // six hex digits, without '#'
	MinOpacity float64
	MaxOpacity float64
}

// DefaultSVGOptions returns the options used when a request sets none.
func DefaultSVGOptions() SVGOptions {
	return SVGOptions{
		Size:       12,
		Gap:        2,
		Shape:      ShapeRounded,
		BaseColor:  "10b981",
		MinOpacity: 0.1,
		MaxOpacity: 1,
	}
}

// Validate reports the first unusable option.
func (o SVGOptions) Validate() error {
	if o.Size <= 0 || o.Gap < 0 {
		return fmt.Errorf("size must be positive and gap non-negative")
	}
	switch o.Shape {
	case ShapeSquare, ShapeRounded, ShapeCircle:
	default:
		return fmt.Errorf("unknown shape %q", o.Shape)
	}
	if _, _, _, err := parseHexColor(o.BaseColor); err != nil {
		return err
	}
	if o.MinOpacity < 0 || o.MaxOpacity > 1 || o.MinOpacity > o.MaxOpacity {
		return fmt.Errorf("opacity range [%g, %g] is invalid", o.MinOpacity, o.MaxOpacity)
	}
	return nil
}

const (
	svgPadding     = 20
	monthLabelRows = 20
	graphStartY    = monthLabelRows + 10
)

// SVG writes a year of days as an SVG document.
func SVG(w io.Writer, username, year string, days []domain.DayRecord, opts SVGOptions) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	weeks, err := weeksGrid(days)
	if err != nil {
		return err
	}
	r, g, b, _ := parseHexColor(opts.BaseColor)

	var stops [domain.MaxIntensity + 1]float64
	for i := range stops {
		stops[i] = opts.MinOpacity + float64(i)*(opts.MaxOpacity-opts.MinOpacity)/float64(domain.MaxIntensity)
	}

	step := opts.Size + opts.Gap
	width := len(weeks)*step + 2*svgPadding
	height := 7*opts.Size + 6*opts.Gap + graphStartY + 80

	canvas := svg.New(w)
	canvas.Start(width, height, `role="img"`)
	canvas.Style("text/css",
		`.header { font: 600 16px 'Segoe UI', Ubuntu, Sans-Serif; fill: #2f80ed; }
.stat { font: 400 12px 'Segoe UI', Ubuntu, Sans-Serif; fill: #586069; }
.month-label { font: 400 10px 'Segoe UI', Ubuntu, Sans-Serif; fill: #586069; }`)
	canvas.Rect(0, 0, width, height, `fill="#ffffff"`)
	canvas.Text(svgPadding, 25, fmt.Sprintf("%s's Contributions in %s", username, year), `class="header"`)
	canvas.Text(svgPadding, 45, fmt.Sprintf("%d contributions", totalCount(days)), `class="stat"`)

	canvas.Translate(svgPadding, graphStartY)
	for _, start := range monthStarts(weeks) {
		canvas.Text(start.col*step, 0, monthNames[start.month-1], `class="month-label"`)
	}
	canvas.Gend()

	canvas.Translate(svgPadding, graphStartY+20)
	for col, wk := range weeks {
		for row, d := range wk {
			x, y := col*step, row*step
			fill := "rgba(16, 185, 129, 0.08)"
			title := "empty"
			if d != nil {
				fill = fmt.Sprintf("rgba(%d, %d, %d, %s)", r, g, b, strconv.FormatFloat(stops[clampLevel(d.Intensity)], 'f', -1, 64))
				title = cellTitle(*d)
			}
			canvas.Group()
			canvas.Title(title)
			cell(canvas, opts, x, y, `fill="`+fill+`"`)
			canvas.Gend()
		}
	}
	canvas.Gend()
	canvas.End()
	return nil
}

func cell(canvas *svg.SVG, opts SVGOptions, x, y int, fill string) {
	switch opts.Shape {
	case ShapeSquare:
		canvas.Rect(x, y, opts.Size, opts.Size, fill)
	case ShapeCircle:
		canvas.Circle(x+opts.Size/2, y+opts.Size/2, opts.Size/2, fill)
	default:
		canvas.Roundrect(x, y, opts.Size, opts.Size, 3, 3, fill)
	}
}

func cellTitle(d domain.DayRecord) string {
	label := d.Date
	if t, err := time.Parse(isoDate, d.Date); err == nil {
		label = t.Format("Mon Jan 02 2006")
	}
	if d.Count > 0 {
		return fmt.Sprintf("%s: %d contributions", label, d.Count)
	}
	return label
}

func parseHexColor(s string) (r, g, b uint8, err error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return 0, 0, 0, fmt.Errorf("base color %q must have six hex digits", s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return 0, 0, 0, fmt.Errorf("base color %q is not hex: %w", s, err)
	}
	return uint8(v >> 16), uint8(v >> 8), uint8(v), nil
}

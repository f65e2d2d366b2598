package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/naka-gawa/contrib-graph/internal/domain"
)

var dayNames = [7]string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// intensityGlyphs are indexed by intensity level.
var intensityGlyphs = [domain.MaxIntensity + 1]string{"·", "░", "▒", "▓", "█"}

// terminalColors maps the accepted color names to foreground attributes.
var terminalColors = map[string]color.Attribute{
	"green":  color.FgGreen,
	"blue":   color.FgBlue,
	"purple": color.FgMagenta,
	"orange": color.FgYellow,
	"yellow": color.FgHiYellow,
	"pink":   color.FgHiMagenta,
	"cyan":   color.FgCyan,
	"white":  color.FgWhite,
}

// TerminalOptions controls the plain-text graph.
type TerminalOptions struct {
	// Color is one of green, blue, purple, orange, yellow, pink, cyan, white.
	// Unknown names fall back to green.
	Color string
	// Compact renders only Mon, Wed and Fri with one-letter labels.
	Compact bool
	// NoColor strips every escape sequence.
	NoColor bool
}

// TerminalColors lists the accepted color names.
func TerminalColors() []string {
	return []string{"green", "blue", "purple", "orange", "yellow", "pink", "cyan", "white"}
}

// Terminal writes a year of days as a text calendar.
func Terminal(w io.Writer, username, year string, days []domain.DayRecord, opts TerminalOptions) error {
	weeks, err := weeksGrid(days)
	if err != nil {
		return err
	}

	attr, ok := terminalColors[opts.Color]
	if !ok {
		attr = color.FgGreen
	}
	fg := newColor(opts.NoColor, attr)
	accent := newColor(opts.NoColor, attr, color.Bold)
	bold := newColor(opts.NoColor, color.Bold)
	dim := newColor(opts.NoColor, color.Faint)

	labelWidth := 3
	rows := []int{0, 1, 2, 3, 4, 5, 6}
	if opts.Compact {
		labelWidth = 1
		rows = []int{1, 3, 5}
	}

	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s %s %s\n",
		accent.Sprint("@"+username),
		dim.Sprint("—"),
		bold.Sprint(humanize.Comma(int64(totalCount(days)))),
		dim.Sprint("contributions in "+year),
	)
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n", dim.Sprint(monthLine(weeks, labelWidth+2)))

	for _, row := range rows {
		label := dayNames[row][:labelWidth]
		fmt.Fprintf(&b, "  %s  ", dim.Sprint(label))
		for _, wk := range weeks {
			d := wk[row]
			if d == nil {
				b.WriteString(" ")
				continue
			}
			level := clampLevel(d.Intensity)
			if level == 0 {
				b.WriteString(dim.Sprint(intensityGlyphs[0]))
			} else {
				b.WriteString(fg.Sprint(intensityGlyphs[level]))
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s %s%s %s\n",
		dim.Sprint("Less"),
		dim.Sprint(intensityGlyphs[0]),
		fg.Sprint(strings.Join(intensityGlyphs[1:], "")),
		dim.Sprint("More"),
	)
	b.WriteString("\n")

	_, err = io.WriteString(w, b.String())
	return err
}

// monthLine places each month name above the first week column it starts in.
// Labels that would overlap the previous one are dropped.
func monthLine(weeks []week, indent int) string {
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", indent))
	pos := 0
	for _, start := range monthStarts(weeks) {
		if pos > start.col {
			continue
		}
		b.WriteString(strings.Repeat(" ", start.col-pos))
		label := monthNames[start.month-1]
		b.WriteString(label)
		pos = start.col + len(label)
	}
	return b.String()
}

func newColor(noColor bool, attrs ...color.Attribute) *color.Color {
	c := color.New(attrs...)
	if noColor {
		c.DisableColor()
	} else {
		c.EnableColor()
	}
	return c
}

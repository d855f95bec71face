// Package chart draws the small inline SVG charts of the dashboard. Output is
// a self-contained <svg> element ready to drop into a template.
package chart

import (
	"errors"
	"fmt"
	"html/template"
	"math"
	"strings"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("chart: no data")

// Chart sizes.
const (
	DefaultWidth  = 640
	DefaultHeight = 240
	padding       = 28.0
	gridLines     = 4
)

const (
	axisColor = "#64748b"
	gridColor = "#e2e8f0"
)

// Palette colours segments and bars in order.
var Palette = []string{"#2563eb", "#16a34a", "#f59e0b", "#dc2626", "#7c3aed", "#0891b2"}

// Point is one labelled value.
type Point struct {
	Label string
	Value float64
}

// Options customises a chart.
type Options struct {
	Title       string
	Description string
	Width       int
	Height      int
	Color       string
	// Format renders axis ticks. Compact is used when nil.
	Format func(float64) string
}

// frame is the plotting area inside the padding.
type frame struct {
	width, height int
	left, top     float64
	w, h          float64
	max           float64
}

func newFrame(opts Options, points []Point) (frame, error) {
	f := frame{width: opts.Width, height: opts.Height, left: padding + 12, top: padding}
	if f.width <= 0 {
		f.width = DefaultWidth
	}
	if f.height <= 0 {
		f.height = DefaultHeight
	}
	f.w = float64(f.width) - f.left - padding
	f.h = float64(f.height) - 2*padding
	if f.w <= 0 || f.h <= 0 {
		return f, fmt.Errorf("chart: %dx%d leaves no room to plot", f.width, f.height)
	}
	for _, p := range points {
		f.max = math.Max(f.max, p.Value)
	}
	if f.max <= 0 {
		f.max = 1
	}
	return f, nil
}

func (f frame) bottom() float64 { return f.top + f.h }

func (f frame) y(v float64) float64 {
	if v < 0 {
		v = 0
	}
	return f.bottom() - v/f.max*f.h
}

func (f frame) open(b *strings.Builder, opts Options, kind string) {
	id := slug(opts.Title) + "-" + kind
	fmt.Fprintf(b, `<svg xmlns="http://www.w3.org/2000/svg" class="chart chart-%s" viewBox="0 0 %d %d" role="img" aria-labelledby="%s-title %s-desc">`,
		kind, f.width, f.height, id, id)
	fmt.Fprintf(b, `<title id="%s-title">%s</title>`, id, esc(opts.Title))
	fmt.Fprintf(b, `<desc id="%s-desc">%s</desc>`, id, esc(opts.Description))
}

func (f frame) grid(b *strings.Builder, format func(float64) string) {
	for i := 0; i <= gridLines; i++ {
		v := f.max * float64(i) / gridLines
		y := f.y(v)
		fmt.Fprintf(b, `<line x1="%.2f" y1="%.2f" x2="%.2f" y2="%.2f" stroke="%s" stroke-width="1" aria-hidden="true"/>`,
			f.left, y, f.left+f.w, y, gridColor)
		fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10" text-anchor="end">%s</text>`,
			f.left-6, y+3, axisColor, esc(format(v)))
	}
}

func (f frame) label(b *strings.Builder, x float64, text string) {
	fmt.Fprintf(b, `<text x="%.2f" y="%.2f" fill="%s" font-size="10" text-anchor="middle">%s</text>`,
		x, f.bottom()+16, axisColor, esc(text))
}

func formatter(opts Options) func(float64) string {
	if opts.Format != nil {
		return opts.Format
	}
	return Compact
}

func color(c string, i int) string {
	if strings.TrimSpace(c) != "" {
		return c
	}
	return Palette[i%len(Palette)]
}

// Compact shortens large axis values: 1500 -> 1.5k, 2000000 -> 2M.
func Compact(v float64) string {
	abs := math.Abs(v)
	var s string
	switch {
	case abs >= 1e6:
		s = fmt.Sprintf("%.1fM", v/1e6)
	case abs >= 1e3:
		s = fmt.Sprintf("%.1fk", v/1e3)
	default:
		s = fmt.Sprintf("%.1f", v)
	}
	return strings.Replace(s, ".0", "", 1)
}

func esc(s string) string { return template.HTMLEscapeString(s) }

func slug(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	var b strings.Builder
	dash := false
	for _, r := range s {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	out := strings.TrimSuffix(b.String(), "-")
	if out == "" {
		return "chart"
	}
	return out
}

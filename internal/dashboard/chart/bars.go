package chart

import (
	"fmt"
	"html/template"
	"strings"
)

// Bars draws one vertical bar per point.
func Bars(points []Point, opts Options) (template.HTML, error) {
	if len(points) == 0 {
		return "", ErrNoData
	}
	f, err := newFrame(opts, points)
	if err != nil {
		return "", err
	}
	slot := f.w / float64(len(points))
	width := slot * 0.6

	var b strings.Builder
	f.open(&b, opts, "bars")
	f.grid(&b, formatter(opts))
	for i, p := range points {
		x := f.left + float64(i)*slot + (slot-width)/2
		y := f.y(p.Value)
		fmt.Fprintf(&b, `<rect x="%.2f" y="%.2f" width="%.2f" height="%.2f" rx="2" fill="%s"><title>%s: %s</title></rect>`,
			x, y, width, f.bottom()-y, color(opts.Color, 0), esc(p.Label), esc(formatter(opts)(p.Value)))
		f.label(&b, x+width/2, p.Label)
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

// Share draws a single stacked bar split by each point's share of the total,
// with a legend underneath. Zero-valued points appear only in the legend.
func Share(points []Point, opts Options) (template.HTML, error) {
	total := 0.0
	for _, p := range points {
		if p.Value > 0 {
			total += p.Value
		}
	}
	if len(points) == 0 || total <= 0 {
		return "", ErrNoData
	}
	width := opts.Width
	if width <= 0 {
		width = DefaultWidth
	}
	const barHeight, legendRow = 24.0, 18.0
	height := int(barHeight + 16 + legendRow*float64(len(points)))

	var b strings.Builder
	id := slug(opts.Title) + "-share"
	fmt.Fprintf(&b, `<svg xmlns="http://www.w3.org/2000/svg" class="chart chart-share" viewBox="0 0 %d %d" role="img" aria-labelledby="%s-title %s-desc">`,
		width, height, id, id)
	fmt.Fprintf(&b, `<title id="%s-title">%s</title>`, id, esc(opts.Title))
	fmt.Fprintf(&b, `<desc id="%s-desc">%s</desc>`, id, esc(opts.Description))

	x := 0.0
	for i, p := range points {
		if p.Value <= 0 {
			continue
		}
		w := p.Value / total * float64(width)
		fmt.Fprintf(&b, `<rect x="%.2f" y="0" width="%.2f" height="%.0f" fill="%s"><title>%s: %s</title></rect>`,
			x, w, barHeight, color("", i), esc(p.Label), esc(Percent(p.Value, total)))
		x += w
	}
	for i, p := range points {
		y := barHeight + 16 + legendRow*float64(i)
		fmt.Fprintf(&b, `<rect x="0" y="%.2f" width="10" height="10" fill="%s"/>`, y-9, color("", i))
		fmt.Fprintf(&b, `<text x="16" y="%.2f" fill="%s" font-size="12">%s: %s (%s)</text>`,
			y, axisColor, esc(p.Label), esc(Compact(p.Value)), esc(Percent(p.Value, total)))
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

// Percent formats part/total with one decimal.
func Percent(part, total float64) string {
	if total <= 0 {
		return "0%"
	}
	return strings.Replace(fmt.Sprintf("%.1f%%", part/total*100), ".0%", "%", 1)
}

package chart

import (
	"fmt"
	"html/template"
	"strings"
)

// Line plots points left to right with a shaded area beneath.
func Line(points []Point, opts Options) (template.HTML, error) {
	if len(points) == 0 {
		return "", ErrNoData
	}
	f, err := newFrame(opts, points)
	if err != nil {
		return "", err
	}
	stroke := color(opts.Color, 0)

	x := func(i int) float64 {
		if len(points) == 1 {
			return f.left + f.w/2
		}
		return f.left + float64(i)*f.w/float64(len(points)-1)
	}

	var path strings.Builder
	for i, p := range points {
		cmd := "L"
		if i == 0 {
			cmd = "M"
		}
		fmt.Fprintf(&path, "%s%.2f %.2f ", cmd, x(i), f.y(p.Value))
	}
	d := strings.TrimSpace(path.String())

	var b strings.Builder
	f.open(&b, opts, "line")
	f.grid(&b, formatter(opts))
	fmt.Fprintf(&b, `<path d="%s L%.2f %.2f L%.2f %.2f Z" fill="%s" fill-opacity="0.12" stroke="none" aria-hidden="true"/>`,
		d, x(len(points)-1), f.bottom(), x(0), f.bottom(), stroke)
	fmt.Fprintf(&b, `<path d="%s" fill="none" stroke="%s" stroke-width="2" stroke-linejoin="round"/>`, d, stroke)
	for i, p := range points {
		fmt.Fprintf(&b, `<circle cx="%.2f" cy="%.2f" r="3" fill="%s"><title>%s: %s</title></circle>`,
			x(i), f.y(p.Value), stroke, esc(p.Label), esc(formatter(opts)(p.Value)))
		f.label(&b, x(i), p.Label)
	}
	b.WriteString("</svg>")
	return template.HTML(b.String()), nil
}

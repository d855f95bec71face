package receipt

import (
	"bytes"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Alignment is an ESC a argument.
type Alignment byte

const (
	AlignLeft   Alignment = 0
	AlignCenter Alignment = 1
	AlignRight  Alignment = 2
)

// Columns returns the characters per line for a paper width in millimetres.
func Columns(paperWidth int) int {
	if paperWidth >= 80 {
		return 48
	}
	return 32
}

// Builder accumulates ESC/POS commands for a fixed column width.
type Builder struct {
	buf  bytes.Buffer
	cols int
}

// NewBuilder starts a job with ESC @.
func NewBuilder(cols int) *Builder {
	if cols <= 0 {
		cols = 32
	}
	b := &Builder{cols: cols}
	b.buf.Write([]byte{0x1B, 0x40})
	return b
}

// Align sets the justification of following lines.
func (b *Builder) Align(a Alignment) *Builder {
	b.buf.Write([]byte{0x1B, 0x61, byte(a)})
	return b
}

// Bold toggles emphasis.
func (b *Builder) Bold(on bool) *Builder {
	var v byte
	if on {
		v = 1
	}
	b.buf.Write([]byte{0x1B, 0x45, v})
	return b
}

// Double toggles double width and height.
func (b *Builder) Double(on bool) *Builder {
	var v byte
	if on {
		v = 0x11
	}
	b.buf.Write([]byte{0x1D, 0x21, v})
	return b
}

// Text writes s, wrapped at the column width.
func (b *Builder) Text(s string) *Builder {
	for _, line := range wrap(printable(s), b.cols) {
		b.buf.WriteString(line)
		b.buf.WriteByte('\n')
	}
	return b
}

// Pair writes left and right justified on one line, or on two when they
// do not fit together.
func (b *Builder) Pair(left, right string) *Builder {
	left, right = printable(left), printable(right)
	if len(left)+len(right)+1 > b.cols {
		b.Text(left)
		b.buf.WriteString(strings.Repeat(" ", max(b.cols-len(right), 0)))
		b.buf.WriteString(right)
		b.buf.WriteByte('\n')
		return b
	}
	b.buf.WriteString(left)
	b.buf.WriteString(strings.Repeat(" ", b.cols-len(left)-len(right)))
	b.buf.WriteString(right)
	b.buf.WriteByte('\n')
	return b
}

// Row writes three cells: left, centred and right.
func (b *Builder) Row(a, c, d string) *Builder {
	mid := b.cols / 3
	right := b.cols / 3
	left := b.cols - mid - right
	a = fit(printable(a), left-1)
	c = fit(printable(c), mid)
	d = fit(printable(d), right)
	pad := mid - len(c)
	line := padRight(a, left) + strings.Repeat(" ", pad/2) + c + strings.Repeat(" ", pad-pad/2) + strings.Repeat(" ", right-len(d)) + d
	b.buf.WriteString(line)
	b.buf.WriteByte('\n')
	return b
}

// Rule draws a full-width separator.
func (b *Builder) Rule(ch byte) *Builder {
	b.buf.Write(bytes.Repeat([]byte{ch}, b.cols))
	b.buf.WriteByte('\n')
	return b
}

// Feed advances n lines.
func (b *Builder) Feed(n int) *Builder {
	b.buf.Write(bytes.Repeat([]byte{'\n'}, n))
	return b
}

// Cut issues a partial cut.
func (b *Builder) Cut() *Builder {
	b.buf.Write([]byte{0x1D, 0x56, 0x42, 0x00})
	return b
}

// Bytes returns the accumulated job.
func (b *Builder) Bytes() []byte {
	return b.buf.Bytes()
}

// ESCPOS renders r for a printer with cols characters per line.
func (r Receipt) ESCPOS(cols int) []byte {
	b := NewBuilder(cols)
	b.Align(AlignCenter).Bold(true).Text(r.Title).Bold(false)
	b.Align(AlignLeft).Rule('-')
	for _, l := range r.Details {
		b.Text(l.Label + ": " + l.Value)
	}
	if len(r.Charges) > 0 {
		b.Rule('-')
		for _, l := range r.Charges {
			b.Pair(l.Label+":", l.Value)
		}
	}
	if r.Table != nil {
		b.Rule('-')
		b.Bold(true).Row(r.Table.Headers[0], r.Table.Headers[1], r.Table.Headers[2]).Bold(false)
		for _, row := range r.Table.Rows {
			b.Row(row[0], row[1], row[2])
		}
	}
	if len(r.Subtotals) > 0 {
		b.Rule('-')
		for _, l := range r.Subtotals {
			b.Pair(l.Label+":", l.Value)
		}
	}
	b.Rule('-')
	b.Bold(true).Pair(r.Total.Label, r.Total.Value).Bold(false)
	if len(r.Messages) > 0 {
		b.Rule('-').Align(AlignCenter)
		for i, m := range r.Messages {
			b.Bold(i == 0).Text(m)
		}
		b.Bold(false)
	}
	b.Align(AlignLeft).Rule('=').Align(AlignCenter)
	if r.Footer.Address != "" {
		b.Bold(true).Text("Office Address:").Bold(false).Text(r.Footer.Address)
	}
	if r.Footer.Helpline != "" {
		b.Text("Helpline: " + r.Footer.Helpline)
	}
	return b.Align(AlignLeft).Feed(3).Cut().Bytes()
}

var fold = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// printable strips accents and replaces anything outside printable ASCII,
// since the printer runs in its default code page.
func printable(s string) string {
	folded, _, err := transform.String(fold, s)
	if err != nil {
		folded = s
	}
	out := make([]byte, 0, len(folded))
	for _, r := range folded {
		switch {
		case r == '\t':
			out = append(out, ' ')
		case r >= 0x20 && r < 0x7F:
			out = append(out, byte(r))
		case r == '\n' || r == '\r':
		default:
			out = append(out, '?')
		}
	}
	return string(out)
}

func wrap(s string, cols int) []string {
	if s == "" {
		return []string{""}
	}
	var lines []string
	var cur string
	for _, word := range strings.Fields(s) {
		for len(word) > cols {
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			lines = append(lines, word[:cols])
			word = word[cols:]
		}
		switch {
		case cur == "":
			cur = word
		case len(cur)+1+len(word) <= cols:
			cur += " " + word
		default:
			lines = append(lines, cur)
			cur = word
		}
	}
	if cur != "" || len(lines) == 0 {
		lines = append(lines, cur)
	}
	return lines
}

func fit(s string, n int) string {
	if n <= 0 {
		return ""
	}
	if len(s) > n {
		return s[:n]
	}
	return s
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}

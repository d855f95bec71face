package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLineRendersPathAndLabels(t *testing.T) {
	out, err := Line([]Point{{"Jan", 10}, {"Feb", 25}, {"Mar", 18}}, Options{Title: "Customer Growth", Description: "New customers per month"})
	require.NoError(t, err)

	svg := string(out)
	assert.True(t, strings.HasPrefix(svg, "<svg"))
	assert.Contains(t, svg, `aria-labelledby="customer-growth-line-title customer-growth-line-desc"`)
	assert.Contains(t, svg, "<path d=\"M")
	assert.Equal(t, 3, strings.Count(svg, "<circle"))
	assert.Contains(t, svg, ">Feb: 25</title>")
	assert.True(t, strings.HasSuffix(svg, "</svg>"))
}

func TestBarsScaleToTallestValue(t *testing.T) {
	out, err := Bars([]Point{{"Basic", 50}, {"Pro", 100}}, Options{Title: "Top Packages", Width: 200, Height: 156})
	require.NoError(t, err)

	// plot height is 156-56=100, so the tallest bar fills it
	assert.Contains(t, string(out), `height="100.00" rx="2"`)
	assert.Contains(t, string(out), `height="50.00" rx="2"`)
}

func TestShareSplitsByTotal(t *testing.T) {
	out, err := Share([]Point{{"Paid", 30}, {"Pending", 10}, {"Overdue", 0}}, Options{Title: "Payment Status", Width: 400})
	require.NoError(t, err)

	svg := string(out)
	assert.Contains(t, svg, `width="300.00"`)
	assert.Contains(t, svg, `width="100.00"`)
	assert.Contains(t, svg, "Paid: 30 (75%)")
	assert.Contains(t, svg, "Overdue: 0 (0%)")
	assert.Equal(t, 2, strings.Count(svg, `height="24"`))
}

func TestEmptyInputHasNoData(t *testing.T) {
	_, err := Line(nil, Options{})
	assert.ErrorIs(t, err, ErrNoData)
	_, err = Bars(nil, Options{})
	assert.ErrorIs(t, err, ErrNoData)
	_, err = Share([]Point{{"Paid", 0}}, Options{})
	assert.ErrorIs(t, err, ErrNoData)
}

func TestViewportTooSmall(t *testing.T) {
	_, err := Line([]Point{{"a", 1}}, Options{Width: 40, Height: 40})
	assert.Error(t, err)
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "950", Compact(950))
	assert.Equal(t, "1.5k", Compact(1500))
	assert.Equal(t, "12k", Compact(12000))
	assert.Equal(t, "2M", Compact(2_000_000))
	assert.Equal(t, "2.5", Compact(2.5))
}

func TestLabelsAreEscaped(t *testing.T) {
	out, err := Bars([]Point{{"<Fiber & Co>", 1}}, Options{Title: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(out), "&lt;Fiber &amp; Co&gt;")
	assert.NotContains(t, string(out), "<Fiber")
}

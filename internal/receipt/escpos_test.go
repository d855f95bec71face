package receipt

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sample() Receipt {
	return Receipt{
		Title: "Payment Receipt",
		Details: []Line{
			{Label: "Date", Value: "14/01/2024"},
			{Label: "Customer", Value: "Zain Ali"},
		},
		Table: &Table{
			Headers: [3]string{"", "Days", "Price"},
			Rows:    [][3]string{{"", "30", "Rs 1500.00"}},
		},
		Total:    Line{Label: "Total Amount", Value: "Rs 1500.00"},
		Messages: []string{"Payment Successful", "Thank you for the payment!"},
		Footer:   Footer{Address: "Dehli chowk national laboratory", Helpline: "03336881973"},
	}
}

func TestESCPOSFraming(t *testing.T) {
	out := sample().ESCPOS(32)
	require.True(t, bytes.HasPrefix(out, []byte{0x1B, 0x40}))
	assert.True(t, bytes.HasSuffix(out, []byte{0x1D, 0x56, 0x42, 0x00}))

	text := string(out)
	assert.Contains(t, text, "Payment Receipt\n")
	assert.Contains(t, text, "Customer: Zain Ali\n")
	assert.Contains(t, text, "Total Amount          Rs 1500.00\n")
	assert.Contains(t, text, "Helpline: 03336881973\n")
	assert.Less(t, strings.Index(text, "Payment Successful"), strings.Index(text, "Thank you for the payment!"))
}

func TestPairFallsBackToTwoLines(t *testing.T) {
	b := &Builder{cols: 16}
	b.Pair("Service & Package:", "Rs 2500.00")
	assert.Equal(t, "Service &\nPackage:\n      Rs 2500.00\n", string(b.Bytes()))
}

func TestRowKeepsColumnWidth(t *testing.T) {
	b := &Builder{cols: 32}
	b.Row("Router TP-Link", "30 days", "Rs 4500.00")
	line := strings.TrimSuffix(string(b.Bytes()), "\n")
	assert.Len(t, line, 32)
	assert.True(t, strings.HasPrefix(line, "Router TP-L "))
	assert.True(t, strings.HasSuffix(line, "Rs 4500.00"))
}

func TestPrintableFoldsAccents(t *testing.T) {
	assert.Equal(t, "Cafe ?", printable("Café ✓"))
	assert.Equal(t, "a b", printable("a\tb"))
}

func TestColumns(t *testing.T) {
	assert.Equal(t, 32, Columns(58))
	assert.Equal(t, 48, Columns(80))
	assert.Equal(t, 32, Columns(0))
}

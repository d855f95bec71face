// Package receipt models the 58 mm slip printed for payments and invoices.
// One Receipt value feeds both the HTML page and the ESC/POS byte stream.
package receipt

import (
	"context"
	"errors"
)

// ErrNoPrinter is returned when no receipt printer is configured.
var ErrNoPrinter = errors.New("receipt: no printer configured")

// Line is a label/value row.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// Table is a three-column block such as item, warranty and price.
type Table struct {
	Headers [3]string   `json:"headers"`
	Rows    [][3]string `json:"rows"`
}

// Footer carries the office contact printed at the bottom.
type Footer struct {
	Address  string `json:"address"`
	Helpline string `json:"helpline"`
}

// Receipt is rendered top to bottom in field order. Empty sections are skipped.
type Receipt struct {
	Title     string   `json:"title"`
	Details   []Line   `json:"details"`
	Charges   []Line   `json:"charges,omitempty"`
	Table     *Table   `json:"table,omitempty"`
	Subtotals []Line   `json:"subtotals,omitempty"`
	Total     Line     `json:"total"`
	Messages  []string `json:"messages,omitempty"`
	Footer    Footer   `json:"footer"`
}

// Queue accepts receipts for thermal printing and returns the job id.
type Queue interface {
	PrintReceipt(ctx context.Context, r Receipt) (string, error)
}

package invoice

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netline-isp/isp-console/internal/receipt"
	"github.com/netline-isp/isp-console/internal/shared"
)

func sample() Invoice {
	return Invoice{
		Number:         "INV-0042",
		Date:           "05/03/2024",
		CustomerName:   "Bilal Ahmed",
		ServiceCharges: decimal.NewFromInt(500),
		PackageCharges: decimal.NewFromInt(1500),
		Items: []Item{
			{Name: "TP-Link Router", Price: decimal.RequireFromString("3200.50"), Warranty: "90"},
			{Name: "Patch Cable", Price: decimal.NewFromInt(150)},
		},
		Total: decimal.RequireFromString("5350.50"),
	}
}

func TestFormTotalTreatsGarbageAsZero(t *testing.T) {
	f := Form{
		ServiceCharges: "500",
		PackageCharges: "abc",
		Items:          []ItemForm{{Price: "0.1"}, {Price: "0.2"}, {Price: ""}},
	}
	assert.Equal(t, "500.30", f.Total().StringFixed(2))
}

func TestParseAmountRejectsExponentsAndHugeValues(t *testing.T) {
	for _, in := range []string{"1e9999999", "1E3", "-2e5", "1000000000000", "99999999999999.5"} {
		assert.True(t, ParseAmount(in).IsZero(), in)
	}
	assert.Equal(t, "999999999999.99", ParseAmount(" 999999999999.99 ").StringFixed(2))
	assert.Equal(t, "-15.50", ParseAmount("-15.5").StringFixed(2))

	f := Form{ServiceCharges: "1e9999999", PackageCharges: "1500"}
	assert.Equal(t, "1500.00", f.Total().StringFixed(2))
}

func TestSumRoundsToTwoPlaces(t *testing.T) {
	got := Sum(decimal.RequireFromString("1.005"), decimal.Zero, decimal.RequireFromString("0.001"))
	assert.Equal(t, "1.01", got.String())
}

func TestRemoveItemKeepsOneRow(t *testing.T) {
	f := NewForm()
	f.RemoveItem(0)
	require.Len(t, f.Items, 1)

	f.AddItem()
	f.Items[1].Name = "Router"
	f.RemoveItem(0)
	require.Len(t, f.Items, 1)
	assert.Equal(t, "Router", f.Items[0].Name)

	f.RemoveItem(5)
	assert.Len(t, f.Items, 1)
}

func TestValidateRequiresCustomerName(t *testing.T) {
	f := NewForm()
	f.CustomerName = "   "
	_, errs := f.Validate(shared.NewValidator(), "INV-0001", time.Now())
	assert.Equal(t, "Please enter customer name", errs["customerName"])
}

func TestValidateBuildsInvoice(t *testing.T) {
	f := Form{
		CustomerName:   " Bilal Ahmed ",
		ServiceCharges: "500",
		PackageCharges: "1500",
		Items:          []ItemForm{{Name: "Router", Price: "3200.5", Warranty: " 90 "}},
	}
	inv, errs := f.Validate(shared.NewValidator(), NumberFrom(42), time.Date(2024, 3, 5, 14, 0, 0, 0, time.UTC))
	require.False(t, errs.Any())
	assert.Equal(t, "INV-0042", inv.Number)
	assert.Equal(t, "05/03/2024", inv.Date)
	assert.Equal(t, "Bilal Ahmed", inv.CustomerName)
	assert.Equal(t, "90", inv.Items[0].Warranty)
	assert.Equal(t, "5200.50", inv.Total.StringFixed(2))
}

func TestNumberFrom(t *testing.T) {
	assert.Equal(t, "INV-0007", NumberFrom(7))
	assert.Equal(t, "INV-9999", NumberFrom(9999))
	assert.Equal(t, "INV-0000", NumberFrom(10000))
}

func TestShareText(t *testing.T) {
	want := "INVOICE #INV-0042\n\n" +
		"Date: 05/03/2024\n" +
		"Customer: Bilal Ahmed\n\n" +
		"Service Charges: Rs 500.00\n" +
		"Package Charges: Rs 1500.00\n\n" +
		"Inventory Items:\n" +
		"1. TP-Link Router - Rs 3200.50 (Warranty: 90 days)\n" +
		"2. Patch Cable - Rs 150.00\n" +
		"\nTotal Amount: Rs 5350.50\n\n" +
		"Thank you!"
	assert.Equal(t, want, ShareText(sample()))
}

func TestReceiptLayout(t *testing.T) {
	footer := receipt.Footer{Address: "Dehli chowk national laboratory", Helpline: "03336881973"}
	r := NewRenderer(nil, nil, footer).Receipt(sample(), time.Date(2024, 3, 6, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, "Invoice Receipt", r.Title)
	assert.Equal(t, []receipt.Line{
		{Label: "Date", Value: "06/03/2024"},
		{Label: "Invoice #", Value: "INV-0042"},
		{Label: "Customer", Value: "Bilal Ahmed"},
	}, r.Details)
	assert.Equal(t, [3]string{"Item", "Warranty", "Price"}, r.Table.Headers)
	assert.Equal(t, [3]string{"Patch Cable", "0 days", "Rs 150.00"}, r.Table.Rows[1])
	assert.Equal(t, []receipt.Line{
		{Label: "Service & Package", Value: "Rs 2000.00"},
		{Label: "Items Total", Value: "Rs 3350.50"},
	}, r.Subtotals)
	assert.Equal(t, receipt.Line{Label: "Total Amount", Value: "Rs 5350.50"}, r.Total)
	assert.Equal(t, []string{"Thank you"}, r.Messages)
	assert.Equal(t, footer, r.Footer)
}

func TestFilename(t *testing.T) {
	assert.Equal(t, "invoice-INV-0042.pdf", sample().Filename())
}

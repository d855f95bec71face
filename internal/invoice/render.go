package invoice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/netline-isp/isp-console/internal/receipt"
	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/internal/view"
	"github.com/netline-isp/isp-console/report"
)

// ErrNoPDF is returned when no PDF service is configured.
var ErrNoPDF = errors.New("invoice: pdf rendering not configured")

// PDFConverter turns an HTML document into PDF bytes.
type PDFConverter interface {
	RenderHTML(ctx context.Context, html []byte, paper report.Paper) ([]byte, error)
}

// Document is the view model of the full invoice document.
type Document struct {
	Invoice   Invoice
	AutoPrint bool
	// Standalone omits scripts and controls, for the PDF source.
	Standalone bool
	BackHref   string
}

// Renderer produces every invoice output from one Invoice value and the
// console's template set.
type Renderer struct {
	engine *view.Engine
	pdf    PDFConverter
	footer receipt.Footer
}

// NewRenderer wires the renderer. pdf may be nil.
func NewRenderer(engine *view.Engine, pdf PDFConverter, footer receipt.Footer) *Renderer {
	return &Renderer{engine: engine, pdf: pdf, footer: footer}
}

// HTML renders the A4 document.
func (r *Renderer) HTML(doc Document) ([]byte, error) {
	var buf bytes.Buffer
	data := view.TemplateData{Title: "Invoice " + doc.Invoice.Number, Data: doc}
	if err := r.engine.Execute(&buf, "documents/invoice", data); err != nil {
		return nil, fmt.Errorf("render invoice %s: %w", doc.Invoice.Number, err)
	}
	return buf.Bytes(), nil
}

// PDF renders the standalone document and converts it.
func (r *Renderer) PDF(ctx context.Context, inv Invoice) ([]byte, error) {
	if r.pdf == nil {
		return nil, ErrNoPDF
	}
	html, err := r.HTML(Document{Invoice: inv, Standalone: true})
	if err != nil {
		return nil, err
	}
	pdf, err := r.pdf.RenderHTML(ctx, html, report.A4)
	if err != nil {
		return nil, fmt.Errorf("convert invoice %s: %w", inv.Number, err)
	}
	return pdf, nil
}

// Receipt lays the invoice out as a 58 mm slip dated printedAt.
func (r *Renderer) Receipt(inv Invoice, printedAt time.Time) receipt.Receipt {
	rows := make([][3]string, 0, len(inv.Items))
	for _, it := range inv.Items {
		rows = append(rows, [3]string{it.Name, it.WarrantyDays(), shared.FormatRsSpaced(it.Price)})
	}
	return receipt.Receipt{
		Title: "Invoice Receipt",
		Details: []receipt.Line{
			{Label: "Date", Value: printedAt.Format(shared.DisplayDateLayout)},
			{Label: "Invoice #", Value: inv.Number},
			{Label: "Customer", Value: inv.CustomerName},
		},
		Charges: []receipt.Line{
			{Label: "Service Charges", Value: shared.FormatRsSpaced(inv.ServiceCharges)},
			{Label: "Package Charges", Value: shared.FormatRsSpaced(inv.PackageCharges)},
		},
		Table: &receipt.Table{Headers: [3]string{"Item", "Warranty", "Price"}, Rows: rows},
		Subtotals: []receipt.Line{
			{Label: "Service & Package", Value: shared.FormatRsSpaced(inv.ServiceAndPackage())},
			{Label: "Items Total", Value: shared.FormatRsSpaced(inv.ItemsTotal())},
		},
		Total:    receipt.Line{Label: "Total Amount", Value: shared.FormatRsSpaced(inv.Total)},
		Messages: []string{"Thank you"},
		Footer:   r.footer,
	}
}

// ShareText is the plain-text form handed to the share sheet or clipboard.
func ShareText(inv Invoice) string {
	var b strings.Builder
	fmt.Fprintf(&b, "INVOICE #%s\n\n", inv.Number)
	fmt.Fprintf(&b, "Date: %s\n", inv.Date)
	fmt.Fprintf(&b, "Customer: %s\n\n", inv.CustomerName)
	fmt.Fprintf(&b, "Service Charges: %s\n", shared.FormatRsSpaced(inv.ServiceCharges))
	fmt.Fprintf(&b, "Package Charges: %s\n\n", shared.FormatRsSpaced(inv.PackageCharges))
	b.WriteString("Inventory Items:\n")
	for i, it := range inv.Items {
		fmt.Fprintf(&b, "%d. %s - %s", i+1, it.Name, shared.FormatRsSpaced(it.Price))
		if it.Warranty != "" {
			fmt.Fprintf(&b, " (Warranty: %s days)", it.Warranty)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "\nTotal Amount: %s\n\n", shared.FormatRsSpaced(inv.Total))
	b.WriteString("Thank you!")
	return b.String()
}

package invoice_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/netline-isp/isp-console/internal/invoice"
	"github.com/netline-isp/isp-console/internal/receipt"
	"github.com/netline-isp/isp-console/internal/shared"
	"github.com/netline-isp/isp-console/internal/testing/consoletest"
	"github.com/netline-isp/isp-console/report"
)

type fakePDF struct {
	html []byte
	err  error
}

func (f *fakePDF) RenderHTML(_ context.Context, html []byte, _ report.Paper) ([]byte, error) {
	f.html = html
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-1.7 fake"), nil
}

type fakeQueue struct {
	got []receipt.Receipt
	err error
}

func (q *fakeQueue) PrintReceipt(_ context.Context, r receipt.Receipt) (string, error) {
	if q.err != nil {
		return "", q.err
	}
	q.got = append(q.got, r)
	return "job-1", nil
}

func newRouter(t *testing.T, pdf invoice.PDFConverter, opts ...invoice.Option) http.Handler {
	t.Helper()
	responder := consoletest.Responder(t)
	renderer := invoice.NewRenderer(responder.Templates, pdf, receipt.Footer{Address: "Dehli chowk national laboratory", Helpline: "03336881973"})
	opts = append([]invoice.Option{
		invoice.WithClock(func() time.Time { return time.Date(2024, 3, 5, 10, 0, 0, 0, time.UTC) }),
		invoice.WithNumberSource(func() int { return 42 }),
	}, opts...)
	h := invoice.NewHandler(nil, renderer, responder, shared.NewValidator(), opts...)
	r := chi.NewRouter()
	h.MountRoutes(r)
	return r
}

func invoiceForm() url.Values {
	return url.Values{
		"customerName":   {"Bilal Ahmed"},
		"serviceCharges": {"500"},
		"packageCharges": {"1500"},
		"itemName":       {"TP-Link Router", "Patch Cable"},
		"itemPrice":      {"3200.5", "oops"},
		"itemWarranty":   {"90", ""},
	}
}

func serve(router http.Handler, method, target string, form url.Values, sess *shared.Session) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, consoletest.Request(method, target, form, sess))
	return rec
}

func created(t *testing.T, router http.Handler) *shared.Session {
	t.Helper()
	sess := consoletest.Session(consoletest.Admin())
	rec := serve(router, http.MethodPost, "/invoice", invoiceForm(), sess)
	require.Equal(t, http.StatusSeeOther, rec.Code)
	require.Equal(t, "/invoice/preview", rec.Header().Get("Location"))
	return sess
}

func TestCreateStoresInvoiceInSession(t *testing.T) {
	router := newRouter(t, nil)
	sess := created(t, router)

	var inv invoice.Invoice
	ok, err := sess.GetJSON(invoice.SessionKey, &inv)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "INV-0042", inv.Number)
	assert.Equal(t, "05/03/2024", inv.Date)
	assert.Equal(t, "5200.50", inv.Total.StringFixed(2))
	assert.Equal(t, "0", inv.Items[1].Price.String())
}

func TestCreateRequiresCustomerName(t *testing.T) {
	router := newRouter(t, nil)
	form := invoiceForm()
	form.Set("customerName", " ")
	sess := consoletest.Session(consoletest.Admin())
	rec := serve(router, http.MethodPost, "/invoice", form, sess)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Body.String(), "Please enter customer name")
	ok, _ := sess.GetJSON(invoice.SessionKey, &invoice.Invoice{})
	assert.False(t, ok)
}

func TestAddAndRemoveItems(t *testing.T) {
	router := newRouter(t, nil)
	sess := consoletest.Session(consoletest.Admin())

	form := invoiceForm()
	form.Set("action", "add")
	rec := serve(router, http.MethodPost, "/invoice", form, sess)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 3, strings.Count(rec.Body.String(), `name="itemName"`))
	assert.Contains(t, rec.Body.String(), "Rs 5200.50")

	form = invoiceForm()
	form.Set("remove", "0")
	rec = serve(router, http.MethodPost, "/invoice", form, sess)
	assert.Equal(t, 1, strings.Count(rec.Body.String(), `name="itemName"`))
	assert.NotContains(t, rec.Body.String(), "TP-Link Router")
	assert.Contains(t, rec.Body.String(), "Rs 2000.00")
	assert.NotContains(t, rec.Body.String(), `name="remove"`)
}

func TestOutputsRedirectWithoutInvoice(t *testing.T) {
	router := newRouter(t, nil)
	for _, path := range []string{"/invoice/preview", "/invoice/print", "/invoice/receipt", "/invoice/share", "/invoice/pdf"} {
		rec := serve(router, http.MethodGet, path, nil, consoletest.Session(consoletest.Admin()))
		assert.Equal(t, http.StatusSeeOther, rec.Code, path)
		assert.Equal(t, "/invoice", rec.Header().Get("Location"), path)
	}
}

func TestOutputsShareTotals(t *testing.T) {
	pdf := &fakePDF{}
	router := newRouter(t, pdf)
	sess := created(t, router)

	preview := serve(router, http.MethodGet, "/invoice/preview", nil, sess).Body.String()
	assert.Contains(t, preview, "#INV-0042")
	assert.Contains(t, preview, "Rs 5200.50")

	printed := serve(router, http.MethodGet, "/invoice/print", nil, sess).Body.String()
	assert.Contains(t, printed, `data-autoprint="true"`)
	assert.Contains(t, printed, "Rs 5200.50")
	assert.Contains(t, printed, "90 days")

	slip := serve(router, http.MethodGet, "/invoice/receipt?print=1", nil, sess).Body.String()
	assert.Contains(t, slip, "Invoice Receipt")
	assert.Contains(t, slip, "Service &amp; Package")
	assert.Contains(t, slip, "Rs 2000.00")
	assert.Contains(t, slip, "Items Total")
	assert.Contains(t, slip, "Rs 3200.50")
	assert.Contains(t, slip, "Rs 5200.50")

	share := serve(router, http.MethodGet, "/invoice/share", nil, sess)
	assert.Equal(t, "text/plain; charset=utf-8", share.Header().Get("Content-Type"))
	assert.Contains(t, share.Body.String(), "Total Amount: Rs 5200.50")

	rec := serve(router, http.MethodGet, "/invoice/pdf", nil, sess)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="invoice-INV-0042.pdf"`, rec.Header().Get("Content-Disposition"))
	assert.Contains(t, string(pdf.html), "Rs 5200.50")
	assert.NotContains(t, string(pdf.html), "app.js")
}

func TestPDFFailureFlashes(t *testing.T) {
	router := newRouter(t, &fakePDF{err: errors.New("gotenberg down")})
	sess := created(t, router)

	rec := serve(router, http.MethodGet, "/invoice/pdf", nil, sess)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Failed to generate PDF. Please try again.", consoletest.Flash(sess))
}

func TestReceiptPrintQueuesSlip(t *testing.T) {
	q := &fakeQueue{}
	router := newRouter(t, nil, invoice.WithReceiptQueue(q))
	sess := created(t, router)

	rec := serve(router, http.MethodPost, "/invoice/receipt/print", url.Values{}, sess)
	assert.Equal(t, http.StatusSeeOther, rec.Code)
	assert.Equal(t, "Receipt sent to printer", consoletest.Flash(sess))
	require.Len(t, q.got, 1)
	assert.Equal(t, "Rs 5200.50", q.got[0].Total.Value)
}

func TestReceiptPrintWithoutPrinter(t *testing.T) {
	router := newRouter(t, nil, invoice.WithReceiptQueue(&fakeQueue{err: receipt.ErrNoPrinter}))
	sess := created(t, router)

	serve(router, http.MethodPost, "/invoice/receipt/print", url.Values{}, sess)
	assert.Equal(t, "Receipt printer is not configured", consoletest.Flash(sess))
}

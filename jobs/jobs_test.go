package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	jobmetrics "github.com/netline-isp/isp-console/internal/jobs"
	"github.com/netline-isp/isp-console/internal/printer"
	"github.com/netline-isp/isp-console/internal/receipt"
)

type fakePrinter struct {
	id      string
	width   int
	printed [][]byte
	err     error
}

func (p *fakePrinter) ID() string      { return p.id }
func (p *fakePrinter) Name() string    { return p.id }
func (p *fakePrinter) PaperWidth() int { return p.width }
func (p *fakePrinter) Status() string  { return "online" }
func (p *fakePrinter) Print(data []byte) error {
	if p.err != nil {
		return p.err
	}
	p.printed = append(p.printed, data)
	return nil
}

func printTask(t *testing.T, payload PrintReceiptPayload) *asynq.Task {
	t.Helper()
	task, err := NewPrintReceiptTask(payload)
	require.NoError(t, err)
	return task
}

func TestPrintReceiptWritesESCPOS(t *testing.T) {
	p := &fakePrinter{id: "front-desk", width: 58}
	job := NewPrintReceiptJob(printer.NewManager(p), nil, jobmetrics.NewMetrics(prometheus.NewRegistry()))

	r := receipt.Receipt{Title: "Payment Receipt", Total: receipt.Line{Label: "Total Amount", Value: "Rs 1500.00"}}
	require.NoError(t, job.Handle(context.Background(), printTask(t, PrintReceiptPayload{PrinterID: "front-desk", Receipt: r})))
	require.Len(t, p.printed, 1)
	assert.Equal(t, r.ESCPOS(32), p.printed[0])
}

func TestPrintReceiptSkipsRetryForBadInput(t *testing.T) {
	job := NewPrintReceiptJob(printer.NewManager(), nil, nil)

	err := job.Handle(context.Background(), asynq.NewTask(TaskPrintReceipt, []byte("{")))
	assert.ErrorIs(t, err, asynq.SkipRetry)

	err = job.Handle(context.Background(), printTask(t, PrintReceiptPayload{PrinterID: "ghost", Receipt: receipt.Receipt{Title: "x"}}))
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.ErrorIs(t, err, printer.ErrUnknownPrinter)
}

func TestPrintReceiptRetriesPrinterFailures(t *testing.T) {
	offline := errors.New("connection refused")
	job := NewPrintReceiptJob(printer.NewManager(&fakePrinter{id: "p", err: offline}), nil, nil)
	err := job.Handle(context.Background(), printTask(t, PrintReceiptPayload{PrinterID: "p", Receipt: receipt.Receipt{Title: "x"}}))
	assert.ErrorIs(t, err, offline)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

type fakeEnqueuer struct {
	payloads []PrintReceiptPayload
}

func (f *fakeEnqueuer) EnqueuePrintReceipt(_ context.Context, p PrintReceiptPayload) (*asynq.TaskInfo, error) {
	f.payloads = append(f.payloads, p)
	return &asynq.TaskInfo{ID: "job-1"}, nil
}

func TestReceiptQueue(t *testing.T) {
	_, err := NewReceiptQueue(&fakeEnqueuer{}, "").PrintReceipt(context.Background(), receipt.Receipt{})
	assert.ErrorIs(t, err, receipt.ErrNoPrinter)

	enq := &fakeEnqueuer{}
	id, err := NewReceiptQueue(enq, "front-desk").PrintReceipt(context.Background(), receipt.Receipt{Title: "Invoice Receipt"})
	require.NoError(t, err)
	assert.Equal(t, "job-1", id)
	require.Len(t, enq.payloads, 1)
	assert.Equal(t, "front-desk", enq.payloads[0].PrinterID)
}

func TestPrintPayloadWireFormat(t *testing.T) {
	task := printTask(t, PrintReceiptPayload{PrinterID: "front-desk", Receipt: receipt.Receipt{Title: "Payment Receipt"}})
	assert.Equal(t, TaskPrintReceipt, task.Type())
	var raw map[string]any
	require.NoError(t, json.Unmarshal(task.Payload(), &raw))
	assert.Equal(t, "front-desk", raw["printerId"])
	assert.Equal(t, "Payment Receipt", raw["receipt"].(map[string]any)["title"])
}

type fakeInspector struct {
	info *asynq.QueueInfo
	err  error
}

func (f fakeInspector) GetQueueInfo(string) (*asynq.QueueInfo, error) { return f.info, f.err }

func TestHealthEndpoint(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(fakeInspector{info: &asynq.QueueInfo{Queue: "default", Pending: 2, Failed: 1}}, nil).health(rec, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"queue":"default","pending":2,"active":0,"retry":0,"archived":0,"processed":0,"failed":1}`, rec.Body.String())

	rec = httptest.NewRecorder()
	NewHandler(fakeInspector{err: errors.New("redis down")}, nil).health(rec, httptest.NewRequest(http.MethodGet, "/jobs/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

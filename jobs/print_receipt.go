package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/netline-isp/isp-console/internal/jobs"
	"github.com/netline-isp/isp-console/internal/printer"
	"github.com/netline-isp/isp-console/internal/receipt"
)

// Printers resolves a printer by id.
type Printers interface {
	Get(id string) (printer.Printer, error)
}

// PrintReceiptJob renders receipts to ESC/POS and writes them to a printer.
type PrintReceiptJob struct {
	Printers Printers
	Logger   *slog.Logger
	Metrics  *jobmetrics.Metrics
}

// NewPrintReceiptJob wires dependencies for the print handler.
func NewPrintReceiptJob(printers Printers, logger *slog.Logger, metrics *jobmetrics.Metrics) *PrintReceiptJob {
	return &PrintReceiptJob{Printers: printers, Logger: logger, Metrics: metrics}
}

// Handle processes TaskPrintReceipt tasks. Malformed payloads and unknown
// printers are not retried; connection failures are.
func (j *PrintReceiptJob) Handle(ctx context.Context, t *asynq.Task) (err error) {
	if j == nil || j.Printers == nil {
		return errors.New("print receipt: handler not configured")
	}
	done := j.Metrics.Observe(TaskPrintReceipt)
	defer func() { err = done(err) }()

	var payload PrintReceiptPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return fmt.Errorf("decode print payload: %v: %w", err, asynq.SkipRetry)
	}
	if payload.PrinterID == "" || payload.Receipt.Title == "" {
		return fmt.Errorf("print payload incomplete: %w", asynq.SkipRetry)
	}

	logger := j.logger().With(slog.String("printer", payload.PrinterID), slog.String("title", payload.Receipt.Title))
	p, err := j.Printers.Get(payload.PrinterID)
	if err != nil {
		logger.Error("print receipt: printer lookup", slog.Any("error", err))
		return fmt.Errorf("%w: %w", err, asynq.SkipRetry)
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	data := payload.Receipt.ESCPOS(receipt.Columns(p.PaperWidth()))
	if err := p.Print(data); err != nil {
		logger.Warn("print receipt failed", slog.Any("error", err))
		return err
	}
	j.Metrics.AddPrinted(p.ID(), len(data))
	logger.Info("receipt printed", slog.Int("bytes", len(data)))
	return nil
}

func (j *PrintReceiptJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger
	}
	return slog.Default()
}

package jobs

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"

	"github.com/netline-isp/isp-console/internal/receipt"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskPrintReceipt sends a receipt to a thermal printer.
	TaskPrintReceipt = "receipt:print"
)

// PrintReceiptPayload names the printer and the receipt to print.
type PrintReceiptPayload struct {
	PrinterID string          `json:"printerId"`
	Receipt   receipt.Receipt `json:"receipt"`
}

// NewPrintReceiptTask constructs an Asynq task with a fresh job id.
func NewPrintReceiptTask(payload PrintReceiptPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskPrintReceipt, data,
		asynq.Queue(QueueDefault),
		asynq.TaskID(uuid.NewString()),
		asynq.MaxRetry(3),
		asynq.Timeout(30*time.Second),
	), nil
}

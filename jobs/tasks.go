package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskInvoiceOverdueScan flips past-due invoices to overdue.
	TaskInvoiceOverdueScan = "invoice:overdue_scan"
	// TaskFinanceWarmSnapshot precomputes the financial snapshot cache.
	TaskFinanceWarmSnapshot = "finance:warm_snapshot"
)

// OverdueScanPayload parameterises the overdue scan.
type OverdueScanPayload struct {
	// DryRun logs what would change without writing.
	DryRun bool `json:"dry_run"`
}

// NewOverdueScanTask constructs the overdue scan task.
func NewOverdueScanTask(payload OverdueScanPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskInvoiceOverdueScan, data), nil
}

// NewWarmSnapshotTask constructs the snapshot warmup task.
func NewWarmSnapshotTask() (*asynq.Task, error) {
	return asynq.NewTask(TaskFinanceWarmSnapshot, nil), nil
}

package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/sinobridge-erp/sinobridge-erp/internal/billing"
	"github.com/sinobridge-erp/sinobridge-erp/internal/finance"
)

// OverdueScanJob marks past-due invoices as overdue and invalidates the
// snapshot cache when anything changed.
type OverdueScanJob struct {
	invoices *billing.Service
	reports  *finance.Service
	logger   *slog.Logger
}

// NewOverdueScanJob constructs the job.
func NewOverdueScanJob(invoices *billing.Service, reports *finance.Service, logger *slog.Logger) *OverdueScanJob {
	return &OverdueScanJob{invoices: invoices, reports: reports, logger: logger}
}

// Handle processes TaskInvoiceOverdueScan tasks.
func (j *OverdueScanJob) Handle(ctx context.Context, t *asynq.Task) error {
	var payload OverdueScanPayload
	if len(t.Payload()) > 0 {
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			return asynq.SkipRetry
		}
	}
	if payload.DryRun {
		j.logger.Info("overdue scan dry run, skipping writes")
		return nil
	}

	changed, err := j.invoices.OverdueScan(ctx)
	if err != nil {
		j.logger.Error("overdue scan", slog.Any("error", err))
		return err
	}
	j.logger.Info("overdue scan complete", slog.Int64("invoices_marked", changed))
	if changed > 0 {
		j.reports.Invalidate(ctx)
	}
	return nil
}

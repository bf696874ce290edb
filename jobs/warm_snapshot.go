package jobs

import (
	"context"
	"log/slog"

	"github.com/hibiken/asynq"

	"github.com/sinobridge-erp/sinobridge-erp/internal/finance"
)

// WarmSnapshotJob precomputes the snapshot cache for every known period so
// the first dashboard load of the day is served from Redis.
type WarmSnapshotJob struct {
	reports *finance.Service
	logger  *slog.Logger
}

// NewWarmSnapshotJob constructs the job.
func NewWarmSnapshotJob(reports *finance.Service, logger *slog.Logger) *WarmSnapshotJob {
	return &WarmSnapshotJob{reports: reports, logger: logger}
}

// Handle processes TaskFinanceWarmSnapshot tasks.
func (j *WarmSnapshotJob) Handle(ctx context.Context, t *asynq.Task) error {
	if err := j.reports.WarmAll(ctx); err != nil {
		j.logger.Error("snapshot warmup", slog.Any("error", err))
		return err
	}
	j.logger.Info("snapshot warmup complete")
	return nil
}

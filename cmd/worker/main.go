package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sinobridge-erp/sinobridge-erp/internal/app"
	"github.com/sinobridge-erp/sinobridge-erp/internal/billing"
	"github.com/sinobridge-erp/sinobridge-erp/internal/catalog"
	"github.com/sinobridge-erp/sinobridge-erp/internal/crm"
	"github.com/sinobridge-erp/sinobridge-erp/internal/finance"
	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/cache"
	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/db"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/orders"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/quotes"
	"github.com/sinobridge-erp/sinobridge-erp/internal/settings"
	"github.com/sinobridge-erp/sinobridge-erp/jobs"
)

type orderInfoAdapter struct {
	repo orders.Repository
}

func (a orderInfoAdapter) OrderInfo(ctx context.Context, orderID int64) (billing.OrderInfo, error) {
	order, err := a.repo.Get(ctx, orderID)
	if err != nil {
		return billing.OrderInfo{}, err
	}
	items := make([]billing.LineItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, billing.LineItem{
			SKU:         item.SKU,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return billing.OrderInfo{
		CustomerID:  order.CustomerID,
		Items:       items,
		TotalAmount: order.TotalAmount,
	}, nil
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping worker startup")
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	pool, err := db.New(ctx, cfg.PGDSN)
	if err != nil {
		logger.Error("connect postgres", slog.Any("error", err))
		os.Exit(1)
	}
	defer pool.Close()

	redisClient, err := cache.New(ctx, cfg.RedisAddr)
	if err != nil {
		logger.Error("connect redis", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := redisClient.Close(); err != nil {
			logger.Warn("redis close", slog.Any("error", err))
		}
	}()

	productRepo := catalog.NewRepository(pool)
	customerRepo := crm.NewRepository(pool)
	quoteRepo := quotes.NewRepository(pool)
	orderRepo := orders.NewRepository(pool)
	invoiceRepo := billing.NewRepository(pool)
	settingsRepo := settings.NewRepository(pool)

	invoiceService := billing.NewService(invoiceRepo, customerRepo, orderInfoAdapter{repo: orderRepo})

	financeCache := finance.NewCache(redisClient, 5*time.Minute)
	financeService := finance.NewService(logger, invoiceRepo, orderRepo, quoteRepo, productRepo, settingsRepo, financeCache)

	overdueJob := jobs.NewOverdueScanJob(invoiceService, financeService, logger)
	warmupJob := jobs.NewWarmSnapshotJob(financeService, logger)

	overdueTask, err := jobs.NewOverdueScanTask(jobs.OverdueScanPayload{})
	if err != nil {
		logger.Error("build overdue scan task", slog.Any("error", err))
		os.Exit(1)
	}
	warmupTask, err := jobs.NewWarmSnapshotTask()
	if err != nil {
		logger.Error("build warmup task", slog.Any("error", err))
		os.Exit(1)
	}

	worker, err := jobs.NewWorker(jobs.WorkerConfig{
		RedisOpts: asynq.RedisClientOpt{Addr: cfg.RedisAddr},
		Logger:    logger,
		Handlers: []jobs.TaskHandler{
			{Type: jobs.TaskInvoiceOverdueScan, Handler: overdueJob.Handle},
			{Type: jobs.TaskFinanceWarmSnapshot, Handler: warmupJob.Handle},
		},
		Cron: []jobs.CronRegistration{
			{Spec: "30 0 * * *", Task: overdueTask, Options: []asynq.Option{asynq.MaxRetry(3)}},
			{Spec: "0 * * * *", Task: warmupTask, Options: []asynq.Option{asynq.MaxRetry(1)}},
		},
	})
	if err != nil {
		logger.Error("build worker", slog.Any("error", err))
		os.Exit(1)
	}

	logger.Info("worker started")
	if err := worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("worker stopped")
}

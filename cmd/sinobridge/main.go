package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/hibiken/asynq"

	"github.com/sinobridge-erp/sinobridge-erp/internal/app"
	"github.com/sinobridge-erp/sinobridge-erp/internal/auth"
	"github.com/sinobridge-erp/sinobridge-erp/internal/billing"
	"github.com/sinobridge-erp/sinobridge-erp/internal/catalog"
	"github.com/sinobridge-erp/sinobridge-erp/internal/crm"
	"github.com/sinobridge-erp/sinobridge-erp/internal/finance"
	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/cache"
	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/db"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/orders"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/quotes"
	"github.com/sinobridge-erp/sinobridge-erp/internal/settings"
	"github.com/sinobridge-erp/sinobridge-erp/internal/shared"
	"github.com/sinobridge-erp/sinobridge-erp/internal/site"
	"github.com/sinobridge-erp/sinobridge-erp/internal/view"
	"github.com/sinobridge-erp/sinobridge-erp/jobs"
	"github.com/sinobridge-erp/sinobridge-erp/report"
)

// orderInfoAdapter lets billing resolve order snapshots without importing
// the orders package.
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

// jobEnqueuerAdapter narrows the asynq client to what the router needs.
type jobEnqueuerAdapter struct {
	client *jobs.Client
}

func (a jobEnqueuerAdapter) EnqueueOverdueScan(ctx context.Context, dryRun bool) (string, error) {
	info, err := a.client.EnqueueOverdueScan(ctx, jobs.OverdueScanPayload{DryRun: dryRun})
	if err != nil {
		return "", err
	}
	return info.ID, nil
}

func main() {
	if app.InTestMode() {
		slog.Default().Info("test mode detected, skipping runtime startup")
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

	sessionManager := shared.NewSessionManager(redisClient, cfg.SessionCookie, cfg.SessionTTL, cfg.IsProduction())

	templates, err := view.NewEngine()
	if err != nil {
		logger.Error("parse templates", slog.Any("error", err))
		os.Exit(1)
	}

	authRepo := auth.NewRepository(pool)
	authService := auth.NewService(authRepo)
	authHandler := auth.NewHandler(logger, authService, sessionManager)

	productRepo := catalog.NewRepository(pool)
	productService := catalog.NewService(productRepo)
	productHandler := catalog.NewHandler(logger, productService)

	orderRepo := orders.NewRepository(pool)

	customerRepo := crm.NewRepository(pool)
	customerService := crm.NewService(customerRepo, orderRepo)
	customerHandler := crm.NewHandler(logger, customerService)

	quoteRepo := quotes.NewRepository(pool)
	quoteService := quotes.NewService(quoteRepo, customerRepo)
	quoteHandler := quotes.NewHandler(logger, quoteService)

	invoiceRepo := billing.NewRepository(pool)
	invoiceService := billing.NewService(invoiceRepo, customerRepo, orderInfoAdapter{repo: orderRepo})
	invoiceHandler := billing.NewHandler(logger, invoiceService)

	orderService := orders.NewService(orderRepo, quoteRepo, customerRepo, productRepo, invoiceRepo)
	orderHandler := orders.NewHandler(logger, orderService)

	settingsRepo := settings.NewRepository(pool)
	settingsService := settings.NewService(settingsRepo)
	settingsHandler := settings.NewHandler(logger, settingsService)

	financeCache := finance.NewCache(redisClient, 5*time.Minute)
	financeService := finance.NewService(logger, invoiceRepo, orderRepo, quoteRepo, productRepo, settingsRepo, financeCache)
	financeHandler := finance.NewHandler(logger, financeService)

	pdfClient := report.NewClient(cfg.GotenbergURL)
	if err := pdfClient.Ping(ctx); err != nil {
		logger.Warn("gotenberg ping", slog.Any("error", err))
	}
	reportHandler := report.NewHandler(logger, pdfClient, quoteRepo, invoiceRepo, customerRepo, settingsRepo)

	siteHandler := site.NewHandler(logger, templates, settingsRepo, cfg.DefaultLang)

	jobClient := jobs.NewClient(asynq.RedisClientOpt{Addr: cfg.RedisAddr})
	defer func() {
		if err := jobClient.Close(); err != nil {
			logger.Warn("job client close", slog.Any("error", err))
		}
	}()

	router := app.NewRouter(app.RouterParams{
		Logger:           logger,
		Config:           cfg,
		SessionManager:   sessionManager,
		SiteHandler:      siteHandler,
		AuthHandler:      authHandler,
		CatalogHandler:   productHandler,
		CustomerHandler:  customerHandler,
		QuoteHandler:     quoteHandler,
		OrderHandler:     orderHandler,
		InvoiceHandler:   invoiceHandler,
		FinanceHandler:   financeHandler,
		SettingsHandler:  settingsHandler,
		ReportHandler:    reportHandler,
		CacheInvalidator: financeService,
		JobEnqueuer:      jobEnqueuerAdapter{client: jobClient},
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("http server listening", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", slog.Any("error", err))
	}
	logger.Info("server stopped")
}

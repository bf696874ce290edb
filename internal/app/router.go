package app

import (
	"context"
	"io/fs"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sinobridge-erp/sinobridge-erp/internal/auth"
	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
	"github.com/sinobridge-erp/sinobridge-erp/internal/billing"
	"github.com/sinobridge-erp/sinobridge-erp/internal/catalog"
	"github.com/sinobridge-erp/sinobridge-erp/internal/crm"
	"github.com/sinobridge-erp/sinobridge-erp/internal/finance"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/orders"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/quotes"
	"github.com/sinobridge-erp/sinobridge-erp/internal/settings"
	"github.com/sinobridge-erp/sinobridge-erp/internal/shared"
	"github.com/sinobridge-erp/sinobridge-erp/internal/site"
	"github.com/sinobridge-erp/sinobridge-erp/report"
	"github.com/sinobridge-erp/sinobridge-erp/web"
)

// RouterParams groups dependencies for building the HTTP router.
type RouterParams struct {
	Logger          *slog.Logger
	Config          *Config
	SessionManager  *shared.SessionManager
	SiteHandler     *site.Handler
	AuthHandler     *auth.Handler
	CatalogHandler  *catalog.Handler
	CustomerHandler *crm.Handler
	QuoteHandler    *quotes.Handler
	OrderHandler    *orders.Handler
	InvoiceHandler  *billing.Handler
	FinanceHandler  *finance.Handler
	SettingsHandler *settings.Handler
	ReportHandler   *report.Handler

	// CacheInvalidator is notified after every mutating API request so
	// derived report caches can be dropped.
	CacheInvalidator Invalidator

	// JobEnqueuer submits background tasks from the API process. Optional;
	// the overdue-scan trigger endpoint is absent when nil.
	JobEnqueuer JobEnqueuer
}

// Invalidator drops derived caches after document writes.
type Invalidator interface {
	Invalidate(ctx context.Context)
}

// JobEnqueuer pushes an immediate overdue scan onto the job queue.
type JobEnqueuer interface {
	EnqueueOverdueScan(ctx context.Context, dryRun bool) (string, error)
}

// NewRouter constructs the chi.Router. The public marketing site is open;
// everything under /api/v1 requires an admin session.
func NewRouter(params RouterParams) http.Handler {
	r := chi.NewRouter()

	for _, mw := range MiddlewareStack(MiddlewareConfig{
		Logger:         params.Logger,
		Config:         params.Config,
		SessionManager: params.SessionManager,
	}) {
		r.Use(mw)
	}

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	r.Route("/auth", params.AuthHandler.MountRoutes)

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(auth.RequireAdmin)
		if params.CacheInvalidator != nil {
			r.Use(invalidateOnWrite(params.CacheInvalidator))
		}
		r.Route("/products", params.CatalogHandler.MountRoutes)
		r.Route("/customers", params.CustomerHandler.MountRoutes)
		r.Route("/quotes", params.QuoteHandler.MountRoutes)
		r.Route("/orders", params.OrderHandler.MountRoutes)
		r.Route("/invoices", params.InvoiceHandler.MountRoutes)
		r.Route("/finance", params.FinanceHandler.MountRoutes)
		r.Route("/settings", params.SettingsHandler.MountRoutes)
		if params.ReportHandler != nil {
			r.Route("/reports", params.ReportHandler.MountRoutes)
		}
		if params.JobEnqueuer != nil {
			r.Post("/jobs/overdue-scan", enqueueOverdueScan(params.Logger, params.JobEnqueuer))
		}
	})

	staticFS, err := fs.Sub(web.Static, "static")
	if err != nil {
		params.Logger.Error("create static sub filesystem", slog.Any("error", err))
	} else {
		fileServer := http.StripPrefix("/static/", http.FileServer(http.FS(staticFS)))
		r.Handle("/static/*", staticCacheHandler(fileServer))
	}

	if params.SiteHandler != nil {
		params.SiteHandler.MountRoutes(r)
	}

	return r
}

// enqueueOverdueScan triggers an immediate overdue scan instead of waiting
// for the nightly cron run.
func enqueueOverdueScan(logger *slog.Logger, enq JobEnqueuer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			DryRun bool `json:"dry_run"`
		}
		if r.ContentLength > 0 {
			if err := httpx.DecodeJSON(r, &req); err != nil {
				httpx.Problem(w, http.StatusBadRequest, "invalid request body", err.Error())
				return
			}
		}
		taskID, err := enq.EnqueueOverdueScan(r.Context(), req.DryRun)
		if err != nil {
			logger.Error("enqueue overdue scan", slog.Any("error", err))
			httpx.Problem(w, http.StatusServiceUnavailable, "queue unavailable", "could not enqueue overdue scan")
			return
		}
		httpx.JSON(w, http.StatusAccepted, map[string]any{"task_id": taskID, "dry_run": req.DryRun})
	}
}

// invalidateOnWrite bumps derived caches after any non-GET API request.
func invalidateOnWrite(inv Invalidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			next.ServeHTTP(w, r)
			if r.Method != http.MethodGet && r.Method != http.MethodHead {
				inv.Invalidate(r.Context())
			}
		})
	}
}

// staticCacheHandler wraps a file server with Cache-Control headers.
func staticCacheHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "public, max-age=3600")
		next.ServeHTTP(w, r)
	})
}

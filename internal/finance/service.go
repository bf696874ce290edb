package finance

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sinobridge-erp/sinobridge-erp/internal/billing"
	"github.com/sinobridge-erp/sinobridge-erp/internal/catalog"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/orders"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/quotes"
	"github.com/sinobridge-erp/sinobridge-erp/internal/settings"
)

// SnapshotView is the full reporting payload for one period: the resolved
// interval, the base-currency snapshot and its display-currency projection.
type SnapshotView struct {
	Period          PeriodToken `json:"period"`
	Interval        Period      `json:"interval"`
	BaseCurrency    string      `json:"base_currency"`
	DisplayCurrency string      `json:"display_currency"`
	ExchangeRate    float64     `json:"exchange_rate"`
	Base            Snapshot    `json:"base"`
	Converted       Snapshot    `json:"converted"`
	GeneratedAt     time.Time   `json:"generated_at"`
}

// Service loads the four collections, runs the aggregation and projects the
// result into the display currency.
type Service struct {
	logger       *slog.Logger
	invoiceRepo  billing.Repository
	orderRepo    orders.Repository
	quoteRepo    quotes.Repository
	productRepo  catalog.Repository
	settingsRepo settings.Repository
	cache        *Cache
}

// NewService wires the reporting service. cache may be nil.
func NewService(logger *slog.Logger, invoiceRepo billing.Repository, orderRepo orders.Repository, quoteRepo quotes.Repository, productRepo catalog.Repository, settingsRepo settings.Repository, cache *Cache) *Service {
	return &Service{
		logger:       logger,
		invoiceRepo:  invoiceRepo,
		orderRepo:    orderRepo,
		quoteRepo:    quoteRepo,
		productRepo:  productRepo,
		settingsRepo: settingsRepo,
		cache:        cache,
	}
}

// Snapshot produces the financial snapshot for the period token. The four
// collections are fetched concurrently; a failed fetch degrades that
// collection to empty with a warning rather than failing the whole report.
func (s *Service) Snapshot(ctx context.Context, token PeriodToken) (SnapshotView, error) {
	if cached, ok, err := s.cache.Get(ctx, token); err != nil {
		s.logger.Warn("snapshot cache read", slog.Any("error", err))
	} else if ok {
		return cached, nil
	}

	var (
		invoices  []billing.Invoice
		orderList []orders.Order
		quoteList []quotes.Quote
		products  []catalog.Product
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		if invoices, err = s.invoiceRepo.ListAll(gctx); err != nil {
			s.logger.Warn("load invoices for snapshot", slog.Any("error", err))
			invoices = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if orderList, err = s.orderRepo.ListAll(gctx); err != nil {
			s.logger.Warn("load orders for snapshot", slog.Any("error", err))
			orderList = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if quoteList, err = s.quoteRepo.ListAll(gctx); err != nil {
			s.logger.Warn("load quotes for snapshot", slog.Any("error", err))
			quoteList = nil
		}
		return nil
	})
	g.Go(func() error {
		var err error
		if products, err = s.productRepo.ListAll(gctx); err != nil {
			s.logger.Warn("load products for snapshot", slog.Any("error", err))
			products = nil
		}
		return nil
	})
	_ = g.Wait()

	now := time.Now()
	period := ResolvePeriod(token, now)
	base := ComputeSnapshot(invoices, orderList, quoteList, products, period)

	cfg, err := s.settingsRepo.Load(ctx)
	if err != nil {
		s.logger.Warn("load settings for snapshot", slog.Any("error", err))
		cfg = settings.Defaults()
	}

	view := SnapshotView{
		Period:          token,
		Interval:        period,
		BaseCurrency:    "CNY",
		DisplayCurrency: cfg.DisplayCurrency,
		ExchangeRate:    cfg.ExchangeRate,
		Base:            base,
		Converted:       ProjectCurrency(base, cfg.ExchangeRate),
		GeneratedAt:     now,
	}

	if err := s.cache.Set(ctx, token, view); err != nil {
		s.logger.Warn("snapshot cache write", slog.Any("error", err))
	}
	return view, nil
}

// Invalidate drops all cached snapshots. Called after document writes.
func (s *Service) Invalidate(ctx context.Context) {
	if err := s.cache.Bump(ctx); err != nil {
		s.logger.Warn("snapshot cache bump", slog.Any("error", err))
	}
}

// WarmAll precomputes every known period, for the background warmup job.
func (s *Service) WarmAll(ctx context.Context) error {
	tokens := []PeriodToken{PeriodLast30Days, PeriodThisMonth, PeriodLastQuarter, PeriodThisYear, PeriodAllTime}
	for _, token := range tokens {
		if _, err := s.Snapshot(ctx, token); err != nil {
			return err
		}
	}
	return nil
}

package orders

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sinobridge-erp/sinobridge-erp/internal/billing"
	"github.com/sinobridge-erp/sinobridge-erp/internal/catalog"
	"github.com/sinobridge-erp/sinobridge-erp/internal/crm"
	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/quotes"
	"github.com/sinobridge-erp/sinobridge-erp/internal/shared"
)

// ErrInvalidStatus signals an order operation the lifecycle forbids.
var ErrInvalidStatus = errors.New("invalid status")

// Service handles order business logic, including quote conversion and the
// explicit quote-to-order-to-invoice sync.
type Service struct {
	repo         Repository
	quoteRepo    quotes.Repository
	customerRepo crm.Repository
	productRepo  catalog.Repository
	invoiceRepo  billing.Repository
}

// NewService wires the order repository with its sibling domains.
func NewService(repo Repository, quoteRepo quotes.Repository, customerRepo crm.Repository, productRepo catalog.Repository, invoiceRepo billing.Repository) *Service {
	return &Service{
		repo:         repo,
		quoteRepo:    quoteRepo,
		customerRepo: customerRepo,
		productRepo:  productRepo,
		invoiceRepo:  invoiceRepo,
	}
}

// Create creates an order without quote lineage.
func (s *Service) Create(ctx context.Context, req CreateOrderRequest) (Order, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return Order{}, err
	}
	if _, err := s.customerRepo.Get(ctx, req.CustomerID); err != nil {
		return Order{}, fmt.Errorf("verify customer: %w", err)
	}

	number, err := s.repo.GenerateNumber(ctx, time.Now())
	if err != nil {
		return Order{}, fmt.Errorf("generate order number: %w", err)
	}

	items := make([]LineItem, 0, len(req.Items))
	var total float64
	for _, lr := range req.Items {
		items = append(items, LineItem{
			SKU:           lr.SKU,
			Description:   lr.Description,
			Quantity:      lr.Quantity,
			UnitPrice:     lr.UnitPrice,
			PurchasePrice: lr.PurchasePrice,
		})
		total += lr.Quantity * lr.UnitPrice
	}

	order := Order{
		Number:      number,
		CustomerID:  req.CustomerID,
		Items:       items,
		TotalAmount: total,
		Status:      StatusProcessing,
		OrderDate:   time.Now(),
	}
	return s.repo.Create(ctx, order)
}

// CreateFromQuote converts an accepted quote into an order, snapshotting the
// quote's items and total. Supplier purchase prices are resolved from the
// catalog by SKU at conversion time; an unmatched SKU leaves the purchase
// price unset. Converting the same quote again creates another order.
func (s *Service) CreateFromQuote(ctx context.Context, quoteID int64) (Order, error) {
	quote, err := s.quoteRepo.Get(ctx, quoteID)
	if err != nil {
		return Order{}, fmt.Errorf("get quote: %w", err)
	}
	if quote.Status != quotes.StatusAccepted {
		return Order{}, fmt.Errorf("%w: only accepted quotes can be converted", ErrInvalidStatus)
	}

	number, err := s.repo.GenerateNumber(ctx, time.Now())
	if err != nil {
		return Order{}, fmt.Errorf("generate order number: %w", err)
	}

	order := Order{
		Number:      number,
		QuoteID:     &quote.ID,
		CustomerID:  quote.CustomerID,
		Items:       s.snapshotItems(ctx, quote.Items),
		TotalAmount: quote.TotalAmount,
		Status:      StatusProcessing,
		OrderDate:   time.Now(),
	}
	return s.repo.Create(ctx, order)
}

// SetStatus changes the fulfilment status. Any known status may follow any
// other; fulfilment corrections are common enough that the lifecycle is not
// enforced here.
func (s *Service) SetStatus(ctx context.Context, id int64, req UpdateStatusRequest) (Order, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return Order{}, err
	}
	if err := s.repo.UpdateStatus(ctx, id, OrderStatus(req.Status)); err != nil {
		return Order{}, fmt.Errorf("update order status: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// SyncFromQuote pushes the quote's current items and total onto the order
// converted from it, and onwards onto that order's invoice. A quote with no
// converted order is a successful no-op. Purchase prices are re-resolved
// from the catalog during the push.
func (s *Service) SyncFromQuote(ctx context.Context, quoteID int64) (SyncResult, error) {
	quote, err := s.quoteRepo.Get(ctx, quoteID)
	if err != nil {
		return SyncResult{}, fmt.Errorf("get quote: %w", err)
	}

	var result SyncResult

	order, err := s.repo.FindByQuoteID(ctx, quote.ID)
	if errors.Is(err, httpx.ErrNotFound) {
		return result, nil
	}
	if err != nil {
		return SyncResult{}, fmt.Errorf("find order for quote: %w", err)
	}

	items := s.snapshotItems(ctx, quote.Items)
	if err := s.repo.UpdateContents(ctx, order.ID, items, quote.TotalAmount); err != nil {
		return SyncResult{}, fmt.Errorf("sync order: %w", err)
	}
	result.OrderSynced = true

	invoice, err := s.invoiceRepo.FindByOrderID(ctx, order.ID)
	if errors.Is(err, httpx.ErrNotFound) {
		return result, nil
	}
	if err != nil {
		return SyncResult{}, fmt.Errorf("find invoice for order: %w", err)
	}

	if err := s.invoiceRepo.UpdateContents(ctx, invoice.ID, toBillingItems(items), quote.TotalAmount); err != nil {
		return SyncResult{}, fmt.Errorf("sync invoice: %w", err)
	}
	result.InvoiceSynced = true
	return result, nil
}

func (s *Service) Get(ctx context.Context, id int64) (Order, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// snapshotItems copies quote lines into order lines, attaching the catalog
// purchase price where the SKU resolves. Lookup failures leave the purchase
// price unset rather than failing the conversion.
func (s *Service) snapshotItems(ctx context.Context, quoteItems []quotes.LineItem) []LineItem {
	items := make([]LineItem, 0, len(quoteItems))
	for _, qi := range quoteItems {
		item := LineItem{
			SKU:         qi.SKU,
			Description: qi.Description,
			Quantity:    qi.Quantity,
			UnitPrice:   qi.UnitPrice,
		}
		if qi.SKU != nil && *qi.SKU != "" {
			if product, err := s.productRepo.FindBySKU(ctx, *qi.SKU); err == nil {
				price := product.PurchasePrice
				item.PurchasePrice = &price
			}
		}
		items = append(items, item)
	}
	return items
}

func toBillingItems(items []LineItem) []billing.LineItem {
	out := make([]billing.LineItem, 0, len(items))
	for _, item := range items {
		out = append(out, billing.LineItem{
			SKU:         item.SKU,
			Description: item.Description,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
		})
	}
	return out
}

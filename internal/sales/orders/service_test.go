package orders

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinobridge-erp/sinobridge-erp/internal/billing"
	"github.com/sinobridge-erp/sinobridge-erp/internal/catalog"
	"github.com/sinobridge-erp/sinobridge-erp/internal/crm"
	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/quotes"
)

type mockRepository struct {
	orders map[int64]*Order
	nextID int64
	seq    int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{orders: make(map[int64]*Order), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context, req ListOrdersRequest) ([]Order, int, error) {
	var result []Order
	for _, o := range m.orders {
		result = append(result, *o)
	}
	return result, len(result), nil
}

func (m *mockRepository) ListAll(ctx context.Context) ([]Order, error) {
	var result []Order
	for _, o := range m.orders {
		result = append(result, *o)
	}
	return result, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Order, error) {
	o, ok := m.orders[id]
	if !ok {
		return Order{}, httpx.ErrNotFound
	}
	return *o, nil
}

func (m *mockRepository) FindByQuoteID(ctx context.Context, quoteID int64) (Order, error) {
	var newest *Order
	for _, o := range m.orders {
		if o.QuoteID != nil && *o.QuoteID == quoteID {
			if newest == nil || o.ID > newest.ID {
				newest = o
			}
		}
	}
	if newest == nil {
		return Order{}, httpx.ErrNotFound
	}
	return *newest, nil
}

func (m *mockRepository) Create(ctx context.Context, order Order) (Order, error) {
	order.ID = m.nextID
	m.nextID++
	stored := order
	m.orders[order.ID] = &stored
	return order, nil
}

func (m *mockRepository) UpdateContents(ctx context.Context, id int64, items []LineItem, total float64) error {
	o, ok := m.orders[id]
	if !ok {
		return httpx.ErrNotFound
	}
	o.Items = items
	o.TotalAmount = total
	return nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id int64, status OrderStatus) error {
	o, ok := m.orders[id]
	if !ok {
		return httpx.ErrNotFound
	}
	o.Status = status
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.orders[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.orders, id)
	return nil
}

func (m *mockRepository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	m.seq++
	return fmt.Sprintf("SO-%s-%04d", date.Format("0601"), m.seq), nil
}

func (m *mockRepository) TotalsByCustomer(ctx context.Context, customerID int64) (int, float64, error) {
	var count int
	var revenue float64
	for _, o := range m.orders {
		if o.CustomerID == customerID && o.Status != StatusCancelled {
			count++
			revenue += o.TotalAmount
		}
	}
	return count, revenue, nil
}

type stubQuotes struct {
	quotes.Repository
	quotes map[int64]quotes.Quote
}

func (s stubQuotes) Get(ctx context.Context, id int64) (quotes.Quote, error) {
	q, ok := s.quotes[id]
	if !ok {
		return quotes.Quote{}, httpx.ErrNotFound
	}
	return q, nil
}

type stubCustomers struct {
	crm.Repository
}

func (s stubCustomers) Get(ctx context.Context, id int64) (crm.Customer, error) {
	return crm.Customer{ID: id}, nil
}

type stubProducts struct {
	catalog.Repository
	bySKU map[string]catalog.Product
}

func (s stubProducts) FindBySKU(ctx context.Context, sku string) (catalog.Product, error) {
	p, ok := s.bySKU[sku]
	if !ok {
		return catalog.Product{}, httpx.ErrNotFound
	}
	return p, nil
}

type stubInvoices struct {
	billing.Repository
	byOrder map[int64]*billing.Invoice
}

func (s stubInvoices) FindByOrderID(ctx context.Context, orderID int64) (billing.Invoice, error) {
	inv, ok := s.byOrder[orderID]
	if !ok {
		return billing.Invoice{}, httpx.ErrNotFound
	}
	return *inv, nil
}

func (s stubInvoices) UpdateContents(ctx context.Context, id int64, items []billing.LineItem, total float64) error {
	for _, inv := range s.byOrder {
		if inv.ID == id {
			inv.Items = items
			inv.TotalAmount = total
			return nil
		}
	}
	return httpx.ErrNotFound
}

func strPtr(s string) *string { return &s }

func acceptedQuote(id int64) quotes.Quote {
	items := []quotes.LineItem{
		{SKU: strPtr("BRK-100"), Description: "steel brackets", Quantity: 100, UnitPrice: 8},
		{Description: "custom packing", Quantity: 1, UnitPrice: 200},
	}
	subtotal, total := quotes.Totals(items, 300, 10)
	return quotes.Quote{
		ID:             id,
		Number:         "QT-2506-0001",
		CustomerID:     5,
		Items:          items,
		Subtotal:       subtotal,
		TransportCost:  300,
		CommissionRate: 10,
		TotalAmount:    total,
		Status:         quotes.StatusAccepted,
	}
}

func newTestService(repo *mockRepository, q stubQuotes, inv stubInvoices) *Service {
	products := stubProducts{bySKU: map[string]catalog.Product{
		"BRK-100": {SKU: "BRK-100", PurchasePrice: 5.5},
	}}
	return NewService(repo, q, stubCustomers{}, products, inv)
}

func TestCreateFromQuoteSnapshotsItemsAndCosts(t *testing.T) {
	repo := newMockRepository()
	q := stubQuotes{quotes: map[int64]quotes.Quote{7: acceptedQuote(7)}}
	svc := newTestService(repo, q, stubInvoices{byOrder: map[int64]*billing.Invoice{}})

	order, err := svc.CreateFromQuote(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, int64(5), order.CustomerID)
	require.NotNil(t, order.QuoteID)
	assert.Equal(t, int64(7), *order.QuoteID)
	assert.Equal(t, StatusProcessing, order.Status)
	assert.Equal(t, 1430.0, order.TotalAmount)
	assert.Contains(t, order.Number, "SO-")

	require.Len(t, order.Items, 2)
	require.NotNil(t, order.Items[0].PurchasePrice)
	assert.Equal(t, 5.5, *order.Items[0].PurchasePrice)
	// No SKU means no purchase price lookup.
	assert.Nil(t, order.Items[1].PurchasePrice)
}

func TestCreateFromQuoteRequiresAcceptedStatus(t *testing.T) {
	repo := newMockRepository()
	draft := acceptedQuote(7)
	draft.Status = quotes.StatusDraft
	q := stubQuotes{quotes: map[int64]quotes.Quote{7: draft}}
	svc := newTestService(repo, q, stubInvoices{byOrder: map[int64]*billing.Invoice{}})

	_, err := svc.CreateFromQuote(context.Background(), 7)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCreateFromQuoteUnmatchedSKUFailsOpen(t *testing.T) {
	repo := newMockRepository()
	quote := acceptedQuote(7)
	quote.Items[0].SKU = strPtr("GONE")
	q := stubQuotes{quotes: map[int64]quotes.Quote{7: quote}}
	svc := newTestService(repo, q, stubInvoices{byOrder: map[int64]*billing.Invoice{}})

	order, err := svc.CreateFromQuote(context.Background(), 7)
	require.NoError(t, err)
	assert.Nil(t, order.Items[0].PurchasePrice)
}

func TestReconvertingQuoteCreatesAnotherOrder(t *testing.T) {
	repo := newMockRepository()
	q := stubQuotes{quotes: map[int64]quotes.Quote{7: acceptedQuote(7)}}
	svc := newTestService(repo, q, stubInvoices{byOrder: map[int64]*billing.Invoice{}})

	first, err := svc.CreateFromQuote(context.Background(), 7)
	require.NoError(t, err)
	second, err := svc.CreateFromQuote(context.Background(), 7)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
	assert.NotEqual(t, first.Number, second.Number)
}

func TestSyncFromQuoteNoOrderIsNoOpSuccess(t *testing.T) {
	repo := newMockRepository()
	q := stubQuotes{quotes: map[int64]quotes.Quote{7: acceptedQuote(7)}}
	svc := newTestService(repo, q, stubInvoices{byOrder: map[int64]*billing.Invoice{}})

	result, err := svc.SyncFromQuote(context.Background(), 7)
	require.NoError(t, err)
	assert.False(t, result.OrderSynced)
	assert.False(t, result.InvoiceSynced)
}

func TestSyncFromQuotePushesOrderAndInvoice(t *testing.T) {
	repo := newMockRepository()
	quote := acceptedQuote(7)
	q := stubQuotes{quotes: map[int64]quotes.Quote{7: quote}}

	invoices := stubInvoices{byOrder: map[int64]*billing.Invoice{}}
	svc := newTestService(repo, q, invoices)

	order, err := svc.CreateFromQuote(context.Background(), 7)
	require.NoError(t, err)
	invoices.byOrder[order.ID] = &billing.Invoice{ID: 11, TotalAmount: order.TotalAmount}

	// The quote is edited after conversion.
	quote.Items = append(quote.Items, quotes.LineItem{Description: "rush fee", Quantity: 1, UnitPrice: 500})
	quote.Subtotal, quote.TotalAmount = quotes.Totals(quote.Items, quote.TransportCost, quote.CommissionRate)
	q.quotes[7] = quote

	result, err := svc.SyncFromQuote(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, result.OrderSynced)
	assert.True(t, result.InvoiceSynced)

	synced, err := repo.Get(context.Background(), order.ID)
	require.NoError(t, err)
	assert.Len(t, synced.Items, 3)
	assert.Equal(t, quote.TotalAmount, synced.TotalAmount)
	assert.Equal(t, quote.TotalAmount, invoices.byOrder[order.ID].TotalAmount)
	assert.Len(t, invoices.byOrder[order.ID].Items, 3)
}

func TestSyncFromQuoteOrderOnlyWhenNoInvoice(t *testing.T) {
	repo := newMockRepository()
	q := stubQuotes{quotes: map[int64]quotes.Quote{7: acceptedQuote(7)}}
	svc := newTestService(repo, q, stubInvoices{byOrder: map[int64]*billing.Invoice{}})

	_, err := svc.CreateFromQuote(context.Background(), 7)
	require.NoError(t, err)

	result, err := svc.SyncFromQuote(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, result.OrderSynced)
	assert.False(t, result.InvoiceSynced)
}

func TestSetStatus(t *testing.T) {
	repo := newMockRepository()
	svc := newTestService(repo, stubQuotes{quotes: map[int64]quotes.Quote{}}, stubInvoices{byOrder: map[int64]*billing.Invoice{}})

	order, err := svc.Create(context.Background(), CreateOrderRequest{
		CustomerID: 1,
		Items:      []LineItemRequest{{Description: "x", Quantity: 2, UnitPrice: 50}},
	})
	require.NoError(t, err)
	assert.Equal(t, 100.0, order.TotalAmount)

	order, err = svc.SetStatus(context.Background(), order.ID, UpdateStatusRequest{Status: "shipped"})
	require.NoError(t, err)
	assert.Equal(t, StatusShipped, order.Status)

	_, err = svc.SetStatus(context.Background(), order.ID, UpdateStatusRequest{Status: "lost"})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestTotalsByCustomerExcludesCancelled(t *testing.T) {
	repo := newMockRepository()
	ctx := context.Background()

	for _, o := range []Order{
		{CustomerID: 1, TotalAmount: 100, Status: StatusDelivered},
		{CustomerID: 1, TotalAmount: 200, Status: StatusProcessing},
		{CustomerID: 1, TotalAmount: 999, Status: StatusCancelled},
		{CustomerID: 2, TotalAmount: 50, Status: StatusDelivered},
	} {
		_, err := repo.Create(ctx, o)
		require.NoError(t, err)
	}

	count, revenue, err := repo.TotalsByCustomer(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	assert.Equal(t, 300.0, revenue)
}

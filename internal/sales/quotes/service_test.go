package quotes

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinobridge-erp/sinobridge-erp/internal/crm"
	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
)

type mockRepository struct {
	quotes map[int64]*Quote
	nextID int64
	seq    int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{quotes: make(map[int64]*Quote), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	var result []Quote
	for _, q := range m.quotes {
		if req.CustomerID != nil && q.CustomerID != *req.CustomerID {
			continue
		}
		if req.Status != nil && q.Status != *req.Status {
			continue
		}
		result = append(result, *q)
	}
	return result, len(result), nil
}

func (m *mockRepository) ListAll(ctx context.Context) ([]Quote, error) {
	var result []Quote
	for _, q := range m.quotes {
		result = append(result, *q)
	}
	return result, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Quote, error) {
	q, ok := m.quotes[id]
	if !ok {
		return Quote{}, httpx.ErrNotFound
	}
	return *q, nil
}

func (m *mockRepository) Create(ctx context.Context, quote Quote) (Quote, error) {
	quote.ID = m.nextID
	m.nextID++
	stored := quote
	m.quotes[quote.ID] = &stored
	return quote, nil
}

func (m *mockRepository) UpdateContents(ctx context.Context, id int64, items []LineItem, subtotal, transportCost, commissionRate, total float64) error {
	q, ok := m.quotes[id]
	if !ok {
		return httpx.ErrNotFound
	}
	q.Items = items
	q.Subtotal = subtotal
	q.TransportCost = transportCost
	q.CommissionRate = commissionRate
	q.TotalAmount = total
	return nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id int64, status QuoteStatus) error {
	q, ok := m.quotes[id]
	if !ok {
		return httpx.ErrNotFound
	}
	q.Status = status
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.quotes[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.quotes, id)
	return nil
}

func (m *mockRepository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	m.seq++
	return fmt.Sprintf("QT-%s-%04d", date.Format("0601"), m.seq), nil
}

type stubCustomers struct {
	crm.Repository
	missing bool
}

func (s stubCustomers) Get(ctx context.Context, id int64) (crm.Customer, error) {
	if s.missing {
		return crm.Customer{}, httpx.ErrNotFound
	}
	return crm.Customer{ID: id, Name: "Nordic Imports AB"}, nil
}

func validCreateRequest() CreateQuoteRequest {
	return CreateQuoteRequest{
		CustomerID: 1,
		Items: []LineItemRequest{
			{Description: "steel brackets", Quantity: 100, UnitPrice: 8},
			{Description: "packing", Quantity: 1, UnitPrice: 200},
		},
		TransportCost:  300,
		CommissionRate: 10,
	}
}

func TestTotalsCommissionCoversGoodsAndTransport(t *testing.T) {
	items := []LineItem{
		{Quantity: 100, UnitPrice: 8},
		{Quantity: 1, UnitPrice: 200},
	}
	subtotal, total := Totals(items, 300, 10)

	assert.Equal(t, 1000.0, subtotal)
	// (1000 + 300) * 10% = 130 commission
	assert.Equal(t, 1430.0, total)
}

func TestTotalsZeroCommission(t *testing.T) {
	subtotal, total := Totals([]LineItem{{Quantity: 2, UnitPrice: 50}}, 0, 0)
	assert.Equal(t, 100.0, subtotal)
	assert.Equal(t, 100.0, total)
}

func TestCreateQuoteStartsAsDraft(t *testing.T) {
	svc := NewService(newMockRepository(), stubCustomers{})

	quote, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	assert.Equal(t, StatusDraft, quote.Status)
	assert.Equal(t, 1000.0, quote.Subtotal)
	assert.Equal(t, 1430.0, quote.TotalAmount)
	assert.Contains(t, quote.Number, "QT-")
}

func TestCreateQuoteUnknownCustomer(t *testing.T) {
	svc := NewService(newMockRepository(), stubCustomers{missing: true})

	_, err := svc.Create(context.Background(), validCreateRequest())
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestUpdateRecalculatesTotals(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, stubCustomers{})

	quote, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)

	newRate := 5.0
	updated, err := svc.Update(context.Background(), quote.ID, UpdateQuoteRequest{CommissionRate: &newRate})
	require.NoError(t, err)

	// (1000 + 300) * 5% = 65 commission
	assert.Equal(t, 1365.0, updated.TotalAmount)
	assert.Equal(t, 1000.0, updated.Subtotal)
}

func TestUpdateRejectedForNonDraft(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, stubCustomers{})

	quote, err := svc.Create(context.Background(), validCreateRequest())
	require.NoError(t, err)
	_, err = svc.Send(context.Background(), quote.ID)
	require.NoError(t, err)

	cost := 50.0
	_, err = svc.Update(context.Background(), quote.ID, UpdateQuoteRequest{TransportCost: &cost})
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestLifecycleTransitions(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, stubCustomers{})
	ctx := context.Background()

	quote, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)

	// Accepting a draft is forbidden.
	_, err = svc.Accept(ctx, quote.ID)
	require.ErrorIs(t, err, ErrInvalidStatus)

	quote, err = svc.Send(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusSent, quote.Status)

	// Sending twice is forbidden.
	_, err = svc.Send(ctx, quote.ID)
	require.ErrorIs(t, err, ErrInvalidStatus)

	quote, err = svc.Accept(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusAccepted, quote.Status)

	// Accepted is terminal for reject.
	_, err = svc.Reject(ctx, quote.ID)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestRejectSentQuote(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, stubCustomers{})
	ctx := context.Background()

	quote, err := svc.Create(ctx, validCreateRequest())
	require.NoError(t, err)
	_, err = svc.Send(ctx, quote.ID)
	require.NoError(t, err)

	quote, err = svc.Reject(ctx, quote.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusRejected, quote.Status)
}

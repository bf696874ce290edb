package billing

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinobridge-erp/sinobridge-erp/internal/crm"
	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
)

type mockRepository struct {
	invoices map[int64]*Invoice
	nextID   int64
	seq      int64

	createErr error
}

func newMockRepository() *mockRepository {
	return &mockRepository{invoices: make(map[int64]*Invoice), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	var result []Invoice
	for _, inv := range m.invoices {
		if req.CustomerID != nil && inv.CustomerID != *req.CustomerID {
			continue
		}
		if req.Status != nil && inv.Status != *req.Status {
			continue
		}
		result = append(result, *inv)
	}
	return result, len(result), nil
}

func (m *mockRepository) ListAll(ctx context.Context) ([]Invoice, error) {
	var result []Invoice
	for _, inv := range m.invoices {
		result = append(result, *inv)
	}
	return result, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Invoice, error) {
	inv, ok := m.invoices[id]
	if !ok {
		return Invoice{}, httpx.ErrNotFound
	}
	return *inv, nil
}

func (m *mockRepository) FindByOrderID(ctx context.Context, orderID int64) (Invoice, error) {
	var newest *Invoice
	for _, inv := range m.invoices {
		if inv.OrderID != nil && *inv.OrderID == orderID {
			if newest == nil || inv.ID > newest.ID {
				newest = inv
			}
		}
	}
	if newest == nil {
		return Invoice{}, httpx.ErrNotFound
	}
	return *newest, nil
}

func (m *mockRepository) Create(ctx context.Context, invoice Invoice) (Invoice, error) {
	if m.createErr != nil {
		return Invoice{}, m.createErr
	}
	invoice.ID = m.nextID
	m.nextID++
	stored := invoice
	m.invoices[invoice.ID] = &stored
	return invoice, nil
}

func (m *mockRepository) UpdateContents(ctx context.Context, id int64, items []LineItem, total float64) error {
	inv, ok := m.invoices[id]
	if !ok {
		return httpx.ErrNotFound
	}
	inv.Items = items
	inv.TotalAmount = total
	return nil
}

func (m *mockRepository) RecordPayment(ctx context.Context, id int64, amountPaid float64, status InvoiceStatus, paymentDate *time.Time) error {
	inv, ok := m.invoices[id]
	if !ok {
		return httpx.ErrNotFound
	}
	inv.AmountPaid = amountPaid
	inv.Status = status
	inv.PaymentDate = paymentDate
	return nil
}

func (m *mockRepository) UpdateStatus(ctx context.Context, id int64, status InvoiceStatus) error {
	inv, ok := m.invoices[id]
	if !ok {
		return httpx.ErrNotFound
	}
	inv.Status = status
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.invoices[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.invoices, id)
	return nil
}

func (m *mockRepository) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	var changed int64
	for _, inv := range m.invoices {
		if (inv.Status == StatusUnpaid || inv.Status == StatusPartiallyPaid) && inv.DueDate.Before(asOf) {
			inv.Status = StatusOverdue
			changed++
		}
	}
	return changed, nil
}

func (m *mockRepository) GenerateNumber(ctx context.Context, date time.Time) (string, error) {
	m.seq++
	return "INV-2506-000" + string(rune('0'+m.seq)), nil
}

type stubCustomers struct {
	crm.Repository
	missing bool
}

func (s stubCustomers) Get(ctx context.Context, id int64) (crm.Customer, error) {
	if s.missing {
		return crm.Customer{}, httpx.ErrNotFound
	}
	return crm.Customer{ID: id, Name: "ACME GmbH"}, nil
}

type stubOrderSource struct {
	info OrderInfo
	err  error
}

func (s stubOrderSource) OrderInfo(ctx context.Context, orderID int64) (OrderInfo, error) {
	if s.err != nil {
		return OrderInfo{}, s.err
	}
	return s.info, nil
}

func i64(v int64) *int64 { return &v }

func TestCreateStandaloneInvoiceComputesTotal(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, stubCustomers{}, stubOrderSource{})

	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		CustomerID: 5,
		Items: []LineItemRequest{
			{Description: "widgets", Quantity: 3, UnitPrice: 10},
			{Description: "freight", Quantity: 1, UnitPrice: 25},
		},
		DueDate: time.Now().Add(14 * 24 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, 55.0, inv.TotalAmount)
	assert.Equal(t, StatusUnpaid, inv.Status)
	assert.Zero(t, inv.AmountPaid)
	assert.NotEmpty(t, inv.Number)
	assert.Nil(t, inv.OrderID)
}

func TestCreateInvoiceFromOrderCopiesSnapshot(t *testing.T) {
	repo := newMockRepository()
	source := stubOrderSource{info: OrderInfo{
		CustomerID:  7,
		Items:       []LineItem{{Description: "bulk goods", Quantity: 100, UnitPrice: 4}},
		TotalAmount: 400,
	}}
	svc := NewService(repo, stubCustomers{}, source)

	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		OrderID: i64(3),
		DueDate: time.Now().Add(30 * 24 * time.Hour),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(7), inv.CustomerID)
	assert.Equal(t, 400.0, inv.TotalAmount)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, "bulk goods", inv.Items[0].Description)
}

func TestCreateInvoiceUnknownCustomerFails(t *testing.T) {
	svc := NewService(newMockRepository(), stubCustomers{missing: true}, stubOrderSource{})

	_, err := svc.Create(context.Background(), CreateInvoiceRequest{
		CustomerID: 99,
		Items:      []LineItemRequest{{Description: "x", Quantity: 1, UnitPrice: 1}},
		DueDate:    time.Now(),
	})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestCreateInvoiceBrokenOrderSourceFails(t *testing.T) {
	svc := NewService(newMockRepository(), stubCustomers{}, stubOrderSource{err: httpx.ErrNotFound})

	_, err := svc.Create(context.Background(), CreateInvoiceRequest{
		OrderID: i64(42),
		DueDate: time.Now(),
	})
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestRecordPaymentDrivesStateMachine(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, stubCustomers{}, stubOrderSource{})

	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		CustomerID: 1,
		Items:      []LineItemRequest{{Description: "x", Quantity: 1, UnitPrice: 100}},
		DueDate:    time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	inv, err = svc.RecordPayment(context.Background(), inv.ID, RecordPaymentRequest{AmountPaid: 40})
	require.NoError(t, err)
	assert.Equal(t, StatusPartiallyPaid, inv.Status)
	assert.Nil(t, inv.PaymentDate)

	inv, err = svc.RecordPayment(context.Background(), inv.ID, RecordPaymentRequest{AmountPaid: 100})
	require.NoError(t, err)
	assert.Equal(t, StatusPaid, inv.Status)
	require.NotNil(t, inv.PaymentDate)

	// Correcting back down clears the payment date again.
	inv, err = svc.RecordPayment(context.Background(), inv.ID, RecordPaymentRequest{AmountPaid: 0})
	require.NoError(t, err)
	assert.Equal(t, StatusUnpaid, inv.Status)
	assert.Nil(t, inv.PaymentDate)
}

func TestRecordPaymentKeepsCancelledStickyAgainstZero(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, stubCustomers{}, stubOrderSource{})

	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		CustomerID: 1,
		Items:      []LineItemRequest{{Description: "x", Quantity: 1, UnitPrice: 100}},
		DueDate:    time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	inv, err = svc.OverrideStatus(context.Background(), inv.ID, OverrideStatusRequest{Status: "cancelled"})
	require.NoError(t, err)
	require.Equal(t, StatusCancelled, inv.Status)

	inv, err = svc.RecordPayment(context.Background(), inv.ID, RecordPaymentRequest{AmountPaid: 0})
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, inv.Status)
}

func TestOverrideStatusBypassesStateMachine(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, stubCustomers{}, stubOrderSource{})

	inv, err := svc.Create(context.Background(), CreateInvoiceRequest{
		CustomerID: 1,
		Items:      []LineItemRequest{{Description: "x", Quantity: 1, UnitPrice: 100}},
		DueDate:    time.Now().Add(time.Hour),
	})
	require.NoError(t, err)

	// Mark overdue manually even though nothing was paid and it is not due.
	inv, err = svc.OverrideStatus(context.Background(), inv.ID, OverrideStatusRequest{Status: "overdue"})
	require.NoError(t, err)
	assert.Equal(t, StatusOverdue, inv.Status)

	// An invalid status is rejected by validation.
	_, err = svc.OverrideStatus(context.Background(), inv.ID, OverrideStatusRequest{Status: "archived"})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestOverdueScanMarksPastDueInvoices(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, stubCustomers{}, stubOrderSource{})

	mk := func(status InvoiceStatus, due time.Time) int64 {
		inv, err := repo.Create(context.Background(), Invoice{
			CustomerID:  1,
			Status:      status,
			TotalAmount: 100,
			DueDate:     due,
		})
		require.NoError(t, err)
		return inv.ID
	}

	past := time.Now().Add(-48 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	overdueID := mk(StatusUnpaid, past)
	partialID := mk(StatusPartiallyPaid, past)
	notDueID := mk(StatusUnpaid, future)
	paidID := mk(StatusPaid, past)

	changed, err := svc.OverdueScan(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), changed)

	for id, want := range map[int64]InvoiceStatus{
		overdueID: StatusOverdue,
		partialID: StatusOverdue,
		notDueID:  StatusUnpaid,
		paidID:    StatusPaid,
	} {
		inv, err := repo.Get(context.Background(), id)
		require.NoError(t, err)
		assert.Equal(t, want, inv.Status)
	}
}

func TestRecordPaymentUnknownInvoice(t *testing.T) {
	svc := NewService(newMockRepository(), stubCustomers{}, stubOrderSource{})

	_, err := svc.RecordPayment(context.Background(), 404, RecordPaymentRequest{AmountPaid: 10})
	assert.True(t, errors.Is(err, httpx.ErrNotFound))
}

package crm

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
)

type mockRepository struct {
	customers map[int64]*Customer
	nextID    int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{customers: make(map[int64]*Customer), nextID: 1}
}

func (m *mockRepository) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	var result []Customer
	for _, c := range m.customers {
		result = append(result, *c)
	}
	return result, len(result), nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return Customer{}, httpx.ErrNotFound
	}
	return *c, nil
}

func (m *mockRepository) Create(ctx context.Context, customer Customer) (Customer, error) {
	customer.ID = m.nextID
	m.nextID++
	stored := customer
	m.customers[customer.ID] = &stored
	return customer, nil
}

func (m *mockRepository) Update(ctx context.Context, id int64, customer Customer) error {
	if _, ok := m.customers[id]; !ok {
		return httpx.ErrNotFound
	}
	customer.ID = id
	stored := customer
	m.customers[id] = &stored
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	if _, ok := m.customers[id]; !ok {
		return httpx.ErrNotFound
	}
	delete(m.customers, id)
	return nil
}

type stubStats struct {
	count   int
	revenue float64
	err     error
}

func (s stubStats) TotalsByCustomer(ctx context.Context, customerID int64) (int, float64, error) {
	return s.count, s.revenue, s.err
}

func TestCreateCustomerDefaultsToLead(t *testing.T) {
	svc := NewService(newMockRepository(), stubStats{})

	customer, err := svc.Create(context.Background(), CreateCustomerRequest{
		Name:  "  Nordic Imports AB ",
		Email: "buyer@nordic.example",
	})
	require.NoError(t, err)

	assert.Equal(t, StatusLead, customer.Status)
	assert.Equal(t, "Nordic Imports AB", customer.Name)
}

func TestUpdateCustomerRejectsUnknownStatus(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, stubStats{})

	customer, err := svc.Create(context.Background(), CreateCustomerRequest{
		Name: "Nordic Imports AB", Email: "buyer@nordic.example",
	})
	require.NoError(t, err)

	bogus := "vip"
	_, err = svc.Update(context.Background(), customer.ID, UpdateCustomerRequest{Status: &bogus})
	assert.ErrorIs(t, err, httpx.ErrValidation)
}

func TestStatsDelegatesToOrderSource(t *testing.T) {
	repo := newMockRepository()
	svc := NewService(repo, stubStats{count: 3, revenue: 4250})

	customer, err := svc.Create(context.Background(), CreateCustomerRequest{
		Name: "Nordic Imports AB", Email: "buyer@nordic.example",
	})
	require.NoError(t, err)

	stats, err := svc.Stats(context.Background(), customer.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.OrderCount)
	assert.Equal(t, 4250.0, stats.Revenue)
}

func TestStatsUnknownCustomer(t *testing.T) {
	svc := NewService(newMockRepository(), stubStats{count: 3, revenue: 4250})

	_, err := svc.Stats(context.Background(), 99)
	assert.ErrorIs(t, err, httpx.ErrNotFound)
}

func TestStatsPropagatesSourceError(t *testing.T) {
	repo := newMockRepository()
	srcErr := errors.New("orders unavailable")
	svc := NewService(repo, stubStats{err: srcErr})

	customer, err := svc.Create(context.Background(), CreateCustomerRequest{
		Name: "Nordic Imports AB", Email: "buyer@nordic.example",
	})
	require.NoError(t, err)

	_, err = svc.Stats(context.Background(), customer.ID)
	assert.ErrorIs(t, err, srcErr)
}

func TestDeleteCustomerInvalidID(t *testing.T) {
	svc := NewService(newMockRepository(), stubStats{})
	assert.ErrorIs(t, svc.Delete(context.Background(), -1), httpx.ErrValidation)
}

package crm

import (
	"context"
	"fmt"
	"strings"

	"github.com/sinobridge-erp/sinobridge-erp/internal/platform/httpx"
	"github.com/sinobridge-erp/sinobridge-erp/internal/shared"
)

// OrderStatsSource yields on-demand order aggregates for a customer.
// Implemented by the sales order repository; the customer record itself
// never caches these figures.
type OrderStatsSource interface {
	TotalsByCustomer(ctx context.Context, customerID int64) (count int, revenue float64, err error)
}

// Service handles customer business logic.
type Service struct {
	repo  Repository
	stats OrderStatsSource
}

// NewService builds a Service instance.
func NewService(repo Repository, stats OrderStatsSource) *Service {
	return &Service{repo: repo, stats: stats}
}

func (s *Service) List(ctx context.Context, req ListCustomersRequest) ([]Customer, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Get(ctx context.Context, id int64) (Customer, error) {
	if id <= 0 {
		return Customer{}, fmt.Errorf("%w: invalid customer id", httpx.ErrValidation)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Create(ctx context.Context, req CreateCustomerRequest) (Customer, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return Customer{}, err
	}
	status := CustomerStatus(req.Status)
	if req.Status == "" {
		status = StatusLead
	}
	customer := Customer{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   req.Phone,
		Company: req.Company,
		Country: req.Country,
		Notes:   req.Notes,
		Status:  status,
		Source:  req.Source,
	}
	return s.repo.Create(ctx, customer)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateCustomerRequest) (Customer, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return Customer{}, err
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Customer{}, err
	}

	if req.Name != nil {
		existing.Name = strings.TrimSpace(*req.Name)
	}
	if req.Email != nil {
		existing.Email = strings.TrimSpace(*req.Email)
	}
	if req.Phone != nil {
		existing.Phone = req.Phone
	}
	if req.Company != nil {
		existing.Company = req.Company
	}
	if req.Country != nil {
		existing.Country = req.Country
	}
	if req.Notes != nil {
		existing.Notes = req.Notes
	}
	if req.Status != nil {
		status := CustomerStatus(*req.Status)
		if !ValidStatus(status) {
			return Customer{}, fmt.Errorf("%w: unknown status %q", httpx.ErrValidation, *req.Status)
		}
		existing.Status = status
	}
	if req.Source != nil {
		existing.Source = *req.Source
	}

	if err := s.repo.Update(ctx, id, existing); err != nil {
		return Customer{}, err
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if id <= 0 {
		return fmt.Errorf("%w: invalid customer id", httpx.ErrValidation)
	}
	return s.repo.Delete(ctx, id)
}

// Stats computes order count and revenue for a customer by scanning orders.
func (s *Service) Stats(ctx context.Context, id int64) (CustomerStats, error) {
	if _, err := s.repo.Get(ctx, id); err != nil {
		return CustomerStats{}, err
	}
	count, revenue, err := s.stats.TotalsByCustomer(ctx, id)
	if err != nil {
		return CustomerStats{}, err
	}
	return CustomerStats{OrderCount: count, Revenue: revenue}, nil
}

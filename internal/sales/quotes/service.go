package quotes

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sinobridge-erp/sinobridge-erp/internal/crm"
	"github.com/sinobridge-erp/sinobridge-erp/internal/shared"
)

// ErrInvalidStatus signals a quote status transition the lifecycle forbids.
var ErrInvalidStatus = errors.New("invalid status transition")

// Service handles quote business logic.
type Service struct {
	repo         Repository
	customerRepo crm.Repository
}

// NewService wires the quote repository with the customer lookup.
func NewService(repo Repository, customerRepo crm.Repository) *Service {
	return &Service{repo: repo, customerRepo: customerRepo}
}

func (s *Service) Create(ctx context.Context, req CreateQuoteRequest) (Quote, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return Quote{}, err
	}

	if _, err := s.customerRepo.Get(ctx, req.CustomerID); err != nil {
		return Quote{}, fmt.Errorf("verify customer: %w", err)
	}

	number, err := s.repo.GenerateNumber(ctx, time.Now())
	if err != nil {
		return Quote{}, fmt.Errorf("generate quote number: %w", err)
	}

	items := toLineItems(req.Items)
	subtotal, total := Totals(items, req.TransportCost, req.CommissionRate)

	quote := Quote{
		Number:         number,
		CustomerID:     req.CustomerID,
		Items:          items,
		Subtotal:       subtotal,
		TransportCost:  req.TransportCost,
		CommissionRate: req.CommissionRate,
		TotalAmount:    total,
		Status:         StatusDraft,
	}
	return s.repo.Create(ctx, quote)
}

// Update modifies items/costs of a draft quote and recalculates totals.
func (s *Service) Update(ctx context.Context, id int64, req UpdateQuoteRequest) (Quote, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return Quote{}, err
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Quote{}, fmt.Errorf("get quote: %w", err)
	}
	if existing.Status != StatusDraft {
		return Quote{}, fmt.Errorf("%w: only draft quotes can be updated", ErrInvalidStatus)
	}

	items := existing.Items
	if req.Items != nil {
		items = toLineItems(*req.Items)
	}
	transportCost := existing.TransportCost
	if req.TransportCost != nil {
		transportCost = *req.TransportCost
	}
	commissionRate := existing.CommissionRate
	if req.CommissionRate != nil {
		commissionRate = *req.CommissionRate
	}

	subtotal, total := Totals(items, transportCost, commissionRate)
	if err := s.repo.UpdateContents(ctx, id, items, subtotal, transportCost, commissionRate, total); err != nil {
		return Quote{}, fmt.Errorf("update quote: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// Send marks a draft quote as sent to the customer.
func (s *Service) Send(ctx context.Context, id int64) (Quote, error) {
	return s.transition(ctx, id, StatusDraft, StatusSent, "only draft quotes can be sent")
}

// Accept marks a sent quote as accepted by the customer.
func (s *Service) Accept(ctx context.Context, id int64) (Quote, error) {
	return s.transition(ctx, id, StatusSent, StatusAccepted, "only sent quotes can be accepted")
}

// Reject marks a sent quote as rejected by the customer.
func (s *Service) Reject(ctx context.Context, id int64) (Quote, error) {
	return s.transition(ctx, id, StatusSent, StatusRejected, "only sent quotes can be rejected")
}

func (s *Service) transition(ctx context.Context, id int64, from, to QuoteStatus, reason string) (Quote, error) {
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Quote{}, fmt.Errorf("get quote: %w", err)
	}
	if existing.Status != from {
		return Quote{}, fmt.Errorf("%w: %s", ErrInvalidStatus, reason)
	}
	if err := s.repo.UpdateStatus(ctx, id, to); err != nil {
		return Quote{}, fmt.Errorf("update quote status: %w", err)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) Get(ctx context.Context, id int64) (Quote, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListQuotesRequest) ([]Quote, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

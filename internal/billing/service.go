package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/sinobridge-erp/sinobridge-erp/internal/crm"
	"github.com/sinobridge-erp/sinobridge-erp/internal/shared"
)

// OrderSource resolves an order into the snapshot an invoice is built from.
// Implemented by an adapter over the orders package so billing does not
// import it.
type OrderSource interface {
	OrderInfo(ctx context.Context, orderID int64) (OrderInfo, error)
}

// Service handles invoice business logic.
type Service struct {
	repo         Repository
	customerRepo crm.Repository
	orders       OrderSource
}

// NewService wires the invoice repository with customer and order lookups.
func NewService(repo Repository, customerRepo crm.Repository, orders OrderSource) *Service {
	return &Service{repo: repo, customerRepo: customerRepo, orders: orders}
}

// Create issues an invoice. With OrderID set, the customer, items and total
// are copied from the order and the request's own items are ignored.
func (s *Service) Create(ctx context.Context, req CreateInvoiceRequest) (Invoice, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return Invoice{}, err
	}

	invoice := Invoice{
		Status:    StatusUnpaid,
		IssueDate: time.Now(),
		DueDate:   req.DueDate,
	}

	if req.OrderID != nil {
		info, err := s.orders.OrderInfo(ctx, *req.OrderID)
		if err != nil {
			return Invoice{}, fmt.Errorf("resolve order: %w", err)
		}
		invoice.OrderID = req.OrderID
		invoice.CustomerID = info.CustomerID
		invoice.Items = info.Items
		invoice.TotalAmount = info.TotalAmount
	} else {
		if _, err := s.customerRepo.Get(ctx, req.CustomerID); err != nil {
			return Invoice{}, fmt.Errorf("verify customer: %w", err)
		}
		invoice.CustomerID = req.CustomerID
		invoice.Items = toLineItems(req.Items)
		for _, item := range invoice.Items {
			invoice.TotalAmount += item.Quantity * item.UnitPrice
		}
	}

	number, err := s.repo.GenerateNumber(ctx, time.Now())
	if err != nil {
		return Invoice{}, fmt.Errorf("generate invoice number: %w", err)
	}
	invoice.Number = number

	return s.repo.Create(ctx, invoice)
}

// RecordPayment stores the cumulative amount paid and lets the state machine
// derive the resulting status. The payment date is stamped when the invoice
// becomes fully paid and cleared when it stops being paid.
func (s *Service) RecordPayment(ctx context.Context, id int64, req RecordPaymentRequest) (Invoice, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return Invoice{}, err
	}
	existing, err := s.repo.Get(ctx, id)
	if err != nil {
		return Invoice{}, fmt.Errorf("get invoice: %w", err)
	}

	status := NextStatus(existing.Status, req.AmountPaid, existing.TotalAmount)
	paymentDate := existing.PaymentDate
	switch {
	case status == StatusPaid && paymentDate == nil:
		now := time.Now()
		paymentDate = &now
	case status != StatusPaid:
		paymentDate = nil
	}

	if err := s.repo.RecordPayment(ctx, id, req.AmountPaid, status, paymentDate); err != nil {
		return Invoice{}, fmt.Errorf("record payment: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// OverrideStatus writes the status directly, bypassing the payment state
// machine. A later payment may overwrite it again; the last write wins.
func (s *Service) OverrideStatus(ctx context.Context, id int64, req OverrideStatusRequest) (Invoice, error) {
	if err := shared.ValidateStruct(req); err != nil {
		return Invoice{}, err
	}
	if err := s.repo.UpdateStatus(ctx, id, InvoiceStatus(req.Status)); err != nil {
		return Invoice{}, fmt.Errorf("override invoice status: %w", err)
	}
	return s.repo.Get(ctx, id)
}

// OverdueScan flips unpaid and partially paid invoices past their due date
// to overdue and returns the number of invoices changed.
func (s *Service) OverdueScan(ctx context.Context) (int64, error) {
	return s.repo.MarkOverdue(ctx, time.Now())
}

func (s *Service) Get(ctx context.Context, id int64) (Invoice, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListInvoicesRequest) ([]Invoice, int, error) {
	return s.repo.List(ctx, req)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

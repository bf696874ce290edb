package billing

import "time"

// LineItemRequest is an invoiced position as submitted by the client.
type LineItemRequest struct {
	SKU         *string `json:"sku,omitempty" validate:"omitempty,max=64"`
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

// CreateInvoiceRequest creates an invoice, either standalone or by copying
// the referenced order's snapshot when OrderID is set.
type CreateInvoiceRequest struct {
	OrderID    *int64            `json:"order_id,omitempty" validate:"omitempty,gt=0"`
	CustomerID int64             `json:"customer_id" validate:"required_without=OrderID,omitempty,gt=0"`
	Items      []LineItemRequest `json:"items" validate:"required_without=OrderID,omitempty,min=1,dive"`
	DueDate    time.Time         `json:"due_date" validate:"required"`
}

// RecordPaymentRequest records the cumulative amount paid.
type RecordPaymentRequest struct {
	AmountPaid float64 `json:"amount_paid" validate:"gte=0"`
}

// OverrideStatusRequest writes the status directly, bypassing the payment
// state machine.
type OverrideStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=unpaid partially_paid paid overdue cancelled"`
}

// ListInvoicesRequest filters the invoice list.
type ListInvoicesRequest struct {
	CustomerID *int64
	Status     *InvoiceStatus
	Limit      int
	Offset     int
}

// OrderInfo is the snapshot an invoice copies from its source order.
type OrderInfo struct {
	CustomerID  int64
	Items       []LineItem
	TotalAmount float64
}

func toLineItems(reqs []LineItemRequest) []LineItem {
	items := make([]LineItem, 0, len(reqs))
	for _, lr := range reqs {
		items = append(items, LineItem{
			SKU:         lr.SKU,
			Description: lr.Description,
			Quantity:    lr.Quantity,
			UnitPrice:   lr.UnitPrice,
		})
	}
	return items
}

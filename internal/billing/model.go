package billing

import "time"

// InvoiceStatus enumerates payment states.
type InvoiceStatus string

const (
	StatusUnpaid        InvoiceStatus = "unpaid"
	StatusPartiallyPaid InvoiceStatus = "partially_paid"
	StatusPaid          InvoiceStatus = "paid"
	StatusOverdue       InvoiceStatus = "overdue"
	StatusCancelled     InvoiceStatus = "cancelled"
)

// ValidStatus reports whether s is a known invoice status.
func ValidStatus(s InvoiceStatus) bool {
	switch s {
	case StatusUnpaid, StatusPartiallyPaid, StatusPaid, StatusOverdue, StatusCancelled:
		return true
	}
	return false
}

// LineItem is an invoiced position. SKU is a weak catalog reference used by
// the reporting layer to attribute cost of goods sold.
type LineItem struct {
	SKU         *string `json:"sku,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Invoice is a bill issued against an order (or standalone). Amounts are
// CNY. Status is normally maintained by the payment state machine, but a
// manual override endpoint writes it directly; the last write wins.
type Invoice struct {
	ID          int64         `json:"id"`
	Number      string        `json:"number"`
	OrderID     *int64        `json:"order_id,omitempty"`
	CustomerID  int64         `json:"customer_id"`
	Items       []LineItem    `json:"items"`
	TotalAmount float64       `json:"total_amount"`
	AmountPaid  float64       `json:"amount_paid"`
	Status      InvoiceStatus `json:"status"`
	IssueDate   time.Time     `json:"issue_date"`
	DueDate     time.Time     `json:"due_date"`
	PaymentDate *time.Time    `json:"payment_date,omitempty"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// Outstanding returns the unpaid balance.
func (i Invoice) Outstanding() float64 {
	return i.TotalAmount - i.AmountPaid
}

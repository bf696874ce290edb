package quotes

import "time"

// QuoteStatus enumerates the proforma invoice lifecycle.
type QuoteStatus string

const (
	StatusDraft    QuoteStatus = "draft"
	StatusSent     QuoteStatus = "sent"
	StatusAccepted QuoteStatus = "accepted"
	StatusRejected QuoteStatus = "rejected"
)

// LineItem is a single quoted position. SKU is a weak reference into the
// catalog; it may be absent or point at a removed product.
type LineItem struct {
	SKU         *string `json:"sku,omitempty"`
	Description string  `json:"description"`
	Quantity    float64 `json:"quantity"`
	UnitPrice   float64 `json:"unit_price"`
}

// Quote is a proforma invoice sent to a customer before an order is
// confirmed. Amounts are CNY. Only accepted quotes may be converted into
// orders.
type Quote struct {
	ID             int64       `json:"id"`
	Number         string      `json:"number"`
	CustomerID     int64       `json:"customer_id"`
	Items          []LineItem  `json:"items"`
	Subtotal       float64     `json:"subtotal"`
	TransportCost  float64     `json:"transport_cost"`
	CommissionRate float64     `json:"commission_rate"`
	TotalAmount    float64     `json:"total_amount"`
	Status         QuoteStatus `json:"status"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// Totals recomputes subtotal and total from items, transport cost and
// commission rate. Commission applies to goods plus transport.
func Totals(items []LineItem, transportCost, commissionRate float64) (subtotal, total float64) {
	for _, item := range items {
		subtotal += item.Quantity * item.UnitPrice
	}
	commission := (subtotal + transportCost) * (commissionRate / 100)
	total = subtotal + transportCost + commission
	return subtotal, total
}

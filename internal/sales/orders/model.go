package orders

import "time"

// OrderStatus enumerates fulfilment states.
type OrderStatus string

const (
	StatusProcessing OrderStatus = "processing"
	StatusShipped    OrderStatus = "shipped"
	StatusDelivered  OrderStatus = "delivered"
	StatusCancelled  OrderStatus = "cancelled"
)

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	switch s {
	case StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

// LineItem is an ordered position. PurchasePrice is the supplier cost
// snapshotted at conversion time; nil when the SKU was not in the catalog.
type LineItem struct {
	SKU           *string  `json:"sku,omitempty"`
	Description   string   `json:"description"`
	Quantity      float64  `json:"quantity"`
	UnitPrice     float64  `json:"unit_price"`
	PurchasePrice *float64 `json:"purchase_price,omitempty"`
}

// Order is a confirmed purchase. Items and totals are a snapshot taken when
// the order was created from its quote; later product or quote edits do not
// propagate unless an explicit sync is requested.
type Order struct {
	ID          int64       `json:"id"`
	Number      string      `json:"number"`
	QuoteID     *int64      `json:"quote_id,omitempty"`
	CustomerID  int64       `json:"customer_id"`
	Items       []LineItem  `json:"items"`
	TotalAmount float64     `json:"total_amount"`
	Status      OrderStatus `json:"status"`
	OrderDate   time.Time   `json:"order_date"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

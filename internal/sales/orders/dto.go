package orders

// LineItemRequest is an ordered position as submitted by the client.
type LineItemRequest struct {
	SKU           *string  `json:"sku,omitempty" validate:"omitempty,max=64"`
	Description   string   `json:"description" validate:"required,max=500"`
	Quantity      float64  `json:"quantity" validate:"required,gt=0"`
	UnitPrice     float64  `json:"unit_price" validate:"gte=0"`
	PurchasePrice *float64 `json:"purchase_price,omitempty" validate:"omitempty,gte=0"`
}

// CreateOrderRequest creates an order without quote lineage.
type CreateOrderRequest struct {
	CustomerID int64             `json:"customer_id" validate:"required,gt=0"`
	Items      []LineItemRequest `json:"items" validate:"required,min=1,dive"`
}

// UpdateStatusRequest changes the fulfilment status.
type UpdateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=processing shipped delivered cancelled"`
}

// ListOrdersRequest filters the order list.
type ListOrdersRequest struct {
	CustomerID *int64
	Status     *OrderStatus
	Limit      int
	Offset     int
}

// SyncResult reports what an explicit quote sync touched. A sync against a
// quote without a converted order or invoice succeeds with both flags false.
type SyncResult struct {
	OrderSynced   bool `json:"order_synced"`
	InvoiceSynced bool `json:"invoice_synced"`
}

package quotes

// LineItemRequest is a quoted position as submitted by the client.
type LineItemRequest struct {
	SKU         *string `json:"sku,omitempty" validate:"omitempty,max=64"`
	Description string  `json:"description" validate:"required,max=500"`
	Quantity    float64 `json:"quantity" validate:"required,gt=0"`
	UnitPrice   float64 `json:"unit_price" validate:"gte=0"`
}

// CreateQuoteRequest is the payload for creating a quote.
type CreateQuoteRequest struct {
	CustomerID     int64             `json:"customer_id" validate:"required,gt=0"`
	Items          []LineItemRequest `json:"items" validate:"required,min=1,dive"`
	TransportCost  float64           `json:"transport_cost" validate:"gte=0"`
	CommissionRate float64           `json:"commission_rate" validate:"gte=0,lte=100"`
}

// UpdateQuoteRequest carries partial quote updates; only draft quotes accept
// them and totals are recalculated when items change.
type UpdateQuoteRequest struct {
	Items          *[]LineItemRequest `json:"items,omitempty" validate:"omitempty,min=1,dive"`
	TransportCost  *float64           `json:"transport_cost,omitempty" validate:"omitempty,gte=0"`
	CommissionRate *float64           `json:"commission_rate,omitempty" validate:"omitempty,gte=0,lte=100"`
}

// ListQuotesRequest filters the quote list.
type ListQuotesRequest struct {
	CustomerID *int64
	Status     *QuoteStatus
	Limit      int
	Offset     int
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

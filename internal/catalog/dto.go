package catalog

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	SKU           string  `json:"sku" validate:"required,max=64"`
	Name          string  `json:"name" validate:"required,max=200"`
	SellingPrice  float64 `json:"selling_price" validate:"gte=0"`
	PurchasePrice float64 `json:"purchase_price" validate:"gte=0"`
	StockQuantity int     `json:"stock_quantity" validate:"gte=0"`
}

// UpdateProductRequest carries partial product updates.
type UpdateProductRequest struct {
	SKU           *string  `json:"sku,omitempty" validate:"omitempty,max=64"`
	Name          *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	SellingPrice  *float64 `json:"selling_price,omitempty" validate:"omitempty,gte=0"`
	PurchasePrice *float64 `json:"purchase_price,omitempty" validate:"omitempty,gte=0"`
	StockQuantity *int     `json:"stock_quantity,omitempty" validate:"omitempty,gte=0"`
}

// ListProductsRequest filters the product list.
type ListProductsRequest struct {
	Search string
	Limit  int
	Offset int
}

package catalog

import "time"

// Product is a catalog entry sourced from a supplier.
// Prices are stored in CNY. PurchasePrice may exceed SellingPrice; the
// reporting layer tolerates negative margins.
type Product struct {
	ID            int64     `json:"id"`
	SKU           string    `json:"sku"`
	Name          string    `json:"name"`
	SellingPrice  float64   `json:"selling_price"`
	PurchasePrice float64   `json:"purchase_price"`
	StockQuantity int       `json:"stock_quantity"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

package report

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sinobridge-erp/sinobridge-erp/internal/billing"
	"github.com/sinobridge-erp/sinobridge-erp/internal/crm"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/quotes"
	"github.com/sinobridge-erp/sinobridge-erp/internal/settings"
)

func TestBuildQuoteHTML(t *testing.T) {
	sku := "BRK-100"
	company := "Nordic Imports AB"
	html, err := BuildQuoteHTML(QuoteDocument{
		Quote: quotes.Quote{
			Number: "QT-2608-0001",
			Status: quotes.StatusSent,
			Items: []quotes.LineItem{
				{SKU: &sku, Description: "steel brackets", Quantity: 100, UnitPrice: 8},
			},
			Subtotal:       800,
			TransportCost:  200,
			CommissionRate: 10,
			TotalAmount:    1100,
			CreatedAt:      time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		},
		Customer: crm.Customer{Name: "Erik Lund", Company: &company},
		Company:  settings.Defaults(),
	})
	require.NoError(t, err)

	assert.Contains(t, html, "QT-2608-0001")
	assert.Contains(t, html, "形式发票")
	assert.Contains(t, html, "Nordic Imports AB")
	assert.Contains(t, html, "BRK-100")
	assert.Contains(t, html, "¥800.00")
	assert.Contains(t, html, "¥1100.00")
	assert.Contains(t, html, "2026-08-01")
	assert.Contains(t, html, settings.Defaults().CompanyNameZh)
}

func TestBuildInvoiceHTML(t *testing.T) {
	html, err := BuildInvoiceHTML(InvoiceDocument{
		Invoice: billing.Invoice{
			Number:      "INV-2608-0003",
			Status:      billing.StatusPartiallyPaid,
			Items:       []billing.LineItem{{Description: "steel brackets", Quantity: 100, UnitPrice: 8}},
			TotalAmount: 800,
			AmountPaid:  300,
			IssueDate:   time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
			DueDate:     time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC),
		},
		Customer: crm.Customer{Name: "Erik Lund"},
		Company:  settings.Defaults(),
	})
	require.NoError(t, err)

	assert.Contains(t, html, "INV-2608-0003")
	assert.Contains(t, html, "发票")
	assert.Contains(t, html, "¥500.00") // outstanding = total - paid
	assert.Contains(t, html, "2026-08-31")
}

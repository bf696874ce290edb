package finance

import (
	"github.com/sinobridge-erp/sinobridge-erp/internal/billing"
	"github.com/sinobridge-erp/sinobridge-erp/internal/catalog"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/orders"
	"github.com/sinobridge-erp/sinobridge-erp/internal/sales/quotes"
)

// Snapshot holds the derived financial figures for one period. Income
// statement figures (revenue, COGS, operating expenses and their derivatives)
// are scoped to the period; accounts receivable and inventory value are
// point-in-time balances independent of it.
type Snapshot struct {
	Revenue            float64 `json:"revenue"`
	COGS               float64 `json:"cogs"`
	GrossProfit        float64 `json:"gross_profit"`
	GrossMarginPct     float64 `json:"gross_margin_pct"`
	OperatingExpenses  float64 `json:"operating_expenses"`
	NetProfit          float64 `json:"net_profit"`
	AccountsReceivable float64 `json:"accounts_receivable"`
	InventoryValue     float64 `json:"inventory_value"`
	PaidInvoiceCount   int     `json:"paid_invoice_count"`
}

// ComputeSnapshot joins the four collections in memory and derives the
// financial snapshot for the period. It is a pure function.
//
// Every lookup fails open to a zero contribution: an invoice line whose SKU
// has no catalog match adds nothing to COGS, a broken invoice-order-quote
// chain adds nothing to operating expenses, and a paid invoice without a
// payment date is treated as outside the period. Incomplete data therefore
// under-reports costs instead of erroring.
func ComputeSnapshot(invoices []billing.Invoice, orderList []orders.Order, quoteList []quotes.Quote, products []catalog.Product, period Period) Snapshot {
	productsBySKU := make(map[string]catalog.Product, len(products))
	for _, p := range products {
		if _, seen := productsBySKU[p.SKU]; !seen {
			productsBySKU[p.SKU] = p
		}
	}
	ordersByID := make(map[int64]orders.Order, len(orderList))
	for _, o := range orderList {
		ordersByID[o.ID] = o
	}
	quotesByID := make(map[int64]quotes.Quote, len(quoteList))
	for _, q := range quoteList {
		quotesByID[q.ID] = q
	}

	var snap Snapshot

	for _, inv := range invoices {
		if inv.Status != billing.StatusPaid || inv.PaymentDate == nil || !period.Contains(*inv.PaymentDate) {
			continue
		}
		snap.Revenue += inv.TotalAmount
		snap.PaidInvoiceCount++

		for _, item := range inv.Items {
			if item.SKU == nil {
				continue
			}
			product, ok := productsBySKU[*item.SKU]
			if !ok {
				continue
			}
			snap.COGS += product.PurchasePrice * item.Quantity
		}

		snap.OperatingExpenses += invoiceExpense(inv, ordersByID, quotesByID)
	}

	snap.GrossProfit = snap.Revenue - snap.COGS
	if snap.Revenue != 0 {
		snap.GrossMarginPct = snap.GrossProfit / snap.Revenue * 100
	}
	snap.NetProfit = snap.GrossProfit - snap.OperatingExpenses

	for _, inv := range invoices {
		switch inv.Status {
		case billing.StatusUnpaid, billing.StatusPartiallyPaid, billing.StatusOverdue:
			snap.AccountsReceivable += inv.Outstanding()
		}
	}

	for _, p := range products {
		snap.InventoryValue += float64(p.StockQuantity) * p.PurchasePrice
	}

	return snap
}

// invoiceExpense walks invoice to order to quote and charges the quote's
// commission plus transport cost. Any broken hop contributes zero.
func invoiceExpense(inv billing.Invoice, ordersByID map[int64]orders.Order, quotesByID map[int64]quotes.Quote) float64 {
	if inv.OrderID == nil {
		return 0
	}
	order, ok := ordersByID[*inv.OrderID]
	if !ok || order.QuoteID == nil {
		return 0
	}
	quote, ok := quotesByID[*order.QuoteID]
	if !ok {
		return 0
	}
	return (quote.Subtotal+quote.TransportCost)*(quote.CommissionRate/100) + quote.TransportCost
}

package finance

// ProjectCurrency converts the monetary figures of a snapshot into the
// display currency by multiplying with the exchange rate. The margin
// percentage and invoice count are dimensionless and carried over as is.
// Projection is display-only; nothing converted is ever persisted.
func ProjectCurrency(s Snapshot, rate float64) Snapshot {
	return Snapshot{
		Revenue:            s.Revenue * rate,
		COGS:               s.COGS * rate,
		GrossProfit:        s.GrossProfit * rate,
		GrossMarginPct:     s.GrossMarginPct,
		OperatingExpenses:  s.OperatingExpenses * rate,
		NetProfit:          s.NetProfit * rate,
		AccountsReceivable: s.AccountsReceivable * rate,
		InventoryValue:     s.InventoryValue * rate,
		PaidInvoiceCount:   s.PaidInvoiceCount,
	}
}

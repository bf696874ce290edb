package finance

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProjectCurrencyScalesMonetaryFields(t *testing.T) {
	base := Snapshot{
		Revenue:            1000,
		COGS:               200,
		GrossProfit:        800,
		GrossMarginPct:     80,
		OperatingExpenses:  100,
		NetProfit:          700,
		AccountsReceivable: 350,
		InventoryValue:     5000,
		PaidInvoiceCount:   4,
	}

	converted := ProjectCurrency(base, 0.14)

	assert.InDelta(t, 140.0, converted.Revenue, 1e-9)
	assert.InDelta(t, 28.0, converted.COGS, 1e-9)
	assert.InDelta(t, 112.0, converted.GrossProfit, 1e-9)
	assert.InDelta(t, 14.0, converted.OperatingExpenses, 1e-9)
	assert.InDelta(t, 98.0, converted.NetProfit, 1e-9)
	assert.InDelta(t, 49.0, converted.AccountsReceivable, 1e-9)
	assert.InDelta(t, 700.0, converted.InventoryValue, 1e-9)

	// Dimensionless fields pass through untouched.
	assert.Equal(t, 80.0, converted.GrossMarginPct)
	assert.Equal(t, 4, converted.PaidInvoiceCount)
}

func TestProjectCurrencyIdentityRate(t *testing.T) {
	base := Snapshot{Revenue: 123.45, NetProfit: -10}
	assert.Equal(t, base, ProjectCurrency(base, 1))
}

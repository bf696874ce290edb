package billing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNextStatusFullPaymentWins(t *testing.T) {
	for _, current := range []InvoiceStatus{StatusUnpaid, StatusPartiallyPaid, StatusOverdue, StatusCancelled, StatusPaid} {
		assert.Equal(t, StatusPaid, NextStatus(current, 100, 100), "from %s", current)
		assert.Equal(t, StatusPaid, NextStatus(current, 150, 100), "overpayment from %s", current)
	}
}

func TestNextStatusPartialPayment(t *testing.T) {
	for _, current := range []InvoiceStatus{StatusUnpaid, StatusOverdue, StatusCancelled, StatusPaid} {
		assert.Equal(t, StatusPartiallyPaid, NextStatus(current, 50, 100), "from %s", current)
	}
}

func TestNextStatusZeroPaymentResetsToUnpaid(t *testing.T) {
	assert.Equal(t, StatusUnpaid, NextStatus(StatusUnpaid, 0, 100))
	assert.Equal(t, StatusUnpaid, NextStatus(StatusPartiallyPaid, 0, 100))
	assert.Equal(t, StatusUnpaid, NextStatus(StatusPaid, 0, 100))
}

func TestNextStatusCancelledAndOverdueStickyAgainstZero(t *testing.T) {
	assert.Equal(t, StatusCancelled, NextStatus(StatusCancelled, 0, 100))
	assert.Equal(t, StatusOverdue, NextStatus(StatusOverdue, 0, 100))
}

func TestNextStatusZeroTotalCountsAsPaid(t *testing.T) {
	// A zero-amount invoice is fully covered by a zero payment.
	assert.Equal(t, StatusPaid, NextStatus(StatusUnpaid, 0, 0))
}

package billing

// NextStatus derives the payment status after recording newAmountPaid
// against an invoice. Overpayment still counts as paid. A zero payment
// resets to unpaid unless the invoice is cancelled or overdue; those two
// states are sticky against zero-payment transitions.
func NextStatus(current InvoiceStatus, newAmountPaid, totalAmount float64) InvoiceStatus {
	switch {
	case newAmountPaid >= totalAmount:
		return StatusPaid
	case newAmountPaid > 0:
		return StatusPartiallyPaid
	case current != StatusCancelled && current != StatusOverdue:
		return StatusUnpaid
	default:
		return current
	}
}

package service

import (
	"time"

	"github.com/shopspring/decimal"

	"marketpos/internal/model"
)

// ApplyPayment records one settlement installment on the invoice: the
// payment is appended to the history, paidAmount accumulates, and
// remaining is recomputed as max(0, totalValue - paidAmount).
//
// A non-positive amount is rejected with ErrInvalidPayment before any
// field is touched. Overpayment is clamped (remaining never goes
// negative) and reported through the returned flag so callers can surface
// it instead of losing the information.
func ApplyPayment(inv *model.PurchaseInvoice, amount decimal.Decimal, now time.Time) (overpaid bool, err error) {
	if !amount.IsPositive() {
		return false, ErrInvalidPayment
	}

	inv.Payments = append(inv.Payments, model.Payment{
		InvoiceID: inv.ID,
		Amount:    amount,
		Date:      now,
	})
	inv.PaidAmount = inv.PaidAmount.Add(amount)

	inv.Remaining = inv.TotalValue.Sub(inv.PaidAmount)
	if inv.Remaining.IsNegative() {
		inv.Remaining = decimal.Zero
	}

	return inv.PaidAmount.GreaterThan(inv.TotalValue), nil
}

// SetDeliveryStatus flips the delivery flag. It has no effect on stock
// until the projector is next invoked; status is read there, not cached
// into a derived field.
func SetDeliveryStatus(inv *model.PurchaseInvoice, status string) error {
	if status != model.StatusDelivered && status != model.StatusNotDelivered {
		return ErrInvalidStatus
	}
	inv.Status = status
	return nil
}

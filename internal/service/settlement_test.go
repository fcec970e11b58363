package service

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"marketpos/internal/model"
)

func invoiceWithTotal(total string) *model.PurchaseInvoice {
	t := decimal.RequireFromString(total)
	return &model.PurchaseInvoice{
		ID:         1000,
		TotalValue: t,
		PaidAmount: decimal.Zero,
		Remaining:  t,
		Status:     model.StatusNotDelivered,
	}
}

func TestApplyPaymentInstallments(t *testing.T) {
	inv := invoiceWithTotal("500")

	overpaid, err := ApplyPayment(inv, decimal.RequireFromString("200"), time.Now())
	if err != nil {
		t.Fatalf("first payment: %v", err)
	}
	if overpaid {
		t.Error("first payment flagged as overpaid")
	}
	if !inv.PaidAmount.Equal(decimal.RequireFromString("200")) {
		t.Errorf("paidAmount = %s, want 200", inv.PaidAmount)
	}
	if !inv.Remaining.Equal(decimal.RequireFromString("300")) {
		t.Errorf("remaining = %s, want 300", inv.Remaining)
	}

	if _, err := ApplyPayment(inv, decimal.RequireFromString("300"), time.Now()); err != nil {
		t.Fatalf("second payment: %v", err)
	}
	if !inv.Remaining.IsZero() {
		t.Errorf("remaining = %s, want 0 after full settlement", inv.Remaining)
	}
	if len(inv.Payments) != 2 {
		t.Errorf("payment history length = %d, want 2", len(inv.Payments))
	}
}

// While paid <= total, the invariant paid + remaining == total must hold
// after every installment.
func TestApplyPaymentConservation(t *testing.T) {
	inv := invoiceWithTotal("1000")

	for _, amount := range []string{"100", "250", "399.99", "250.01"} {
		if _, err := ApplyPayment(inv, decimal.RequireFromString(amount), time.Now()); err != nil {
			t.Fatalf("payment %s: %v", amount, err)
		}
		sum := inv.PaidAmount.Add(inv.Remaining)
		if !sum.Equal(inv.TotalValue) {
			t.Fatalf("after %s: paid %s + remaining %s = %s, want %s",
				amount, inv.PaidAmount, inv.Remaining, sum, inv.TotalValue)
		}
	}
}

func TestApplyPaymentRejectsNonPositiveAmounts(t *testing.T) {
	for _, amount := range []string{"0", "-1", "-0.01"} {
		inv := invoiceWithTotal("100")
		_, err := ApplyPayment(inv, decimal.RequireFromString(amount), time.Now())
		if !errors.Is(err, ErrInvalidPayment) {
			t.Errorf("amount %s: err = %v, want ErrInvalidPayment", amount, err)
		}
		if len(inv.Payments) != 0 {
			t.Errorf("amount %s: payment recorded despite rejection", amount)
		}
		if !inv.PaidAmount.IsZero() {
			t.Errorf("amount %s: paidAmount mutated despite rejection", amount)
		}
	}
}

func TestApplyPaymentClampsOverpaymentAndFlagsIt(t *testing.T) {
	inv := invoiceWithTotal("100")

	overpaid, err := ApplyPayment(inv, decimal.RequireFromString("150"), time.Now())
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if !overpaid {
		t.Error("overpayment not flagged")
	}
	if !inv.Remaining.IsZero() {
		t.Errorf("remaining = %s, want clamped to 0", inv.Remaining)
	}
	// The excess stays visible in paidAmount and the history.
	if !inv.PaidAmount.Equal(decimal.RequireFromString("150")) {
		t.Errorf("paidAmount = %s, want 150", inv.PaidAmount)
	}
}

func TestApplyPaymentExactSettlementIsNotOverpaid(t *testing.T) {
	inv := invoiceWithTotal("100")

	overpaid, err := ApplyPayment(inv, decimal.RequireFromString("100"), time.Now())
	if err != nil {
		t.Fatalf("payment: %v", err)
	}
	if overpaid {
		t.Error("exact settlement flagged as overpaid")
	}
}

func TestSetDeliveryStatus(t *testing.T) {
	tests := []struct {
		status  string
		wantErr bool
	}{
		{model.StatusDelivered, false},
		{model.StatusNotDelivered, false},
		{"shipped", true},
		{"", true},
		{"Delivered", true},
	}

	for _, tt := range tests {
		inv := invoiceWithTotal("10")
		err := SetDeliveryStatus(inv, tt.status)
		if tt.wantErr {
			if !errors.Is(err, ErrInvalidStatus) {
				t.Errorf("status %q: err = %v, want ErrInvalidStatus", tt.status, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("status %q: unexpected error %v", tt.status, err)
		}
		if inv.Status != tt.status {
			t.Errorf("status not applied: got %q", inv.Status)
		}
	}
}

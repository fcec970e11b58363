package model

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestWithTax(t *testing.T) {
	tests := []struct {
		before string
		after  string
	}{
		{"100", "114"},
		{"114", "129.96"},
		{"0", "0"},
		{"9.99", "11.3886"},
	}

	for _, tt := range tests {
		got := WithTax(decimal.RequireFromString(tt.before))
		if !got.Equal(decimal.RequireFromString(tt.after)) {
			t.Errorf("WithTax(%s) = %s, want %s", tt.before, got, tt.after)
		}
	}
}

func TestEffectiveThreshold(t *testing.T) {
	p := Product{}
	if got := p.EffectiveThreshold(); got != DefaultMinThreshold {
		t.Errorf("default threshold = %d, want %d", got, DefaultMinThreshold)
	}

	custom := 12
	p.MinThreshold = &custom
	if got := p.EffectiveThreshold(); got != 12 {
		t.Errorf("explicit threshold = %d, want 12", got)
	}

	zero := 0
	p.MinThreshold = &zero
	if got := p.EffectiveThreshold(); got != 0 {
		t.Errorf("zero threshold = %d, want 0 (explicit zero is not the default)", got)
	}
}

func TestHasOffer(t *testing.T) {
	p := Product{}
	if p.HasOffer() {
		t.Error("nil offer reported as active")
	}

	zero := decimal.Zero
	p.OfferPrice = &zero
	if p.HasOffer() {
		t.Error("zero offer reported as active")
	}

	negative := decimal.NewFromInt(-1)
	p.OfferPrice = &negative
	if p.HasOffer() {
		t.Error("negative offer reported as active")
	}

	active := decimal.NewFromInt(99)
	p.OfferPrice = &active
	if !p.HasOffer() {
		t.Error("positive offer not reported as active")
	}
}

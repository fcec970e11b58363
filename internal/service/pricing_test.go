package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"marketpos/internal/model"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestResolveSalePriceAppliesMargin(t *testing.T) {
	// 114 * (1 + 14/100) = 129.96
	p := &model.Product{PriceAfterTax: dec("114")}

	got := ResolveSalePrice(p, dec("14"))
	if !got.Equal(dec("129.96")) {
		t.Fatalf("price = %s, want 129.96", got)
	}
}

func TestResolveSalePriceOfferWins(t *testing.T) {
	offer := dec("99")
	p := &model.Product{PriceAfterTax: dec("114"), OfferPrice: &offer}

	got := ResolveSalePrice(p, dec("14"))
	if !got.Equal(offer) {
		t.Fatalf("price = %s, want the 99 offer unmodified", got)
	}
}

func TestResolveSalePriceIgnoresInactiveOffers(t *testing.T) {
	for _, raw := range []string{"0", "-5"} {
		offer := dec(raw)
		p := &model.Product{PriceAfterTax: dec("100"), OfferPrice: &offer}

		got := ResolveSalePrice(p, dec("10"))
		if !got.Equal(dec("110")) {
			t.Errorf("offer %s: price = %s, want 110 from the margin path", raw, got)
		}
	}
}

func TestResolveSalePriceZeroMargin(t *testing.T) {
	p := &model.Product{PriceAfterTax: dec("114")}

	got := ResolveSalePrice(p, decimal.Zero)
	if !got.Equal(dec("114")) {
		t.Fatalf("price = %s, want the tax-inclusive price untouched", got)
	}
}

func TestLookupProductLastMatchWins(t *testing.T) {
	first := model.Supplier{ID: uuid.New(), Name: "First", Products: []model.Product{
		{Code: "X9", Name: "from first"},
	}}
	second := model.Supplier{ID: uuid.New(), Name: "Second", Products: []model.Product{
		{Code: "X9", Name: "from second"},
	}}

	sup, prod := LookupProduct([]model.Supplier{first, second}, "X9")
	if sup == nil || prod == nil {
		t.Fatal("lookup returned nil for an existing code")
	}
	if sup.Name != "Second" || prod.Name != "from second" {
		t.Fatalf("got %q/%q, want the later supplier to win", sup.Name, prod.Name)
	}
}

func TestLookupProductUnknownCode(t *testing.T) {
	sup := model.Supplier{ID: uuid.New(), Products: []model.Product{{Code: "A1"}}}

	gotSup, gotProd := LookupProduct([]model.Supplier{sup}, "missing")
	if gotSup != nil || gotProd != nil {
		t.Fatalf("got %v/%v, want nils for an unknown code", gotSup, gotProd)
	}
}

package service

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestBuildProductsDerivesTaxInclusivePrice(t *testing.T) {
	products, err := buildProducts([]PriceListProductRequest{
		{Code: "A1", Name: "Oil", PriceBeforeTax: dec("100")},
		{Code: "B2", Name: "Flour", PriceBeforeTax: dec("9.99")},
	})
	if err != nil {
		t.Fatalf("buildProducts: %v", err)
	}

	if !products[0].PriceAfterTax.Equal(dec("114")) {
		t.Errorf("priceAfterTax = %s, want 114", products[0].PriceAfterTax)
	}
	if !products[1].PriceAfterTax.Equal(dec("11.3886")) {
		t.Errorf("priceAfterTax = %s, want 11.3886 unrounded", products[1].PriceAfterTax)
	}

	// Price-list order must survive the round trip to the database.
	for i, p := range products {
		if p.Position != i {
			t.Errorf("product %q position = %d, want %d", p.Code, p.Position, i)
		}
	}
}

func TestBuildProductsRejectsNegativePrices(t *testing.T) {
	_, err := buildProducts([]PriceListProductRequest{
		{Code: "A1", PriceBeforeTax: dec("-1")},
	})
	if err == nil {
		t.Fatal("negative price accepted")
	}
}

func TestBuildProductsStartsLegacyStockAtZero(t *testing.T) {
	products, err := buildProducts([]PriceListProductRequest{
		{Code: "A1", PriceBeforeTax: decimal.Zero},
	})
	if err != nil {
		t.Fatalf("buildProducts: %v", err)
	}
	if products[0].Stock != 0 {
		t.Errorf("stock = %d, want 0", products[0].Stock)
	}
}

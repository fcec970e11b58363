package export

import (
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"marketpos/internal/model"
)

func TestShelfLabelsHTML(t *testing.T) {
	offer := decimal.NewFromInt(99)
	supplier := &model.Supplier{
		Name: "Acme",
		Products: []model.Product{
			{Code: "A1", Name: "Olive Oil", PriceAfterTax: decimal.NewFromInt(114)},
			{Code: "B2", Name: "Flour", PriceAfterTax: decimal.NewFromInt(50), OfferPrice: &offer},
		},
	}

	page, err := ShelfLabelsHTML(supplier, decimal.NewFromInt(14), "Market Pro")
	if err != nil {
		t.Fatalf("render: %v", err)
	}

	html := string(page)
	// 114 * 1.14 margin path, displayed at two decimals.
	if !strings.Contains(html, "129.96") {
		t.Error("margin price 129.96 missing from rendered labels")
	}
	if !strings.Contains(html, "99.00") {
		t.Error("offer price 99.00 missing from rendered labels")
	}
	if !strings.Contains(html, `class="price offer"`) {
		t.Error("offer label not marked with the offer class")
	}
	if !strings.Contains(html, "Olive Oil") || !strings.Contains(html, "Flour") {
		t.Error("product names missing from rendered labels")
	}
	if !strings.Contains(html, "Market Pro") {
		t.Error("store name missing from rendered labels")
	}
}

func TestShelfLabelsHTMLEscapesNames(t *testing.T) {
	supplier := &model.Supplier{
		Products: []model.Product{
			{Code: "A1", Name: "<script>alert(1)</script>", PriceAfterTax: decimal.NewFromInt(10)},
		},
	}

	page, err := ShelfLabelsHTML(supplier, decimal.Zero, "Store")
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(string(page), "<script>") {
		t.Fatal("product name not escaped")
	}
}

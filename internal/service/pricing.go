package service

import (
	"github.com/shopspring/decimal"

	"marketpos/internal/model"
)

var hundred = decimal.NewFromInt(100)

// ResolveSalePrice computes the checkout price for one scanned product.
// An active promotional price wins unmodified; otherwise the margin is
// applied on top of the tax-inclusive price. No rounding happens here —
// two-decimal display rounding is a presentation concern.
func ResolveSalePrice(p *model.Product, profitMarginPercent decimal.Decimal) decimal.Decimal {
	if p.HasOffer() {
		return *p.OfferPrice
	}
	return p.PriceAfterTax.Mul(decimal.NewFromInt(1).Add(profitMarginPercent.Div(hundred)))
}

// LookupProduct scans every supplier's price list for the given code.
// When two suppliers share a code the last one in iteration order wins,
// matching the original point-of-sale behavior. Returns nils when no
// supplier carries the code.
func LookupProduct(suppliers []model.Supplier, code string) (*model.Supplier, *model.Product) {
	var foundSup *model.Supplier
	var foundProd *model.Product
	for i := range suppliers {
		for j := range suppliers[i].Products {
			if suppliers[i].Products[j].Code == code {
				foundSup = &suppliers[i]
				foundProd = &suppliers[i].Products[j]
			}
		}
	}
	return foundSup, foundProd
}

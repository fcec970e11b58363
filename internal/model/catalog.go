package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TaxFactor is the fixed VAT multiplier applied when a price list is saved.
// priceAfterTax is always derived server-side as priceBeforeTax * 1.14.
var TaxFactor = decimal.NewFromFloat(1.14)

// DefaultMinThreshold applies when a product carries no explicit low-stock threshold.
const DefaultMinThreshold = 5

// Supplier owns a price list of products. Code is a sequential integer
// assigned from the global supplier sequence and never reused.
type Supplier struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Code      int64     `gorm:"uniqueIndex;not null" json:"code"`
	Products  []Product `gorm:"foreignKey:SupplierID;constraint:OnDelete:CASCADE" json:"products"`
	CreatedAt time.Time `json:"createdAt"`
}

// Product belongs to exactly one supplier. Its code is unique within that
// supplier only; the same code may appear under another supplier.
type Product struct {
	ID             uuid.UUID        `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	SupplierID     uuid.UUID        `gorm:"type:uuid;not null;index:idx_supplier_product_code,unique" json:"-"`
	Code           string           `gorm:"type:varchar(100);not null;index:idx_supplier_product_code,unique" json:"code"`
	Name           string           `gorm:"type:varchar(255);not null" json:"name"`
	PriceBeforeTax decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"priceBeforeTax"`
	PriceAfterTax  decimal.Decimal  `gorm:"type:decimal(18,4);not null" json:"priceAfterTax"`
	OfferPrice     *decimal.Decimal `gorm:"type:decimal(18,4)" json:"offerPrice,omitempty"`
	Stock          int              `gorm:"not null;default:0" json:"stock"` // legacy static field, superseded by the stock projection
	MinThreshold   *int             `json:"minThreshold,omitempty"`
	Position       int              `gorm:"not null;default:0" json:"-"` // preserves price-list ordering
}

// EffectiveThreshold returns the explicit low-stock threshold or the default.
func (p *Product) EffectiveThreshold() int {
	if p.MinThreshold != nil {
		return *p.MinThreshold
	}
	return DefaultMinThreshold
}

// HasOffer reports whether a promotional price is active. A nil or
// non-positive offerPrice means "no active offer".
func (p *Product) HasOffer() bool {
	return p.OfferPrice != nil && p.OfferPrice.IsPositive()
}

// WithTax derives the tax-inclusive price from a pre-tax price.
func WithTax(priceBeforeTax decimal.Decimal) decimal.Decimal {
	return priceBeforeTax.Mul(TaxFactor)
}

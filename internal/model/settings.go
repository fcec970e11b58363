package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DefaultProfitMargin is the checkout margin percentage applied when no
// settings row exists yet.
var DefaultProfitMargin = decimal.NewFromInt(14)

// Settings is a single-row table holding program-wide configuration.
type Settings struct {
	ID            int               `gorm:"primaryKey" json:"-"`
	ProgramName   string            `gorm:"type:varchar(255);not null" json:"programName"`
	ProfitMargin  decimal.Decimal   `gorm:"type:decimal(18,4);not null" json:"profitMargin"`
	SideMenuNames map[string]string `gorm:"type:jsonb;serializer:json" json:"sideMenuNames"`
	UpdatedAt     time.Time         `json:"-"`
}

// DefaultSettings returns the seed row used on first boot.
func DefaultSettings() Settings {
	return Settings{
		ID:           1,
		ProgramName:  "Market Pro",
		ProfitMargin: DefaultProfitMargin,
		SideMenuNames: map[string]string{
			PermPOS:        "Daily sales",
			PermInvoices:   "Create invoice",
			PermOrders:     "Posted orders",
			PermPriceLists: "Supplier price lists",
			PermStock:      "Stock",
			PermSales:      "Sales",
			PermSettings:   "Settings",
		},
	}
}

package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Delivery status constants for purchase invoices
const (
	StatusDelivered    = "delivered"
	StatusNotDelivered = "not-delivered"
)

// PurchaseInvoice records goods ordered from a supplier, tracked through
// delivery and payment settlement. The item list is immutable after
// creation; only status and the settlement fields mutate.
// CompanyName is a snapshot so history stays readable after the supplier
// is deleted.
type PurchaseInvoice struct {
	ID          int64           `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"companyId"`
	CompanyName string          `gorm:"type:varchar(255);not null" json:"companyName"`
	Date        time.Time       `gorm:"not null" json:"date"`
	Items       []InvoiceItem   `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"items"`
	TotalValue  decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"totalValue"`
	Status      string          `gorm:"type:varchar(20);not null;default:'not-delivered';index" json:"status"`
	Payments    []Payment       `gorm:"foreignKey:InvoiceID;constraint:OnDelete:CASCADE" json:"payments"`
	PaidAmount  decimal.Decimal `gorm:"type:decimal(18,4);not null;default:0" json:"paidAmount"`
	Remaining   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"remaining"`
	CreatedAt   time.Time       `json:"-"`
	UpdatedAt   time.Time       `json:"-"`
}

// InvoiceItem is one line of a purchase invoice.
type InvoiceItem struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	InvoiceID int64           `gorm:"not null;index" json:"-"`
	Code      string          `gorm:"type:varchar(100);not null" json:"code"`
	Name      string          `gorm:"type:varchar(255);not null" json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price"`
	Quantity  int             `gorm:"not null" json:"quantity"`
	Total     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total"`
	Position  int             `gorm:"not null;default:0" json:"-"`
}

// Payment is one settlement installment against a purchase invoice.
type Payment struct {
	ID        uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	InvoiceID int64           `gorm:"not null;index" json:"-"`
	Amount    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"amount"`
	Date      time.Time       `gorm:"not null" json:"date"`
}

// Sale is a completed point-of-sale checkout receipt. Immutable; never
// updated or deleted. Change may be negative — underpayment is recorded
// as tendered, not validated.
type Sale struct {
	ID         uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Date       time.Time       `gorm:"not null;index" json:"date"`
	Items      []SaleItem      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE" json:"items"`
	TotalValue decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"totalValue"`
	Received   decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"received"`
	Change     decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"change"`
}

// SaleItem mirrors the invoice line shape for POS receipts.
type SaleItem struct {
	ID       uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"-"`
	SaleID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"-"`
	Code     string          `gorm:"type:varchar(100);not null;index" json:"code"`
	Name     string          `gorm:"type:varchar(255);not null" json:"name"`
	Price    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"price"`
	Quantity int             `gorm:"not null" json:"quantity"`
	Total    decimal.Decimal `gorm:"type:decimal(18,4);not null" json:"total"`
	Position int             `gorm:"not null;default:0" json:"-"`
}

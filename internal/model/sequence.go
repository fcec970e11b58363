package model

// Sequence names for the two global counters.
const (
	SeqInvoiceID    = "invoice_id"
	SeqSupplierCode = "supplier_code"
)

// Sequence seed values: the first increment yields 1000 and 10 respectively.
const (
	SeedInvoiceID    = 999
	SeedSupplierCode = 9
)

// Sequence backs the monotonically increasing counters. Values are handed
// out with an atomic increment-and-get so concurrent creators never race,
// and are never reused even when the created entity is later deleted.
type Sequence struct {
	Name  string `gorm:"type:varchar(50);primaryKey"`
	Value int64  `gorm:"not null"`
}

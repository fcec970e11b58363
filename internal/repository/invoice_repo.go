package repository

import (
	"context"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"marketpos/internal/model"
)

// InvoiceListFilter narrows the invoice listing.
type InvoiceListFilter struct {
	Status  string // delivered, not-delivered or empty for all
	Search  string // partial match on companyName or the numeric id
	Page    int
	Limit   int
}

// InvoiceRepository persists purchase invoices. Creation is a single
// atomic append; afterwards only the settlement fields and the delivery
// status mutate.
type InvoiceRepository interface {
	Create(ctx context.Context, invoice *model.PurchaseInvoice) error
	FindByID(ctx context.Context, id int64) (*model.PurchaseInvoice, error)
	FindByIDForUpdate(ctx context.Context, id int64) (*model.PurchaseInvoice, error)
	List(ctx context.Context, filter InvoiceListFilter) ([]model.PurchaseInvoice, int64, error)
	ListAll(ctx context.Context) ([]model.PurchaseInvoice, error)
	AppendPayment(ctx context.Context, payment *model.Payment) error
	UpdateSettlement(ctx context.Context, invoice *model.PurchaseInvoice) error
	UpdateStatus(ctx context.Context, id int64, status string) error
	SumOutstanding(ctx context.Context) (decimal.Decimal, error)
}

type invoiceRepository struct {
	db *gorm.DB
}

func NewInvoiceRepository(db *gorm.DB) InvoiceRepository {
	return &invoiceRepository{db: db}
}

func invoicePreloads(db *gorm.DB) *gorm.DB {
	return db.
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("invoice_items.position asc") }).
		Preload("Payments", func(db *gorm.DB) *gorm.DB { return db.Order("payments.date asc") })
}

func (r *invoiceRepository) Create(ctx context.Context, invoice *model.PurchaseInvoice) error {
	return GetDB(ctx, r.db).Create(invoice).Error
}

func (r *invoiceRepository) FindByID(ctx context.Context, id int64) (*model.PurchaseInvoice, error) {
	var invoice model.PurchaseInvoice
	if err := invoicePreloads(GetDB(ctx, r.db)).First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

// FindByIDForUpdate locks the invoice row for the duration of the
// surrounding transaction. Settlement writes go through this so two
// cashiers paying the same invoice serialize instead of losing an update.
func (r *invoiceRepository) FindByIDForUpdate(ctx context.Context, id int64) (*model.PurchaseInvoice, error) {
	var invoice model.PurchaseInvoice
	if err := GetDB(ctx, r.db).Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&invoice, "id = ?", id).Error; err != nil {
		return nil, err
	}
	// Relations load after the lock is held.
	if err := GetDB(ctx, r.db).
		Order("invoice_items.position asc").
		Find(&invoice.Items, "invoice_id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := GetDB(ctx, r.db).
		Order("payments.date asc").
		Find(&invoice.Payments, "invoice_id = ?", id).Error; err != nil {
		return nil, err
	}
	return &invoice, nil
}

func (r *invoiceRepository) List(ctx context.Context, filter InvoiceListFilter) ([]model.PurchaseInvoice, int64, error) {
	var invoices []model.PurchaseInvoice
	var total int64

	db := GetDB(ctx, r.db).Model(&model.PurchaseInvoice{})
	if filter.Status != "" {
		db = db.Where("status = ?", filter.Status)
	}
	if filter.Search != "" {
		db = db.Where("company_name ILIKE ? OR CAST(id AS TEXT) LIKE ?",
			"%"+filter.Search+"%", "%"+filter.Search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	if err := invoicePreloads(db).
		Order("id desc").Offset(offset).Limit(filter.Limit).Find(&invoices).Error; err != nil {
		return nil, 0, err
	}

	return invoices, total, nil
}

func (r *invoiceRepository) ListAll(ctx context.Context) ([]model.PurchaseInvoice, error) {
	var invoices []model.PurchaseInvoice
	if err := invoicePreloads(GetDB(ctx, r.db)).Order("id asc").Find(&invoices).Error; err != nil {
		return nil, err
	}
	return invoices, nil
}

func (r *invoiceRepository) AppendPayment(ctx context.Context, payment *model.Payment) error {
	return GetDB(ctx, r.db).Create(payment).Error
}

// UpdateSettlement persists only the accumulating payment fields; the item
// list stays immutable after creation.
func (r *invoiceRepository) UpdateSettlement(ctx context.Context, invoice *model.PurchaseInvoice) error {
	return GetDB(ctx, r.db).Model(&model.PurchaseInvoice{}).
		Where("id = ?", invoice.ID).
		Updates(map[string]interface{}{
			"paid_amount": invoice.PaidAmount,
			"remaining":   invoice.Remaining,
		}).Error
}

func (r *invoiceRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	return GetDB(ctx, r.db).Model(&model.PurchaseInvoice{}).
		Where("id = ?", id).
		Update("status", status).Error
}

// SumOutstanding totals the remaining balance across every invoice.
func (r *invoiceRepository) SumOutstanding(ctx context.Context) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := GetDB(ctx, r.db).Model(&model.PurchaseInvoice{}).
		Select("SUM(remaining)").Scan(&sum).Error
	if err != nil {
		return decimal.Zero, err
	}
	if !sum.Valid {
		return decimal.Zero, nil
	}
	return sum.Decimal, nil
}

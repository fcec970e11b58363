package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"marketpos/internal/model"
)

// SaleRepository is append-only: receipts are created once at checkout and
// never updated or deleted.
type SaleRepository interface {
	Create(ctx context.Context, sale *model.Sale) error
	List(ctx context.Context, page, limit int) ([]model.Sale, int64, error)
	ListAll(ctx context.Context) ([]model.Sale, error)
	Summary(ctx context.Context, from, to time.Time) (count int64, revenue decimal.Decimal, err error)
}

type saleRepository struct {
	db *gorm.DB
}

func NewSaleRepository(db *gorm.DB) SaleRepository {
	return &saleRepository{db: db}
}

func salePreload(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("sale_items.position asc") })
}

func (r *saleRepository) Create(ctx context.Context, sale *model.Sale) error {
	return GetDB(ctx, r.db).Create(sale).Error
}

func (r *saleRepository) List(ctx context.Context, page, limit int) ([]model.Sale, int64, error) {
	var sales []model.Sale
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Sale{})
	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := salePreload(GetDB(ctx, r.db)).
		Order("date desc").Offset(offset).Limit(limit).Find(&sales).Error; err != nil {
		return nil, 0, err
	}

	return sales, total, nil
}

func (r *saleRepository) ListAll(ctx context.Context) ([]model.Sale, error) {
	var sales []model.Sale
	if err := salePreload(GetDB(ctx, r.db)).Order("date asc").Find(&sales).Error; err != nil {
		return nil, err
	}
	return sales, nil
}

// Summary returns receipt count and revenue for the half-open range [from, to).
func (r *saleRepository) Summary(ctx context.Context, from, to time.Time) (int64, decimal.Decimal, error) {
	var row struct {
		Count   int64
		Revenue decimal.NullDecimal
	}
	err := GetDB(ctx, r.db).Model(&model.Sale{}).
		Select("COUNT(*) AS count, SUM(total_value) AS revenue").
		Where("date >= ? AND date < ?", from, to).
		Scan(&row).Error
	if err != nil {
		return 0, decimal.Zero, err
	}
	revenue := decimal.Zero
	if row.Revenue.Valid {
		revenue = row.Revenue.Decimal
	}
	return row.Count, revenue, nil
}

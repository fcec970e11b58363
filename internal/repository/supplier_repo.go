package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"marketpos/internal/model"
)

// SupplierRepository persists suppliers and their price lists. Products
// have no field-level update path: saving a price list replaces the whole
// product collection for that supplier.
type SupplierRepository interface {
	Create(ctx context.Context, supplier *model.Supplier) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error)
	List(ctx context.Context, page, limit int, search string) ([]model.Supplier, int64, error)
	ListAll(ctx context.Context) ([]model.Supplier, error)
	ReplaceProducts(ctx context.Context, supplierID uuid.UUID, products []model.Product) error
}

type supplierRepository struct {
	db *gorm.DB
}

func NewSupplierRepository(db *gorm.DB) SupplierRepository {
	return &supplierRepository{db: db}
}

func productPreload(db *gorm.DB) *gorm.DB {
	return db.Order("products.position asc")
}

func (r *supplierRepository) Create(ctx context.Context, supplier *model.Supplier) error {
	return GetDB(ctx, r.db).Create(supplier).Error
}

func (r *supplierRepository) Delete(ctx context.Context, id uuid.UUID) error {
	// Products cascade via the FK constraint; invoices keep their
	// companyName snapshot and are deliberately left untouched.
	return GetDB(ctx, r.db).Where("id = ?", id).Delete(&model.Supplier{}).Error
}

func (r *supplierRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Supplier, error) {
	var supplier model.Supplier
	if err := GetDB(ctx, r.db).Preload("Products", productPreload).
		First(&supplier, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &supplier, nil
}

func (r *supplierRepository) List(ctx context.Context, page, limit int, search string) ([]model.Supplier, int64, error) {
	var suppliers []model.Supplier
	var total int64

	db := GetDB(ctx, r.db).Model(&model.Supplier{})
	if search != "" {
		db = db.Where("name ILIKE ?", "%"+search+"%")
	}

	if err := db.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	if err := db.Preload("Products", productPreload).
		Order("created_at asc").Offset(offset).Limit(limit).Find(&suppliers).Error; err != nil {
		return nil, 0, err
	}

	return suppliers, total, nil
}

// ListAll returns every supplier with products in price-list order. The
// stock projector and the point-of-sale lookup both fold over this; the
// creation-order sort keeps "last supplier matched wins" deterministic.
func (r *supplierRepository) ListAll(ctx context.Context) ([]model.Supplier, error) {
	var suppliers []model.Supplier
	if err := GetDB(ctx, r.db).Preload("Products", productPreload).
		Order("created_at asc").Find(&suppliers).Error; err != nil {
		return nil, err
	}
	return suppliers, nil
}

// ReplaceProducts swaps the supplier's entire product list in one shot.
// Callers must run this inside a transaction so a failed insert cannot
// leave the catalog half-replaced.
func (r *supplierRepository) ReplaceProducts(ctx context.Context, supplierID uuid.UUID, products []model.Product) error {
	db := GetDB(ctx, r.db)
	if err := db.Where("supplier_id = ?", supplierID).Delete(&model.Product{}).Error; err != nil {
		return err
	}
	if len(products) == 0 {
		return nil
	}
	for i := range products {
		products[i].SupplierID = supplierID
		products[i].Position = i
	}
	return db.Create(&products).Error
}

package database

import (
	"context"
	"errors"
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"marketpos/internal/model"
	"marketpos/internal/repository"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.Supplier{},
		&model.Product{},
		&model.PurchaseInvoice{},
		&model.InvoiceItem{},
		&model.Payment{},
		&model.Sale{},
		&model.SaleItem{},
		&model.Settings{},
		&model.Sequence{},
		&model.AuditLog{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}

// Seed plants the rows the system assumes exist: the id sequences, the
// built-in admin account and the default settings. Every step is
// idempotent, so it runs on each boot.
func Seed(ctx context.Context, db *gorm.DB) error {
	seqRepo := repository.NewSequenceRepository(db)
	if err := seqRepo.Seed(ctx, model.SeqInvoiceID, model.SeedInvoiceID); err != nil {
		return err
	}
	if err := seqRepo.Seed(ctx, model.SeqSupplierCode, model.SeedSupplierCode); err != nil {
		return err
	}

	if err := seedAdmin(ctx, db); err != nil {
		return err
	}
	return seedSettings(ctx, db)
}

func seedAdmin(ctx context.Context, db *gorm.DB) error {
	var existing model.User
	err := db.WithContext(ctx).Where("username = ?", "admin").First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	password := "admin"
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := model.User{
		Username:    "admin",
		Password:    string(hashed),
		Role:        model.RoleManager,
		StartDate:   time.Now(),
		Permissions: model.AllPermissions,
	}
	if err := db.WithContext(ctx).Create(&admin).Error; err != nil {
		return err
	}
	log.Println("Seeded built-in admin account (change the default password).")
	return nil
}

func seedSettings(ctx context.Context, db *gorm.DB) error {
	var existing model.Settings
	err := db.WithContext(ctx).First(&existing, 1).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	defaults := model.DefaultSettings()
	return db.WithContext(ctx).Create(&defaults).Error
}

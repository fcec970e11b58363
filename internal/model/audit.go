package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	ActionCreateSupplier = "CREATE_SUPPLIER"
	ActionDeleteSupplier = "DELETE_SUPPLIER"
	ActionSavePriceList  = "SAVE_PRICE_LIST"
	ActionCreateInvoice  = "CREATE_INVOICE"
	ActionApplyPayment   = "APPLY_PAYMENT"
	ActionSetStatus      = "SET_DELIVERY_STATUS"
	ActionRecordSale     = "RECORD_SALE"
	ActionCreateUser     = "CREATE_USER"
	ActionUpdateUser     = "UPDATE_USER"
	ActionDeleteUser     = "DELETE_USER"
	ActionUpdateSettings = "UPDATE_SETTINGS"
)

// AuditLog tracks who changed what and when for every mutating operation.
type AuditLog struct {
	ID         uuid.UUID  `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID     *uuid.UUID `gorm:"type:uuid;index" json:"userId"`
	Action     string     `gorm:"type:varchar(50);not null;index" json:"action"`
	EntityID   string     `gorm:"type:varchar(100);index" json:"entityId"`
	EntityName string     `gorm:"type:varchar(255)" json:"entityName,omitempty"`
	Details    string     `gorm:"type:jsonb" json:"details"`
	CreatedAt  time.Time  `gorm:"index" json:"createdAt"`
}

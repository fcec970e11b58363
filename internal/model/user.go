package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Role constants
const (
	RoleManager = "manager"
	RoleStaff   = "staff"
)

// Known permission codes, matching the side-menu views they unlock.
const (
	PermPOS        = "pos"
	PermInvoices   = "createInvoice"
	PermOrders     = "orders"
	PermPriceLists = "priceLists"
	PermStock      = "stock"
	PermSales      = "sales"
	PermSettings   = "settings"
)

// AllPermissions lists every permission code in menu order.
var AllPermissions = []string{
	PermPOS, PermInvoices, PermOrders, PermPriceLists, PermStock, PermSales, PermSettings,
}

// User is a cashier or manager account. Permissions are stored directly on
// the user as a code list rather than through role tables.
type User struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Username    string         `gorm:"type:varchar(255);uniqueIndex;not null" json:"username"`
	Password    string         `gorm:"type:varchar(255);not null" json:"-"` // bcrypt hash, never serialized
	Role        string         `gorm:"type:varchar(50);not null" json:"role"`
	Phone       string         `gorm:"type:varchar(50)" json:"phone"`
	Address     string         `gorm:"type:varchar(255)" json:"address"`
	StartDate   time.Time      `json:"startDate"`
	Permissions []string       `gorm:"type:jsonb;serializer:json" json:"permissions"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"-"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasPermission reports whether the user holds the given permission code.
// Managers implicitly hold every permission.
func (u *User) HasPermission(code string) bool {
	if u.Role == RoleManager {
		return true
	}
	for _, p := range u.Permissions {
		if p == code {
			return true
		}
	}
	return false
}

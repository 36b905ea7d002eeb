package models

import "time"

// Admin roles. SUPER_ADMIN unlocks admin management and destructive product
// operations; any authenticated role unlocks ordinary catalog writes.
const (
	RoleStaff      = "STAFF"
	RoleManager    = "MANAGER"
	RoleSuperAdmin = "SUPER_ADMIN"
)

// ValidAdminRole reports whether r is one of the enumerated roles.
func ValidAdminRole(r string) bool {
	switch r {
	case RoleStaff, RoleManager, RoleSuperAdmin:
		return true
	}
	return false
}

// AdminModel is a back-office operator account.
type AdminModel struct {
	Base
	Email       string     `json:"email"      gorm:"uniqueIndex;not null"`
	Password    string     `json:"-"          gorm:"not null"`
	Name        string     `json:"name"`
	Role        string     `json:"role"       gorm:"default:STAFF"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at"`
	LastLoginIP string     `json:"last_login_ip"`
}

func (AdminModel) TableName() string { return "admins" }

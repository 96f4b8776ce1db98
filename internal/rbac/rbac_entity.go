package rbac

import (
	"time"

	"github.com/google/uuid"
)

// Role permissions are stored as a set of catalog codes.
type Role struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID     `gorm:"type:uuid;not null;uniqueIndex:uq_roles_company_code"`
	Name        string        `gorm:"type:varchar(100);not null"`
	Code        string        `gorm:"type:varchar(20);not null;uniqueIndex:uq_roles_company_code"`
	Description string        `gorm:"type:varchar(500)"`
	Permissions PermissionSet `gorm:"type:jsonb;serializer:json;not null"`
	IsActive    bool          `gorm:"not null;default:true"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Assignment links an active employee to the role they hold.
type Assignment struct {
	EmployeeID string
	RoleID     string
}

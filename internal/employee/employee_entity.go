package employee

import (
	"time"

	"github.com/google/uuid"
)

const (
	StatusActive   = "ACTIVE"
	StatusInactive = "INACTIVE"
)

type Employee struct {
	ID                uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID         uuid.UUID  `gorm:"type:uuid;index"`
	DepartmentID      *uuid.UUID `gorm:"type:uuid;index"`
	RoleID            *uuid.UUID `gorm:"type:uuid;index"`
	EmployeeNumber    string
	FullName          string
	Email             string
	HireDate          time.Time `gorm:"type:date"`
	BankName          string
	BankAccountNumber string
	BankAccountHolder string
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// HasBankDetails is false when any of the three bank fields is blank.
func (e Employee) HasBankDetails() bool {
	return hasBankDetails(e.BankName, e.BankAccountNumber, e.BankAccountHolder)
}

func (e Employee) IsActive() bool {
	return e.Status == StatusActive
}

package employeesalary

import (
	"time"

	"github.com/google/uuid"
)

type EmployeeSalary struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID     uuid.UUID `gorm:"type:uuid;index"`
	EmployeeID    uuid.UUID `gorm:"type:uuid;index"`
	BasicSalary   int64
	EffectiveFrom time.Time  `gorm:"type:date"`
	EffectiveTo   *time.Time `gorm:"type:date"`
	EmployeeName  string     `gorm:"->;-:migration"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// EffectiveAt reports whether the record covers day.
func (s EmployeeSalary) EffectiveAt(day time.Time) bool {
	if s.EffectiveFrom.After(day) {
		return false
	}
	return s.EffectiveTo == nil || !s.EffectiveTo.Before(day)
}

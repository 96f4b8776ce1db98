package payroll

import (
	"time"

	"github.com/google/uuid"
)

const (
	CycleStatusOpen      = "OPEN"
	CycleStatusProcessed = "PROCESSED"
)

// Line item statuses. The set is open: new warning rules may add reasons
// without new statuses.
const (
	LineItemReady   = "READY"
	LineItemWarning = "WARNING"
	LineItemError   = "ERROR"
)

const PayStubStatusGenerated = "GENERATED"

type PayrollCycle struct {
	ID              uuid.UUID  `gorm:"type:uuid;primaryKey"`
	CompanyID       uuid.UUID  `gorm:"type:uuid;not null;index:idx_payroll_cycles_company_status"`
	Name            string     `gorm:"type:varchar(100);not null"`
	StartDate       time.Time  `gorm:"type:date;not null"`
	EndDate         time.Time  `gorm:"type:date;not null"`
	Status          string     `gorm:"type:varchar(20);not null;default:'OPEN';index:idx_payroll_cycles_company_status"`
	TotalEmployees  int        `gorm:"not null;default:0"`
	TotalGross      int64      `gorm:"type:bigint;not null;default:0"`
	TotalDeductions int64      `gorm:"type:bigint;not null;default:0"`
	TotalNet        int64      `gorm:"type:bigint;not null;default:0"`
	WarningCount    int        `gorm:"not null;default:0"`
	ProcessedAt     *time.Time `gorm:"index"`
	ProcessedBy     *uuid.UUID `gorm:"type:uuid"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (c PayrollCycle) IsProcessed() bool {
	return c.Status == CycleStatusProcessed
}

// Breakdown maps a component name to an amount in the smallest currency unit.
type Breakdown map[string]int64

// PayStub is unique per (payroll_cycle_id, employee_id).
type PayStub struct {
	ID                  uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID           uuid.UUID `gorm:"type:uuid;not null;index"`
	PayrollCycleID      uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_pay_stubs_cycle_employee"`
	EmployeeID          uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:uq_pay_stubs_cycle_employee"`
	StubNumber          string    `gorm:"type:varchar(30);not null"`
	PeriodStart         time.Time `gorm:"type:date;not null"`
	PeriodEnd           time.Time `gorm:"type:date;not null"`
	BasicSalary         int64     `gorm:"type:bigint;not null;default:0"`
	EarningsBreakdown   Breakdown `gorm:"type:jsonb;serializer:json"`
	DeductionsBreakdown Breakdown `gorm:"type:jsonb;serializer:json"`
	GrossPay            int64     `gorm:"type:bigint;not null;default:0"`
	TotalDeductions     int64     `gorm:"type:bigint;not null;default:0"`
	NetPay              int64     `gorm:"type:bigint;not null;default:0"`
	Status              string    `gorm:"type:varchar(20);not null"`
	PdfObjectKey        *string   `gorm:"type:varchar(255)"`
	GeneratedAt         time.Time
	GeneratedBy         uuid.UUID `gorm:"type:uuid;not null"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// LineItem is the computed, unpersisted payroll result for one employee.
type LineItem struct {
	EmployeeID          string    `json:"employee_id"`
	EmployeeNumber      string    `json:"employee_number"`
	EmployeeName        string    `json:"employee_name"`
	BasicSalary         int64     `json:"basic_salary"`
	EarningsBreakdown   Breakdown `json:"earnings_breakdown"`
	DeductionsBreakdown Breakdown `json:"deductions_breakdown"`
	GrossPay            int64     `json:"gross_pay"`
	TotalDeductions     int64     `json:"total_deductions"`
	NetPay              int64     `json:"net_pay"`
	Status              string    `json:"status"`
	WarningMessage      string    `json:"warning_message,omitempty"`
}

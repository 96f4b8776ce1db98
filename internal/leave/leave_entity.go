package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	StatusDraft    = "DRAFT"
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

const (
	PeriodMorning   = "MORNING"
	PeriodAfternoon = "AFTERNOON"
)

type LeaveType struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID          uuid.UUID       `gorm:"type:uuid;not null;index"`
	Name               string          `gorm:"type:varchar(100);not null"`
	Code               string          `gorm:"type:varchar(20);not null"`
	IsActive           bool            `gorm:"not null;default:true"`
	MinNoticeDays      *int            `gorm:"type:int"`
	DefaultDaysPerYear decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// LeaveBalance is unique per (employee, leave type, year).
type LeaveBalance struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID       `gorm:"type:uuid;not null;index"`
	EmployeeID  uuid.UUID       `gorm:"type:uuid;not null"`
	LeaveTypeID uuid.UUID       `gorm:"type:uuid;not null"`
	Year        int             `gorm:"not null"`
	BalanceDays decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`
	PendingDays decimal.Decimal `gorm:"type:numeric(6,1);not null;default:0"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type Leave struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_company_status"`
	EmployeeID  uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	LeaveTypeID uuid.UUID `gorm:"type:uuid;not null"`

	FromDate       time.Time       `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	ToDate         time.Time       `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	FirstDayHalf   bool            `gorm:"not null;default:false"`
	FirstDayPeriod *string         `gorm:"type:varchar(10)"`
	LastDayHalf    bool            `gorm:"not null;default:false"`
	LastDayPeriod  *string         `gorm:"type:varchar(10)"`
	TotalDays      decimal.Decimal `gorm:"type:numeric(6,1);not null"`
	Reason         string          `gorm:"type:varchar(500)"`

	Status          string     `gorm:"type:varchar(20);not null;index:idx_leave_requests_company_status"`
	CreatedBy       uuid.UUID  `gorm:"type:uuid;not null"`
	ApprovedBy      *uuid.UUID `gorm:"type:uuid"`
	ApprovedAt      *time.Time
	RejectionReason *string `gorm:"type:varchar(500)"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (Leave) TableName() string {
	return "leave_requests"
}

// EmployeeRef is the slice of the employees table leave rules need.
type EmployeeRef struct {
	ID           uuid.UUID
	DepartmentID *uuid.UUID
	Status       string
}

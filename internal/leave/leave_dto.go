package leave

import "github.com/shopspring/decimal"

type CreateLeaveRequest struct {
	EmployeeID     string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID    string `json:"leave_type_id" binding:"required,uuid"`
	FromDate       string `json:"from_date" binding:"required"`
	ToDate         string `json:"to_date" binding:"required"`
	FirstDayHalf   bool   `json:"first_day_half"`
	FirstDayPeriod string `json:"first_day_period" binding:"omitempty,oneof=MORNING AFTERNOON"`
	LastDayHalf    bool   `json:"last_day_half"`
	LastDayPeriod  string `json:"last_day_period" binding:"omitempty,oneof=MORNING AFTERNOON"`
	Reason         string `json:"reason" binding:"omitempty,max=500"`
	IsDraft        bool   `json:"is_draft"`
}

type RejectLeaveRequest struct {
	RejectionReason string `json:"rejection_reason" binding:"required,max=500"`
}

type LeaveFilter struct {
	EmployeeID string
	Status     string
}

type LeaveResponse struct {
	ID               string  `json:"id"`
	CompanyID        string  `json:"company_id"`
	EmployeeID       string  `json:"employee_id"`
	LeaveTypeID      string  `json:"leave_type_id"`
	FromDate         string  `json:"from_date"`
	ToDate           string  `json:"to_date"`
	FirstDayHalf     bool    `json:"first_day_half"`
	FirstDayPeriod   *string `json:"first_day_period,omitempty"`
	LastDayHalf      bool    `json:"last_day_half"`
	LastDayPeriod    *string `json:"last_day_period,omitempty"`
	TotalDays        string  `json:"total_days"`
	Reason           string  `json:"reason,omitempty"`
	Status           string  `json:"status"`
	CreatedBy        string  `json:"created_by"`
	ApprovedBy       *string `json:"approved_by,omitempty"`
	ApprovedAt       *string `json:"approved_at,omitempty"`
	RejectionReason  *string `json:"rejection_reason,omitempty"`
	TeamOverlapCount *int    `json:"team_overlap_count,omitempty"`
}

type TeamOverlapResponse struct {
	EmployeeID string `json:"employee_id"`
	FromDate   string `json:"from_date"`
	ToDate     string `json:"to_date"`
	Count      int    `json:"team_overlap_count"`
}

type CreateLeaveTypeRequest struct {
	Name               string          `json:"name" binding:"required,max=100"`
	Code               string          `json:"code" binding:"required,max=20"`
	MinNoticeDays      *int            `json:"min_notice_days" binding:"omitempty,min=0"`
	DefaultDaysPerYear decimal.Decimal `json:"default_days_per_year"`
	IsActive           *bool           `json:"is_active"`
}

type LeaveTypeResponse struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Code               string `json:"code"`
	IsActive           bool   `json:"is_active"`
	MinNoticeDays      *int   `json:"min_notice_days,omitempty"`
	DefaultDaysPerYear string `json:"default_days_per_year"`
}

type UpsertBalanceRequest struct {
	EmployeeID  string          `json:"employee_id" binding:"required,uuid"`
	LeaveTypeID string          `json:"leave_type_id" binding:"required,uuid"`
	Year        int             `json:"year" binding:"required,min=2000,max=2100"`
	BalanceDays decimal.Decimal `json:"balance_days"`
}

type LeaveBalanceResponse struct {
	ID          string `json:"id"`
	EmployeeID  string `json:"employee_id"`
	LeaveTypeID string `json:"leave_type_id"`
	Year        int    `json:"year"`
	BalanceDays string `json:"balance_days"`
	PendingDays string `json:"pending_days"`
}

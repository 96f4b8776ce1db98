package payroll

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Calculation is what the payroll function returned. Nil fields were not
// returned and are defaulted by the caller.
type Calculation struct {
	BasicSalary         *int64
	EarningsBreakdown   Breakdown
	DeductionsBreakdown Breakdown
	GrossPay            *int64
	TotalDeductions     *int64
	NetPay              *int64
}

type Calculator interface {
	Calculate(ctx context.Context, employeeID string, start, end time.Time) (*Calculation, error)
}

type sqlCalculator struct {
	db *gorm.DB
}

// NewSQLCalculator calls the calculate_employee_payroll server function.
func NewSQLCalculator(db *gorm.DB) Calculator {
	return &sqlCalculator{db: db}
}

type calculationRow struct {
	BasicSalary         *int64
	EarningsBreakdown   []byte
	DeductionsBreakdown []byte
	GrossPay            *int64
	TotalDeductions     *int64
	NetPay              *int64
}

func (c *sqlCalculator) Calculate(ctx context.Context, employeeID string, start, end time.Time) (*Calculation, error) {
	var row calculationRow
	result := c.db.WithContext(ctx).Raw(`
		SELECT basic_salary, earnings_breakdown, deductions_breakdown,
		       gross_pay, total_deductions, net_pay
		FROM calculate_employee_payroll(?, ?, ?)
	`, employeeID, start.Format(dateLayout), end.Format(dateLayout)).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return &Calculation{}, nil
	}

	calc := &Calculation{
		BasicSalary:     row.BasicSalary,
		GrossPay:        row.GrossPay,
		TotalDeductions: row.TotalDeductions,
		NetPay:          row.NetPay,
	}
	if len(row.EarningsBreakdown) > 0 {
		if err := json.Unmarshal(row.EarningsBreakdown, &calc.EarningsBreakdown); err != nil {
			return nil, fmt.Errorf("decode earnings_breakdown: %w", err)
		}
	}
	if len(row.DeductionsBreakdown) > 0 {
		if err := json.Unmarshal(row.DeductionsBreakdown, &calc.DeductionsBreakdown); err != nil {
			return nil, fmt.Errorf("decode deductions_breakdown: %w", err)
		}
	}
	return calc, nil
}

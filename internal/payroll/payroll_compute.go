package payroll

import (
	"context"
	"errors"
	"time"

	"go-hrcore/internal/employee"
	"go-hrcore/internal/employeesalary"

	"golang.org/x/sync/errgroup"
)

const (
	msgNoSalary         = "No salary details found"
	msgSalaryLookup     = "Salary details could not be loaded"
	msgCalcTimeout      = "Payroll calculation timed out"
	msgCalcFailed       = "Payroll calculation failed"
	msgBankMissing      = "Bank details missing"
	msgNegativeNet      = "Net pay is negative"
	defaultConcurrency  = 8
	defaultComputeLimit = 10 * time.Second
)

type SalaryLookup interface {
	FindEffective(ctx context.Context, companyID, employeeID string, day time.Time) (*employeesalary.EmployeeSalary, error)
}

// WarningRule flags an otherwise ready line item for review. No rules are
// registered by default.
type WarningRule func(item LineItem, empl employee.Employee) (message string, warn bool)

type ComputeOptions struct {
	Timeout      time.Duration
	Concurrency  int
	WarningRules []WarningRule
}

// ComputeLineItems computes every employee in parallel. A failure for one
// employee marks only that item as ERROR. Items keep the input order.
func ComputeLineItems(
	ctx context.Context,
	cycle PayrollCycle,
	employees []employee.Employee,
	salaries SalaryLookup,
	calc Calculator,
	opts ComputeOptions,
) []LineItem {
	if opts.Timeout <= 0 {
		opts.Timeout = defaultComputeLimit
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = defaultConcurrency
	}

	items := make([]LineItem, len(employees))

	var g errgroup.Group
	g.SetLimit(opts.Concurrency)
	for i := range employees {
		i := i
		g.Go(func() error {
			items[i] = computeLineItem(ctx, cycle, employees[i], salaries, calc, opts)
			return nil
		})
	}
	_ = g.Wait()

	return items
}

func computeLineItem(
	ctx context.Context,
	cycle PayrollCycle,
	empl employee.Employee,
	salaries SalaryLookup,
	calc Calculator,
	opts ComputeOptions,
) LineItem {
	item := LineItem{
		EmployeeID:          empl.ID.String(),
		EmployeeNumber:      empl.EmployeeNumber,
		EmployeeName:        empl.FullName,
		EarningsBreakdown:   Breakdown{},
		DeductionsBreakdown: Breakdown{},
	}

	salary, err := salaries.FindEffective(ctx, cycle.CompanyID.String(), empl.ID.String(), cycle.StartDate)
	if err != nil {
		return item.fail(msgSalaryLookup)
	}
	if salary == nil {
		return item.fail(msgNoSalary)
	}

	callCtx, cancel := context.WithTimeout(ctx, opts.Timeout)
	res, err := calc.Calculate(callCtx, empl.ID.String(), cycle.StartDate, cycle.EndDate)
	cancel()
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return item.fail(msgCalcTimeout)
		}
		return item.fail(msgCalcFailed)
	}
	if res == nil {
		res = &Calculation{}
	}

	item.BasicSalary = valueOr(res.BasicSalary, salary.BasicSalary)
	item.GrossPay = valueOr(res.GrossPay, 0)
	item.TotalDeductions = valueOr(res.TotalDeductions, 0)
	item.NetPay = valueOr(res.NetPay, 0)
	if res.EarningsBreakdown != nil {
		item.EarningsBreakdown = res.EarningsBreakdown
	}
	if res.DeductionsBreakdown != nil {
		item.DeductionsBreakdown = res.DeductionsBreakdown
	}

	switch {
	case !empl.HasBankDetails():
		item.Status = LineItemError
		item.WarningMessage = msgBankMissing
	case item.NetPay < 0:
		item.Status = LineItemError
		item.WarningMessage = msgNegativeNet
	default:
		item.Status = LineItemReady
		for _, rule := range opts.WarningRules {
			if msg, warn := rule(item, empl); warn {
				item.Status = LineItemWarning
				item.WarningMessage = msg
				break
			}
		}
	}
	return item
}

// fail zeroes every monetary field.
func (li LineItem) fail(message string) LineItem {
	li.BasicSalary = 0
	li.GrossPay = 0
	li.TotalDeductions = 0
	li.NetPay = 0
	li.EarningsBreakdown = Breakdown{}
	li.DeductionsBreakdown = Breakdown{}
	li.Status = LineItemError
	li.WarningMessage = message
	return li
}

func valueOr(v *int64, fallback int64) int64 {
	if v == nil {
		return fallback
	}
	return *v
}

type Rollup struct {
	TotalEmployees  int
	TotalGross      int64
	TotalDeductions int64
	TotalNet        int64
	WarningCount    int
	ErrorCount      int
}

func Summarize(items []LineItem) Rollup {
	r := Rollup{TotalEmployees: len(items)}
	for _, it := range items {
		r.TotalGross += it.GrossPay
		r.TotalDeductions += it.TotalDeductions
		r.TotalNet += it.NetPay
		switch it.Status {
		case LineItemWarning:
			r.WarningCount++
		case LineItemError:
			r.ErrorCount++
		}
	}
	return r
}

func errorEmployeeIDs(items []LineItem) []string {
	var ids []string
	for _, it := range items {
		if it.Status == LineItemError {
			ids = append(ids, it.EmployeeID)
		}
	}
	return ids
}

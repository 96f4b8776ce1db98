package payroll

type CreateCycleRequest struct {
	Name      string `json:"name" binding:"required,max=100"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date" binding:"required"`
}

type GeneratePayStubRequest struct {
	EmployeeID string `json:"employee_id" binding:"required,uuid"`
}

type CycleResponse struct {
	ID              string  `json:"id"`
	CompanyID       string  `json:"company_id"`
	Name            string  `json:"name"`
	StartDate       string  `json:"start_date"`
	EndDate         string  `json:"end_date"`
	Status          string  `json:"status"`
	TotalEmployees  int     `json:"total_employees"`
	TotalGross      int64   `json:"total_gross"`
	TotalDeductions int64   `json:"total_deductions"`
	TotalNet        int64   `json:"total_net"`
	WarningCount    int     `json:"warning_count"`
	ProcessedAt     *string `json:"processed_at,omitempty"`
	ProcessedBy     *string `json:"processed_by,omitempty"`
}

type LineItemsResponse struct {
	Cycle      CycleResponse `json:"cycle"`
	Items      []LineItem    `json:"items"`
	ErrorCount int           `json:"error_count"`
}

type PayStubResponse struct {
	ID                  string    `json:"id"`
	PayrollCycleID      string    `json:"payroll_cycle_id"`
	EmployeeID          string    `json:"employee_id"`
	StubNumber          string    `json:"stub_number"`
	PeriodStart         string    `json:"period_start"`
	PeriodEnd           string    `json:"period_end"`
	BasicSalary         int64     `json:"basic_salary"`
	EarningsBreakdown   Breakdown `json:"earnings_breakdown"`
	DeductionsBreakdown Breakdown `json:"deductions_breakdown"`
	GrossPay            int64     `json:"gross_pay"`
	TotalDeductions     int64     `json:"total_deductions"`
	NetPay              int64     `json:"net_pay"`
	Status              string    `json:"status"`
	Rendered            bool      `json:"rendered"`
	GeneratedAt         string    `json:"generated_at"`
}

type DownloadURLResponse struct {
	URL string `json:"url"`
}

package employee

import (
	"cmp"
	"slices"
	"strings"
)

// ListQuery is the query string accepted by GET /employees.
type ListQuery struct {
	Status  string `form:"status"`
	Search  string `form:"q"`
	SortBy  string `form:"sort_by"`
	SortDir string `form:"sort_dir"`
	// MissingBank keeps only employees payroll would reject for lack of
	// bank details.
	MissingBank bool `form:"missing_bank"`
	Page        int  `form:"page"`
	PageSize    int  `form:"page_size"`
}

func (q ListQuery) matches(e EmployeeResponse) bool {
	if status := strings.ToUpper(strings.TrimSpace(q.Status)); status != "" && e.Status != status {
		return false
	}
	if q.MissingBank && hasBankDetails(e.BankName, e.BankAccountNumber, e.BankAccountHolder) {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(q.Search))
	if term == "" {
		return true
	}
	for _, field := range []string{e.FullName, e.Email, e.EmployeeNumber} {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

func (q ListQuery) sortKey(e EmployeeResponse) string {
	switch strings.ToLower(q.SortBy) {
	case "email":
		return strings.ToLower(e.Email)
	case "employee_number":
		return e.EmployeeNumber
	default:
		return strings.ToLower(e.FullName)
	}
}

// Apply filters and orders employees; the input slice is not modified.
func (q ListQuery) Apply(employees []EmployeeResponse) []EmployeeResponse {
	out := make([]EmployeeResponse, 0, len(employees))
	for _, e := range employees {
		if q.matches(e) {
			out = append(out, e)
		}
	}

	desc := strings.EqualFold(q.SortDir, "desc")
	slices.SortStableFunc(out, func(a, b EmployeeResponse) int {
		c := cmp.Compare(q.sortKey(a), q.sortKey(b))
		if desc {
			return -c
		}
		return c
	})
	return out
}

func hasBankDetails(name, number, holder string) bool {
	return strings.TrimSpace(name) != "" &&
		strings.TrimSpace(number) != "" &&
		strings.TrimSpace(holder) != ""
}

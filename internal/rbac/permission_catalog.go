package rbac

import "strings"

type Permission struct {
	Code        string   `json:"code"`
	Label       string   `json:"label"`
	Description string   `json:"description"`
	Requires    []string `json:"requires,omitempty"`
}

type Category struct {
	Name        string       `json:"name"`
	Permissions []Permission `json:"permissions"`
}

// Catalog is the fixed permission hierarchy. Codes are resource.action and
// map directly onto enforcement checks.
var Catalog = []Category{
	{
		Name: "Employees",
		Permissions: []Permission{
			{Code: "employee.read", Label: "View employees", Description: "See the employee directory and profiles"},
			{Code: "employee.create", Label: "Add employees", Description: "Register new employees", Requires: []string{"employee.read"}},
			{Code: "employee.update", Label: "Edit employees", Description: "Change employee profiles and bank details", Requires: []string{"employee.read"}},
			{Code: "employee.delete", Label: "Remove employees", Description: "Delete employee records", Requires: []string{"employee.read"}},
		},
	},
	{
		Name: "Salaries",
		Permissions: []Permission{
			{Code: "salary.read", Label: "View salaries", Description: "See salary history", Requires: []string{"employee.read"}},
			{Code: "salary.update", Label: "Manage salaries", Description: "Record salary changes", Requires: []string{"salary.read"}},
		},
	},
	{
		Name: "Leave",
		Permissions: []Permission{
			{Code: "leave.read", Label: "View leave", Description: "See leave requests and balances"},
			{Code: "leave.create", Label: "Request leave", Description: "Create, submit and delete leave requests", Requires: []string{"leave.read"}},
			{Code: "leave.approve", Label: "Approve leave", Description: "Approve or reject pending leave", Requires: []string{"leave.read"}},
			{Code: "leave.manage", Label: "Manage leave setup", Description: "Maintain leave types and balances", Requires: []string{"leave.approve"}},
		},
	},
	{
		Name: "Payroll",
		Permissions: []Permission{
			{Code: "payroll.read", Label: "View payroll", Description: "See payroll cycles, line items and pay stubs", Requires: []string{"employee.read", "salary.read"}},
			{Code: "payroll.compute", Label: "Run payroll", Description: "Create cycles and compute line items", Requires: []string{"payroll.read"}},
			{Code: "payroll.generate", Label: "Generate pay stubs", Description: "Generate pay stubs for ready employees", Requires: []string{"payroll.compute"}},
			{Code: "payroll.process", Label: "Close payroll", Description: "Mark a payroll cycle as processed", Requires: []string{"payroll.generate"}},
		},
	},
	{
		Name: "Roles",
		Permissions: []Permission{
			{Code: "role.read", Label: "View roles", Description: "See roles and their permissions"},
			{Code: "role.manage", Label: "Manage roles", Description: "Create, edit, deactivate and delete roles", Requires: []string{"role.read", "employee.read"}},
		},
	},
}

var catalogIndex = func() map[string]Permission {
	idx := make(map[string]Permission)
	for _, cat := range Catalog {
		for _, p := range cat.Permissions {
			idx[p.Code] = p
		}
	}
	return idx
}()

func LookupPermission(code string) (Permission, bool) {
	p, ok := catalogIndex[code]
	return p, ok
}

// SplitCode returns the resource and action of a catalog code.
func SplitCode(code string) (resource, action string, ok bool) {
	resource, action, ok = strings.Cut(code, ".")
	if !ok || resource == "" || action == "" {
		return "", "", false
	}
	return resource, action, true
}

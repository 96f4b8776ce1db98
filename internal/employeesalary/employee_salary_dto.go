package employeesalary

type CreateEmployeeSalaryRequest struct {
	EmployeeID    string `json:"employee_id" binding:"required,uuid"`
	BasicSalary   int64  `json:"basic_salary" binding:"min=0"`
	EffectiveFrom string `json:"effective_from" binding:"required"`
	EffectiveTo   string `json:"effective_to"`
}

type UpdateEmployeeSalaryRequest struct {
	BasicSalary   int64  `json:"basic_salary" binding:"min=0"`
	EffectiveFrom string `json:"effective_from" binding:"required"`
	EffectiveTo   string `json:"effective_to"`
}

type EmployeeSalaryResponse struct {
	ID            string `json:"id"`
	EmployeeID    string `json:"employee_id"`
	EmployeeName  string `json:"employee_name,omitempty"`
	BasicSalary   int64  `json:"basic_salary"`
	EffectiveFrom string `json:"effective_from"`
	EffectiveTo   string `json:"effective_to,omitempty"`
}

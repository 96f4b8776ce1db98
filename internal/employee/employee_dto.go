package employee

type CreateEmployeeRequest struct {
	FullName          string `json:"full_name" binding:"required,max=150"`
	Email             string `json:"email" binding:"required,email"`
	EmployeeNumber    string `json:"employee_number" binding:"omitempty,max=30"`
	HireDate          string `json:"hire_date" binding:"required"`
	DepartmentID      string `json:"department_id" binding:"omitempty,uuid"`
	RoleID            string `json:"role_id" binding:"omitempty,uuid"`
	BankName          string `json:"bank_name" binding:"omitempty,max=100"`
	BankAccountNumber string `json:"bank_account_number" binding:"omitempty,max=50"`
	BankAccountHolder string `json:"bank_account_holder" binding:"omitempty,max=150"`
	Status            string `json:"status" binding:"omitempty,oneof=ACTIVE INACTIVE"`
}

type UpdateEmployeeRequest struct {
	FullName          string `json:"full_name" binding:"required,max=150"`
	Email             string `json:"email" binding:"required,email"`
	EmployeeNumber    string `json:"employee_number" binding:"omitempty,max=30"`
	HireDate          string `json:"hire_date" binding:"required"`
	DepartmentID      string `json:"department_id" binding:"omitempty,uuid"`
	RoleID            string `json:"role_id" binding:"omitempty,uuid"`
	BankName          string `json:"bank_name" binding:"omitempty,max=100"`
	BankAccountNumber string `json:"bank_account_number" binding:"omitempty,max=50"`
	BankAccountHolder string `json:"bank_account_holder" binding:"omitempty,max=150"`
	Status            string `json:"status" binding:"required,oneof=ACTIVE INACTIVE"`
}

type EmployeeResponse struct {
	ID                string `json:"id"`
	CompanyID         string `json:"company_id"`
	EmployeeNumber    string `json:"employee_number"`
	FullName          string `json:"full_name"`
	Email             string `json:"email"`
	HireDate          string `json:"hire_date"`
	DepartmentID      string `json:"department_id,omitempty"`
	RoleID            string `json:"role_id,omitempty"`
	BankName          string `json:"bank_name,omitempty"`
	BankAccountNumber string `json:"bank_account_number,omitempty"`
	BankAccountHolder string `json:"bank_account_holder,omitempty"`
	Status            string `json:"status"`
}

type EmployeeOptionResponse struct {
	ID             string `json:"id"`
	EmployeeNumber string `json:"employee_number"`
	FullName       string `json:"full_name"`
}

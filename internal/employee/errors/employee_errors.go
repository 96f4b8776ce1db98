package employeeerrors

import (
	"net/http"

	"go-hrcore/internal/shared/apperror"
)

var ErrEmployeeNotFound = apperror.New(apperror.CodeNotFound, "Employee not found", http.StatusNotFound)

// Unique constraint violations.
var (
	ErrEmployeeAlreadyExists       = conflict("Employee with the same email already exists")
	ErrEmployeeNumberAlreadyExists = conflict("Employee number already exists in this company")
)

var (
	ErrInvalidCompanyID = invalid("invalid company id")
	ErrInvalidHireDate  = invalid("Invalid hire_date format, expected YYYY-MM-DD")
	// Payroll treats partially filled bank details as missing, so they are
	// rejected up front.
	ErrIncompleteBankDetails = invalid("bank_name, bank_account_number and bank_account_holder must be provided together")
	ErrUnknownReference      = invalid("Referenced department or role does not exist")
)

func conflict(message string) *apperror.AppError {
	return apperror.New(apperror.CodeConflict, message, http.StatusConflict)
}

func invalid(message string) *apperror.AppError {
	return apperror.New(apperror.CodeInvalidInput, message, http.StatusBadRequest)
}

package payrollerrors

import (
	"net/http"

	"go-hrcore/internal/shared/apperror"
)

var (
	ErrInvalidCompanyID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid company id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrCycleNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll cycle not found",
		http.StatusNotFound,
	)
	ErrEmployeeNotInCycle = apperror.New(
		apperror.CodeNotFound,
		"employee is not active in this company",
		http.StatusNotFound,
	)
	ErrPayStubNotFound = apperror.New(
		apperror.CodeNotFound,
		"pay stub not found",
		http.StatusNotFound,
	)
	ErrPayStubNotRendered = apperror.New(
		apperror.CodeNotFound,
		"pay stub document is not rendered yet",
		http.StatusNotFound,
	)
	ErrCycleAlreadyProcessed = apperror.New(
		apperror.CodeInvalidState,
		"payroll cycle is already processed",
		http.StatusConflict,
	)
	ErrEmployeeHasErrors = apperror.New(
		apperror.CodePreconditionFailed,
		"employee payroll has errors, pay stub cannot be generated",
		http.StatusConflict,
	)
	ErrCycleHasErrors = apperror.New(
		apperror.CodePreconditionFailed,
		"payroll cycle has employees in error",
		http.StatusConflict,
	)
	ErrPayStubsMissing = apperror.New(
		apperror.CodePreconditionFailed,
		"pay stubs are missing for some employees",
		http.StatusConflict,
	)
	ErrStorageUnavailable = apperror.New(
		apperror.CodeServiceUnavailable,
		"document storage is not configured",
		http.StatusServiceUnavailable,
	)
)

package apperror

import "net/http"

// Generic sentinels for failures no module owns. Modules declare their own
// errors for anything a client is expected to branch on.
var (
	ErrInvalidInput       = New(CodeInvalidInput, "The provided input is invalid", http.StatusBadRequest)
	ErrUnauthorized       = New(CodeUnauthorized, "Authentication is required", http.StatusUnauthorized)
	ErrForbidden          = New(CodeForbidden, "You do not have permission to access this resource", http.StatusForbidden)
	ErrNotFound           = New(CodeNotFound, "Resource not found", http.StatusNotFound)
	ErrInternal           = New(CodeInternalError, "Internal server error", http.StatusInternalServerError)
	ErrServiceUnavailable = New(CodeServiceUnavailable, "A dependency is temporarily unavailable", http.StatusServiceUnavailable)
)

func RequiredField(field string) *AppError {
	return fieldError(field, "is required")
}

func InvalidField(field string) *AppError {
	return fieldError(field, "is invalid")
}

func fieldError(field, problem string) *AppError {
	return New(CodeInvalidInput, field+" "+problem, http.StatusBadRequest)
}

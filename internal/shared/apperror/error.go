package apperror

import (
	"errors"
	"fmt"
)

// AppError is an error that knows how it is reported to clients. Err, when
// set, is the cause and is reachable through errors.Is/As.
type AppError struct {
	Code       string
	Message    string
	HTTPStatus int
	Details    any
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, httpStatus int) *AppError {
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus}
}

// Wrap attaches a client-facing code and message to err. A nil err stays nil.
func Wrap(err error, code, message string, httpStatus int) *AppError {
	if err == nil {
		return nil
	}
	return &AppError{Code: code, Message: message, HTTPStatus: httpStatus, Err: err}
}

// Detailed returns a copy of a sentinel AppError with a contextual message.
// errors.Is against the sentinel still matches.
func Detailed(sentinel *AppError, message string, details any) *AppError {
	return &AppError{
		Code:       sentinel.Code,
		Message:    message,
		HTTPStatus: sentinel.HTTPStatus,
		Details:    details,
		Err:        sentinel,
	}
}

// Retryable reports whether repeating the failed operation unchanged can
// succeed. Plain errors count as transient; an AppError only when it is an
// internal or unavailable failure.
func Retryable(err error) bool {
	if err == nil {
		return false
	}
	var appErr *AppError
	if !errors.As(err, &appErr) {
		return true
	}
	return appErr.Code == CodeInternalError || appErr.Code == CodeServiceUnavailable
}

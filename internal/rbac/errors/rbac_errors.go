package rbacerrors

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
	ErrInvalidRoleID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid role id",
		http.StatusBadRequest,
	)
	ErrRoleCodeRequired = apperror.New(
		apperror.CodeInvalidInput,
		"role code is required",
		http.StatusBadRequest,
	)
	ErrRoleCodeTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"role code must be at most 20 characters",
		http.StatusBadRequest,
	)
	ErrDescriptionTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"description must be at most 500 characters",
		http.StatusBadRequest,
	)
	ErrEmptyPermissions = apperror.New(
		apperror.CodeInvalidInput,
		"role must have at least one permission",
		http.StatusBadRequest,
	)
	ErrUnknownPermission = apperror.New(
		apperror.CodeInvalidInput,
		"unknown permission code",
		http.StatusBadRequest,
	)
	ErrRoleNotFound = apperror.New(
		apperror.CodeNotFound,
		"role not found",
		http.StatusNotFound,
	)
	ErrDuplicateRoleCode = apperror.New(
		apperror.CodeConflict,
		"role code already exists",
		http.StatusConflict,
	)
	ErrRoleInUse = apperror.New(
		apperror.CodePreconditionFailed,
		"role is still assigned to employees",
		http.StatusConflict,
	)
	ErrReductionNotConfirmed = apperror.New(
		apperror.CodePreconditionFailed,
		"removing permissions from a role in use requires confirmation",
		http.StatusConflict,
	)
)

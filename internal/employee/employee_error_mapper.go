package employee

import (
	"database/sql"
	"errors"
	"strings"

	employeeerrors "go-hrcore/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

var uniqueConstraintErrors = map[string]error{
	"uq_employee_number": employeeerrors.ErrEmployeeNumberAlreadyExists,
	"uq_employee_email":  employeeerrors.ErrEmployeeAlreadyExists,
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) || errors.Is(err, sql.ErrNoRows) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			if mapped, ok := uniqueConstraintErrors[pgErr.ConstraintName]; ok {
				return mapped
			}
		case pgForeignKeyViolation:
			return employeeerrors.ErrUnknownReference
		}
		return err
	}

	// drivers that do not surface *pgconn.PgError still carry the constraint name
	msg := strings.ToLower(err.Error())
	if strings.Contains(msg, "duplicate key value") {
		for constraint, mapped := range uniqueConstraintErrors {
			if strings.Contains(msg, constraint) {
				return mapped
			}
		}
	}
	return err
}

// validateBankDetails accepts either all three bank fields or none.
func validateBankDetails(name, number, holder string) error {
	filled := 0
	for _, v := range []string{name, number, holder} {
		if strings.TrimSpace(v) != "" {
			filled++
		}
	}
	if filled != 0 && filled != 3 {
		return employeeerrors.ErrIncompleteBankDetails
	}
	return nil
}

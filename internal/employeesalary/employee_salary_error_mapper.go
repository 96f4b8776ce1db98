package employeesalary

import (
	"errors"
	"strings"

	employeesalaryerrors "go-hrcore/internal/employeesalary/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const effectiveDateConstraint = "uq_employee_salary_effective"

// mapRepositoryError turns not-found and constraint failures into salary
// errors. A foreign key failure can only come from employee_id.
func mapRepositoryError(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return employeesalaryerrors.ErrSalaryNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == "23505" && pgErr.ConstraintName == effectiveDateConstraint:
			return employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists
		case pgErr.Code == "23503":
			return employeesalaryerrors.ErrEmployeeNotFound
		}
		return err
	}

	if msg := strings.ToLower(err.Error()); strings.Contains(msg, "duplicate key value") &&
		strings.Contains(msg, effectiveDateConstraint) {
		return employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists
	}
	return err
}

package employeesalary

import (
	"context"
	"database/sql"
	"errors"
	"time"

	employeesalaryerrors "go-hrcore/internal/employeesalary/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeSalaryRequest) (EmployeeSalaryResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeSalaryResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeSalaryResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeSalaryRequest) (EmployeeSalaryResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	// FindEffective returns nil without error when no record covers day.
	FindEffective(ctx context.Context, companyID, employeeID string, day time.Time) (*EmployeeSalary, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("employeesalary.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employeesalary.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) inTx(ctx context.Context, fn func(repo Repository) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(s.repo.WithTx(tx)); err != nil {
		return err
	}
	return tx.Commit()
}

// Create closes the employee's open-ended record (if it starts earlier) and
// inserts the new one in the same transaction.
func (s *service) Create(ctx context.Context, companyID string, req CreateEmployeeSalaryRequest) (EmployeeSalaryResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidCompanyID
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEmployeeID
	}
	from, to, err := parsePeriod(req.EffectiveFrom, req.EffectiveTo)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}

	log := s.logger.With(zap.String("company_id", companyID), zap.String("employee_id", req.EmployeeID))
	salary := &EmployeeSalary{
		ID:            uuid.New(),
		CompanyID:     companyUUID,
		EmployeeID:    employeeID,
		BasicSalary:   req.BasicSalary,
		EffectiveFrom: from,
		EffectiveTo:   to,
	}

	var created *EmployeeSalary
	err = s.inTx(ctx, func(repo Repository) error {
		if err := repo.CloseOpen(ctx, companyID, req.EmployeeID, from); err != nil {
			return mapRepositoryError(err)
		}
		if err := repo.Create(ctx, salary); err != nil {
			return mapRepositoryError(err)
		}
		// re-read for the joined employee name
		found, err := repo.FindByIDAndCompany(ctx, companyID, salary.ID.String())
		created = found
		return mapRepositoryError(err)
	})
	if err != nil {
		log.Error("create salary failed", zap.Error(err))
		return EmployeeSalaryResponse{}, err
	}

	log.Info("salary created", zap.String("effective_from", req.EffectiveFrom))
	return mapToResponse(*created), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]EmployeeSalaryResponse, error) {
	salaries, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(salaries), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (EmployeeSalaryResponse, error) {
	salary, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return EmployeeSalaryResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*salary), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateEmployeeSalaryRequest) (EmployeeSalaryResponse, error) {
	from, to, err := parsePeriod(req.EffectiveFrom, req.EffectiveTo)
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}

	var salary *EmployeeSalary
	err = s.inTx(ctx, func(repo Repository) error {
		current, err := repo.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		current.BasicSalary = req.BasicSalary
		current.EffectiveFrom = from
		current.EffectiveTo = to
		current.UpdatedAt = time.Now()
		if err := repo.Update(ctx, current); err != nil {
			return mapRepositoryError(err)
		}
		salary = current
		return nil
	})
	if err != nil {
		return EmployeeSalaryResponse{}, err
	}
	return mapToResponse(*salary), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	return s.inTx(ctx, func(repo Repository) error {
		return mapRepositoryError(repo.Delete(ctx, companyID, id))
	})
}

func (s *service) FindEffective(ctx context.Context, companyID, employeeID string, day time.Time) (*EmployeeSalary, error) {
	salary, err := s.repo.FindEffective(ctx, companyID, employeeID, day)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return salary, nil
}

func parsePeriod(fromRaw, toRaw string) (time.Time, *time.Time, error) {
	from, err := time.Parse(dateLayout, fromRaw)
	if err != nil {
		return time.Time{}, nil, employeesalaryerrors.ErrInvalidDate
	}
	if toRaw == "" {
		return from, nil, nil
	}
	to, err := time.Parse(dateLayout, toRaw)
	if err != nil {
		return time.Time{}, nil, employeesalaryerrors.ErrInvalidDate
	}
	if to.Before(from) {
		return time.Time{}, nil, employeesalaryerrors.ErrInvalidEffectivePeriod
	}
	return from, &to, nil
}

func mapToResponse(salary EmployeeSalary) EmployeeSalaryResponse {
	resp := EmployeeSalaryResponse{
		ID:            salary.ID.String(),
		EmployeeID:    salary.EmployeeID.String(),
		EmployeeName:  salary.EmployeeName,
		BasicSalary:   salary.BasicSalary,
		EffectiveFrom: salary.EffectiveFrom.Format(dateLayout),
	}
	if salary.EffectiveTo != nil {
		resp.EffectiveTo = salary.EffectiveTo.Format(dateLayout)
	}
	return resp
}

func mapToListResponse(salaries []EmployeeSalary) []EmployeeSalaryResponse {
	res := make([]EmployeeSalaryResponse, len(salaries))
	for i, salary := range salaries {
		res[i] = mapToResponse(salary)
	}
	return res
}

package employeesalary

import (
	"context"
	"database/sql"
	"time"

	"go-hrcore/internal/shared/dbtx"
	"go-hrcore/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, salary *EmployeeSalary) error
	FindAllByCompany(ctx context.Context, companyID string) ([]EmployeeSalary, error)
	FindByIDAndCompany(ctx context.Context, companyID string, id string) (*EmployeeSalary, error)
	FindEffective(ctx context.Context, companyID, employeeID string, day time.Time) (*EmployeeSalary, error)
	CloseOpen(ctx context.Context, companyID, employeeID string, from time.Time) error
	Update(ctx context.Context, salary *EmployeeSalary) error
	Delete(ctx context.Context, companyID string, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: dbtx.Bind(r.db, tx)}
}

func (r *repository) Create(ctx context.Context, salary *EmployeeSalary) error {
	return r.db.WithContext(ctx).Create(salary).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string) ([]EmployeeSalary, error) {
	var salaries []EmployeeSalary
	query := `
SELECT
	employee_salaries.*,
	employees.full_name AS employee_name
FROM employee_salaries
JOIN employees ON employees.id = employee_salaries.employee_id
WHERE employee_salaries.company_id = ?
ORDER BY
	employees.full_name ASC,
	employee_salaries.effective_from DESC,
	employee_salaries.created_at DESC
`

	err := r.db.WithContext(ctx).Raw(query, companyID).Scan(&salaries).Error
	return salaries, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID string, id string) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := r.db.WithContext(ctx).
		Table("employee_salaries").
		Select("employee_salaries.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = employee_salaries.employee_id").
		Scopes(tenant.TableScope("employee_salaries", companyID)).
		Where("employee_salaries.id = ?", id).
		First(&salary).Error
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

// FindEffective returns the latest record with effective_from <= day whose
// effective_to is open or not before day.
func (r *repository) FindEffective(ctx context.Context, companyID, employeeID string, day time.Time) (*EmployeeSalary, error) {
	var salary EmployeeSalary
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("effective_from <= ?", day).
		Where("effective_to IS NULL OR effective_to >= ?", day).
		Order("effective_from DESC").
		First(&salary).Error
	if err != nil {
		return nil, err
	}
	return &salary, nil
}

// CloseOpen ends every open-ended record that starts before from on the day
// before from.
func (r *repository) CloseOpen(ctx context.Context, companyID, employeeID string, from time.Time) error {
	return r.db.WithContext(ctx).
		Model(&EmployeeSalary{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("effective_to IS NULL").
		Where("effective_from < ?", from).
		Updates(map[string]any{
			"effective_to": from.AddDate(0, 0, -1),
			"updated_at":   time.Now(),
		}).Error
}

func (r *repository) Update(ctx context.Context, salary *EmployeeSalary) error {
	return r.db.WithContext(ctx).
		Model(salary).
		Select("basic_salary", "effective_from", "effective_to", "updated_at").
		Updates(salary).Error
}

func (r *repository) Delete(ctx context.Context, companyID string, id string) error {
	result := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&EmployeeSalary{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

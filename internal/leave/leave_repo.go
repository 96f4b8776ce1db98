package leave

import (
	"context"
	"database/sql"
	"time"

	"go-hrcore/internal/shared/dbtx"
	"go-hrcore/internal/tenant"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	Create(ctx context.Context, leave *Leave) error
	FindAllByCompany(ctx context.Context, companyID string, filter LeaveFilter) ([]Leave, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error)
	Update(ctx context.Context, leave *Leave) error
	Delete(ctx context.Context, companyID, id string) error
	HasOverlappingPeriod(ctx context.Context, companyID, employeeID string, from, to time.Time, excludeID string) (bool, error)
	FindEmployee(ctx context.Context, companyID, employeeID string) (*EmployeeRef, error)
	FindTeamLeaves(ctx context.Context, companyID, departmentID, excludeEmployeeID string, today time.Time) ([]Leave, error)

	CreateType(ctx context.Context, leaveType *LeaveType) error
	FindTypeByID(ctx context.Context, companyID, id string) (*LeaveType, error)
	FindTypesByCompany(ctx context.Context, companyID string, activeOnly bool) ([]LeaveType, error)

	FindBalance(ctx context.Context, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error)
	FindBalancesByEmployee(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error)
	IncrementPendingDays(ctx context.Context, balanceID string, days decimal.Decimal) error
	UpsertBalance(ctx context.Context, balance *LeaveBalance) error
	InsertBalanceIfAbsent(ctx context.Context, balance *LeaveBalance) (bool, error)
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

func (r *repository) Create(ctx context.Context, leave *Leave) error {
	return r.db.WithContext(ctx).Create(leave).Error
}

func (r *repository) FindAllByCompany(ctx context.Context, companyID string, filter LeaveFilter) ([]Leave, error) {
	var leaves []Leave
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}
	err := q.Order("from_date DESC").Find(&leaves).Error
	return leaves, err
}

func (r *repository) FindByIDAndCompany(ctx context.Context, companyID, id string) (*Leave, error) {
	var leave Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&leave, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &leave, nil
}

func (r *repository) Update(ctx context.Context, leave *Leave) error {
	return r.db.WithContext(ctx).Save(leave).Error
}

func (r *repository) Delete(ctx context.Context, companyID, id string) error {
	result := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Delete(&Leave{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) HasOverlappingPeriod(
	ctx context.Context,
	companyID, employeeID string,
	from, to time.Time,
	excludeID string,
) (bool, error) {
	var count int64
	q := r.db.WithContext(ctx).
		Model(&Leave{}).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ?", employeeID).
		Where("status <> ?", StatusRejected).
		Where("from_date <= ? AND to_date >= ?", to, from)
	if excludeID != "" {
		q = q.Where("id <> ?", excludeID)
	}
	if err := q.Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *repository) FindEmployee(ctx context.Context, companyID, employeeID string) (*EmployeeRef, error) {
	var ref EmployeeRef
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("id", "department_id", "status").
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", employeeID).
		Take(&ref).Error
	if err != nil {
		return nil, err
	}
	return &ref, nil
}

// FindTeamLeaves returns PENDING and APPROVED leaves of the other employees
// in a department that have not ended before today.
func (r *repository) FindTeamLeaves(
	ctx context.Context,
	companyID, departmentID, excludeEmployeeID string,
	today time.Time,
) ([]Leave, error) {
	var leaves []Leave
	err := r.db.WithContext(ctx).
		Scopes(tenant.TableScope("leave_requests", companyID)).
		Joins("JOIN employees ON employees.id = leave_requests.employee_id").
		Where("employees.department_id = ?", departmentID).
		Where("leave_requests.employee_id <> ?", excludeEmployeeID).
		Where("leave_requests.status IN ?", []string{StatusPending, StatusApproved}).
		Where("leave_requests.to_date >= ?", today).
		Find(&leaves).Error
	return leaves, err
}

func (r *repository) CreateType(ctx context.Context, leaveType *LeaveType) error {
	return r.db.WithContext(ctx).Create(leaveType).Error
}

func (r *repository) FindTypeByID(ctx context.Context, companyID, id string) (*LeaveType, error) {
	var lt LeaveType
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&lt, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &lt, nil
}

func (r *repository) FindTypesByCompany(ctx context.Context, companyID string, activeOnly bool) ([]LeaveType, error) {
	var types []LeaveType
	q := r.db.WithContext(ctx).Scopes(tenant.Scope(companyID))
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	err := q.Order("name ASC").Find(&types).Error
	return types, err
}

func (r *repository) FindBalance(
	ctx context.Context,
	companyID, employeeID, leaveTypeID string,
	year int,
) (*LeaveBalance, error) {
	var b LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND leave_type_id = ? AND year = ?", employeeID, leaveTypeID, year).
		First(&b).Error
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repository) FindBalancesByEmployee(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalance, error) {
	var balances []LeaveBalance
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("employee_id = ? AND year = ?", employeeID, year).
		Find(&balances).Error
	return balances, err
}

func (r *repository) IncrementPendingDays(ctx context.Context, balanceID string, days decimal.Decimal) error {
	result := r.db.WithContext(ctx).
		Model(&LeaveBalance{}).
		Where("id = ?", balanceID).
		Updates(map[string]any{
			"pending_days": gorm.Expr("pending_days + ?", days),
			"updated_at":   time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

var balanceConflictColumns = []clause.Column{
	{Name: "employee_id"},
	{Name: "leave_type_id"},
	{Name: "year"},
}

func (r *repository) UpsertBalance(ctx context.Context, balance *LeaveBalance) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   balanceConflictColumns,
			DoUpdates: clause.AssignmentColumns([]string{"balance_days", "updated_at"}),
		}).
		Create(balance).Error
}

func (r *repository) InsertBalanceIfAbsent(ctx context.Context, balance *LeaveBalance) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: balanceConflictColumns, DoNothing: true}).
		Create(balance)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

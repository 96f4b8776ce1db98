package payroll

import (
	"context"
	"database/sql"
	"time"

	"go-hrcore/internal/shared/dbtx"
	"go-hrcore/internal/tenant"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository interface {
	WithTx(tx *sql.Tx) Repository

	CreateCycle(ctx context.Context, cycle *PayrollCycle) error
	FindCyclesByCompany(ctx context.Context, companyID string) ([]PayrollCycle, error)
	FindCycleByID(ctx context.Context, companyID, id string) (*PayrollCycle, error)
	UpdateCycleRollup(ctx context.Context, companyID, id string, rollup Rollup) error
	MarkCycleProcessed(ctx context.Context, companyID, id, actorID string, at time.Time) (bool, error)

	FindPayStub(ctx context.Context, companyID, cycleID, employeeID string) (*PayStub, error)
	FindPayStubByID(ctx context.Context, companyID, id string) (*PayStub, error)
	ListPayStubs(ctx context.Context, companyID, cycleID string) ([]PayStub, error)
	UpsertPayStub(ctx context.Context, stub *PayStub) error
	SetPayStubObjectKey(ctx context.Context, companyID, id, key string) error
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

func (r *repository) CreateCycle(ctx context.Context, cycle *PayrollCycle) error {
	return r.db.WithContext(ctx).Create(cycle).Error
}

func (r *repository) FindCyclesByCompany(ctx context.Context, companyID string) ([]PayrollCycle, error) {
	var cycles []PayrollCycle
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("start_date DESC").
		Find(&cycles).Error
	return cycles, err
}

func (r *repository) FindCycleByID(ctx context.Context, companyID, id string) (*PayrollCycle, error) {
	var cycle PayrollCycle
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&cycle, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &cycle, nil
}

// UpdateCycleRollup overwrites all rollup columns.
func (r *repository) UpdateCycleRollup(ctx context.Context, companyID, id string, rollup Rollup) error {
	return r.db.WithContext(ctx).
		Model(&PayrollCycle{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(map[string]any{
			"total_employees":  rollup.TotalEmployees,
			"total_gross":      rollup.TotalGross,
			"total_deductions": rollup.TotalDeductions,
			"total_net":        rollup.TotalNet,
			"warning_count":    rollup.WarningCount,
			"updated_at":       time.Now().UTC(),
		}).Error
}

// MarkCycleProcessed only flips an OPEN cycle. It reports false when the
// cycle was already processed by someone else.
func (r *repository) MarkCycleProcessed(ctx context.Context, companyID, id, actorID string, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&PayrollCycle{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ? AND status = ?", id, CycleStatusOpen).
		Updates(map[string]any{
			"status":       CycleStatusProcessed,
			"processed_at": at,
			"processed_by": actorID,
			"updated_at":   at,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) FindPayStub(ctx context.Context, companyID, cycleID, employeeID string) (*PayStub, error) {
	var stub PayStub
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_cycle_id = ? AND employee_id = ?", cycleID, employeeID).
		First(&stub).Error
	if err != nil {
		return nil, err
	}
	return &stub, nil
}

func (r *repository) FindPayStubByID(ctx context.Context, companyID, id string) (*PayStub, error) {
	var stub PayStub
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		First(&stub, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &stub, nil
}

func (r *repository) ListPayStubs(ctx context.Context, companyID, cycleID string) ([]PayStub, error) {
	var stubs []PayStub
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("payroll_cycle_id = ?", cycleID).
		Order("stub_number ASC").
		Find(&stubs).Error
	return stubs, err
}

// UpsertPayStub keeps the row id and stub number of an existing stub and
// overwrites the computed fields.
func (r *repository) UpsertPayStub(ctx context.Context, stub *PayStub) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "payroll_cycle_id"}, {Name: "employee_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"period_start",
				"period_end",
				"basic_salary",
				"earnings_breakdown",
				"deductions_breakdown",
				"gross_pay",
				"total_deductions",
				"net_pay",
				"status",
				"generated_at",
				"generated_by",
				"updated_at",
			}),
		}).
		Create(stub).Error
}

func (r *repository) SetPayStubObjectKey(ctx context.Context, companyID, id, key string) error {
	result := r.db.WithContext(ctx).
		Model(&PayStub{}).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Updates(map[string]any{
			"pdf_object_key": key,
			"updated_at":     time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

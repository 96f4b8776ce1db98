package counter

import (
	"context"
	"database/sql"
	"fmt"

	"go-hrcore/internal/shared/dbtx"

	"gorm.io/gorm"
)

const (
	TypeEmployeeNumber = "employee_number"
	typePayStubPrefix  = "pay_stub:"
)

// The first call for a (company, type) pair yields 1. Concurrent callers
// serialize on the row lock taken by the upsert, so no value is handed out twice.
const nextValueSQL = `INSERT INTO company_counters (company_id, counter_type, last_value, updated_at)
VALUES (?, ?, 1, now())
ON CONFLICT (company_id, counter_type)
DO UPDATE SET last_value = company_counters.last_value + 1, updated_at = now()
RETURNING last_value`

// PayStubType is the per-cycle counter used for pay-stub sequence numbers.
func PayStubType(cycleID string) string {
	return typePayStubPrefix + cycleID
}

type Repository interface {
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error)
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

func (r *repository) GetNextValue(ctx context.Context, companyID string, counterType string) (int64, error) {
	var next int64
	if err := r.db.WithContext(ctx).Raw(nextValueSQL, companyID, counterType).Scan(&next).Error; err != nil {
		return 0, fmt.Errorf("advance %s counter: %w", counterType, err)
	}
	return next, nil
}

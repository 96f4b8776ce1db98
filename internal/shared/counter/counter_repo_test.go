package counter_test

import (
	"context"
	"errors"
	"testing"

	"go-hrcore/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newGormMock(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: db}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)
	return gormDB, mock
}

func TestRepository_GetNextValue(t *testing.T) {
	t.Run("returns the advanced value", func(t *testing.T) {
		gormDB, mock := newGormMock(t)
		mock.ExpectQuery("INSERT INTO company_counters").
			WithArgs("company-1", counter.PayStubType("cycle-1")).
			WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(4)))

		next, err := counter.NewRepository(gormDB).GetNextValue(context.Background(), "company-1", counter.PayStubType("cycle-1"))

		require.NoError(t, err)
		assert.Equal(t, int64(4), next)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("runs inside the caller's transaction", func(t *testing.T) {
		gormDB, mock := newGormMock(t)
		sqlDB, err := gormDB.DB()
		require.NoError(t, err)

		mock.ExpectBegin()
		mock.ExpectQuery("INSERT INTO company_counters").
			WithArgs("company-1", counter.TypeEmployeeNumber).
			WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(1)))
		mock.ExpectRollback()

		tx, err := sqlDB.BeginTx(context.Background(), nil)
		require.NoError(t, err)

		next, err := counter.NewRepository(gormDB).WithTx(tx).GetNextValue(context.Background(), "company-1", counter.TypeEmployeeNumber)
		require.NoError(t, err)
		assert.Equal(t, int64(1), next)

		require.NoError(t, tx.Rollback())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wraps database errors", func(t *testing.T) {
		gormDB, mock := newGormMock(t)
		mock.ExpectQuery("INSERT INTO company_counters").
			WillReturnError(errors.New("connection refused"))

		_, err := counter.NewRepository(gormDB).GetNextValue(context.Background(), "company-1", counter.TypeEmployeeNumber)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "advance employee_number counter")
	})
}

func TestPayStubType(t *testing.T) {
	assert.Equal(t, "pay_stub:abc", counter.PayStubType("abc"))
}

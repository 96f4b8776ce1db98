package employee_test

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go-hrcore/internal/employee"
	employeeerrors "go-hrcore/internal/employee/errors"
	"go-hrcore/internal/events"
	"go-hrcore/internal/messaging/kafka"
	"go-hrcore/internal/shared/contextutil"
	"go-hrcore/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRepo struct {
	createFn      func(ctx context.Context, e *employee.Employee) error
	findAllFn     func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findOptionsFn func(ctx context.Context, companyID string) ([]employee.Employee, error)
	findByIDFn    func(ctx context.Context, companyID, id string) (*employee.Employee, error)
	listActiveFn  func(ctx context.Context, companyID string) ([]employee.Employee, error)
	countByRoleFn func(ctx context.Context, companyID, roleID string) (int64, error)
	updateFn      func(ctx context.Context, e *employee.Employee) error
	deleteFn      func(ctx context.Context, companyID, id string) error
}

func (f *fakeRepo) WithTx(_ *sql.Tx) employee.Repository { return f }
func (f *fakeRepo) Create(ctx context.Context, e *employee.Employee) error { return f.createFn(ctx, e) }
func (f *fakeRepo) FindAllByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.findAllFn(ctx, companyID)
}
func (f *fakeRepo) FindOptionsByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.findOptionsFn(ctx, companyID)
}
func (f *fakeRepo) FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error) {
	return f.findByIDFn(ctx, companyID, id)
}
func (f *fakeRepo) ListActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error) {
	return f.listActiveFn(ctx, companyID)
}
func (f *fakeRepo) CountByRole(ctx context.Context, companyID, roleID string) (int64, error) {
	return f.countByRoleFn(ctx, companyID, roleID)
}
func (f *fakeRepo) Update(ctx context.Context, e *employee.Employee) error { return f.updateFn(ctx, e) }
func (f *fakeRepo) Delete(ctx context.Context, companyID, id string) error {
	return f.deleteFn(ctx, companyID, id)
}

type fakeCounter struct {
	next int64
	err  error
}

func (f *fakeCounter) WithTx(_ *sql.Tx) counter.Repository { return f }
func (f *fakeCounter) GetNextValue(_ context.Context, _ string, counterType string) (int64, error) {
	if counterType != counter.TypeEmployeeNumber {
		return 0, errors.New("unexpected counter " + counterType)
	}
	return f.next, f.err
}

type fakeOutbox struct {
	created []kafka.OutboxEvent
	err     error
}

func (f *fakeOutbox) WithTx(_ *sql.Tx) kafka.OutboxRepository { return f }
func (f *fakeOutbox) Create(_ context.Context, e kafka.OutboxEvent) error {
	if f.err != nil {
		return f.err
	}
	f.created = append(f.created, e)
	return nil
}
func (f *fakeOutbox) ListPending(context.Context, int) ([]kafka.OutboxEvent, error) { return nil, nil }
func (f *fakeOutbox) MarkSent(context.Context, string) error                        { return nil }
func (f *fakeOutbox) MarkFailed(context.Context, string, string) error              { return nil }

type serviceDeps struct {
	sqlMock   sqlmock.Sqlmock
	redisMock redismock.ClientMock
	repo      *fakeRepo
	counter   *fakeCounter
	outbox    *fakeOutbox
	service   employee.Service
}

func setupServiceTest(t *testing.T) *serviceDeps {
	t.Helper()
	db, sqlMock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	rdb, redisMock := redismock.NewClientMock()
	deps := &serviceDeps{
		sqlMock:   sqlMock,
		redisMock: redisMock,
		repo:      &fakeRepo{},
		counter:   &fakeCounter{next: 123},
		outbox:    &fakeOutbox{},
	}
	deps.service = employee.NewService(db, deps.repo, deps.counter, deps.outbox, rdb)
	return deps
}

func expectTx(t *testing.T, mock sqlmock.Sqlmock, commit bool) {
	t.Helper()
	mock.ExpectBegin()
	if commit {
		mock.ExpectCommit()
	} else {
		mock.ExpectRollback()
	}
}

func TestEmployeeService_Create(t *testing.T) {
	companyID := uuid.New().String()

	t.Run("success - auto generate employee number and queue event", func(t *testing.T) {
		deps := setupServiceTest(t)
		ctx := contextutil.WithRequestID(context.Background(), "REQ-123")
		req := employee.CreateEmployeeRequest{
			FullName:          "  Rina Putri ",
			Email:             "Rina@Example.com",
			HireDate:          "2026-03-01",
			BankName:          "BCA",
			BankAccountNumber: "123",
			BankAccountHolder: "Rina Putri",
		}

		expectTx(t, deps.sqlMock, true)
		deps.repo.createFn = func(_ context.Context, e *employee.Employee) error {
			assert.Equal(t, "EMP-000123", e.EmployeeNumber)
			assert.Equal(t, "Rina Putri", e.FullName)
			assert.Equal(t, "rina@example.com", e.Email)
			assert.Equal(t, employee.StatusActive, e.Status)
			assert.Equal(t, companyID, e.CompanyID.String())
			return nil
		}
		deps.redisMock.ExpectDel(employee.GetEmployeeOptionsKey(companyID)).SetVal(1)

		resp, err := deps.service.Create(ctx, companyID, req)

		require.NoError(t, err)
		assert.Equal(t, "EMP-000123", resp.EmployeeNumber)
		require.Len(t, deps.outbox.created, 1)

		event := deps.outbox.created[0]
		assert.Equal(t, "REQ-123", event.RequestID)
		assert.Equal(t, events.EmployeeCreatedTopic, event.Topic)
		assert.Equal(t, resp.ID, event.AggregateID)

		var payload events.EmployeeCreatedEvent
		require.NoError(t, json.Unmarshal(event.Payload, &payload))
		assert.Equal(t, 2026, payload.HireYear)
		assert.Equal(t, companyID, payload.CompanyID)

		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})

	t.Run("invalid hire date never opens a transaction", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(context.Background(), companyID, employee.CreateEmployeeRequest{
			FullName: "A", Email: "a@example.com", HireDate: "01/03/2026",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrInvalidHireDate)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("duplicate employee number -> conflict, rollback", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(context.Context, *employee.Employee) error {
			return &pgconn.PgError{Code: "23505", ConstraintName: "uq_employee_number"}
		}

		_, err := deps.service.Create(context.Background(), companyID, employee.CreateEmployeeRequest{
			FullName: "A", Email: "a@example.com", HireDate: "2026-01-01", EmployeeNumber: "EMP-1",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNumberAlreadyExists)
		assert.Empty(t, deps.outbox.created)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("outbox failure rolls back", func(t *testing.T) {
		deps := setupServiceTest(t)
		deps.outbox.err = errors.New("outbox down")
		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(context.Context, *employee.Employee) error { return nil }

		_, err := deps.service.Create(context.Background(), companyID, employee.CreateEmployeeRequest{
			FullName: "A", Email: "a@example.com", HireDate: "2026-01-01",
		})

		assert.EqualError(t, err, "outbox down")
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("malformed company id never opens a transaction", func(t *testing.T) {
		deps := setupServiceTest(t)

		assert.NotPanics(t, func() {
			_, err := deps.service.Create(context.Background(), "company-x", employee.CreateEmployeeRequest{
				FullName: "A", Email: "a@example.com", HireDate: "2026-01-01",
			})
			assert.ErrorIs(t, err, employeeerrors.ErrInvalidCompanyID)
		})
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("partial bank details rejected before tx", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Create(context.Background(), companyID, employee.CreateEmployeeRequest{
			FullName: "A", Email: "a@example.com", HireDate: "2026-01-01", BankName: "BCA",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrIncompleteBankDetails)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown role -> invalid reference", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.createFn = func(context.Context, *employee.Employee) error {
			return &pgconn.PgError{Code: "23503", ConstraintName: "fk_employees_role"}
		}

		_, err := deps.service.Create(context.Background(), companyID, employee.CreateEmployeeRequest{
			FullName: "A", Email: "a@example.com", HireDate: "2026-01-01", EmployeeNumber: "EMP-2",
			RoleID: uuid.New().String(),
		})

		assert.ErrorIs(t, err, employeeerrors.ErrUnknownReference)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_GetAll(t *testing.T) {
	deps := setupServiceTest(t)
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		deps.repo.findAllFn = func(_ context.Context, cid string) ([]employee.Employee, error) {
			assert.Equal(t, companyID, cid)
			return []employee.Employee{
				{ID: uuid.New(), FullName: "Andi", Email: "andi@comp.com"},
				{ID: uuid.New(), FullName: "Budi", Email: "budi@comp.com"},
			}, nil
		}

		resp, err := deps.service.GetAll(context.Background(), companyID)

		assert.NoError(t, err)
		assert.Len(t, resp, 2)
		assert.Equal(t, "Andi", resp[0].FullName)
	})

	t.Run("error repository", func(t *testing.T) {
		deps.repo.findAllFn = func(context.Context, string) ([]employee.Employee, error) {
			return nil, errors.New("db error")
		}

		resp, err := deps.service.GetAll(context.Background(), companyID)

		assert.Error(t, err)
		assert.Nil(t, resp)
	})
}

func TestEmployeeService_GetOptions(t *testing.T) {
	ctx := context.Background()

	t.Run("cache hit skips the database", func(t *testing.T) {
		deps := setupServiceTest(t)
		companyID := uuid.New().String()
		cached, _ := json.Marshal([]employee.EmployeeOptionResponse{{ID: "1", FullName: "Caca", EmployeeNumber: "EMP001"}})
		deps.redisMock.ExpectGet(employee.GetEmployeeOptionsKey(companyID)).SetVal(string(cached))
		deps.repo.findOptionsFn = func(context.Context, string) ([]employee.Employee, error) {
			t.Fatal("repository must not be called on cache hit")
			return nil, nil
		}

		resp, err := deps.service.GetOptions(ctx, companyID)

		assert.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Caca", resp[0].FullName)
	})

	t.Run("cache miss loads and stores", func(t *testing.T) {
		deps := setupServiceTest(t)
		companyID := uuid.New().String()
		cacheKey := employee.GetEmployeeOptionsKey(companyID)
		id := uuid.New()

		deps.redisMock.ExpectGet(cacheKey).RedisNil()
		deps.repo.findOptionsFn = func(_ context.Context, cid string) ([]employee.Employee, error) {
			return []employee.Employee{{ID: id, FullName: "Deni", EmployeeNumber: "EMP002"}}, nil
		}
		expected, _ := json.Marshal([]employee.EmployeeOptionResponse{{ID: id.String(), FullName: "Deni", EmployeeNumber: "EMP002"}})
		deps.redisMock.ExpectSet(cacheKey, expected, time.Hour).SetVal("OK")

		resp, err := deps.service.GetOptions(ctx, companyID)

		assert.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "Deni", resp[0].FullName)
		assert.NoError(t, deps.redisMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_Update(t *testing.T) {
	companyID := uuid.New().String()
	id := uuid.New()

	t.Run("success", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, true)
		deps.repo.findByIDFn = func(context.Context, string, string) (*employee.Employee, error) {
			return &employee.Employee{ID: id, EmployeeNumber: "EMP-000001", Status: employee.StatusActive}, nil
		}
		deps.repo.updateFn = func(_ context.Context, e *employee.Employee) error {
			assert.Equal(t, "EMP-000001", e.EmployeeNumber)
			assert.Equal(t, employee.StatusInactive, e.Status)
			return nil
		}
		deps.redisMock.ExpectDel(employee.GetEmployeeOptionsKey(companyID)).SetVal(1)

		resp, err := deps.service.Update(context.Background(), companyID, id.String(), employee.UpdateEmployeeRequest{
			FullName: "Nina", Email: "nina@example.com", HireDate: "2025-01-01", Status: employee.StatusInactive,
		})

		require.NoError(t, err)
		assert.Equal(t, employee.StatusInactive, resp.Status)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		deps := setupServiceTest(t)
		expectTx(t, deps.sqlMock, false)
		deps.repo.findByIDFn = func(context.Context, string, string) (*employee.Employee, error) {
			return nil, sql.ErrNoRows
		}

		_, err := deps.service.Update(context.Background(), companyID, id.String(), employee.UpdateEmployeeRequest{
			FullName: "Nina", Email: "nina@example.com", HireDate: "2025-01-01", Status: employee.StatusActive,
		})

		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})

	t.Run("partial bank details rejected before tx", func(t *testing.T) {
		deps := setupServiceTest(t)

		_, err := deps.service.Update(context.Background(), companyID, id.String(), employee.UpdateEmployeeRequest{
			FullName: "Nina", Email: "nina@example.com", HireDate: "2025-01-01", Status: employee.StatusActive,
			BankAccountNumber: "987",
		})

		assert.ErrorIs(t, err, employeeerrors.ErrIncompleteBankDetails)
		assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
	})
}

func TestEmployeeService_Delete(t *testing.T) {
	deps := setupServiceTest(t)
	companyID := uuid.New().String()

	expectTx(t, deps.sqlMock, true)
	deps.repo.deleteFn = func(context.Context, string, string) error { return nil }
	deps.redisMock.ExpectDel(employee.GetEmployeeOptionsKey(companyID)).SetVal(1)

	err := deps.service.Delete(context.Background(), companyID, uuid.NewString())

	assert.NoError(t, err)
	assert.NoError(t, deps.sqlMock.ExpectationsWereMet())
}

func TestEmployee_HasBankDetails(t *testing.T) {
	full := employee.Employee{BankName: "BCA", BankAccountNumber: "1", BankAccountHolder: "A"}
	assert.True(t, full.HasBankDetails())

	blankHolder := full
	blankHolder.BankAccountHolder = "  "
	assert.False(t, blankHolder.HasBankDetails())
}

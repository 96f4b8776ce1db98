package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	employeeerrors "go-hrcore/internal/employee/errors"
	"go-hrcore/internal/events"
	"go-hrcore/internal/messaging/kafka"
	"go-hrcore/internal/shared/contextutil"
	"go-hrcore/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKeyPrefix = "employees:options:"
	dateLayout               = "2006-01-02"
)

func GetEmployeeOptionsKey(companyID string) string {
	return EmployeeOptionsKeyPrefix + companyID
}

type Service interface {
	Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error)
	GetAll(ctx context.Context, companyID string) ([]EmployeeResponse, error)
	GetOptions(ctx context.Context, companyID string) ([]EmployeeOptionResponse, error)
	GetByID(ctx context.Context, companyID, id string) (EmployeeResponse, error)
	Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	Delete(ctx context.Context, companyID, id string) error
}

type service struct {
	db      *sql.DB
	repo    Repository
	counter counter.Repository
	outbox  kafka.OutboxRepository
	rdb     *redis.Client
	sf      *singleflight.Group
	logger  *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		counter: counter,
		outbox:  outbox,
		rdb:     rdb,
		sf:      &singleflight.Group{},
		logger:  l,
	}
}

// inTx commits when fn succeeds and rolls back otherwise.
func (s *service) inTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}

// parseInput checks what binding tags cannot express. Update requests share
// the create request's field set and are converted before the call.
func parseInput(req CreateEmployeeRequest) (time.Time, error) {
	hireDate, err := time.Parse(dateLayout, req.HireDate)
	if err != nil {
		return time.Time{}, employeeerrors.ErrInvalidHireDate
	}
	if err := validateBankDetails(req.BankName, req.BankAccountNumber, req.BankAccountHolder); err != nil {
		return time.Time{}, err
	}
	return hireDate, nil
}

// applyInput copies normalized request fields onto e. An empty employee
// number or status leaves the current value in place.
func applyInput(e *Employee, req CreateEmployeeRequest, hireDate time.Time) {
	e.FullName = strings.TrimSpace(req.FullName)
	e.Email = strings.ToLower(strings.TrimSpace(req.Email))
	e.HireDate = hireDate
	e.DepartmentID = uuidPtr(req.DepartmentID)
	e.RoleID = uuidPtr(req.RoleID)
	e.BankName = strings.TrimSpace(req.BankName)
	e.BankAccountNumber = strings.TrimSpace(req.BankAccountNumber)
	e.BankAccountHolder = strings.TrimSpace(req.BankAccountHolder)
	if req.EmployeeNumber != "" {
		e.EmployeeNumber = req.EmployeeNumber
	}
	if req.Status != "" {
		e.Status = req.Status
	}
}

func (s *service) Create(ctx context.Context, companyID string, req CreateEmployeeRequest) (EmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := s.logger.With(zap.String("request_id", rid), zap.String("company_id", companyID))
	log.Debug("create employee requested", zap.String("email", req.Email))

	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return EmployeeResponse{}, employeeerrors.ErrInvalidCompanyID
	}
	hireDate, err := parseInput(req)
	if err != nil {
		log.Warn("create employee rejected", zap.Error(err))
		return EmployeeResponse{}, err
	}

	empl := &Employee{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Status:    StatusActive,
	}
	applyInput(empl, req, hireDate)

	err = s.inTx(ctx, func(tx *sql.Tx) error {
		if empl.EmployeeNumber == "" {
			next, err := s.counter.WithTx(tx).GetNextValue(ctx, companyID, counter.TypeEmployeeNumber)
			if err != nil {
				return err
			}
			empl.EmployeeNumber = fmt.Sprintf("EMP-%06d", next)
		}
		if err := s.repo.WithTx(tx).Create(ctx, empl); err != nil {
			return mapRepositoryError(err)
		}
		return s.enqueueCreated(ctx, tx, rid, empl)
	})
	if err != nil {
		log.Error("create employee failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)
	log.Info("create employee success",
		zap.String("employee_id", empl.ID.String()),
		zap.Bool("outbox_queued", s.outbox != nil),
	)
	return mapToResponse(*empl), nil
}

// enqueueCreated records EmployeeCreated in the outbox inside tx so the
// event exists exactly when the employee row does.
func (s *service) enqueueCreated(ctx context.Context, tx *sql.Tx, rid string, empl *Employee) error {
	if s.outbox == nil {
		return nil
	}
	id := empl.ID.String()
	event, err := kafka.NewOutboxEvent(rid, "employee", id,
		events.EmployeeCreatedEventType,
		events.EmployeeCreatedTopic,
		events.EmployeeCreatedEvent{
			EventType:  events.EmployeeCreatedEventType,
			RequestID:  rid,
			EmployeeID: id,
			CompanyID:  empl.CompanyID.String(),
			HireYear:   empl.HireDate.Year(),
			OccurredAt: time.Now().UTC(),
		},
	)
	if err != nil {
		return err
	}
	return s.outbox.WithTx(tx).Create(ctx, event)
}

func (s *service) GetAll(
	ctx context.Context,
	companyID string,
) ([]EmployeeResponse, error) {
	s.logger.Debug("get all employees requested", zap.String("company_id", companyID))
	empls, err := s.repo.FindAllByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, mapRepositoryError(err)
	}

	return mapToListResponse(empls), nil
}

func (s *service) GetOptions(ctx context.Context, companyID string) ([]EmployeeOptionResponse, error) {
	cacheKey := GetEmployeeOptionsKey(companyID)

	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp []EmployeeOptionResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		empls, err := s.repo.FindOptionsByCompany(ctx, companyID)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOptionResponse, len(empls))
		for i, e := range empls {
			resp[i] = EmployeeOptionResponse{
				ID:             e.ID.String(),
				EmployeeNumber: e.EmployeeNumber,
				FullName:       e.FullName,
			}
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, cacheKey, jsonData, time.Hour).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.String("key", cacheKey), zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOptionResponse), nil
}

func (s *service) GetByID(
	ctx context.Context,
	companyID, id string,
) (EmployeeResponse, error) {
	s.logger.Debug("get employee by id requested",
		zap.String("company_id", companyID),
		zap.String("employee_id", id),
	)
	empl, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		s.logger.Error("get employee by id failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

func (s *service) Update(ctx context.Context, companyID, id string, req UpdateEmployeeRequest) (EmployeeResponse, error) {
	log := s.logger.With(zap.String("company_id", companyID), zap.String("employee_id", id))
	log.Debug("update employee requested")

	input := CreateEmployeeRequest(req)
	hireDate, err := parseInput(input)
	if err != nil {
		log.Warn("update employee rejected", zap.Error(err))
		return EmployeeResponse{}, err
	}

	var empl *Employee
	err = s.inTx(ctx, func(tx *sql.Tx) error {
		repo := s.repo.WithTx(tx)
		current, err := repo.FindByIDAndCompany(ctx, companyID, id)
		if err != nil {
			return mapRepositoryError(err)
		}
		applyInput(current, input, hireDate)
		if err := repo.Update(ctx, current); err != nil {
			return mapRepositoryError(err)
		}
		empl = current
		return nil
	})
	if err != nil {
		log.Error("update employee failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx, companyID)
	log.Info("update employee success")
	return mapToResponse(*empl), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	log := s.logger.With(zap.String("company_id", companyID), zap.String("employee_id", id))

	err := s.inTx(ctx, func(tx *sql.Tx) error {
		return mapRepositoryError(s.repo.WithTx(tx).Delete(ctx, companyID, id))
	})
	if err != nil {
		log.Error("delete employee failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx, companyID)
	log.Info("delete employee success")
	return nil
}

func (s *service) invalidateOptions(ctx context.Context, companyID string) {
	if s.rdb == nil {
		return
	}
	cacheKey := GetEmployeeOptionsKey(companyID)
	if err := s.rdb.Del(ctx, cacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", cacheKey),
		)
	}
}

func mapToResponse(empl Employee) EmployeeResponse {
	return EmployeeResponse{
		ID:                empl.ID.String(),
		CompanyID:         empl.CompanyID.String(),
		EmployeeNumber:    empl.EmployeeNumber,
		FullName:          empl.FullName,
		Email:             empl.Email,
		HireDate:          empl.HireDate.Format(dateLayout),
		DepartmentID:      uuidToString(empl.DepartmentID),
		RoleID:            uuidToString(empl.RoleID),
		BankName:          empl.BankName,
		BankAccountNumber: empl.BankAccountNumber,
		BankAccountHolder: empl.BankAccountHolder,
		Status:            empl.Status,
	}
}

func mapToListResponse(empls []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(empls))
	for i, e := range empls {
		res[i] = mapToResponse(e)
	}
	return res
}

func uuidPtr(v string) *uuid.UUID {
	id, err := uuid.Parse(v)
	if err != nil {
		return nil
	}
	return &id
}

func uuidToString(v *uuid.UUID) string {
	if v == nil {
		return ""
	}
	return v.String()
}

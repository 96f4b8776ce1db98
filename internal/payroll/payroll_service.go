package payroll

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go-hrcore/internal/auditlog"
	"go-hrcore/internal/employee"
	"go-hrcore/internal/events"
	"go-hrcore/internal/messaging/kafka"
	payrollerrors "go-hrcore/internal/payroll/errors"
	"go-hrcore/internal/shared/apperror"
	"go-hrcore/internal/shared/contextutil"
	"go-hrcore/internal/shared/counter"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	dateLayout        = "2006-01-02"
	lineItemsCacheTTL = 10 * time.Minute
	payStubMaxTries   = 3
)

func LineItemsCacheKey(cycleID string) string {
	return "payroll:line_items:" + cycleID
}

type EmployeeDirectory interface {
	ListActiveByCompany(ctx context.Context, companyID string) ([]employee.Employee, error)
	FindByIDAndCompany(ctx context.Context, companyID, id string) (*employee.Employee, error)
}

type Service interface {
	CreateCycle(ctx context.Context, companyID, actorID string, req CreateCycleRequest) (CycleResponse, error)
	GetAll(ctx context.Context, companyID string) ([]CycleResponse, error)
	GetByID(ctx context.Context, companyID, cycleID string) (CycleResponse, error)
	ComputeCycle(ctx context.Context, companyID, cycleID string) (LineItemsResponse, error)
	ListLineItems(ctx context.Context, companyID, cycleID string) (LineItemsResponse, error)
	GeneratePayStub(ctx context.Context, companyID, actorID, cycleID, employeeID string) (PayStubResponse, error)
	ListPayStubs(ctx context.Context, companyID, cycleID string) ([]PayStubResponse, error)
	MarkProcessed(ctx context.Context, companyID, actorID, cycleID string) (CycleResponse, error)
	RenderPayStub(ctx context.Context, companyID, payStubID string) (string, error)
	PayStubDownloadURL(ctx context.Context, companyID, payStubID string) (DownloadURLResponse, error)
}

// Dependencies are the collaborators payroll computation needs. Cache and
// Documents are optional.
type Dependencies struct {
	Employees  EmployeeDirectory
	Salaries   SalaryLookup
	Calculator Calculator
	Counter    counter.Repository
	Outbox     kafka.OutboxRepository
	Audit      auditlog.Logger
	Cache      *redis.Client
	Documents  DocumentStore
	Compute    ComputeOptions
}

type service struct {
	db     *sql.DB
	repo   Repository
	deps   Dependencies
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if deps.Audit == nil {
		deps.Audit = auditlog.NewZapLogger()
	}
	return &service{
		db:     db,
		repo:   repo,
		deps:   deps,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) CreateCycle(ctx context.Context, companyID, actorID string, req CreateCycleRequest) (CycleResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return CycleResponse{}, payrollerrors.ErrInvalidCompanyID
	}
	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return CycleResponse{}, payrollerrors.ErrInvalidActorID
	}
	start, err := parseDate(req.StartDate)
	if err != nil {
		return CycleResponse{}, err
	}
	end, err := parseDate(req.EndDate)
	if err != nil {
		return CycleResponse{}, err
	}
	if start.After(end) {
		return CycleResponse{}, payrollerrors.ErrInvalidDateRange
	}

	cycle := &PayrollCycle{
		ID:        uuid.New(),
		CompanyID: companyUUID,
		Name:      strings.TrimSpace(req.Name),
		StartDate: start,
		EndDate:   end,
		Status:    CycleStatusOpen,
		CreatedBy: actorUUID,
	}
	if err := s.repo.CreateCycle(ctx, cycle); err != nil {
		s.logger.Error("create payroll cycle failed", zap.Error(err))
		return CycleResponse{}, err
	}

	s.logger.Info("create payroll cycle success", zap.String("cycle_id", cycle.ID.String()))
	return mapCycleToResponse(*cycle), nil
}

func (s *service) GetAll(ctx context.Context, companyID string) ([]CycleResponse, error) {
	cycles, err := s.repo.FindCyclesByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("list payroll cycles failed", zap.Error(err))
		return nil, err
	}
	res := make([]CycleResponse, len(cycles))
	for i, c := range cycles {
		res[i] = mapCycleToResponse(c)
	}
	return res, nil
}

func (s *service) GetByID(ctx context.Context, companyID, cycleID string) (CycleResponse, error) {
	cycle, err := s.findCycle(ctx, s.repo, companyID, cycleID)
	if err != nil {
		return CycleResponse{}, err
	}
	return mapCycleToResponse(*cycle), nil
}

// ComputeCycle computes every active employee, overwrites the cycle rollup
// and caches the line items. Concurrent calls for one cycle share a run.
func (s *service) ComputeCycle(ctx context.Context, companyID, cycleID string) (LineItemsResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("compute payroll cycle requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("cycle_id", cycleID),
	)

	cycle, err := s.findCycle(ctx, s.repo, companyID, cycleID)
	if err != nil {
		return LineItemsResponse{}, err
	}
	if cycle.IsProcessed() {
		return LineItemsResponse{}, payrollerrors.ErrCycleAlreadyProcessed
	}

	v, err, shared := s.sf.Do("compute:"+cycleID, func() (interface{}, error) {
		return s.computeAndStore(context.WithoutCancel(ctx), *cycle)
	})
	if err != nil {
		return LineItemsResponse{}, err
	}
	if shared {
		s.logger.Debug("compute payroll cycle shared result", zap.String("cycle_id", cycleID))
	}
	return v.(LineItemsResponse), nil
}

func (s *service) computeAndStore(ctx context.Context, cycle PayrollCycle) (LineItemsResponse, error) {
	companyID := cycle.CompanyID.String()
	cycleID := cycle.ID.String()

	employees, err := s.deps.Employees.ListActiveByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("compute payroll list employees failed", zap.String("cycle_id", cycleID), zap.Error(err))
		return LineItemsResponse{}, err
	}

	started := time.Now()
	items := ComputeLineItems(ctx, cycle, employees, s.deps.Salaries, s.deps.Calculator, s.deps.Compute)
	rollup := Summarize(items)

	if err := s.repo.UpdateCycleRollup(ctx, companyID, cycleID, rollup); err != nil {
		s.logger.Error("compute payroll persist rollup failed", zap.String("cycle_id", cycleID), zap.Error(err))
		return LineItemsResponse{}, err
	}
	cycle.TotalEmployees = rollup.TotalEmployees
	cycle.TotalGross = rollup.TotalGross
	cycle.TotalDeductions = rollup.TotalDeductions
	cycle.TotalNet = rollup.TotalNet
	cycle.WarningCount = rollup.WarningCount

	resp := LineItemsResponse{
		Cycle:      mapCycleToResponse(cycle),
		Items:      items,
		ErrorCount: rollup.ErrorCount,
	}
	s.cacheLineItems(ctx, cycleID, resp)

	s.logger.Info("compute payroll cycle success",
		zap.String("cycle_id", cycleID),
		zap.Int("employees", rollup.TotalEmployees),
		zap.Int("errors", rollup.ErrorCount),
		zap.Int("warnings", rollup.WarningCount),
		zap.Duration("took", time.Since(started)),
	)
	return resp, nil
}

func (s *service) cacheLineItems(ctx context.Context, cycleID string, resp LineItemsResponse) {
	if s.deps.Cache == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		return
	}
	key := LineItemsCacheKey(cycleID)
	if err := s.deps.Cache.Set(ctx, key, data, lineItemsCacheTTL).Err(); err != nil {
		s.logger.Warn("cache payroll line items failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *service) ListLineItems(ctx context.Context, companyID, cycleID string) (LineItemsResponse, error) {
	cycle, err := s.findCycle(ctx, s.repo, companyID, cycleID)
	if err != nil {
		return LineItemsResponse{}, err
	}

	if s.deps.Cache != nil {
		if cached, err := s.deps.Cache.Get(ctx, LineItemsCacheKey(cycleID)).Bytes(); err == nil {
			var resp LineItemsResponse
			if json.Unmarshal(cached, &resp) == nil {
				resp.Cycle = mapCycleToResponse(*cycle)
				return resp, nil
			}
		}
	}

	if cycle.IsProcessed() {
		employees, err := s.deps.Employees.ListActiveByCompany(ctx, companyID)
		if err != nil {
			return LineItemsResponse{}, err
		}
		items := ComputeLineItems(ctx, *cycle, employees, s.deps.Salaries, s.deps.Calculator, s.deps.Compute)
		return LineItemsResponse{
			Cycle:      mapCycleToResponse(*cycle),
			Items:      items,
			ErrorCount: Summarize(items).ErrorCount,
		}, nil
	}
	return s.ComputeCycle(ctx, companyID, cycleID)
}

// GeneratePayStub computes one employee and upserts their stub. A stub that
// already exists keeps its number.
func (s *service) GeneratePayStub(ctx context.Context, companyID, actorID, cycleID, employeeID string) (PayStubResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("generate pay stub requested",
		zap.String("request_id", rid),
		zap.String("cycle_id", cycleID),
		zap.String("employee_id", employeeID),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return PayStubResponse{}, payrollerrors.ErrInvalidActorID
	}
	if _, err := uuid.Parse(employeeID); err != nil {
		return PayStubResponse{}, payrollerrors.ErrInvalidEmployeeID
	}

	cycle, err := s.findCycle(ctx, s.repo, companyID, cycleID)
	if err != nil {
		return PayStubResponse{}, err
	}
	if cycle.IsProcessed() {
		return PayStubResponse{}, payrollerrors.ErrCycleAlreadyProcessed
	}

	empl, err := s.deps.Employees.FindByIDAndCompany(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return PayStubResponse{}, payrollerrors.ErrEmployeeNotInCycle
		}
		return PayStubResponse{}, err
	}
	if !empl.IsActive() {
		return PayStubResponse{}, payrollerrors.ErrEmployeeNotInCycle
	}

	item := ComputeLineItems(ctx, *cycle, []employee.Employee{*empl}, s.deps.Salaries, s.deps.Calculator, s.deps.Compute)[0]
	if item.Status == LineItemError {
		s.logger.Warn("generate pay stub blocked",
			zap.String("employee_id", employeeID),
			zap.String("reason", item.WarningMessage),
		)
		return PayStubResponse{}, apperror.Detailed(
			payrollerrors.ErrEmployeeHasErrors,
			fmt.Sprintf("Pay stub cannot be generated: %s", item.WarningMessage),
			map[string]string{"employee_id": employeeID, "reason": item.WarningMessage},
		)
	}

	var stub *PayStub
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = 100 * time.Millisecond
	err = backoff.Retry(func() error {
		var opErr error
		stub, opErr = s.persistPayStub(ctx, *cycle, item, actorUUID, rid)
		if opErr != nil && !apperror.Retryable(opErr) {
			return backoff.Permanent(opErr)
		}
		if opErr != nil {
			s.logger.Warn("persist pay stub attempt failed", zap.String("employee_id", employeeID), zap.Error(opErr))
		}
		return opErr
	}, backoff.WithContext(backoff.WithMaxRetries(policy, payStubMaxTries-1), ctx))
	if err != nil {
		s.logger.Error("generate pay stub failed", zap.String("employee_id", employeeID), zap.Error(err))
		return PayStubResponse{}, err
	}

	s.logger.Info("generate pay stub success",
		zap.String("request_id", rid),
		zap.String("pay_stub_id", stub.ID.String()),
		zap.String("stub_number", stub.StubNumber),
	)
	return mapPayStubToResponse(*stub), nil
}

// persistPayStub runs the whole upsert in one transaction so a retry starts
// from a clean state.
func (s *service) persistPayStub(ctx context.Context, cycle PayrollCycle, item LineItem, actor uuid.UUID, rid string) (*PayStub, error) {
	companyID := cycle.CompanyID.String()
	cycleID := cycle.ID.String()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	// existing stays nil for a first generation so the new row keeps its fresh id.
	var existing *PayStub
	stubNumber := ""
	found, err := qtx.FindPayStub(ctx, companyID, cycleID, item.EmployeeID)
	switch {
	case err == nil:
		existing = found
		stubNumber = found.StubNumber
	case errors.Is(err, gorm.ErrRecordNotFound):
		seq, err := s.deps.Counter.WithTx(tx).GetNextValue(ctx, companyID, counter.PayStubType(cycleID))
		if err != nil {
			return nil, err
		}
		stubNumber = FormatStubNumber(cycle.StartDate, seq)
	default:
		return nil, err
	}

	now := time.Now().UTC()
	stub := &PayStub{
		ID:                  uuid.New(),
		CompanyID:           cycle.CompanyID,
		PayrollCycleID:      cycle.ID,
		EmployeeID:          uuid.MustParse(item.EmployeeID),
		StubNumber:          stubNumber,
		PeriodStart:         cycle.StartDate,
		PeriodEnd:           cycle.EndDate,
		BasicSalary:         item.BasicSalary,
		EarningsBreakdown:   item.EarningsBreakdown,
		DeductionsBreakdown: item.DeductionsBreakdown,
		GrossPay:            item.GrossPay,
		TotalDeductions:     item.TotalDeductions,
		NetPay:              item.NetPay,
		Status:              PayStubStatusGenerated,
		GeneratedAt:         now,
		GeneratedBy:         actor,
	}
	if existing != nil {
		stub.ID = existing.ID
		stub.CreatedAt = existing.CreatedAt
	}

	if err := qtx.UpsertPayStub(ctx, stub); err != nil {
		return nil, err
	}
	stored, err := qtx.FindPayStub(ctx, companyID, cycleID, item.EmployeeID)
	if err != nil {
		return nil, err
	}

	if s.deps.Outbox != nil {
		event, err := kafka.NewOutboxEvent(
			rid,
			"pay_stub",
			stored.ID.String(),
			events.PayStubRenderRequestedEventType,
			events.PayStubRenderRequestedTopic,
			events.PayStubRenderRequestedEvent{
				EventType:   events.PayStubRenderRequestedEventType,
				RequestID:   rid,
				PayStubID:   stored.ID.String(),
				CycleID:     cycleID,
				CompanyID:   companyID,
				RequestedBy: actor.String(),
				OccurredAt:  now,
			},
		)
		if err != nil {
			return nil, err
		}
		if err := s.deps.Outbox.WithTx(tx).Create(ctx, event); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return stored, nil
}

// FormatStubNumber renders PS-{year}-{month}-{seq} for the cycle's month.
func FormatStubNumber(periodStart time.Time, seq int64) string {
	return fmt.Sprintf("PS-%d-%02d-%03d", periodStart.Year(), int(periodStart.Month()), seq)
}

func (s *service) ListPayStubs(ctx context.Context, companyID, cycleID string) ([]PayStubResponse, error) {
	if _, err := s.findCycle(ctx, s.repo, companyID, cycleID); err != nil {
		return nil, err
	}
	stubs, err := s.repo.ListPayStubs(ctx, companyID, cycleID)
	if err != nil {
		s.logger.Error("list pay stubs failed", zap.String("cycle_id", cycleID), zap.Error(err))
		return nil, err
	}
	res := make([]PayStubResponse, len(stubs))
	for i, st := range stubs {
		res[i] = mapPayStubToResponse(st)
	}
	return res, nil
}

// MarkProcessed closes a cycle. It recomputes first and refuses while any
// employee is in error or has no pay stub. There is no way back to OPEN.
func (s *service) MarkProcessed(ctx context.Context, companyID, actorID, cycleID string) (CycleResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("mark payroll processed requested",
		zap.String("request_id", rid),
		zap.String("cycle_id", cycleID),
		zap.String("actor_id", actorID),
	)

	if _, err := uuid.Parse(actorID); err != nil {
		return CycleResponse{}, payrollerrors.ErrInvalidActorID
	}

	cycle, err := s.findCycle(ctx, s.repo, companyID, cycleID)
	if err != nil {
		return CycleResponse{}, err
	}
	if cycle.IsProcessed() {
		return CycleResponse{}, payrollerrors.ErrCycleAlreadyProcessed
	}

	computed, err := s.computeAndStore(ctx, *cycle)
	if err != nil {
		return CycleResponse{}, err
	}
	if ids := errorEmployeeIDs(computed.Items); len(ids) > 0 {
		s.logger.Warn("mark payroll processed blocked by errors",
			zap.String("cycle_id", cycleID),
			zap.Int("errors", len(ids)),
		)
		return CycleResponse{}, apperror.Detailed(
			payrollerrors.ErrCycleHasErrors,
			fmt.Sprintf("Payroll cycle has %d employee(s) in error", len(ids)),
			map[string]any{"error_count": len(ids), "employee_ids": ids},
		)
	}

	stubs, err := s.repo.ListPayStubs(ctx, companyID, cycleID)
	if err != nil {
		return CycleResponse{}, err
	}
	withStub := make(map[string]struct{}, len(stubs))
	for _, st := range stubs {
		withStub[st.EmployeeID.String()] = struct{}{}
	}
	var missing []string
	for _, it := range computed.Items {
		if _, ok := withStub[it.EmployeeID]; !ok {
			missing = append(missing, it.EmployeeID)
		}
	}
	if len(missing) > 0 {
		s.logger.Warn("mark payroll processed blocked by missing stubs",
			zap.String("cycle_id", cycleID),
			zap.Int("missing", len(missing)),
		)
		return CycleResponse{}, apperror.Detailed(
			payrollerrors.ErrPayStubsMissing,
			fmt.Sprintf("Pay stubs are missing for %d employee(s)", len(missing)),
			map[string]any{"missing_count": len(missing), "employee_ids": missing},
		)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("mark payroll processed begin tx failed", zap.Error(err))
		return CycleResponse{}, err
	}
	defer tx.Rollback()

	now := time.Now().UTC()
	updated, err := s.repo.WithTx(tx).MarkCycleProcessed(ctx, companyID, cycleID, actorID, now)
	if err != nil {
		s.logger.Error("mark payroll processed persist failed", zap.String("cycle_id", cycleID), zap.Error(err))
		return CycleResponse{}, err
	}
	if !updated {
		return CycleResponse{}, payrollerrors.ErrCycleAlreadyProcessed
	}

	if s.deps.Outbox != nil {
		event, err := kafka.NewOutboxEvent(
			rid,
			"payroll_cycle",
			cycleID,
			events.PayrollCycleProcessedEventType,
			events.PayrollCycleProcessedTopic,
			events.PayrollCycleProcessedEvent{
				EventType:      events.PayrollCycleProcessedEventType,
				RequestID:      rid,
				CycleID:        cycleID,
				CompanyID:      companyID,
				CycleName:      cycle.Name,
				TotalEmployees: computed.Cycle.TotalEmployees,
				TotalNet:       computed.Cycle.TotalNet,
				ProcessedBy:    actorID,
				OccurredAt:     now,
			},
		)
		if err != nil {
			return CycleResponse{}, err
		}
		if err := s.deps.Outbox.WithTx(tx).Create(ctx, event); err != nil {
			s.logger.Error("mark payroll processed outbox persist failed", zap.String("cycle_id", cycleID), zap.Error(err))
			return CycleResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("mark payroll processed commit failed", zap.String("cycle_id", cycleID), zap.Error(err))
		return CycleResponse{}, err
	}

	s.deps.Audit.Log(ctx, auditlog.Entry{
		CompanyID:  companyID,
		ActorID:    actorID,
		Action:     "payroll_cycle.processed",
		EntityType: "payroll_cycle",
		EntityID:   cycleID,
		Payload:    map[string]any{"name": cycle.Name},
	})

	resp := computed.Cycle
	resp.Status = CycleStatusProcessed
	processedAt := now.Format(time.RFC3339)
	resp.ProcessedAt = &processedAt
	resp.ProcessedBy = &actorID

	s.logger.Info("mark payroll processed success", zap.String("request_id", rid), zap.String("cycle_id", cycleID))
	return resp, nil
}

// RenderPayStub writes the stub PDF to object storage and returns its key.
// Rendering the same stub again overwrites the object.
func (s *service) RenderPayStub(ctx context.Context, companyID, payStubID string) (string, error) {
	if s.deps.Documents == nil {
		return "", payrollerrors.ErrStorageUnavailable
	}

	stub, err := s.repo.FindPayStubByID(ctx, companyID, payStubID)
	if err != nil {
		return "", mapNotFound(err, payrollerrors.ErrPayStubNotFound)
	}
	cycle, err := s.findCycle(ctx, s.repo, companyID, stub.PayrollCycleID.String())
	if err != nil {
		return "", err
	}
	empl, err := s.deps.Employees.FindByIDAndCompany(ctx, companyID, stub.EmployeeID.String())
	if err != nil {
		return "", mapNotFound(err, payrollerrors.ErrEmployeeNotInCycle)
	}

	doc, err := renderPayStubPDF(*stub, *empl, *cycle)
	if err != nil {
		s.logger.Error("render pay stub pdf failed", zap.String("pay_stub_id", payStubID), zap.Error(err))
		return "", err
	}

	key := payStubObjectKey(*stub)
	if err := s.deps.Documents.Put(ctx, key, doc, pdfContentType); err != nil {
		s.logger.Error("store pay stub pdf failed", zap.String("key", key), zap.Error(err))
		return "", storageFailure(err)
	}
	if err := s.repo.SetPayStubObjectKey(ctx, companyID, payStubID, key); err != nil {
		return "", err
	}

	s.logger.Info("render pay stub success", zap.String("pay_stub_id", payStubID), zap.String("key", key))
	return key, nil
}

func (s *service) PayStubDownloadURL(ctx context.Context, companyID, payStubID string) (DownloadURLResponse, error) {
	if s.deps.Documents == nil {
		return DownloadURLResponse{}, payrollerrors.ErrStorageUnavailable
	}
	stub, err := s.repo.FindPayStubByID(ctx, companyID, payStubID)
	if err != nil {
		return DownloadURLResponse{}, mapNotFound(err, payrollerrors.ErrPayStubNotFound)
	}
	if stub.PdfObjectKey == nil || *stub.PdfObjectKey == "" {
		return DownloadURLResponse{}, payrollerrors.ErrPayStubNotRendered
	}
	url, err := s.deps.Documents.PresignedURL(ctx, *stub.PdfObjectKey)
	if err != nil {
		s.logger.Error("presign pay stub url failed", zap.String("pay_stub_id", payStubID), zap.Error(err))
		return DownloadURLResponse{}, storageFailure(err)
	}
	return DownloadURLResponse{URL: url}, nil
}

func storageFailure(err error) error {
	return apperror.Wrap(err, apperror.CodeServiceUnavailable, "document storage request failed", http.StatusServiceUnavailable)
}

func (s *service) findCycle(ctx context.Context, repo Repository, companyID, cycleID string) (*PayrollCycle, error) {
	cycle, err := repo.FindCycleByID(ctx, companyID, cycleID)
	if err != nil {
		return nil, mapNotFound(err, payrollerrors.ErrCycleNotFound)
	}
	return cycle, nil
}

func mapNotFound(err, notFound error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFound
	}
	return err
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, payrollerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapCycleToResponse(c PayrollCycle) CycleResponse {
	resp := CycleResponse{
		ID:              c.ID.String(),
		CompanyID:       c.CompanyID.String(),
		Name:            c.Name,
		StartDate:       c.StartDate.Format(dateLayout),
		EndDate:         c.EndDate.Format(dateLayout),
		Status:          c.Status,
		TotalEmployees:  c.TotalEmployees,
		TotalGross:      c.TotalGross,
		TotalDeductions: c.TotalDeductions,
		TotalNet:        c.TotalNet,
		WarningCount:    c.WarningCount,
	}
	if c.ProcessedAt != nil {
		v := c.ProcessedAt.Format(time.RFC3339)
		resp.ProcessedAt = &v
	}
	if c.ProcessedBy != nil {
		v := c.ProcessedBy.String()
		resp.ProcessedBy = &v
	}
	return resp
}

func mapPayStubToResponse(st PayStub) PayStubResponse {
	return PayStubResponse{
		ID:                  st.ID.String(),
		PayrollCycleID:      st.PayrollCycleID.String(),
		EmployeeID:          st.EmployeeID.String(),
		StubNumber:          st.StubNumber,
		PeriodStart:         st.PeriodStart.Format(dateLayout),
		PeriodEnd:           st.PeriodEnd.Format(dateLayout),
		BasicSalary:         st.BasicSalary,
		EarningsBreakdown:   st.EarningsBreakdown,
		DeductionsBreakdown: st.DeductionsBreakdown,
		GrossPay:            st.GrossPay,
		TotalDeductions:     st.TotalDeductions,
		NetPay:              st.NetPay,
		Status:              st.Status,
		Rendered:            st.PdfObjectKey != nil && *st.PdfObjectKey != "",
		GeneratedAt:         st.GeneratedAt.Format(time.RFC3339),
	}
}

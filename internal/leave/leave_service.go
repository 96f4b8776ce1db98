package leave

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	leaveerrors "go-hrcore/internal/leave/errors"
	"go-hrcore/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	dateLayout     = "2006-01-02"
	maxReasonRunes = 500
)

type Service interface {
	Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, companyID string, filter LeaveFilter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error)
	Submit(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	Approve(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error)
	Reject(ctx context.Context, companyID, actorID, id, rejectionReason string) (LeaveResponse, error)
	Delete(ctx context.Context, companyID, id string) error
	TeamOverlaps(ctx context.Context, companyID, employeeID, fromDate, toDate string) (TeamOverlapResponse, error)

	CreateType(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error)
	ListTypes(ctx context.Context, companyID string) ([]LeaveTypeResponse, error)

	ListBalances(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalanceResponse, error)
	UpsertBalance(ctx context.Context, companyID string, req UpsertBalanceRequest) (LeaveBalanceResponse, error)
	SeedBalances(ctx context.Context, companyID, employeeID string, year int) (int, error)
}

type service struct {
	db     *sql.DB
	repo   Repository
	logger *zap.Logger
}

func NewService(db *sql.DB, repo Repository, logger ...*zap.Logger) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{db: db, repo: repo, logger: l}
}

func (s *service) Create(ctx context.Context, companyID, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	s.logger.Debug("create leave requested",
		zap.String("request_id", rid),
		zap.String("company_id", companyID),
		zap.String("employee_id", req.EmployeeID),
		zap.Bool("is_draft", req.IsDraft),
	)

	in, err := validateCreateRequest(companyID, actorID, req)
	if err != nil {
		s.logger.Warn("create leave validation failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	days, err := ComputeLeaveDays(in.from, in.to, req.FirstDayHalf, req.LastDayHalf)
	if err != nil {
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("create leave begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindEmployee(ctx, companyID, req.EmployeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return LeaveResponse{}, leaveerrors.ErrEmployeeNotInCompany
		}
		s.logger.Error("create leave employee lookup failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	leaveType, err := qtx.FindTypeByID(ctx, companyID, req.LeaveTypeID)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}
	if !leaveType.IsActive {
		return LeaveResponse{}, leaveerrors.ErrLeaveTypeInactive
	}

	overlap, err := qtx.HasOverlappingPeriod(ctx, companyID, req.EmployeeID, in.from, in.to, "")
	if err != nil {
		s.logger.Error("create leave overlap check failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if overlap {
		return LeaveResponse{}, leaveerrors.ErrLeaveOverlap
	}

	balance, err := s.findBalance(ctx, qtx, companyID, req.EmployeeID, req.LeaveTypeID, in.from.Year())
	if err != nil {
		return LeaveResponse{}, err
	}

	today := time.Now().UTC()
	if err := ValidateSubmission(days, *leaveType, balance, in.from, today, req.IsDraft); err != nil {
		s.logger.Warn("create leave rejected",
			zap.String("request_id", rid),
			zap.String("employee_id", req.EmployeeID),
			zap.String("days", days.String()),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}

	status := StatusPending
	if req.IsDraft {
		status = StatusDraft
	}

	l := &Leave{
		ID:             uuid.New(),
		CompanyID:      in.companyID,
		EmployeeID:     in.employeeID,
		LeaveTypeID:    in.leaveTypeID,
		FromDate:       in.from,
		ToDate:         in.to,
		FirstDayHalf:   req.FirstDayHalf,
		FirstDayPeriod: periodPtr(req.FirstDayHalf, req.FirstDayPeriod),
		LastDayHalf:    req.LastDayHalf,
		LastDayPeriod:  periodPtr(req.LastDayHalf, req.LastDayPeriod),
		TotalDays:      days,
		Reason:         strings.TrimSpace(req.Reason),
		Status:         status,
		CreatedBy:      in.actorID,
	}

	if err := qtx.Create(ctx, l); err != nil {
		s.logger.Error("create leave persist failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	if !req.IsDraft && balance != nil {
		if err := qtx.IncrementPendingDays(ctx, balance.ID.String(), days); err != nil {
			s.logger.Error("create leave reserve balance failed",
				zap.String("balance_id", balance.ID.String()),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("create leave commit failed", zap.String("request_id", rid), zap.Error(err))
		return LeaveResponse{}, err
	}

	resp := mapToResponse(*l)
	overlaps := s.countTeamOverlaps(ctx, companyID, empl, in.from, in.to, today)
	resp.TeamOverlapCount = &overlaps

	s.logger.Info("create leave success",
		zap.String("request_id", rid),
		zap.String("leave_id", l.ID.String()),
		zap.String("status", status),
		zap.String("total_days", days.String()),
		zap.Int("team_overlap_count", overlaps),
	)
	return resp, nil
}

func (s *service) GetAll(ctx context.Context, companyID string, filter LeaveFilter) ([]LeaveResponse, error) {
	s.logger.Debug("get all leaves requested", zap.String("company_id", companyID))
	leaves, err := s.repo.FindAllByCompany(ctx, companyID, filter)
	if err != nil {
		s.logger.Error("get all leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, companyID, id string) (LeaveResponse, error) {
	l, err := s.repo.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	return mapToResponse(*l), nil
}

// Submit moves a draft to PENDING. Balance and notice are checked again
// against the current balance row and today's date.
func (s *service) Submit(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	s.logger.Debug("submit leave requested",
		zap.String("leave_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
	)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("submit leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if !isAllowedStatusTransition(l.Status, StatusPending) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	leaveType, err := qtx.FindTypeByID(ctx, companyID, l.LeaveTypeID.String())
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}
	if !leaveType.IsActive {
		return LeaveResponse{}, leaveerrors.ErrLeaveTypeInactive
	}

	balance, err := s.findBalance(ctx, qtx, companyID, l.EmployeeID.String(), l.LeaveTypeID.String(), l.FromDate.Year())
	if err != nil {
		return LeaveResponse{}, err
	}

	if err := ValidateSubmission(l.TotalDays, *leaveType, balance, l.FromDate, time.Now().UTC(), false); err != nil {
		s.logger.Warn("submit leave rejected", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	l.Status = StatusPending
	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("submit leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if balance != nil {
		if err := qtx.IncrementPendingDays(ctx, balance.ID.String(), l.TotalDays); err != nil {
			s.logger.Error("submit leave reserve balance failed", zap.String("leave_id", id), zap.Error(err))
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("submit leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("submit leave success", zap.String("leave_id", id))
	return mapToResponse(*l), nil
}

func isAllowedStatusTransition(currentStatus, targetStatus string) bool {
	switch currentStatus {
	case StatusDraft:
		return targetStatus == StatusPending
	case StatusPending:
		return targetStatus == StatusApproved || targetStatus == StatusRejected
	default:
		return false
	}
}

func (s *service) Approve(ctx context.Context, companyID, actorID, id string) (LeaveResponse, error) {
	return s.transitionLeaveStatus(ctx, companyID, actorID, id, StatusApproved, nil)
}

func (s *service) Reject(ctx context.Context, companyID, actorID, id, rejectionReason string) (LeaveResponse, error) {
	reason := strings.TrimSpace(rejectionReason)
	return s.transitionLeaveStatus(ctx, companyID, actorID, id, StatusRejected, &reason)
}

// transitionLeaveStatus finalises a PENDING request. Balances are left as
// they are on both outcomes.
func (s *service) transitionLeaveStatus(ctx context.Context, companyID, actorID, id, targetStatus string, rejectionReason *string) (LeaveResponse, error) {
	s.logger.Debug("transition leave status requested",
		zap.String("leave_id", id),
		zap.String("company_id", companyID),
		zap.String("actor_id", actorID),
		zap.String("target_status", targetStatus),
	)

	actorUUID, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if targetStatus == StatusRejected && (rejectionReason == nil || *rejectionReason == "") {
		return LeaveResponse{}, leaveerrors.ErrRejectionReasonRequired
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("transition leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return LeaveResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if !isAllowedStatusTransition(l.Status, targetStatus) {
		s.logger.Warn("transition leave status invalid",
			zap.String("leave_id", id),
			zap.String("from_status", l.Status),
			zap.String("to_status", targetStatus),
		)
		return LeaveResponse{}, leaveerrors.ErrInvalidStatusTransition
	}

	l.Status = targetStatus
	switch targetStatus {
	case StatusApproved:
		now := time.Now().UTC()
		l.ApprovedBy = &actorUUID
		l.ApprovedAt = &now
		l.RejectionReason = nil
	case StatusRejected:
		l.ApprovedBy = nil
		l.ApprovedAt = nil
		l.RejectionReason = rejectionReason
	}

	if err := qtx.Update(ctx, l); err != nil {
		s.logger.Error("transition leave status persist failed",
			zap.String("leave_id", id),
			zap.String("target_status", targetStatus),
			zap.Error(err),
		)
		return LeaveResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("transition leave status commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}

	s.logger.Info("transition leave status success",
		zap.String("leave_id", id),
		zap.String("status", targetStatus),
	)
	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, companyID, id string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("delete leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.FindByIDAndCompany(ctx, companyID, id)
	if err != nil {
		return mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if l.Status != StatusDraft {
		return leaveerrors.ErrOnlyDraftDeletable
	}
	if err := qtx.Delete(ctx, companyID, id); err != nil {
		return mapRepositoryError(err, leaveerrors.ErrLeaveNotFound)
	}
	if err := tx.Commit(); err != nil {
		s.logger.Error("delete leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}

	s.logger.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func (s *service) TeamOverlaps(ctx context.Context, companyID, employeeID, fromDate, toDate string) (TeamOverlapResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return TeamOverlapResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	from, err := parseDate(fromDate)
	if err != nil {
		return TeamOverlapResponse{}, err
	}
	to, err := parseDate(toDate)
	if err != nil {
		return TeamOverlapResponse{}, err
	}
	if to.Before(from) {
		return TeamOverlapResponse{}, leaveerrors.ErrInvalidDateRange
	}

	empl, err := s.repo.FindEmployee(ctx, companyID, employeeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return TeamOverlapResponse{}, leaveerrors.ErrEmployeeNotInCompany
		}
		return TeamOverlapResponse{}, err
	}

	return TeamOverlapResponse{
		EmployeeID: employeeID,
		FromDate:   fromDate,
		ToDate:     toDate,
		Count:      s.countTeamOverlaps(ctx, companyID, empl, from, to, time.Now().UTC()),
	}, nil
}

// countTeamOverlaps is advisory. Lookup failures are logged and count as zero.
func (s *service) countTeamOverlaps(ctx context.Context, companyID string, empl *EmployeeRef, from, to, today time.Time) int {
	if empl == nil || empl.DepartmentID == nil {
		return 0
	}
	team, err := s.repo.FindTeamLeaves(ctx, companyID, empl.DepartmentID.String(), empl.ID.String(), dateOnly(today))
	if err != nil {
		s.logger.Warn("team overlap lookup failed",
			zap.String("employee_id", empl.ID.String()),
			zap.Error(err),
		)
		return 0
	}
	return FindOverlaps(from, to, today, team)
}

func (s *service) CreateType(ctx context.Context, companyID string, req CreateLeaveTypeRequest) (LeaveTypeResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveTypeResponse{}, leaveerrors.ErrInvalidCompanyID
	}

	isActive := true
	if req.IsActive != nil {
		isActive = *req.IsActive
	}

	lt := &LeaveType{
		ID:                 uuid.New(),
		CompanyID:          companyUUID,
		Name:               strings.TrimSpace(req.Name),
		Code:               strings.ToUpper(strings.TrimSpace(req.Code)),
		IsActive:           isActive,
		MinNoticeDays:      req.MinNoticeDays,
		DefaultDaysPerYear: req.DefaultDaysPerYear,
	}
	if err := s.repo.CreateType(ctx, lt); err != nil {
		s.logger.Error("create leave type failed", zap.String("code", lt.Code), zap.Error(err))
		return LeaveTypeResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}

	s.logger.Info("create leave type success", zap.String("leave_type_id", lt.ID.String()), zap.String("code", lt.Code))
	return mapTypeToResponse(*lt), nil
}

func (s *service) ListTypes(ctx context.Context, companyID string) ([]LeaveTypeResponse, error) {
	types, err := s.repo.FindTypesByCompany(ctx, companyID, false)
	if err != nil {
		s.logger.Error("list leave types failed", zap.Error(err))
		return nil, err
	}
	res := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		res[i] = mapTypeToResponse(t)
	}
	return res, nil
}

func (s *service) ListBalances(ctx context.Context, companyID, employeeID string, year int) ([]LeaveBalanceResponse, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, leaveerrors.ErrInvalidEmployeeID
	}
	if year <= 0 {
		year = time.Now().UTC().Year()
	}
	balances, err := s.repo.FindBalancesByEmployee(ctx, companyID, employeeID, year)
	if err != nil {
		s.logger.Error("list leave balances failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	res := make([]LeaveBalanceResponse, len(balances))
	for i, b := range balances {
		res[i] = mapBalanceToResponse(b)
	}
	return res, nil
}

func (s *service) UpsertBalance(ctx context.Context, companyID string, req UpsertBalanceRequest) (LeaveBalanceResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return LeaveBalanceResponse{}, leaveerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveBalanceResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	leaveTypeUUID, err := uuid.Parse(req.LeaveTypeID)
	if err != nil {
		return LeaveBalanceResponse{}, leaveerrors.ErrInvalidLeaveTypeID
	}
	if req.BalanceDays.IsNegative() {
		return LeaveBalanceResponse{}, leaveerrors.ErrNegativeBalance
	}
	if _, err := s.repo.FindEmployee(ctx, companyID, req.EmployeeID); err != nil {
		return LeaveBalanceResponse{}, mapRepositoryError(err, leaveerrors.ErrEmployeeNotInCompany)
	}
	if _, err := s.repo.FindTypeByID(ctx, companyID, req.LeaveTypeID); err != nil {
		return LeaveBalanceResponse{}, mapRepositoryError(err, leaveerrors.ErrLeaveTypeNotFound)
	}

	b := &LeaveBalance{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		EmployeeID:  employeeUUID,
		LeaveTypeID: leaveTypeUUID,
		Year:        req.Year,
		BalanceDays: req.BalanceDays,
		PendingDays: decimal.Zero,
	}
	if err := s.repo.UpsertBalance(ctx, b); err != nil {
		s.logger.Error("upsert leave balance failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return LeaveBalanceResponse{}, err
	}

	stored, err := s.repo.FindBalance(ctx, companyID, req.EmployeeID, req.LeaveTypeID, req.Year)
	if err != nil {
		return LeaveBalanceResponse{}, err
	}
	return mapBalanceToResponse(*stored), nil
}

// SeedBalances gives a new employee one balance row per active leave type.
// Existing rows are kept, so replays of the same event add nothing.
func (s *service) SeedBalances(ctx context.Context, companyID, employeeID string, year int) (int, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return 0, leaveerrors.ErrInvalidCompanyID
	}
	employeeUUID, err := uuid.Parse(employeeID)
	if err != nil {
		return 0, leaveerrors.ErrInvalidEmployeeID
	}
	if year <= 0 {
		return 0, leaveerrors.ErrInvalidYear
	}

	types, err := s.repo.FindTypesByCompany(ctx, companyID, true)
	if err != nil {
		return 0, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	seeded := 0
	for _, t := range types {
		inserted, err := qtx.InsertBalanceIfAbsent(ctx, &LeaveBalance{
			ID:          uuid.New(),
			CompanyID:   companyUUID,
			EmployeeID:  employeeUUID,
			LeaveTypeID: t.ID,
			Year:        year,
			BalanceDays: t.DefaultDaysPerYear,
			PendingDays: decimal.Zero,
		})
		if err != nil {
			s.logger.Error("seed leave balance failed",
				zap.String("employee_id", employeeID),
				zap.String("leave_type_id", t.ID.String()),
				zap.Error(err),
			)
			return 0, err
		}
		if inserted {
			seeded++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	s.logger.Info("seed leave balances success",
		zap.String("employee_id", employeeID),
		zap.Int("year", year),
		zap.Int("seeded", seeded),
	)
	return seeded, nil
}

// findBalance returns nil when the employee has no balance row for the year.
func (s *service) findBalance(ctx context.Context, repo Repository, companyID, employeeID, leaveTypeID string, year int) (*LeaveBalance, error) {
	b, err := repo.FindBalance(ctx, companyID, employeeID, leaveTypeID, year)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		s.logger.Error("leave balance lookup failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return b, nil
}

type createInput struct {
	companyID   uuid.UUID
	actorID     uuid.UUID
	employeeID  uuid.UUID
	leaveTypeID uuid.UUID
	from        time.Time
	to          time.Time
}

func validateCreateRequest(companyID, actorID string, req CreateLeaveRequest) (createInput, error) {
	var in createInput
	var err error

	if in.companyID, err = uuid.Parse(companyID); err != nil {
		return in, leaveerrors.ErrInvalidCompanyID
	}
	if in.actorID, err = uuid.Parse(actorID); err != nil {
		return in, leaveerrors.ErrInvalidActorID
	}
	if in.employeeID, err = uuid.Parse(req.EmployeeID); err != nil {
		return in, leaveerrors.ErrInvalidEmployeeID
	}
	if in.leaveTypeID, err = uuid.Parse(req.LeaveTypeID); err != nil {
		return in, leaveerrors.ErrInvalidLeaveTypeID
	}
	if in.from, err = parseDate(req.FromDate); err != nil {
		return in, err
	}
	if in.to, err = parseDate(req.ToDate); err != nil {
		return in, err
	}
	if in.to.Before(in.from) {
		return in, leaveerrors.ErrInvalidDateRange
	}
	if req.FirstDayHalf && !validPeriod(req.FirstDayPeriod) {
		return in, leaveerrors.ErrHalfDayPeriodRequired
	}
	if req.LastDayHalf && !validPeriod(req.LastDayPeriod) {
		return in, leaveerrors.ErrHalfDayPeriodRequired
	}
	if utf8.RuneCountInString(req.Reason) > maxReasonRunes {
		return in, leaveerrors.ErrReasonTooLong
	}
	return in, nil
}

func validPeriod(p string) bool {
	return p == PeriodMorning || p == PeriodAfternoon
}

func periodPtr(half bool, period string) *string {
	if !half {
		return nil
	}
	return &period
}

func parseDate(v string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

func mapToResponse(l Leave) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		CompanyID:       l.CompanyID.String(),
		EmployeeID:      l.EmployeeID.String(),
		LeaveTypeID:     l.LeaveTypeID.String(),
		FromDate:        l.FromDate.Format(dateLayout),
		ToDate:          l.ToDate.Format(dateLayout),
		FirstDayHalf:    l.FirstDayHalf,
		FirstDayPeriod:  l.FirstDayPeriod,
		LastDayHalf:     l.LastDayHalf,
		LastDayPeriod:   l.LastDayPeriod,
		TotalDays:       l.TotalDays.String(),
		Reason:          l.Reason,
		Status:          l.Status,
		CreatedBy:       l.CreatedBy.String(),
		RejectionReason: l.RejectionReason,
	}
	if l.ApprovedBy != nil {
		v := l.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if l.ApprovedAt != nil {
		v := l.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []Leave) []LeaveResponse {
	res := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		res[i] = mapToResponse(l)
	}
	return res
}

func mapTypeToResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		ID:                 t.ID.String(),
		Name:               t.Name,
		Code:               t.Code,
		IsActive:           t.IsActive,
		MinNoticeDays:      t.MinNoticeDays,
		DefaultDaysPerYear: t.DefaultDaysPerYear.String(),
	}
}

func mapBalanceToResponse(b LeaveBalance) LeaveBalanceResponse {
	return LeaveBalanceResponse{
		ID:          b.ID.String(),
		EmployeeID:  b.EmployeeID.String(),
		LeaveTypeID: b.LeaveTypeID.String(),
		Year:        b.Year,
		BalanceDays: b.BalanceDays.String(),
		PendingDays: b.PendingDays.String(),
	}
}

package rbac

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"unicode/utf8"

	"go-hrcore/internal/auditlog"
	"go-hrcore/internal/domain"
	rbacerrors "go-hrcore/internal/rbac/errors"
	"go-hrcore/internal/shared/apperror"
	"go-hrcore/internal/shared/contextutil"

	"github.com/casbin/casbin/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	maxRoleCodeLength    = 20
	maxDescriptionLength = 500
)

// EmployeeCounter reports how many active employees hold a role.
type EmployeeCounter interface {
	CountByRole(ctx context.Context, companyID, roleID string) (int64, error)
}

type Service interface {
	ListPermissions() []Category
	TogglePermission(req TogglePermissionRequest) (TogglePermissionResponse, error)

	ListRoles(ctx context.Context, companyID string) ([]RoleResponse, error)
	GetRole(ctx context.Context, companyID, id string) (RoleResponse, error)
	CreateRole(ctx context.Context, companyID, actorID string, req SaveRoleRequest) (RoleResponse, error)
	UpdateRole(ctx context.Context, companyID, actorID, id string, req SaveRoleRequest) (RoleResponse, error)
	DeactivateRole(ctx context.Context, companyID, actorID, id string) (RoleResponse, error)
	DeleteRole(ctx context.Context, companyID, actorID, id string) error

	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
}

type Dependencies struct {
	Employees EmployeeCounter
	Audit     auditlog.Logger
	Resolver  Resolver
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	deps     Dependencies
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, deps Dependencies, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	if deps.Audit == nil {
		deps.Audit = auditlog.NewZapLogger()
	}
	return &service{
		repo:     repo,
		enforcer: enforcer,
		deps:     deps,
		logger:   l,
	}
}

func (s *service) ListPermissions() []Category {
	return Catalog
}

func (s *service) TogglePermission(req TogglePermissionRequest) (TogglePermissionResponse, error) {
	set, err := s.permissionSet(req.Permissions)
	if err != nil {
		return TogglePermissionResponse{}, err
	}
	next, err := s.deps.Resolver.Toggle(set, strings.TrimSpace(req.Code))
	if err != nil {
		return TogglePermissionResponse{}, err
	}
	return TogglePermissionResponse{Permissions: next.Codes()}, nil
}

func (s *service) ListRoles(ctx context.Context, companyID string) ([]RoleResponse, error) {
	roles, err := s.repo.ListRoles(ctx, companyID)
	if err != nil {
		s.logger.Error("list roles failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	res := make([]RoleResponse, len(roles))
	for i, r := range roles {
		res[i] = mapRoleToResponse(r)
	}
	return res, nil
}

func (s *service) GetRole(ctx context.Context, companyID, id string) (RoleResponse, error) {
	role, err := s.findRole(ctx, companyID, id)
	if err != nil {
		return RoleResponse{}, err
	}
	count, err := s.deps.Employees.CountByRole(ctx, companyID, id)
	if err != nil {
		return RoleResponse{}, err
	}
	resp := mapRoleToResponse(*role)
	deletable := CanDelete(count)
	resp.EmployeeCount = &count
	resp.CanDelete = &deletable
	return resp, nil
}

func (s *service) CreateRole(ctx context.Context, companyID, actorID string, req SaveRoleRequest) (RoleResponse, error) {
	companyUUID, err := uuid.Parse(companyID)
	if err != nil {
		return RoleResponse{}, rbacerrors.ErrInvalidCompanyID
	}

	code, perms, err := s.validateRole(req)
	if err != nil {
		return RoleResponse{}, err
	}

	role := &Role{
		ID:          uuid.New(),
		CompanyID:   companyUUID,
		Name:        strings.TrimSpace(req.Name),
		Code:        code,
		Description: strings.TrimSpace(req.Description),
		Permissions: perms,
		IsActive:    true,
	}
	if err := s.repo.CreateRole(ctx, role); err != nil {
		s.logger.Error("create role failed", zap.String("code", code), zap.Error(err))
		return RoleResponse{}, mapRepositoryError(err)
	}

	s.audit(ctx, companyID, actorID, "role.created", role, nil)
	s.logger.Info("create role success", zap.String("role_id", role.ID.String()), zap.String("code", code))
	return mapRoleToResponse(*role), nil
}

// UpdateRole replaces the role wholesale. Shrinking the permission set of a
// role employees hold is refused unless the request confirms it.
func (s *service) UpdateRole(ctx context.Context, companyID, actorID, id string, req SaveRoleRequest) (RoleResponse, error) {
	role, err := s.findRole(ctx, companyID, id)
	if err != nil {
		return RoleResponse{}, err
	}

	code, perms, err := s.validateRole(req)
	if err != nil {
		return RoleResponse{}, err
	}

	if perms.Len() < role.Permissions.Len() {
		count, err := s.deps.Employees.CountByRole(ctx, companyID, id)
		if err != nil {
			return RoleResponse{}, err
		}
		if count > 0 && !req.ConfirmReduction {
			removed := removedCodes(role.Permissions, perms)
			s.logger.Warn("update role reduction not confirmed",
				zap.String("role_id", id),
				zap.Int64("employees", count),
				zap.Strings("removed", removed),
			)
			return RoleResponse{}, apperror.Detailed(
				rbacerrors.ErrReductionNotConfirmed,
				fmt.Sprintf("Role is assigned to %d employee(s); confirm removing %d permission(s)", count, role.Permissions.Len()-perms.Len()),
				map[string]any{"employee_count": count, "removed": removed},
			)
		}
	}

	before := role.Permissions.Codes()
	role.Name = strings.TrimSpace(req.Name)
	role.Code = code
	role.Description = strings.TrimSpace(req.Description)
	role.Permissions = perms

	if err := s.repo.UpdateRole(ctx, role); err != nil {
		s.logger.Error("update role failed", zap.String("role_id", id), zap.Error(err))
		return RoleResponse{}, mapRepositoryError(err)
	}

	s.audit(ctx, companyID, actorID, "role.updated", role, map[string]any{"previous_permissions": before})
	s.logger.Info("update role success", zap.String("role_id", id))
	return mapRoleToResponse(*role), nil
}

func (s *service) DeactivateRole(ctx context.Context, companyID, actorID, id string) (RoleResponse, error) {
	role, err := s.findRole(ctx, companyID, id)
	if err != nil {
		return RoleResponse{}, err
	}
	if !role.IsActive {
		return mapRoleToResponse(*role), nil
	}

	role.IsActive = false
	if err := s.repo.UpdateRole(ctx, role); err != nil {
		s.logger.Error("deactivate role failed", zap.String("role_id", id), zap.Error(err))
		return RoleResponse{}, mapRepositoryError(err)
	}

	s.audit(ctx, companyID, actorID, "role.deactivated", role, nil)
	return mapRoleToResponse(*role), nil
}

func (s *service) DeleteRole(ctx context.Context, companyID, actorID, id string) error {
	role, err := s.findRole(ctx, companyID, id)
	if err != nil {
		return err
	}

	count, err := s.deps.Employees.CountByRole(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !CanDelete(count) {
		return apperror.Detailed(
			rbacerrors.ErrRoleInUse,
			fmt.Sprintf("Role is assigned to %d employee(s) and cannot be deleted", count),
			map[string]any{"employee_count": count},
		)
	}

	if err := s.repo.DeleteRole(ctx, companyID, id); err != nil {
		s.logger.Error("delete role failed", zap.String("role_id", id), zap.Error(err))
		return mapRepositoryError(err)
	}

	s.audit(ctx, companyID, actorID, "role.deleted", role, nil)
	s.logger.Info("delete role success", zap.String("role_id", id))
	return nil
}

// Enforce rebuilds the company's policy on every call so role edits apply
// immediately. Calls are serialized because the enforcer is shared.
func (s *service) Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCompanyPolicy(ctx, req.CompanyID); err != nil {
		s.logger.Error("rbac load policy failed", zap.String("company_id", req.CompanyID), zap.Error(err))
		return false, err
	}

	allowed, err := s.enforcer.Enforce(req.EmployeeID, req.CompanyID, req.Resource, req.Action)
	if err != nil {
		return false, err
	}

	s.logger.Debug("rbac enforce result",
		zap.String("request_id", contextutil.GetRequestID(ctx)),
		zap.String("employee_id", req.EmployeeID),
		zap.String("company_id", req.CompanyID),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func (s *service) loadCompanyPolicy(ctx context.Context, companyID string) error {
	s.enforcer.ClearPolicy()

	assignments, err := s.repo.ListAssignments(ctx, companyID)
	if err != nil {
		return err
	}
	for _, a := range assignments {
		if _, err := s.enforcer.AddGroupingPolicy(a.EmployeeID, a.RoleID, companyID); err != nil {
			return err
		}
	}

	roles, err := s.repo.ListActiveRoles(ctx, companyID)
	if err != nil {
		return err
	}
	for _, role := range roles {
		for _, code := range role.Permissions.Codes() {
			resource, action, ok := SplitCode(code)
			if !ok {
				continue
			}
			if _, err := s.enforcer.AddPolicy(role.ID.String(), companyID, resource, action); err != nil {
				return err
			}
		}
	}
	return nil
}

func (s *service) validateRole(req SaveRoleRequest) (string, PermissionSet, error) {
	code := cases.Upper(language.Und).String(strings.TrimSpace(req.Code))
	if code == "" {
		return "", nil, rbacerrors.ErrRoleCodeRequired
	}
	if utf8.RuneCountInString(code) > maxRoleCodeLength {
		return "", nil, rbacerrors.ErrRoleCodeTooLong
	}
	if utf8.RuneCountInString(strings.TrimSpace(req.Description)) > maxDescriptionLength {
		return "", nil, rbacerrors.ErrDescriptionTooLong
	}

	perms, err := s.permissionSet(req.Permissions)
	if err != nil {
		return "", nil, err
	}
	if perms.Len() == 0 {
		return "", nil, rbacerrors.ErrEmptyPermissions
	}
	return code, perms, nil
}

func (s *service) permissionSet(codes []string) (PermissionSet, error) {
	set := make(PermissionSet, len(codes))
	var unknown []string
	for _, c := range codes {
		c = strings.TrimSpace(c)
		if _, ok := LookupPermission(c); !ok {
			unknown = append(unknown, c)
			continue
		}
		set[c] = true
	}
	if len(unknown) > 0 {
		return nil, unknownPermissions(unknown)
	}
	return set, nil
}

func (s *service) findRole(ctx context.Context, companyID, id string) (*Role, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, rbacerrors.ErrInvalidRoleID
	}
	role, err := s.repo.FindRoleByID(ctx, companyID, id)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return role, nil
}

func (s *service) audit(ctx context.Context, companyID, actorID, action string, role *Role, extra map[string]any) {
	payload := map[string]any{
		"code":        role.Code,
		"permissions": role.Permissions.Codes(),
	}
	for k, v := range extra {
		payload[k] = v
	}
	s.deps.Audit.Log(ctx, auditlog.Entry{
		CompanyID:  companyID,
		ActorID:    actorID,
		Action:     action,
		EntityType: "role",
		EntityID:   role.ID.String(),
		Payload:    payload,
	})
}

func removedCodes(before, after PermissionSet) []string {
	var out []string
	for _, c := range before.Codes() {
		if !after.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

func mapRoleToResponse(r Role) RoleResponse {
	return RoleResponse{
		ID:          r.ID.String(),
		Name:        r.Name,
		Code:        r.Code,
		Description: r.Description,
		Permissions: r.Permissions.Codes(),
		IsActive:    r.IsActive,
	}
}

package rbac

import (
	"context"

	"go-hrcore/internal/employee"
	"go-hrcore/internal/tenant"

	"gorm.io/gorm"
)

type Repository interface {
	ListAssignments(ctx context.Context, companyID string) ([]Assignment, error)
	ListActiveRoles(ctx context.Context, companyID string) ([]Role, error)

	ListRoles(ctx context.Context, companyID string) ([]Role, error)
	FindRoleByID(ctx context.Context, companyID, id string) (*Role, error)
	CreateRole(ctx context.Context, role *Role) error
	UpdateRole(ctx context.Context, role *Role) error
	DeleteRole(ctx context.Context, companyID, id string) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// ListAssignments returns active employees holding an active role.
func (r *repository) ListAssignments(ctx context.Context, companyID string) ([]Assignment, error) {
	var result []Assignment
	err := r.db.WithContext(ctx).
		Table("employees").
		Select("employees.id AS employee_id, employees.role_id AS role_id").
		Joins("JOIN roles ON roles.id = employees.role_id").
		Scopes(tenant.TableScope("employees", companyID)).
		Where("employees.status = ?", employee.StatusActive).
		Where("roles.is_active = ?", true).
		Scan(&result).Error
	return result, err
}

func (r *repository) ListActiveRoles(ctx context.Context, companyID string) ([]Role, error) {
	var roles []Role
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("is_active = ?", true).
		Find(&roles).Error
	return roles, err
}

func (r *repository) ListRoles(ctx context.Context, companyID string) ([]Role, error) {
	var roles []Role
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Order("code ASC").
		Find(&roles).Error
	return roles, err
}

func (r *repository) FindRoleByID(ctx context.Context, companyID, id string) (*Role, error) {
	var role Role
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		First(&role).Error
	if err != nil {
		return nil, err
	}
	return &role, nil
}

func (r *repository) CreateRole(ctx context.Context, role *Role) error {
	return r.db.WithContext(ctx).Create(role).Error
}

func (r *repository) UpdateRole(ctx context.Context, role *Role) error {
	return r.db.WithContext(ctx).Save(role).Error
}

func (r *repository) DeleteRole(ctx context.Context, companyID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(companyID)).
		Where("id = ?", id).
		Delete(&Role{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

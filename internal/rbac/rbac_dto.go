package rbac

type SaveRoleRequest struct {
	Name        string   `json:"name" binding:"required,max=100"`
	Code        string   `json:"code" binding:"required"`
	Description string   `json:"description"`
	Permissions []string `json:"permissions"`
	// ConfirmReduction acknowledges removing permissions from a role that
	// employees currently hold.
	ConfirmReduction bool `json:"confirm_reduction"`
}

type RoleResponse struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Code          string   `json:"code"`
	Description   string   `json:"description"`
	Permissions   []string `json:"permissions"`
	IsActive      bool     `json:"is_active"`
	EmployeeCount *int64   `json:"employee_count,omitempty"`
	CanDelete     *bool    `json:"can_delete,omitempty"`
}

type TogglePermissionRequest struct {
	Permissions []string `json:"permissions"`
	Code        string   `json:"code" binding:"required"`
}

type TogglePermissionResponse struct {
	Permissions []string `json:"permissions"`
}

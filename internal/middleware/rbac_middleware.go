package middleware

import (
	"context"

	"go-hrcore/internal/domain"
	"go-hrcore/internal/shared/apperror"
	"go-hrcore/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// RBACService is satisfied by rbac.Service.
type RBACService interface {
	Enforce(ctx context.Context, req domain.EnforceRequest) (bool, error)
}

// RBACAuthorize lets the request through only when the caller's roles grant
// the permission code resource.action inside the caller's company.
func RBACAuthorize(service RBACService, resource, action string) gin.HandlerFunc {
	permission := resource + "." + action

	return func(c *gin.Context) {
		employeeID := c.GetString("employee_id")
		companyID := c.GetString("company_id")
		if employeeID == "" || companyID == "" {
			abortWith(c, apperror.ErrUnauthorized)
			return
		}

		allowed, err := service.Enforce(c.Request.Context(), domain.EnforceRequest{
			EmployeeID: employeeID,
			CompanyID:  companyID,
			Resource:   resource,
			Action:     action,
		})
		if err != nil {
			response.ServiceError(c, err)
			c.Abort()
			return
		}
		if !allowed {
			response.ServiceError(c, apperror.Detailed(apperror.ErrForbidden, apperror.ErrForbidden.Message,
				map[string]string{"required": permission}))
			c.Abort()
			return
		}

		c.Next()
	}
}

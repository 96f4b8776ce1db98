package employeesalary

import (
	"go-hrcore/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts salary history under /employee-salaries. Every write
// needs salary.update; payroll reads the same records through FindEffective.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	idempotency gin.HandlerFunc,
) {
	canRead := middleware.RBACAuthorize(rbacService, "salary", "read")
	canWrite := middleware.RBACAuthorize(rbacService, "salary", "update")
	writeLimit := middleware.RateLimitByUser(0.1, 1)

	salaries := r.Group("/employee-salaries")
	salaries.GET("", middleware.RateLimitByUser(1, 5), canRead, handler.GetAll)
	salaries.GET("/:id", middleware.RateLimitByUser(2, 5), canRead, handler.GetById)
	salaries.POST("", writeLimit, canWrite, idempotency, handler.Create)
	salaries.PUT("/:id", writeLimit, canWrite, handler.Update)
	salaries.DELETE("/:id", middleware.RateLimitByUser(0.05, 1), canWrite, handler.Delete)
}

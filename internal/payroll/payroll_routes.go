package payroll

import (
	"go-hrcore/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already carry authentication.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	idempotency gin.HandlerFunc,
) {
	cycles := r.Group("/payroll-cycles")
	{
		cycles.GET("",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetAll,
		)
		cycles.GET("/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.GetById,
		)
		cycles.POST("",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "payroll", "compute"),
			idempotency,
			handler.CreateCycle,
		)
		cycles.POST("/:id/compute",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "compute"),
			handler.Compute,
		)
		cycles.GET("/:id/line-items",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.LineItems,
		)
		cycles.GET("/:id/pay-stubs",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.ListPayStubs,
		)
		cycles.POST("/:id/pay-stubs",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "generate"),
			idempotency,
			handler.GeneratePayStub,
		)
		cycles.POST("/:id/process",
			middleware.RateLimitByUser(0.2, 1),
			middleware.RBACAuthorize(rbacService, "payroll", "process"),
			handler.MarkProcessed,
		)
	}

	stubs := r.Group("/pay-stubs")
	{
		stubs.GET("/:id/download-url",
			middleware.RateLimitByUser(1, 5),
			middleware.RBACAuthorize(rbacService, "payroll", "read"),
			handler.DownloadURL,
		)
	}
}

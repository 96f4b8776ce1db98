package employee

import (
	"go-hrcore/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already carry authentication. idempotency
// guards employee creation so a retried request cannot consume a second
// employee number.
func RegisterRoutes(
	r *gin.RouterGroup,
	handler *Handler,
	rbacService middleware.RBACService,
	idempotency gin.HandlerFunc,
) {
	canRead := middleware.RBACAuthorize(rbacService, "employee", "read")
	readLimit := middleware.RateLimitByUser(3, 10)
	writeLimit := middleware.RateLimitByUser(0.5, 2)

	employees := r.Group("/employees")
	employees.GET("", readLimit, canRead, handler.GetAll)
	employees.GET("/options", middleware.RateLimitByUser(5, 20), canRead, handler.GetOptions)
	employees.GET("/:id", readLimit, canRead, handler.GetById)

	employees.POST("",
		writeLimit,
		middleware.RBACAuthorize(rbacService, "employee", "create"),
		idempotency,
		handler.Create,
	)
	employees.PUT("/:id",
		writeLimit,
		middleware.RBACAuthorize(rbacService, "employee", "update"),
		handler.Update,
	)
	employees.DELETE("/:id",
		middleware.RateLimitByUser(0.1, 1),
		middleware.RBACAuthorize(rbacService, "employee", "delete"),
		handler.Delete,
	)
}

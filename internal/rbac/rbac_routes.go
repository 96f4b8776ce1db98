package rbac

import (
	"go-hrcore/internal/middleware"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes expects r to already carry authentication.
func RegisterRoutes(r *gin.RouterGroup, handler *Handler, rbacService middleware.RBACService) {
	group := r.Group("/rbac")
	{
		group.POST("/enforce",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "role", "read"),
			handler.Enforce,
		)

		group.GET("/permissions",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "role", "read"),
			handler.ListPermissions,
		)
		group.POST("/permissions/toggle",
			middleware.RateLimitByUser(5, 20),
			middleware.RBACAuthorize(rbacService, "role", "manage"),
			handler.TogglePermission,
		)

		group.GET("/roles",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "role", "read"),
			handler.ListRoles,
		)
		group.GET("/roles/:id",
			middleware.RateLimitByUser(3, 10),
			middleware.RBACAuthorize(rbacService, "role", "read"),
			handler.GetRole,
		)
		group.POST("/roles",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "role", "manage"),
			handler.CreateRole,
		)
		group.PUT("/roles/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "role", "manage"),
			handler.UpdateRole,
		)
		group.POST("/roles/:id/deactivate",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "role", "manage"),
			handler.DeactivateRole,
		)
		group.DELETE("/roles/:id",
			middleware.RateLimitByUser(0.5, 2),
			middleware.RBACAuthorize(rbacService, "role", "manage"),
			handler.DeleteRole,
		)
	}
}

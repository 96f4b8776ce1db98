package middleware

import (
	"go-hrcore/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ContextLogger must run after RequestID and AuthMiddleware. It copies the
// caller's identity from the gin context onto the request context, together
// with a logger tagged with it.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := contextutil.Actor{
			UserID:     c.GetString("user_id_validated"),
			EmployeeID: c.GetString("employee_id"),
			CompanyID:  c.GetString("company_id"),
		}
		if actor.UserID == "" {
			actor.UserID = c.GetString("user_id")
		}

		reqLogger := logger.With(
			zap.String("request_id", c.GetString("request_id")),
			zap.String("user_id", actor.UserID),
			zap.String("employee_id", actor.EmployeeID),
			zap.String("company_id", actor.CompanyID),
		)

		ctx := contextutil.WithActor(c.Request.Context(), actor)
		ctx = contextutil.WithLogger(ctx, reqLogger)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

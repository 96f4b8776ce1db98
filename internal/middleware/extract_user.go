package middleware

import (
	"net/http"

	"go-hrcore/internal/shared/apperror"

	"github.com/gin-gonic/gin"
)

var ErrUserMissing = apperror.New(apperror.CodeUnauthorized, "Authenticated user is missing", http.StatusUnauthorized)
var ErrUserInvalid = apperror.New("INVALID_USER_ID", "Authenticated user id is malformed", http.StatusUnauthorized)

// ExtractUserID runs after AuthMiddleware and publishes the checked user id
// as user_id_validated, the key handlers fall back to for the actor.
func ExtractUserID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get("user_id")
		if !exists {
			abortWith(c, ErrUserMissing)
			return
		}

		userID, ok := raw.(string)
		if !ok || userID == "" {
			abortWith(c, ErrUserInvalid)
			return
		}

		c.Set("user_id_validated", userID)
		c.Next()
	}
}

package middleware_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hrcore/internal/domain"
	"go-hrcore/internal/middleware"
	"go-hrcore/internal/shared/apperror"
	"go-hrcore/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const testSecret = "test-secret"

func init() {
	gin.SetMode(gin.TestMode)
}

func signToken(t *testing.T, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return token
}

func TestAuthMiddleware(t *testing.T) {
	router := gin.New()
	router.GET("/me", middleware.AuthMiddleware(testSecret), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("company_id")+"/"+c.GetString("employee_id"))
	})

	t.Run("missing token", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/me", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "Token not found")
	})

	t.Run("valid token", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"user_id":     "u-1",
			"company_id":  "c-1",
			"employee_id": "e-1",
			"exp":         time.Now().Add(time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "c-1/e-1", w.Body.String())
	})

	t.Run("expired token", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{
			"user_id":     "u-1",
			"company_id":  "c-1",
			"employee_id": "e-1",
			"exp":         time.Now().Add(-time.Hour).Unix(),
		})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "TOKEN_EXPIRED")
	})

	t.Run("missing company claim", func(t *testing.T) {
		token := signToken(t, jwt.MapClaims{"user_id": "u-1", "employee_id": "e-1"})
		req := httptest.NewRequest(http.MethodGet, "/me", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "company_id not found in token")
	})
}

type fakeRBACService struct {
	allowed bool
	err     error
	got     domain.EnforceRequest
}

func (f *fakeRBACService) Enforce(_ context.Context, req domain.EnforceRequest) (bool, error) {
	f.got = req
	return f.allowed, f.err
}

func rbacRouter(service middleware.RBACService) *gin.Engine {
	router := gin.New()
	router.GET("/payroll", func(c *gin.Context) {
		c.Set("company_id", "c-1")
		c.Set("employee_id", "e-1")
		c.Next()
	}, middleware.RBACAuthorize(service, "payroll", "read"), func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestRBACAuthorize(t *testing.T) {
	t.Run("allowed", func(t *testing.T) {
		svc := &fakeRBACService{allowed: true}
		w := httptest.NewRecorder()
		rbacRouter(svc).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payroll", nil))

		assert.Equal(t, http.StatusNoContent, w.Code)
		assert.Equal(t, domain.EnforceRequest{EmployeeID: "e-1", CompanyID: "c-1", Resource: "payroll", Action: "read"}, svc.got)
	})

	t.Run("missing identity", func(t *testing.T) {
		router := gin.New()
		router.GET("/payroll", middleware.RBACAuthorize(&fakeRBACService{allowed: true}, "payroll", "read"), func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payroll", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeUnauthorized)
	})

	t.Run("denied", func(t *testing.T) {
		w := httptest.NewRecorder()
		rbacRouter(&fakeRBACService{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payroll", nil))

		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Contains(t, w.Body.String(), "payroll.read")
	})

	t.Run("enforcer failure hides detail", func(t *testing.T) {
		w := httptest.NewRecorder()
		rbacRouter(&fakeRBACService{err: errors.New("policy store down")}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/payroll", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "policy store down")
		assert.Contains(t, w.Body.String(), apperror.CodeInternalError)
	})
}

func TestRateLimitByUser(t *testing.T) {
	router := gin.New()
	router.GET("/x", func(c *gin.Context) {
		c.Set("user_id", "u-1")
		c.Next()
	}, middleware.RateLimitByUser(0.001, 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/x", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestRateLimitByIP(t *testing.T) {
	router := gin.New()
	router.GET("/x", middleware.RateLimitByIP(0.001, 1), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	first := httptest.NewRecorder()
	router.ServeHTTP(first, httptest.NewRequest(http.MethodGet, "/x", nil))
	second := httptest.NewRecorder()
	router.ServeHTTP(second, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
}

func TestExtractUserID(t *testing.T) {
	newRouter := func(userID any) *gin.Engine {
		router := gin.New()
		router.GET("/x", func(c *gin.Context) {
			if userID != nil {
				c.Set("user_id", userID)
			}
			c.Next()
		}, middleware.ExtractUserID(), func(c *gin.Context) {
			c.String(http.StatusOK, c.GetString("user_id_validated"))
		})
		return router
	}

	t.Run("missing user", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(nil).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong type", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter(42).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Contains(t, w.Body.String(), "INVALID_USER_ID")
	})

	t.Run("validated", func(t *testing.T) {
		w := httptest.NewRecorder()
		newRouter("u-7").ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "u-7", w.Body.String())
	})
}

func TestContextLogger(t *testing.T) {
	var got contextutil.Actor
	router := gin.New()
	router.GET("/x", func(c *gin.Context) {
		c.Set("user_id", "u-1")
		c.Set("employee_id", "e-1")
		c.Set("company_id", "c-1")
		c.Next()
	}, middleware.ContextLogger(zap.NewNop()), func(c *gin.Context) {
		got = contextutil.GetActor(c.Request.Context())
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, contextutil.Actor{UserID: "u-1", EmployeeID: "e-1", CompanyID: "c-1"}, got)
}

func TestRequestID(t *testing.T) {
	router := gin.New()
	router.GET("/x", middleware.RequestID(), func(c *gin.Context) {
		c.String(http.StatusOK, contextutil.GetRequestID(c.Request.Context()))
	})

	t.Run("reuses caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(middleware.RequestIDHeader, "rid-42")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, "rid-42", w.Body.String())
		assert.Equal(t, "rid-42", w.Header().Get(middleware.RequestIDHeader))
	})

	t.Run("replaces oversized id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set(middleware.RequestIDHeader, strings.Repeat("a", 100))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Len(t, w.Body.String(), 36)
	})
}

func TestIdempotency(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	cacheKey := "idemp:/cycles:c-1:u-1:key-1"

	router := gin.New()
	router.POST("/cycles", func(c *gin.Context) {
		c.Set("company_id", "c-1")
		c.Set("user_id", "u-1")
		c.Next()
	}, middleware.Idempotency(rdb, zap.NewNop()), func(c *gin.Context) {
		c.JSON(http.StatusCreated, gin.H{"id": "cycle-1"})
	})

	t.Run("first request stores response", func(t *testing.T) {
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, `201 {"id":"cycle-1"}`, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/cycles", strings.NewReader(`{}`))
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("replay returns cached status and body", func(t *testing.T) {
		mock.ExpectGet(cacheKey).SetVal(`201 {"id":"cycle-1"}`)

		req := httptest.NewRequest(http.MethodPost, "/cycles", strings.NewReader(`{}`))
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Equal(t, "true", w.Header().Get("Idempotent-Replay"))
		assert.JSONEq(t, `{"id":"cycle-1"}`, w.Body.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unreadable cached value is served fresh", func(t *testing.T) {
		mock.ExpectGet(cacheKey).SetVal(`{"id":"cycle-1"}`)
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(true)
		mock.ExpectSet(cacheKey, `201 {"id":"cycle-1"}`, 24*time.Hour).SetVal("OK")
		mock.ExpectDel(cacheKey + ":lock").SetVal(1)

		req := httptest.NewRequest(http.MethodPost, "/cycles", strings.NewReader(`{}`))
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Empty(t, w.Header().Get("Idempotent-Replay"))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("concurrent duplicate is rejected", func(t *testing.T) {
		mock.ExpectGet(cacheKey).RedisNil()
		mock.ExpectSetNX(cacheKey+":lock", "locked", 30*time.Second).SetVal(false)

		req := httptest.NewRequest(http.MethodPost, "/cycles", strings.NewReader(`{}`))
		req.Header.Set(middleware.IdempotencyHeader, "key-1")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

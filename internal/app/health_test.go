package app

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadiness(t *testing.T) {
	gin.SetMode(gin.TestMode)

	serve := func(t *testing.T, dbErr error, redisDown bool) *httptest.ResponseRecorder {
		t.Helper()
		db, sqlMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
		require.NoError(t, err)
		t.Cleanup(func() { db.Close() })
		sqlMock.ExpectPing().WillReturnError(dbErr)

		rdb, redisMock := redismock.NewClientMock()
		if redisDown {
			redisMock.ExpectPing().SetErr(errors.New("dial tcp: connection refused"))
		} else {
			redisMock.ExpectPing().SetVal("PONG")
		}

		r := gin.New()
		r.GET("/readyz", readiness(db, rdb))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		return w
	}

	t.Run("all dependencies up", func(t *testing.T) {
		w := serve(t, nil, false)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "ready")
	})

	t.Run("redis down", func(t *testing.T) {
		w := serve(t, nil, true)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), "SERVICE_UNAVAILABLE")
		assert.Contains(t, w.Body.String(), `"redis"`)
		assert.NotContains(t, w.Body.String(), `"postgres"`)
	})

	t.Run("postgres down", func(t *testing.T) {
		w := serve(t, errors.New("connection reset"), false)
		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
		assert.Contains(t, w.Body.String(), `"postgres"`)
	})
}

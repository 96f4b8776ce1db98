package apperror_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"go-hrcore/internal/shared/apperror"

	"github.com/stretchr/testify/assert"
)

func TestToHTTP(t *testing.T) {
	t.Run("app error keeps code and message", func(t *testing.T) {
		err := apperror.New(apperror.CodeConflict, "already exists", http.StatusConflict)

		got := apperror.ToHTTP(fmt.Errorf("create: %w", err))

		assert.Equal(t, http.StatusConflict, got.Status)
		assert.Equal(t, apperror.CodeConflict, got.Code)
		assert.Equal(t, "already exists", got.Message)
	})

	t.Run("detailed error exposes context and still matches sentinel", func(t *testing.T) {
		sentinel := apperror.New(apperror.CodeInvalidInput, "insufficient", http.StatusBadRequest)
		err := apperror.Detailed(sentinel, "insufficient: requested 3, available 2", map[string]int{"requested": 3})

		got := apperror.ToHTTP(err)

		assert.True(t, errors.Is(err, sentinel))
		assert.Equal(t, "insufficient: requested 3, available 2", got.Message)
		assert.Equal(t, map[string]int{"requested": 3}, got.Details)
	})

	t.Run("plain error is hidden", func(t *testing.T) {
		got := apperror.ToHTTP(errors.New("pq: connection refused"))

		assert.Equal(t, http.StatusInternalServerError, got.Status)
		assert.Equal(t, apperror.CodeInternalError, got.Code)
		assert.Equal(t, "Internal server error", got.Message)
	})
}

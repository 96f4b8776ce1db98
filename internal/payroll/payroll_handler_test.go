package payroll_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrcore/internal/payroll"
	payrollerrors "go-hrcore/internal/payroll/errors"
	"go-hrcore/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiEnvelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string          `json:"code"`
		Message string          `json:"message"`
		Details json.RawMessage `json:"details"`
	} `json:"error"`
}

type fakePayrollService struct {
	payroll.Service

	generatePayStubFn func(ctx context.Context, companyID, actorID, cycleID, employeeID string) (payroll.PayStubResponse, error)
	markProcessedFn   func(ctx context.Context, companyID, actorID, cycleID string) (payroll.CycleResponse, error)
	downloadURLFn     func(ctx context.Context, companyID, payStubID string) (payroll.DownloadURLResponse, error)
}

func (f *fakePayrollService) GeneratePayStub(ctx context.Context, companyID, actorID, cycleID, employeeID string) (payroll.PayStubResponse, error) {
	return f.generatePayStubFn(ctx, companyID, actorID, cycleID, employeeID)
}
func (f *fakePayrollService) MarkProcessed(ctx context.Context, companyID, actorID, cycleID string) (payroll.CycleResponse, error) {
	return f.markProcessedFn(ctx, companyID, actorID, cycleID)
}
func (f *fakePayrollService) PayStubDownloadURL(ctx context.Context, companyID, payStubID string) (payroll.DownloadURLResponse, error) {
	return f.downloadURLFn(ctx, companyID, payStubID)
}

func newTestContext(method, target, body string) (*gin.Context, *httptest.ResponseRecorder) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(method, target, strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	return env
}

func TestPayrollHandler_GeneratePayStub(t *testing.T) {
	gin.SetMode(gin.TestMode)
	companyID := uuid.New().String()
	actorID := uuid.New().String()
	cycleID := uuid.New().String()
	employeeID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakePayrollService{
			generatePayStubFn: func(_ context.Context, cid, aid, cyc, eid string) (payroll.PayStubResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, actorID, aid)
				assert.Equal(t, cycleID, cyc)
				assert.Equal(t, employeeID, eid)
				return payroll.PayStubResponse{ID: uuid.New().String(), StubNumber: "PS-2025-03-001"}, nil
			},
		}
		h := payroll.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/payroll-cycles/"+cycleID+"/pay-stubs", `{"employee_id":"`+employeeID+`"}`)
		c.Params = gin.Params{{Key: "id", Value: cycleID}}
		c.Set("company_id", companyID)
		c.Set("employee_id", actorID)

		h.GeneratePayStub(c)

		assert.Equal(t, http.StatusOK, w.Code)
		env := decode(t, w)
		assert.True(t, env.Ok)
		assert.Contains(t, string(env.Data), "PS-2025-03-001")
	})

	t.Run("missing employee id is a validation error", func(t *testing.T) {
		h := payroll.NewHandler(&fakePayrollService{})
		c, w := newTestContext(http.MethodPost, "/payroll-cycles/"+cycleID+"/pay-stubs", `{}`)
		c.Params = gin.Params{{Key: "id", Value: cycleID}}

		h.GeneratePayStub(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error.Code)
	})

	t.Run("employee in error maps to conflict with reason", func(t *testing.T) {
		svc := &fakePayrollService{
			generatePayStubFn: func(context.Context, string, string, string, string) (payroll.PayStubResponse, error) {
				return payroll.PayStubResponse{}, apperror.Detailed(
					payrollerrors.ErrEmployeeHasErrors,
					"Pay stub cannot be generated: Bank details missing",
					map[string]string{"reason": "Bank details missing"},
				)
			},
		}
		h := payroll.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/payroll-cycles/"+cycleID+"/pay-stubs", `{"employee_id":"`+employeeID+`"}`)
		c.Params = gin.Params{{Key: "id", Value: cycleID}}
		c.Set("company_id", companyID)
		c.Set("user_id_validated", actorID)

		h.GeneratePayStub(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		env := decode(t, w)
		require.NotNil(t, env.Error)
		assert.Equal(t, apperror.CodePreconditionFailed, env.Error.Code)
		assert.Contains(t, string(env.Error.Details), "Bank details missing")
	})
}

func TestPayrollHandler_MarkProcessed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cycleID := uuid.New().String()

	t.Run("already processed is a conflict", func(t *testing.T) {
		svc := &fakePayrollService{
			markProcessedFn: func(context.Context, string, string, string) (payroll.CycleResponse, error) {
				return payroll.CycleResponse{}, payrollerrors.ErrCycleAlreadyProcessed
			},
		}
		h := payroll.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/payroll-cycles/"+cycleID+"/process", "")
		c.Params = gin.Params{{Key: "id", Value: cycleID}}

		h.MarkProcessed(c)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, apperror.CodeInvalidState, decode(t, w).Error.Code)
	})

	t.Run("success", func(t *testing.T) {
		svc := &fakePayrollService{
			markProcessedFn: func(_ context.Context, _, _, id string) (payroll.CycleResponse, error) {
				return payroll.CycleResponse{ID: id, Status: payroll.CycleStatusProcessed}, nil
			},
		}
		h := payroll.NewHandler(svc)
		c, w := newTestContext(http.MethodPost, "/payroll-cycles/"+cycleID+"/process", "")
		c.Params = gin.Params{{Key: "id", Value: cycleID}}

		h.MarkProcessed(c)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, string(decode(t, w).Data), payroll.CycleStatusProcessed)
	})
}

func TestPayrollHandler_DownloadURL(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("storage not configured", func(t *testing.T) {
		svc := &fakePayrollService{
			downloadURLFn: func(context.Context, string, string) (payroll.DownloadURLResponse, error) {
				return payroll.DownloadURLResponse{}, payrollerrors.ErrStorageUnavailable
			},
		}
		h := payroll.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/pay-stubs/x/download-url", "")
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		h.DownloadURL(c)

		assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	})

	t.Run("unexpected error is masked", func(t *testing.T) {
		svc := &fakePayrollService{
			downloadURLFn: func(context.Context, string, string) (payroll.DownloadURLResponse, error) {
				return payroll.DownloadURLResponse{}, assert.AnError
			},
		}
		h := payroll.NewHandler(svc)
		c, w := newTestContext(http.MethodGet, "/pay-stubs/x/download-url", "")
		c.Params = gin.Params{{Key: "id", Value: "x"}}

		h.DownloadURL(c)

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		env := decode(t, w)
		assert.Equal(t, apperror.CodeInternalError, env.Error.Code)
		assert.NotContains(t, env.Error.Message, assert.AnError.Error())
	})
}

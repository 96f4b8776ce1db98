package employee_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-hrcore/internal/employee"
	employeeerrors "go-hrcore/internal/employee/errors"
	"go-hrcore/internal/shared/apperror"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmployeeService struct {
	CreateFn     func(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error)
	GetAllFn     func(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error)
	GetOptionsFn func(ctx context.Context, companyID string) ([]employee.EmployeeOptionResponse, error)
	GetByIDFn    func(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error)
	UpdateFn     func(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error)
	DeleteFn     func(ctx context.Context, companyID, id string) error
}

func (f *fakeEmployeeService) Create(ctx context.Context, companyID string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.CreateFn(ctx, companyID, req)
}
func (f *fakeEmployeeService) GetAll(ctx context.Context, companyID string) ([]employee.EmployeeResponse, error) {
	return f.GetAllFn(ctx, companyID)
}
func (f *fakeEmployeeService) GetOptions(ctx context.Context, companyID string) ([]employee.EmployeeOptionResponse, error) {
	return f.GetOptionsFn(ctx, companyID)
}
func (f *fakeEmployeeService) GetByID(ctx context.Context, companyID, id string) (employee.EmployeeResponse, error) {
	return f.GetByIDFn(ctx, companyID, id)
}
func (f *fakeEmployeeService) Update(ctx context.Context, companyID, id string, req employee.UpdateEmployeeRequest) (employee.EmployeeResponse, error) {
	return f.UpdateFn(ctx, companyID, id, req)
}
func (f *fakeEmployeeService) Delete(ctx context.Context, companyID, id string) error {
	return f.DeleteFn(ctx, companyID, id)
}

func setupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func withCompany(companyID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("company_id", companyID)
		c.Next()
	}
}

func TestEmployeeHandler_Create(t *testing.T) {
	companyID := uuid.New().String()

	t.Run("success", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(_ context.Context, cid string, req employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				assert.Equal(t, companyID, cid)
				assert.Equal(t, "John Doe", req.FullName)
				return employee.EmployeeResponse{ID: uuid.New().String(), FullName: req.FullName, CompanyID: cid}, nil
			},
		}
		h := employee.NewHandler(svc)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		body := `{"full_name":"John Doe","email":"john@example.com","hire_date":"2026-01-01"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("company_id", companyID)

		h.Create(c)

		assert.Equal(t, http.StatusCreated, w.Code)
		assert.Contains(t, w.Body.String(), "John Doe")
	})

	t.Run("validation error", func(t *testing.T) {
		h := employee.NewHandler(&fakeEmployeeService{})
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)

		c.Request = httptest.NewRequest(http.MethodPost, "/api/v1/employees", strings.NewReader(`{"full_name":"","email":"bad"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		h.Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "VALIDATION_ERROR")
	})

	t.Run("conflict", func(t *testing.T) {
		svc := &fakeEmployeeService{
			CreateFn: func(context.Context, string, employee.CreateEmployeeRequest) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
			},
		}
		r := setupRouter()
		r.POST("/employees", withCompany(companyID), employee.NewHandler(svc).Create)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader(`{"full_name":"A","email":"a@example.com","hire_date":"2026-01-01"}`))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
		assert.Contains(t, w.Body.String(), apperror.CodeConflict)
	})
}

func TestEmployeeHandler_GetAll(t *testing.T) {
	companyID := uuid.New().String()
	svc := &fakeEmployeeService{
		GetAllFn: func(context.Context, string) ([]employee.EmployeeResponse, error) {
			return []employee.EmployeeResponse{
				{ID: "1", FullName: "Citra", Email: "citra@x.com", Status: employee.StatusActive},
				{ID: "2", FullName: "Andi", Email: "andi@x.com", Status: employee.StatusActive},
				{ID: "3", FullName: "Budi", Email: "budi@x.com", Status: employee.StatusInactive,
					BankName: "BCA", BankAccountNumber: "123", BankAccountHolder: "Budi"},
			}, nil
		},
	}
	r := setupRouter()
	r.GET("/employees", withCompany(companyID), employee.NewHandler(svc).GetAll)

	t.Run("sorted, filtered and paginated", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?status=active&page=1&page_size=1", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data []employee.EmployeeResponse `json:"data"`
			Meta struct {
				Total int `json:"total"`
			} `json:"meta"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		assert.Equal(t, 2, body.Meta.Total)
		require.Len(t, body.Data, 1)
		assert.Equal(t, "Andi", body.Data[0].FullName)
	})

	t.Run("search", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?q=budi", nil))

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "Budi")
		assert.NotContains(t, w.Body.String(), "Citra")
	})

	t.Run("missing bank details, descending", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?missing_bank=true&sort_dir=desc", nil))

		require.Equal(t, http.StatusOK, w.Code)
		var body struct {
			Data []employee.EmployeeResponse `json:"data"`
		}
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
		require.Len(t, body.Data, 2)
		assert.Equal(t, "Citra", body.Data[0].FullName)
		assert.Equal(t, "Andi", body.Data[1].FullName)
	})

	t.Run("malformed page", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees?page=abc", nil))

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestEmployeeHandler_GetById(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(context.Context, string, string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
			},
		}
		r := setupRouter()
		r.GET("/employees/:id", withCompany("c-1"), employee.NewHandler(svc).GetById)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/x", nil))

		assert.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("internal error does not leak", func(t *testing.T) {
		svc := &fakeEmployeeService{
			GetByIDFn: func(context.Context, string, string) (employee.EmployeeResponse, error) {
				return employee.EmployeeResponse{}, errors.New("pq: connection reset")
			},
		}
		r := setupRouter()
		r.GET("/employees/:id", withCompany("c-1"), employee.NewHandler(svc).GetById)

		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employees/x", nil))

		assert.Equal(t, http.StatusInternalServerError, w.Code)
		assert.NotContains(t, w.Body.String(), "connection reset")
	})
}

func TestEmployeeHandler_Delete(t *testing.T) {
	called := false
	svc := &fakeEmployeeService{
		DeleteFn: func(_ context.Context, cid, id string) error {
			called = true
			assert.Equal(t, "c-1", cid)
			assert.Equal(t, "e-9", id)
			return nil
		},
	}
	r := setupRouter()
	r.DELETE("/employees/:id", withCompany("c-1"), employee.NewHandler(svc).Delete)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/employees/e-9", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, called)
}

package employeesalary_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-hrcore/internal/employeesalary"
	employeesalaryerrors "go-hrcore/internal/employeesalary/errors"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type fakeSalaryService struct {
	createFn  func(ctx context.Context, companyID string, req employeesalary.CreateEmployeeSalaryRequest) (employeesalary.EmployeeSalaryResponse, error)
	getAllFn  func(ctx context.Context, companyID string) ([]employeesalary.EmployeeSalaryResponse, error)
	getByIDFn func(ctx context.Context, companyID, id string) (employeesalary.EmployeeSalaryResponse, error)
}

func (f *fakeSalaryService) Create(ctx context.Context, companyID string, req employeesalary.CreateEmployeeSalaryRequest) (employeesalary.EmployeeSalaryResponse, error) {
	return f.createFn(ctx, companyID, req)
}
func (f *fakeSalaryService) GetAll(ctx context.Context, companyID string) ([]employeesalary.EmployeeSalaryResponse, error) {
	return f.getAllFn(ctx, companyID)
}
func (f *fakeSalaryService) GetByID(ctx context.Context, companyID, id string) (employeesalary.EmployeeSalaryResponse, error) {
	return f.getByIDFn(ctx, companyID, id)
}
func (f *fakeSalaryService) Update(context.Context, string, string, employeesalary.UpdateEmployeeSalaryRequest) (employeesalary.EmployeeSalaryResponse, error) {
	return employeesalary.EmployeeSalaryResponse{}, nil
}
func (f *fakeSalaryService) Delete(context.Context, string, string) error { return nil }
func (f *fakeSalaryService) FindEffective(context.Context, string, string, time.Time) (*employeesalary.EmployeeSalary, error) {
	return nil, nil
}

func TestEmployeeSalaryHandler_Create(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid body", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/employee-salaries", strings.NewReader(`{"employee_id":"nope"}`))
		c.Request.Header.Set("Content-Type", "application/json")

		employeesalary.NewHandler(&fakeSalaryService{}).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("service error maps to status", func(t *testing.T) {
		svc := &fakeSalaryService{
			createFn: func(context.Context, string, employeesalary.CreateEmployeeSalaryRequest) (employeesalary.EmployeeSalaryResponse, error) {
				return employeesalary.EmployeeSalaryResponse{}, employeesalaryerrors.ErrInvalidEffectivePeriod
			},
		}
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		body := `{"employee_id":"0b5a4f0e-6a59-4f83-9d0b-0d4bb0a9c001","basic_salary":100,"effective_from":"2025-02-01","effective_to":"2025-01-01"}`
		c.Request = httptest.NewRequest(http.MethodPost, "/employee-salaries", strings.NewReader(body))
		c.Request.Header.Set("Content-Type", "application/json")
		c.Set("company_id", "c-1")

		employeesalary.NewHandler(svc).Create(c)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "effective_to must not be before effective_from")
	})
}

func TestEmployeeSalaryHandler_GetAll_FiltersByEmployee(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeSalaryService{
		getAllFn: func(context.Context, string) ([]employeesalary.EmployeeSalaryResponse, error) {
			return []employeesalary.EmployeeSalaryResponse{
				{ID: "s-1", EmployeeID: "e-1"},
				{ID: "s-2", EmployeeID: "e-2"},
			}, nil
		},
	}
	r := gin.New()
	r.GET("/employee-salaries", employeesalary.NewHandler(svc).GetAll)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/employee-salaries?employee_id=e-2", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "s-2")
	assert.NotContains(t, w.Body.String(), "s-1")
}

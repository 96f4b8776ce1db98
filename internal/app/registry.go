package app

import (
	"database/sql"

	"go-hrcore/internal/auditlog"
	"go-hrcore/internal/employee"
	"go-hrcore/internal/employeesalary"
	"go-hrcore/internal/leave"
	"go-hrcore/internal/messaging/kafka"
	"go-hrcore/internal/middleware"
	"go-hrcore/internal/payroll"
	"go-hrcore/internal/rbac"
	"go-hrcore/internal/rbac/infra"
	"go-hrcore/internal/shared/config"
	"go-hrcore/internal/shared/counter"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// infrastructure is what every process builds its modules from. Documents
// is nil when object storage is not configured.
type infrastructure struct {
	cfg       config.Config
	db        *sql.DB
	gormDB    *gorm.DB
	rdb       *redis.Client
	documents payroll.DocumentStore
	audit     auditlog.Logger
	logger    *zap.Logger
}

func newPayrollService(deps infrastructure) payroll.Service {
	employeeRepo := employee.NewRepository(deps.gormDB)
	salaryService := employeesalary.NewService(deps.db, employeesalary.NewRepository(deps.gormDB), deps.logger)

	return payroll.NewService(deps.db, payroll.NewRepository(deps.gormDB), payroll.Dependencies{
		Employees:  employeeRepo,
		Salaries:   salaryService,
		Calculator: payroll.NewSQLCalculator(deps.gormDB),
		Counter:    counter.NewRepository(deps.gormDB),
		Outbox:     kafka.NewOutboxRepository(deps.db),
		Audit:      deps.audit,
		Cache:      deps.rdb,
		Documents:  deps.documents,
		Compute: payroll.ComputeOptions{
			Timeout:     deps.cfg.PayrollComputeTimeout,
			Concurrency: deps.cfg.PayrollComputeConcurrency,
		},
	}, deps.logger)
}

func registerModules(router *gin.Engine, deps infrastructure) error {
	// --- Repositories ---
	rbacRepo := rbac.NewRepository(deps.gormDB)
	counterRepo := counter.NewRepository(deps.gormDB)
	employeeRepo := employee.NewRepository(deps.gormDB)
	employeeSalaryRepo := employeesalary.NewRepository(deps.gormDB)
	leaveRepo := leave.NewRepository(deps.gormDB)
	outboxRepo := kafka.NewOutboxRepository(deps.db)

	// --- RBAC Core ---
	enforcer, err := infra.NewEnforcer(deps.cfg.RBACModelPath)
	if err != nil {
		return err
	}
	rbacService := rbac.NewService(rbacRepo, enforcer, rbac.Dependencies{
		Employees: employeeRepo,
		Audit:     deps.audit,
		Resolver:  rbac.Resolver{Transitive: deps.cfg.TransitiveRBAC},
	}, deps.logger)

	// --- Services ---
	employeeService := employee.NewService(deps.db, employeeRepo, counterRepo, outboxRepo, deps.rdb, deps.logger)
	employeeSalaryService := employeesalary.NewService(deps.db, employeeSalaryRepo, deps.logger)
	leaveService := leave.NewService(deps.db, leaveRepo, deps.logger)
	payrollService := newPayrollService(deps)

	// --- Handlers ---
	employeeHandler := employee.NewHandler(employeeService, deps.logger)
	employeeSalaryHandler := employeesalary.NewHandler(employeeSalaryService)
	leaveHandler := leave.NewHandler(leaveService, deps.logger)
	payrollHandler := payroll.NewHandler(payrollService, deps.logger)
	rbacHandler := rbac.NewHandler(rbacService, deps.logger)

	idempotency := middleware.Idempotency(deps.rdb, deps.logger)

	// --- Routes Registration ---
	api := router.Group("/api/v1")
	api.Use(
		middleware.AuthMiddleware(deps.cfg.JWTSecret),
		middleware.ExtractUserID(),
		middleware.ContextLogger(deps.logger),
	)
	{
		employee.RegisterRoutes(api, employeeHandler, rbacService, idempotency)
		employeesalary.RegisterRoutes(api, employeeSalaryHandler, rbacService, idempotency)
		leave.RegisterRoutes(api, leaveHandler, rbacService, idempotency)
		payroll.RegisterRoutes(api, payrollHandler, rbacService, idempotency)
		rbac.RegisterRoutes(api, rbacHandler, rbacService)
	}

	return nil
}

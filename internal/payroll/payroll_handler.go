package payroll

import (
	"net/http"

	"go-hrcore/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("payroll.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.handler")
	}
	return &Handler{service: service, logger: l}
}

func getActorID(c *gin.Context) string {
	actorID := c.GetString("employee_id")
	if actorID == "" {
		actorID = c.GetString("user_id_validated")
	}
	return actorID
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := response.ServiceError(c, err)
	h.logger.Warn("payroll request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
		zap.String("message", httpErr.Message),
	)
}

func (h *Handler) CreateCycle(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	var req CreateCycleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http create payroll cycle validation failed", zap.Error(err))
		response.BindError(c, err)
		return
	}

	resp, err := h.service.CreateCycle(c.Request.Context(), companyID, actorID, req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context(), c.GetString("company_id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetById(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Compute(c *gin.Context) {
	companyID := c.GetString("company_id")
	cycleID := c.Param("id")
	h.logger.Debug("http compute payroll cycle", zap.String("company_id", companyID), zap.String("cycle_id", cycleID))

	resp, err := h.service.ComputeCycle(c.Request.Context(), companyID, cycleID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) LineItems(c *gin.Context) {
	resp, err := h.service.ListLineItems(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GeneratePayStub(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)

	var req GeneratePayStubRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("http generate pay stub validation failed", zap.Error(err))
		response.BindError(c, err)
		return
	}

	resp, err := h.service.GeneratePayStub(c.Request.Context(), companyID, actorID, c.Param("id"), req.EmployeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) ListPayStubs(c *gin.Context) {
	resp, err := h.service.ListPayStubs(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) MarkProcessed(c *gin.Context) {
	companyID := c.GetString("company_id")
	actorID := getActorID(c)
	cycleID := c.Param("id")
	h.logger.Info("http mark payroll processed", zap.String("cycle_id", cycleID), zap.String("actor_id", actorID))

	resp, err := h.service.MarkProcessed(c.Request.Context(), companyID, actorID, cycleID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) DownloadURL(c *gin.Context) {
	resp, err := h.service.PayStubDownloadURL(c.Request.Context(), c.GetString("company_id"), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

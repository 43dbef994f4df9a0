package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tradedesk-portal/internal/middleware"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/service"
	"github.com/tradedesk-portal/pkg/response"
)

// PerformanceHandler serves the analytics dashboards
type PerformanceHandler struct {
	performanceService *service.PerformanceService
}

// NewPerformanceHandler creates a new PerformanceHandler
func NewPerformanceHandler(performanceService *service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{
		performanceService: performanceService,
	}
}

// GetCompany returns company stats, every employee's stats and the series
// GET /api/v1/performance?range=&start=&end=
func (h *PerformanceHandler) GetCompany(c *gin.Context) {
	var q service.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	report, err := h.performanceService.CompanyReport(q)
	if err != nil {
		respondError(c, err, "failed to build performance report")
		return
	}

	response.Success(c, report)
}

// GetMine returns the caller's own stats and series
// GET /api/v1/performance/me
func (h *PerformanceHandler) GetMine(c *gin.Context) {
	var q service.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	report, err := h.performanceService.EmployeeReport(middleware.GetUserID(c), q)
	if err != nil {
		respondError(c, err, "failed to build performance report")
		return
	}

	response.Success(c, report)
}

// GetUserSeries returns one user's daily series
// GET /api/v1/performance/users/:id/series
func (h *PerformanceHandler) GetUserSeries(c *gin.Context) {
	userID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var q service.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	report, err := h.performanceService.EmployeeReport(userID, q)
	if err != nil {
		respondError(c, err, "failed to build series")
		return
	}

	response.Success(c, gin.H{
		"user_id": userID,
		"filter":  report.Filter,
		"range":   report.Range,
		"series":  report.Series,
	})
}

// RegisterRoutes registers performance routes
func (h *PerformanceHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	perf := rg.Group("/performance")
	perf.Use(authMiddleware)
	{
		perf.GET("", adminOnly, h.GetCompany)
		perf.GET("/me", h.GetMine)
		perf.GET("/users/:id/series", adminOnly, h.GetUserSeries)
	}
}

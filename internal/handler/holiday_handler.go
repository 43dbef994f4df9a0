package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tradedesk-portal/internal/middleware"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/service"
	"github.com/tradedesk-portal/pkg/response"
)

// HolidayHandler handles firm holiday API requests
type HolidayHandler struct {
	holidayService *service.HolidayService
}

// NewHolidayHandler creates a new HolidayHandler
func NewHolidayHandler(holidayService *service.HolidayService) *HolidayHandler {
	return &HolidayHandler{
		holidayService: holidayService,
	}
}

// GetHolidays lists holidays, the current year by default
// GET /api/v1/holidays
func (h *HolidayHandler) GetHolidays(c *gin.Context) {
	var q service.RangeQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	holidays, err := h.holidayService.ListHolidays(q)
	if err != nil {
		respondError(c, err, "failed to list holidays")
		return
	}

	response.Success(c, holidays)
}

// CreateHoliday adds a holiday
// POST /api/v1/holidays
func (h *HolidayHandler) CreateHoliday(c *gin.Context) {
	var req service.CreateHolidayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	holiday, err := h.holidayService.CreateHoliday(&req)
	if err != nil {
		respondError(c, err, "failed to create holiday")
		return
	}

	response.Created(c, holiday)
}

// DeleteHoliday removes a holiday
// DELETE /api/v1/holidays/:id
func (h *HolidayHandler) DeleteHoliday(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.holidayService.DeleteHoliday(id); err != nil {
		respondError(c, err, "failed to delete holiday")
		return
	}

	response.Success(c, gin.H{"message": "holiday deleted"})
}

// RegisterRoutes registers holiday routes
func (h *HolidayHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	holidays := rg.Group("/holidays")
	holidays.Use(authMiddleware)
	{
		holidays.GET("", h.GetHolidays)
		holidays.POST("", adminOnly, h.CreateHoliday)
		holidays.DELETE("/:id", adminOnly, h.DeleteHoliday)
	}
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tradedesk-portal/internal/middleware"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/service"
	"github.com/tradedesk-portal/pkg/response"
)

// AttendanceHandler handles attendance and leave API requests
type AttendanceHandler struct {
	attendanceService *service.AttendanceService
}

// NewAttendanceHandler creates a new AttendanceHandler
func NewAttendanceHandler(attendanceService *service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{
		attendanceService: attendanceService,
	}
}

// CheckIn records today's arrival
// POST /api/v1/attendance/check-in
func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	row, err := h.attendanceService.CheckIn(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, "failed to check in")
		return
	}

	response.Created(c, row)
}

// CheckOut records today's departure
// POST /api/v1/attendance/check-out
func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	row, err := h.attendanceService.CheckOut(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, "failed to check out")
		return
	}

	response.Success(c, row)
}

// GetAttendance lists attendance rows
// GET /api/v1/attendance
func (h *AttendanceHandler) GetAttendance(c *gin.Context) {
	var q service.ListAttendanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	rows, err := h.attendanceService.ListAttendance(actorFrom(c), &q)
	if err != nil {
		respondError(c, err, "failed to list attendance")
		return
	}

	response.Success(c, rows)
}

// RequestLeave files a leave request
// POST /api/v1/leave
func (h *AttendanceHandler) RequestLeave(c *gin.Context) {
	var req service.CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	leave, err := h.attendanceService.RequestLeave(middleware.GetUserID(c), &req)
	if err != nil {
		respondError(c, err, "failed to request leave")
		return
	}

	response.Created(c, leave)
}

// GetLeave lists leave requests
// GET /api/v1/leave
func (h *AttendanceHandler) GetLeave(c *gin.Context) {
	var q service.ListAttendanceQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	requests, err := h.attendanceService.ListLeave(actorFrom(c), &q)
	if err != nil {
		respondError(c, err, "failed to list leave")
		return
	}

	response.Success(c, requests)
}

// GetLeaveBalance returns the caller's balance for ?month=YYYY-MM (default current month)
// GET /api/v1/leave/balance
func (h *AttendanceHandler) GetLeaveBalance(c *gin.Context) {
	balance, err := h.attendanceService.LeaveBalance(middleware.GetUserID(c), c.Query("month"))
	if err != nil {
		respondError(c, err, "failed to compute leave balance")
		return
	}

	response.Success(c, balance)
}

// ApproveLeave approves a pending request
// POST /api/v1/leave/:id/approve
func (h *AttendanceHandler) ApproveLeave(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	leave, err := h.attendanceService.ApproveLeave(middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err, "failed to approve leave")
		return
	}

	response.Success(c, leave)
}

// RejectLeave rejects a pending request
// POST /api/v1/leave/:id/reject
func (h *AttendanceHandler) RejectLeave(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	leave, err := h.attendanceService.RejectLeave(middleware.GetUserID(c), id)
	if err != nil {
		respondError(c, err, "failed to reject leave")
		return
	}

	response.Success(c, leave)
}

// RegisterRoutes registers attendance and leave routes
func (h *AttendanceHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	attendance := rg.Group("/attendance")
	attendance.Use(authMiddleware)
	{
		attendance.GET("", h.GetAttendance)
		attendance.POST("/check-in", h.CheckIn)
		attendance.POST("/check-out", h.CheckOut)
	}

	leave := rg.Group("/leave")
	leave.Use(authMiddleware)
	{
		leave.GET("", h.GetLeave)
		leave.POST("", h.RequestLeave)
		leave.GET("/balance", h.GetLeaveBalance)
		leave.POST("/:id/approve", adminOnly, h.ApproveLeave)
		leave.POST("/:id/reject", adminOnly, h.RejectLeave)
	}
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tradedesk-portal/internal/middleware"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/service"
	"github.com/tradedesk-portal/pkg/response"
)

// AdminHandler handles user management API requests
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// ListUsers returns every user
// GET /api/v1/admin/users
func (h *AdminHandler) ListUsers(c *gin.Context) {
	users, err := h.adminService.ListUsers()
	if err != nil {
		respondError(c, err, "failed to list users")
		return
	}

	response.Success(c, users)
}

// CreateUser creates a user and returns its temporary password once
// POST /api/v1/admin/users
func (h *AdminHandler) CreateUser(c *gin.Context) {
	var req service.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	creds, err := h.adminService.CreateUser(&req)
	if err != nil {
		respondError(c, err, "failed to create user")
		return
	}

	response.Created(c, creds)
}

// DeleteUser removes a user and their accounts
// DELETE /api/v1/admin/users/:id
func (h *AdminHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.adminService.DeleteUser(actorFrom(c), id); err != nil {
		respondError(c, err, "failed to delete user")
		return
	}

	response.Success(c, gin.H{"message": "user deleted"})
}

// ResetPassword issues a new temporary password
// POST /api/v1/admin/users/:id/reset-password
func (h *AdminHandler) ResetPassword(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	creds, err := h.adminService.ResetPassword(id)
	if err != nil {
		respondError(c, err, "failed to reset password")
		return
	}

	response.Success(c, creds)
}

// RegisterRoutes registers admin routes
func (h *AdminHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	admin := rg.Group("/admin")
	admin.Use(authMiddleware, middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/users", h.ListUsers)
		admin.POST("/users", h.CreateUser)
		admin.DELETE("/users/:id", h.DeleteUser)
		admin.POST("/users/:id/reset-password", h.ResetPassword)
	}
}

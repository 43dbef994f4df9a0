package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tradedesk-portal/internal/middleware"
	"github.com/tradedesk-portal/internal/service"
	"github.com/tradedesk-portal/pkg/response"
)

// AuthHandler handles authentication API requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Login handles user login
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req service.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.authService.Login(&req)
	if err != nil {
		respondError(c, err, "failed to login")
		return
	}

	response.Success(c, token)
}

// RefreshToken handles token refresh
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var req struct {
		Token string `json:"token" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	token, err := h.authService.RefreshToken(req.Token)
	if err != nil {
		response.Unauthorized(c, "invalid or expired token")
		return
	}

	response.Success(c, token)
}

// Me returns the authenticated user
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	user, err := h.authService.GetUserByID(middleware.GetUserID(c))
	if err != nil {
		respondError(c, err, "failed to load user")
		return
	}

	response.Success(c, user)
}

// ChangePassword replaces the caller's password
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req service.ChangePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	if err := h.authService.ChangePassword(middleware.GetUserID(c), &req); err != nil {
		respondError(c, err, "failed to change password")
		return
	}

	response.Success(c, gin.H{"message": "password changed"})
}

// RegisterRoutes registers auth routes
func (h *AuthHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	auth := rg.Group("/auth")
	{
		auth.POST("/login", h.Login)
		auth.POST("/refresh", h.RefreshToken)
		auth.GET("/me", authMiddleware, h.Me)
		auth.POST("/change-password", authMiddleware, h.ChangePassword)
	}
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tradedesk-portal/internal/middleware"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/service"
	"github.com/tradedesk-portal/pkg/response"
)

// AccountHandler handles trading account API requests
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler creates a new AccountHandler
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// CreateAccount assigns a trading account to a user
// POST /api/v1/accounts
func (h *AccountHandler) CreateAccount(c *gin.Context) {
	var req service.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	account, err := h.accountService.CreateAccount(&req)
	if err != nil {
		respondError(c, err, "failed to create account")
		return
	}

	response.Created(c, account)
}

// GetAccounts lists the caller's accounts, or all accounts for admins
// GET /api/v1/accounts
func (h *AccountHandler) GetAccounts(c *gin.Context) {
	accounts, err := h.accountService.ListAccounts(actorFrom(c))
	if err != nil {
		respondError(c, err, "failed to list accounts")
		return
	}

	response.Success(c, accounts)
}

// UpdateAccount handles updating an account
// PUT /api/v1/accounts/:id
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	accountID, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	account, err := h.accountService.UpdateAccount(accountID, &req)
	if err != nil {
		respondError(c, err, "failed to update account")
		return
	}

	response.Success(c, account)
}

// DeleteAccount handles deleting an account
// DELETE /api/v1/accounts/:id
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	accountID, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.accountService.DeleteAccount(accountID); err != nil {
		respondError(c, err, "failed to delete account")
		return
	}

	response.Success(c, gin.H{"message": "account deleted"})
}

// RegisterRoutes registers account routes
func (h *AccountHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	accounts := rg.Group("/accounts")
	accounts.Use(authMiddleware)
	{
		accounts.GET("", h.GetAccounts)
		accounts.POST("", adminOnly, h.CreateAccount)
		accounts.PUT("/:id", adminOnly, h.UpdateAccount)
		accounts.DELETE("/:id", adminOnly, h.DeleteAccount)
	}
}

package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tradedesk-portal/internal/service"
	"github.com/tradedesk-portal/pkg/response"
)

// TradeRecordHandler handles daily P&L entry API requests
type TradeRecordHandler struct {
	recordService *service.TradeRecordService
}

// NewTradeRecordHandler creates a new TradeRecordHandler
func NewTradeRecordHandler(recordService *service.TradeRecordService) *TradeRecordHandler {
	return &TradeRecordHandler{
		recordService: recordService,
	}
}

// CreateTradeRecord records a day's P&L for one account
// POST /api/v1/trades
func (h *TradeRecordHandler) CreateTradeRecord(c *gin.Context) {
	var req service.CreateTradeRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	record, err := h.recordService.CreateTradeRecord(actorFrom(c), &req)
	if err != nil {
		respondError(c, err, "failed to save trade record")
		return
	}

	response.Created(c, record)
}

// GetTradeRecords lists records filtered by range, user and account
// GET /api/v1/trades
func (h *TradeRecordHandler) GetTradeRecords(c *gin.Context) {
	var q service.ListTradeRecordsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	records, err := h.recordService.ListTradeRecords(actorFrom(c), &q)
	if err != nil {
		respondError(c, err, "failed to list trade records")
		return
	}

	response.Success(c, records)
}

// UpdateTradeRecord handles updating a record
// PUT /api/v1/trades/:id
func (h *TradeRecordHandler) UpdateTradeRecord(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req service.UpdateTradeRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	record, err := h.recordService.UpdateTradeRecord(actorFrom(c), id, &req)
	if err != nil {
		respondError(c, err, "failed to update trade record")
		return
	}

	response.Success(c, record)
}

// DeleteTradeRecord handles deleting a record
// DELETE /api/v1/trades/:id
func (h *TradeRecordHandler) DeleteTradeRecord(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	if err := h.recordService.DeleteTradeRecord(actorFrom(c), id); err != nil {
		respondError(c, err, "failed to delete trade record")
		return
	}

	response.Success(c, gin.H{"message": "trade record deleted"})
}

// RegisterRoutes registers trade record routes
func (h *TradeRecordHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	trades := rg.Group("/trades")
	trades.Use(authMiddleware)
	{
		trades.GET("", h.GetTradeRecords)
		trades.POST("", h.CreateTradeRecord)
		trades.PUT("/:id", h.UpdateTradeRecord)
		trades.DELETE("/:id", h.DeleteTradeRecord)
	}
}

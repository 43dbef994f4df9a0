package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/tradedesk-portal/internal/marketdata"
	"github.com/tradedesk-portal/internal/service"
	"github.com/tradedesk-portal/pkg/response"
)

// MarketHandler serves the market dashboard
type MarketHandler struct {
	marketService *service.MarketService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(marketService *service.MarketService) *MarketHandler {
	return &MarketHandler{
		marketService: marketService,
	}
}

// GetSnapshot returns every dashboard section
// GET /api/v1/market
func (h *MarketHandler) GetSnapshot(c *gin.Context) {
	response.Success(c, h.marketService.Snapshot(c.Request.Context()))
}

// GetIndices returns the index quotes
// GET /api/v1/market/indices
func (h *MarketHandler) GetIndices(c *gin.Context) {
	snap := h.marketService.Snapshot(c.Request.Context())
	h.section(c, snap, marketdata.SectionIndices, snap.Indices)
}

// GetSectors returns sector performance
// GET /api/v1/market/sectors
func (h *MarketHandler) GetSectors(c *gin.Context) {
	snap := h.marketService.Snapshot(c.Request.Context())
	h.section(c, snap, marketdata.SectionSectors, snap.Sectors)
}

// GetMovers returns top gainers and losers
// GET /api/v1/market/movers
func (h *MarketHandler) GetMovers(c *gin.Context) {
	snap := h.marketService.Snapshot(c.Request.Context())
	h.section(c, snap, marketdata.SectionMovers, snap.Movers)
}

// GetNews returns the latest headlines
// GET /api/v1/market/news
func (h *MarketHandler) GetNews(c *gin.Context) {
	snap := h.marketService.Snapshot(c.Request.Context())
	h.section(c, snap, marketdata.SectionNews, snap.News)
}

// GetSplits returns upcoming stock splits
// GET /api/v1/market/splits
func (h *MarketHandler) GetSplits(c *gin.Context) {
	snap := h.marketService.Snapshot(c.Request.Context())
	h.section(c, snap, marketdata.SectionSplits, snap.Splits)
}

func (h *MarketHandler) section(c *gin.Context, snap *marketdata.Snapshot, name string, data interface{}) {
	response.Success(c, gin.H{
		name:         data,
		"origin":     snap.Origins[name],
		"updated_at": snap.UpdatedAt,
	})
}

// RegisterRoutes registers market routes
func (h *MarketHandler) RegisterRoutes(rg *gin.RouterGroup) {
	market := rg.Group("/market")
	{
		market.GET("", h.GetSnapshot)
		market.GET("/indices", h.GetIndices)
		market.GET("/sectors", h.GetSectors)
		market.GET("/movers", h.GetMovers)
		market.GET("/news", h.GetNews)
		market.GET("/splits", h.GetSplits)
	}
}

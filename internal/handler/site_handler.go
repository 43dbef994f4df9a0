package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/tradedesk-portal/internal/middleware"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/service"
	"github.com/tradedesk-portal/pkg/response"
)

// SiteHandler serves the public marketing site
type SiteHandler struct {
	siteService *service.SiteService
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(siteService *service.SiteService) *SiteHandler {
	return &SiteHandler{
		siteService: siteService,
	}
}

// SubmitContact stores a contact form submission
// POST /api/v1/site/contact
func (h *SiteHandler) SubmitContact(c *gin.Context) {
	var req service.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	msg, err := h.siteService.SubmitContact(&req)
	if err != nil {
		respondError(c, err, "failed to send message")
		return
	}

	response.Created(c, gin.H{"id": msg.ID, "message": "thanks, we will be in touch"})
}

// GetContactMessages lists contact form submissions
// GET /api/v1/site/contact
func (h *SiteHandler) GetContactMessages(c *gin.Context) {
	// Parse pagination params
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}

	messages, total, err := h.siteService.ListContactMessages(page, pageSize)
	if err != nil {
		respondError(c, err, "failed to list messages")
		return
	}

	response.SuccessPaginated(c, messages, total, page, pageSize)
}

// GetTestimonials lists published testimonials
// GET /api/v1/site/testimonials
func (h *SiteHandler) GetTestimonials(c *gin.Context) {
	items, err := h.siteService.ListTestimonials()
	if err != nil {
		respondError(c, err, "failed to list testimonials")
		return
	}

	response.Success(c, items)
}

// CreateTestimonial publishes a testimonial
// POST /api/v1/site/testimonials
func (h *SiteHandler) CreateTestimonial(c *gin.Context) {
	var req service.CreateTestimonialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	item, err := h.siteService.CreateTestimonial(&req)
	if err != nil {
		respondError(c, err, "failed to create testimonial")
		return
	}

	response.Created(c, item)
}

// GetCareers lists open positions
// GET /api/v1/site/careers
func (h *SiteHandler) GetCareers(c *gin.Context) {
	jobs, err := h.siteService.ListCareers()
	if err != nil {
		respondError(c, err, "failed to list careers")
		return
	}

	response.Success(c, jobs)
}

// CreateJobPosting opens a position
// POST /api/v1/site/careers
func (h *SiteHandler) CreateJobPosting(c *gin.Context) {
	var req service.CreateJobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	job, err := h.siteService.CreateJobPosting(&req)
	if err != nil {
		respondError(c, err, "failed to create job posting")
		return
	}

	response.Created(c, job)
}

// RegisterRoutes registers public site routes; writes and the inbox need an admin
func (h *SiteHandler) RegisterRoutes(rg *gin.RouterGroup, authMiddleware gin.HandlerFunc) {
	admin := []gin.HandlerFunc{authMiddleware, middleware.RequireRole(models.RoleAdmin)}

	site := rg.Group("/site")
	{
		site.POST("/contact", h.SubmitContact)
		site.GET("/testimonials", h.GetTestimonials)
		site.GET("/careers", h.GetCareers)

		site.GET("/contact", append(admin, h.GetContactMessages)...)
		site.POST("/testimonials", append(admin, h.CreateTestimonial)...)
		site.POST("/careers", append(admin, h.CreateJobPosting)...)
	}
}

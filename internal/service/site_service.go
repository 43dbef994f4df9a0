package service

import (
	"strings"

	"github.com/tradedesk-portal/internal/models"
	"go.uber.org/zap"
)

// SiteService serves the public marketing site
type SiteService struct {
	repo   SiteStore
	logger *zap.Logger
}

// NewSiteService creates a new SiteService
func NewSiteService(repo SiteStore) *SiteService {
	return &SiteService{repo: repo, logger: zap.L().Named("site")}
}

// ContactRequest represents the public contact form
type ContactRequest struct {
	Name    string `json:"name" binding:"required,max=100"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"omitempty,max=30"`
	Message string `json:"message" binding:"required,max=5000"`
}

// CreateTestimonialRequest represents the create testimonial request
type CreateTestimonialRequest struct {
	Author string `json:"author" binding:"required,max=100"`
	Role   string `json:"role" binding:"omitempty,max=100"`
	Quote  string `json:"quote" binding:"required"`
	Rating int    `json:"rating" binding:"omitempty,min=1,max=5"`
}

// CreateJobPostingRequest represents the create job posting request
type CreateJobPostingRequest struct {
	Title       string `json:"title" binding:"required,max=150"`
	Location    string `json:"location" binding:"omitempty,max=100"`
	Type        string `json:"type" binding:"omitempty,oneof=full-time part-time internship contract"`
	Description string `json:"description"`
}

// SubmitContact stores a contact form message
func (s *SiteService) SubmitContact(req *ContactRequest) (*models.ContactMessage, error) {
	msg := &models.ContactMessage{
		Name:    strings.TrimSpace(req.Name),
		Email:   strings.TrimSpace(req.Email),
		Phone:   strings.TrimSpace(req.Phone),
		Message: strings.TrimSpace(req.Message),
	}
	if err := s.repo.CreateContactMessage(msg); err != nil {
		return nil, err
	}
	s.logger.Info("contact message received", zap.String("id", msg.ID.String()))
	return msg, nil
}

// ListContactMessages returns one page of contact messages, newest first
func (s *SiteService) ListContactMessages(page, pageSize int) ([]models.ContactMessage, int64, error) {
	return s.repo.ListContactMessages(page, pageSize)
}

func (s *SiteService) ListTestimonials() ([]models.Testimonial, error) {
	return s.repo.ListPublishedTestimonials()
}

func (s *SiteService) CreateTestimonial(req *CreateTestimonialRequest) (*models.Testimonial, error) {
	rating := req.Rating
	if rating == 0 {
		rating = 5
	}
	t := &models.Testimonial{
		Author:    req.Author,
		Role:      req.Role,
		Quote:     req.Quote,
		Rating:    rating,
		Published: true,
	}
	if err := s.repo.CreateTestimonial(t); err != nil {
		return nil, err
	}
	return t, nil
}

func (s *SiteService) ListCareers() ([]models.JobPosting, error) {
	return s.repo.ListOpenJobPostings()
}

func (s *SiteService) CreateJobPosting(req *CreateJobPostingRequest) (*models.JobPosting, error) {
	jobType := req.Type
	if jobType == "" {
		jobType = "full-time"
	}
	j := &models.JobPosting{
		Title:       req.Title,
		Location:    req.Location,
		Type:        jobType,
		Description: req.Description,
		Open:        true,
	}
	if err := s.repo.CreateJobPosting(j); err != nil {
		return nil, err
	}
	return j, nil
}

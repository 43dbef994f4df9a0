package repository

import (
	"github.com/tradedesk-portal/internal/models"
	"gorm.io/gorm"
)

// SiteRepository handles public site content
type SiteRepository struct {
	db *gorm.DB
}

// NewSiteRepository creates a new SiteRepository
func NewSiteRepository(db *gorm.DB) *SiteRepository {
	return &SiteRepository{db: db}
}

func (r *SiteRepository) CreateContactMessage(m *models.ContactMessage) error {
	return r.db.Create(m).Error
}

// ListContactMessages retrieves contact messages newest first with pagination
func (r *SiteRepository) ListContactMessages(page, pageSize int) ([]models.ContactMessage, int64, error) {
	var total int64
	if err := r.db.Model(&models.ContactMessage{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.ContactMessage
	offset := (page - 1) * pageSize
	err := r.db.Order("created_at DESC").Offset(offset).Limit(pageSize).Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

func (r *SiteRepository) CreateTestimonial(t *models.Testimonial) error {
	return r.db.Create(t).Error
}

// ListPublishedTestimonials retrieves testimonials visible on the site
func (r *SiteRepository) ListPublishedTestimonials() ([]models.Testimonial, error) {
	var items []models.Testimonial
	if err := r.db.Where("published = ?", true).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *SiteRepository) CreateJobPosting(j *models.JobPosting) error {
	return r.db.Create(j).Error
}

// ListOpenJobPostings retrieves positions still accepting applications
func (r *SiteRepository) ListOpenJobPostings() ([]models.JobPosting, error) {
	var items []models.JobPosting
	if err := r.db.Where("open = ?", true).Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

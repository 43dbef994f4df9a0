package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactMessage is a message left through the public contact form
type ContactMessage struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Email     string    `gorm:"size:100;not null" json:"email"`
	Phone     string    `gorm:"size:30" json:"phone,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (ContactMessage) TableName() string {
	return "contact_messages"
}

func (m *ContactMessage) BeforeCreate(tx *gorm.DB) error {
	assignID(&m.ID)
	return nil
}

// Testimonial is a published quote shown on the public site
type Testimonial struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Author    string    `gorm:"size:100;not null" json:"author"`
	Role      string    `gorm:"size:100" json:"role"`
	Quote     string    `gorm:"type:text;not null" json:"quote"`
	Rating    int       `gorm:"not null;default:5" json:"rating"`
	Published bool      `gorm:"not null;default:true" json:"published"`
	CreatedAt time.Time `json:"created_at"`
}

func (Testimonial) TableName() string {
	return "testimonials"
}

func (t *Testimonial) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

// JobPosting is an open position listed on the careers page
type JobPosting struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string    `gorm:"size:150;not null" json:"title"`
	Location    string    `gorm:"size:100" json:"location"`
	Type        string    `gorm:"size:30" json:"type"`
	Description string    `gorm:"type:text" json:"description"`
	Open        bool      `gorm:"not null;default:true;index" json:"open"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (JobPosting) TableName() string {
	return "job_postings"
}

func (j *JobPosting) BeforeCreate(tx *gorm.DB) error {
	assignID(&j.ID)
	return nil
}

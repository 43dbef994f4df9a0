package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Holiday is a day the firm does not trade
type Holiday struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Date      time.Time `gorm:"type:date;uniqueIndex;not null" json:"date"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name for Holiday model
func (Holiday) TableName() string {
	return "holidays"
}

// BeforeCreate assigns a new UUID when none is set
func (h *Holiday) BeforeCreate(tx *gorm.DB) error {
	assignID(&h.ID)
	return nil
}

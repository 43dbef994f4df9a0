package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TradingAccount is a brokerage account assigned to one employee
type TradingAccount struct {
	ID            uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID      `gorm:"type:uuid;index;not null" json:"user_id"`
	Broker        string         `gorm:"size:50;not null" json:"broker"`
	AccountNumber string         `gorm:"uniqueIndex;size:50;not null" json:"account_number"`
	Label         string         `gorm:"size:100" json:"label"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`

	// Relations
	User User `gorm:"foreignKey:UserID" json:"-"`
}

// TableName specifies the table name for TradingAccount model
func (TradingAccount) TableName() string {
	return "trading_accounts"
}

// BeforeCreate assigns a new UUID when none is set
func (a *TradingAccount) BeforeCreate(tx *gorm.DB) error {
	assignID(&a.ID)
	return nil
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// TradeRecord is one employee's net result on one account for one trading day.
// At most one record exists per (user, account, date).
type TradeRecord struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_trade_user_account_date,priority:1" json:"user_id"`
	AccountID    uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_trade_user_account_date,priority:2" json:"account_id"`
	TradeDate    time.Time       `gorm:"type:date;not null;uniqueIndex:idx_trade_user_account_date,priority:3;index" json:"trade_date"`
	NetPnL       decimal.Decimal `gorm:"type:numeric(20,2);not null" json:"net_pnl"`
	SharesTraded int64           `gorm:"not null;default:0" json:"shares_traded"`
	IsHoliday    bool            `gorm:"not null;default:false" json:"is_holiday"`
	Notes        string          `gorm:"size:500" json:"notes,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`

	// Relations
	User    User           `gorm:"foreignKey:UserID" json:"-"`
	Account TradingAccount `gorm:"foreignKey:AccountID" json:"-"`
}

// TableName specifies the table name for TradeRecord model
func (TradeRecord) TableName() string {
	return "trade_records"
}

// BeforeCreate assigns a new UUID when none is set
func (t *TradeRecord) BeforeCreate(tx *gorm.DB) error {
	assignID(&t.ID)
	return nil
}

package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tradedesk-portal/internal/models"
	"gorm.io/gorm"
)

var (
	ErrTradeRecordNotFound = errors.New("trade record not found")
)

// TradeRecordFilter narrows a trade record query. Zero values are ignored.
type TradeRecordFilter struct {
	UserID    uuid.UUID
	AccountID uuid.UUID
	From      time.Time
	To        time.Time
}

// TradeRecordRepository handles daily P&L record data access
type TradeRecordRepository struct {
	db *gorm.DB
}

// NewTradeRecordRepository creates a new TradeRecordRepository
func NewTradeRecordRepository(db *gorm.DB) *TradeRecordRepository {
	return &TradeRecordRepository{db: db}
}

// Create creates a new record; a second record for the same user, account and date yields ErrDuplicate
func (r *TradeRecordRepository) Create(record *models.TradeRecord) error {
	return translate(r.db.Create(record).Error, ErrTradeRecordNotFound)
}

// GetByID retrieves a record by ID
func (r *TradeRecordRepository) GetByID(id uuid.UUID) (*models.TradeRecord, error) {
	var record models.TradeRecord
	if err := r.db.Where("id = ?", id).First(&record).Error; err != nil {
		return nil, translate(err, ErrTradeRecordNotFound)
	}
	return &record, nil
}

// Find retrieves records matching filter ordered by trade date
func (r *TradeRecordRepository) Find(filter TradeRecordFilter) ([]models.TradeRecord, error) {
	query := r.db.Model(&models.TradeRecord{})
	if filter.UserID != uuid.Nil {
		query = query.Where("user_id = ?", filter.UserID)
	}
	if filter.AccountID != uuid.Nil {
		query = query.Where("account_id = ?", filter.AccountID)
	}
	if !filter.From.IsZero() {
		query = query.Where("trade_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("trade_date <= ?", filter.To)
	}

	var records []models.TradeRecord
	if err := query.Order("trade_date ASC, created_at ASC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// Update updates a record
func (r *TradeRecordRepository) Update(record *models.TradeRecord) error {
	return translate(r.db.Save(record).Error, ErrTradeRecordNotFound)
}

// Delete removes a record
func (r *TradeRecordRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.TradeRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrTradeRecordNotFound
	}
	return nil
}

// markHoliday sets the holiday flag on every record dated date
func markHoliday(db *gorm.DB, date time.Time, holiday bool) error {
	return db.Model(&models.TradeRecord{}).Where("trade_date = ?", date).Update("is_holiday", holiday).Error
}

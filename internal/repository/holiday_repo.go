package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tradedesk-portal/internal/models"
	"gorm.io/gorm"
)

var (
	ErrHolidayNotFound = errors.New("holiday not found")
)

// HolidayRepository handles firm holiday data access
type HolidayRepository struct {
	db *gorm.DB
}

// NewHolidayRepository creates a new HolidayRepository
func NewHolidayRepository(db *gorm.DB) *HolidayRepository {
	return &HolidayRepository{db: db}
}

// CreateAndFlag inserts holiday and flags the trade records on its date in one transaction
func (r *HolidayRepository) CreateAndFlag(holiday *models.Holiday) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(holiday).Error; err != nil {
			return translate(err, ErrHolidayNotFound)
		}
		return markHoliday(tx, holiday.Date, true)
	})
}

// ExistsOn reports whether date is a holiday
func (r *HolidayRepository) ExistsOn(date time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&models.Holiday{}).Where("date = ?", date).Count(&count).Error
	return count > 0, err
}

// ListBetween retrieves holidays in [from, to]; zero bounds are open
func (r *HolidayRepository) ListBetween(from, to time.Time) ([]models.Holiday, error) {
	query := r.db.Model(&models.Holiday{})
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}
	var holidays []models.Holiday
	if err := query.Order("date ASC").Find(&holidays).Error; err != nil {
		return nil, err
	}
	return holidays, nil
}

// DeleteAndUnflag removes a holiday and clears the flag on its trade records in one transaction
func (r *HolidayRepository) DeleteAndUnflag(id uuid.UUID) (*models.Holiday, error) {
	var holiday models.Holiday
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id = ?", id).First(&holiday).Error; err != nil {
			return translate(err, ErrHolidayNotFound)
		}
		if err := tx.Delete(&holiday).Error; err != nil {
			return err
		}
		return markHoliday(tx, holiday.Date, false)
	})
	if err != nil {
		return nil, err
	}
	return &holiday, nil
}

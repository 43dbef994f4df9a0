package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/tradedesk-portal/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAccountNotFound = errors.New("account not found")
)

// AccountRepository handles trading account data access
type AccountRepository struct {
	db *gorm.DB
}

// NewAccountRepository creates a new AccountRepository
func NewAccountRepository(db *gorm.DB) *AccountRepository {
	return &AccountRepository{db: db}
}

// Create creates a new account
func (r *AccountRepository) Create(account *models.TradingAccount) error {
	return translate(r.db.Create(account).Error, ErrAccountNotFound)
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(id uuid.UUID) (*models.TradingAccount, error) {
	var account models.TradingAccount
	if err := r.db.Where("id = ?", id).First(&account).Error; err != nil {
		return nil, translate(err, ErrAccountNotFound)
	}
	return &account, nil
}

// GetByIDAndUserID retrieves an account by ID and user ID
func (r *AccountRepository) GetByIDAndUserID(id, userID uuid.UUID) (*models.TradingAccount, error) {
	var account models.TradingAccount
	if err := r.db.Where("id = ? AND user_id = ?", id, userID).First(&account).Error; err != nil {
		return nil, translate(err, ErrAccountNotFound)
	}
	return &account, nil
}

// GetByUserID retrieves all accounts for a user
func (r *AccountRepository) GetByUserID(userID uuid.UUID) ([]models.TradingAccount, error) {
	var accounts []models.TradingAccount
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// List retrieves all accounts
func (r *AccountRepository) List() ([]models.TradingAccount, error) {
	var accounts []models.TradingAccount
	if err := r.db.Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

// Update updates an account
func (r *AccountRepository) Update(account *models.TradingAccount) error {
	return translate(r.db.Save(account).Error, ErrAccountNotFound)
}

// Delete soft deletes an account
func (r *AccountRepository) Delete(id uuid.UUID) error {
	result := r.db.Where("id = ?", id).Delete(&models.TradingAccount{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/tradedesk-portal/internal/models"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound = errors.New("user not found")
)

// UserRepository handles user data access
type UserRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create creates a new user
func (r *UserRepository) Create(user *models.User) error {
	return translate(r.db.Create(user).Error, ErrUserNotFound)
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ?", id).First(&user).Error; err != nil {
		return nil, translate(err, ErrUserNotFound)
	}
	return &user, nil
}

// GetByEmail retrieves a user by email (case-insensitive)
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("LOWER(email) = LOWER(?)", email).First(&user).Error; err != nil {
		return nil, translate(err, ErrUserNotFound)
	}
	return &user, nil
}

// ExistsByEmail checks if an email is already registered
func (r *UserRepository) ExistsByEmail(email string) (bool, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("LOWER(email) = LOWER(?)", email).Count(&count).Error
	return count > 0, err
}

// List retrieves all users ordered by name
func (r *UserRepository) List() ([]models.User, error) {
	var users []models.User
	if err := r.db.Order("name ASC").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// CountByRole counts users with the given role
func (r *UserRepository) CountByRole(role models.Role) (int64, error) {
	var count int64
	err := r.db.Model(&models.User{}).Where("role = ?", role).Count(&count).Error
	return count, err
}

// UpdatePassword replaces the stored password hash
func (r *UserRepository) UpdatePassword(id uuid.UUID, hash string) error {
	result := r.db.Model(&models.User{}).Where("id = ?", id).Update("password_hash", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete soft deletes a user and their trading accounts
func (r *UserRepository) Delete(id uuid.UUID) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.User{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}
		return tx.Where("user_id = ?", id).Delete(&models.TradingAccount{}).Error
	})
}

package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/tradedesk-portal/internal/models"
	"gorm.io/gorm"
)

var (
	ErrAttendanceNotFound = errors.New("attendance not found")
	ErrLeaveNotFound      = errors.New("leave request not found")
)

// AttendanceRepository handles attendance and leave data access
type AttendanceRepository struct {
	db *gorm.DB
}

// NewAttendanceRepository creates a new AttendanceRepository
func NewAttendanceRepository(db *gorm.DB) *AttendanceRepository {
	return &AttendanceRepository{db: db}
}

// Create creates an attendance row; a second row for the same user and date yields ErrDuplicate
func (r *AttendanceRepository) Create(a *models.Attendance) error {
	return translate(r.db.Create(a).Error, ErrAttendanceNotFound)
}

// GetByUserAndDate retrieves the attendance of a user on a date
func (r *AttendanceRepository) GetByUserAndDate(userID uuid.UUID, date time.Time) (*models.Attendance, error) {
	var a models.Attendance
	if err := r.db.Where("user_id = ? AND date = ?", userID, date).First(&a).Error; err != nil {
		return nil, translate(err, ErrAttendanceNotFound)
	}
	return &a, nil
}

// Update updates an attendance row
func (r *AttendanceRepository) Update(a *models.Attendance) error {
	return r.db.Save(a).Error
}

// List retrieves attendance in [from, to]; uuid.Nil lists every user
func (r *AttendanceRepository) List(userID uuid.UUID, from, to time.Time) ([]models.Attendance, error) {
	query := r.db.Model(&models.Attendance{})
	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}
	var rows []models.Attendance
	if err := query.Order("date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// CreateLeave creates a leave request
func (r *AttendanceRepository) CreateLeave(l *models.LeaveRequest) error {
	return translate(r.db.Create(l).Error, ErrLeaveNotFound)
}

// GetLeave retrieves a leave request by ID
func (r *AttendanceRepository) GetLeave(id uuid.UUID) (*models.LeaveRequest, error) {
	var l models.LeaveRequest
	if err := r.db.Where("id = ?", id).First(&l).Error; err != nil {
		return nil, translate(err, ErrLeaveNotFound)
	}
	return &l, nil
}

// UpdateLeave updates a leave request
func (r *AttendanceRepository) UpdateLeave(l *models.LeaveRequest) error {
	return r.db.Save(l).Error
}

// ListLeave retrieves leave requests in [from, to]; uuid.Nil lists every user
func (r *AttendanceRepository) ListLeave(userID uuid.UUID, from, to time.Time) ([]models.LeaveRequest, error) {
	query := r.db.Model(&models.LeaveRequest{})
	if userID != uuid.Nil {
		query = query.Where("user_id = ?", userID)
	}
	if !from.IsZero() {
		query = query.Where("date >= ?", from)
	}
	if !to.IsZero() {
		query = query.Where("date <= ?", to)
	}
	var rows []models.LeaveRequest
	if err := query.Order("date DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

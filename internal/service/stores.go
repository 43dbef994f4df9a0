package service

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/repository"
)

// Actor is the authenticated caller of a service operation
type Actor struct {
	ID   uuid.UUID
	Role models.Role
}

// IsAdmin reports whether the caller is an administrator
func (a Actor) IsAdmin() bool {
	return a.Role == models.RoleAdmin
}

// UserStore is the user persistence used by services
type UserStore interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	ExistsByEmail(email string) (bool, error)
	List() ([]models.User, error)
	CountByRole(role models.Role) (int64, error)
	UpdatePassword(id uuid.UUID, hash string) error
	Delete(id uuid.UUID) error
}

// AccountStore is the trading account persistence used by services
type AccountStore interface {
	Create(account *models.TradingAccount) error
	GetByID(id uuid.UUID) (*models.TradingAccount, error)
	GetByIDAndUserID(id, userID uuid.UUID) (*models.TradingAccount, error)
	GetByUserID(userID uuid.UUID) ([]models.TradingAccount, error)
	List() ([]models.TradingAccount, error)
	Update(account *models.TradingAccount) error
	Delete(id uuid.UUID) error
}

// TradeRecordStore is the daily P&L persistence used by services
type TradeRecordStore interface {
	Create(record *models.TradeRecord) error
	GetByID(id uuid.UUID) (*models.TradeRecord, error)
	Find(filter repository.TradeRecordFilter) ([]models.TradeRecord, error)
	Update(record *models.TradeRecord) error
	Delete(id uuid.UUID) error
}

// HolidayStore is the holiday calendar persistence used by services
// Creating and deleting a holiday also updates the flag on that date's trade records.
type HolidayStore interface {
	CreateAndFlag(holiday *models.Holiday) error
	DeleteAndUnflag(id uuid.UUID) (*models.Holiday, error)
	ExistsOn(date time.Time) (bool, error)
	ListBetween(from, to time.Time) ([]models.Holiday, error)
}

// AttendanceStore is the attendance and leave persistence used by services
type AttendanceStore interface {
	Create(a *models.Attendance) error
	GetByUserAndDate(userID uuid.UUID, date time.Time) (*models.Attendance, error)
	Update(a *models.Attendance) error
	List(userID uuid.UUID, from, to time.Time) ([]models.Attendance, error)
	CreateLeave(l *models.LeaveRequest) error
	GetLeave(id uuid.UUID) (*models.LeaveRequest, error)
	UpdateLeave(l *models.LeaveRequest) error
	ListLeave(userID uuid.UUID, from, to time.Time) ([]models.LeaveRequest, error)
}

// SiteStore is the public site content persistence used by services
type SiteStore interface {
	CreateContactMessage(m *models.ContactMessage) error
	ListContactMessages(page, pageSize int) ([]models.ContactMessage, int64, error)
	CreateTestimonial(t *models.Testimonial) error
	ListPublishedTestimonials() ([]models.Testimonial, error)
	CreateJobPosting(j *models.JobPosting) error
	ListOpenJobPostings() ([]models.JobPosting, error)
}

var (
	_ UserStore        = (*repository.UserRepository)(nil)
	_ AccountStore     = (*repository.AccountRepository)(nil)
	_ TradeRecordStore = (*repository.TradeRecordRepository)(nil)
	_ HolidayStore     = (*repository.HolidayRepository)(nil)
	_ AttendanceStore  = (*repository.AttendanceRepository)(nil)
	_ SiteStore        = (*repository.SiteRepository)(nil)
)

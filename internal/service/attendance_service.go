package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradedesk-portal/internal/analytics"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrAlreadyCheckedIn  = errors.New("already checked in today")
	ErrNotCheckedIn      = errors.New("not checked in today")
	ErrAlreadyCheckedOut = errors.New("already checked out today")
	ErrLeaveNotPending   = errors.New("leave request is not pending")
	ErrDuplicateLeave    = errors.New("a leave request already exists for this date")
	ErrInsufficientLeave = errors.New("insufficient leave balance for this month")
	ErrInvalidLeaveMonth = errors.New("invalid month, expected YYYY-MM")
)

// Working-day thresholds in the firm's timezone
const (
	lateAfterHour, lateAfterMinute = 9, 30
	halfDayBeforeHour              = 13
)

// MonthlyLeaveAllowance is one full day plus one half day per calendar month
func MonthlyLeaveAllowance() decimal.Decimal { return decimal.RequireFromString("1.5") }

// LeaveDays is the number of days a leave kind consumes
func LeaveDays(kind models.LeaveKind) decimal.Decimal {
	if kind == models.LeaveHalf {
		return decimal.RequireFromString("0.5")
	}
	return decimal.NewFromInt(1)
}

// AttendanceService handles check-in/out and leave requests
type AttendanceService struct {
	repo     AttendanceStore
	calendar *Calendar
	logger   *zap.Logger
}

// NewAttendanceService creates a new AttendanceService
func NewAttendanceService(repo AttendanceStore, calendar *Calendar) *AttendanceService {
	return &AttendanceService{
		repo:     repo,
		calendar: calendar,
		logger:   zap.L().Named("attendance"),
	}
}

// CreateLeaveRequest represents the create leave request
type CreateLeaveRequest struct {
	Date   string           `json:"date" binding:"required"`
	Kind   models.LeaveKind `json:"kind" binding:"required,oneof=full half"`
	Reason string           `json:"reason" binding:"omitempty,max=500"`
}

// ListAttendanceQuery represents the attendance and leave list query
type ListAttendanceQuery struct {
	RangeQuery
	UserID string `form:"user_id"`
}

// LeaveBalance is a user's leave position for one calendar month
type LeaveBalance struct {
	Month     string          `json:"month"`
	Allowance decimal.Decimal `json:"allowance"`
	Used      decimal.Decimal `json:"used"`
	Pending   decimal.Decimal `json:"pending"`
	Remaining decimal.Decimal `json:"remaining"`
}

// ComputeLeaveBalance sums the requests falling in month (YYYY-MM).
// Remaining is max(0, allowance - approved); pending requests are reported apart.
func ComputeLeaveBalance(requests []models.LeaveRequest, month string) LeaveBalance {
	b := LeaveBalance{
		Month:     month,
		Allowance: MonthlyLeaveAllowance(),
		Used:      decimal.Zero,
		Pending:   decimal.Zero,
	}
	for _, r := range requests {
		if analytics.DateOf(r.Date).MonthKey() != month {
			continue
		}
		switch r.Status {
		case models.LeaveApproved:
			b.Used = b.Used.Add(LeaveDays(r.Kind))
		case models.LeavePending:
			b.Pending = b.Pending.Add(LeaveDays(r.Kind))
		}
	}
	b.Remaining = decimal.Max(decimal.Zero, b.Allowance.Sub(b.Used))
	return b
}

// CheckIn records the caller's arrival for today
func (s *AttendanceService) CheckIn(userID uuid.UUID) (*models.Attendance, error) {
	now := s.calendar.LocalNow()
	today := analytics.DateIn(now, s.calendar.Location)

	status := models.AttendancePresent
	lateAfter := time.Date(now.Year(), now.Month(), now.Day(), lateAfterHour, lateAfterMinute, 0, 0, s.calendar.Location)
	if now.After(lateAfter) {
		status = models.AttendanceLate
	}

	row := &models.Attendance{
		UserID:  userID,
		Date:    today.Time(),
		CheckIn: now,
		Status:  status,
	}
	if err := s.repo.Create(row); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}

	s.logger.Info("check-in", zap.String("user_id", userID.String()), zap.String("status", string(status)))
	return row, nil
}

// CheckOut records the caller's departure for today; leaving before 13:00 is a half day
func (s *AttendanceService) CheckOut(userID uuid.UUID) (*models.Attendance, error) {
	now := s.calendar.LocalNow()
	today := analytics.DateIn(now, s.calendar.Location)

	row, err := s.repo.GetByUserAndDate(userID, today.Time())
	if err != nil {
		if errors.Is(err, repository.ErrAttendanceNotFound) {
			return nil, ErrNotCheckedIn
		}
		return nil, err
	}
	if row.CheckOut != nil {
		return nil, ErrAlreadyCheckedOut
	}

	row.CheckOut = &now
	if now.Hour() < halfDayBeforeHour {
		row.Status = models.AttendanceHalfDay
	}
	if err := s.repo.Update(row); err != nil {
		return nil, err
	}
	return row, nil
}

// ListAttendance lists attendance rows; admins may list any user or everyone
func (s *AttendanceService) ListAttendance(actor Actor, q *ListAttendanceQuery) ([]models.Attendance, error) {
	userID, from, to, err := s.listScope(actor, q)
	if err != nil {
		return nil, err
	}
	return s.repo.List(userID, from, to)
}

// RequestLeave files a leave request for the caller
func (s *AttendanceService) RequestLeave(userID uuid.UUID, req *CreateLeaveRequest) (*models.LeaveRequest, error) {
	date, err := analytics.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	month := analytics.MonthOf(date)
	existing, err := s.repo.ListLeave(userID, month.From.Time(), month.To.Time())
	if err != nil {
		return nil, err
	}
	for _, r := range existing {
		if analytics.DateOf(r.Date) == date && r.Status != models.LeaveRejected {
			return nil, ErrDuplicateLeave
		}
	}

	balance := ComputeLeaveBalance(existing, date.MonthKey())
	if balance.Remaining.Sub(balance.Pending).LessThan(LeaveDays(req.Kind)) {
		return nil, ErrInsufficientLeave
	}

	leave := &models.LeaveRequest{
		UserID: userID,
		Date:   date.Time(),
		Kind:   req.Kind,
		Reason: req.Reason,
		Status: models.LeavePending,
	}
	if err := s.repo.CreateLeave(leave); err != nil {
		return nil, err
	}
	return leave, nil
}

// ListLeave lists leave requests; admins may list any user or everyone
func (s *AttendanceService) ListLeave(actor Actor, q *ListAttendanceQuery) ([]models.LeaveRequest, error) {
	userID, from, to, err := s.listScope(actor, q)
	if err != nil {
		return nil, err
	}
	return s.repo.ListLeave(userID, from, to)
}

// ApproveLeave approves a pending request if the month still has allowance
func (s *AttendanceService) ApproveLeave(reviewer uuid.UUID, id uuid.UUID) (*models.LeaveRequest, error) {
	leave, err := s.pendingLeave(id)
	if err != nil {
		return nil, err
	}

	month := analytics.MonthOf(analytics.DateOf(leave.Date))
	existing, err := s.repo.ListLeave(leave.UserID, month.From.Time(), month.To.Time())
	if err != nil {
		return nil, err
	}
	balance := ComputeLeaveBalance(existing, month.From.MonthKey())
	if balance.Remaining.LessThan(LeaveDays(leave.Kind)) {
		return nil, ErrInsufficientLeave
	}

	return s.review(leave, reviewer, models.LeaveApproved)
}

// RejectLeave rejects a pending request
func (s *AttendanceService) RejectLeave(reviewer uuid.UUID, id uuid.UUID) (*models.LeaveRequest, error) {
	leave, err := s.pendingLeave(id)
	if err != nil {
		return nil, err
	}
	return s.review(leave, reviewer, models.LeaveRejected)
}

// LeaveBalance reports the user's balance for month (YYYY-MM); empty means the current month
func (s *AttendanceService) LeaveBalance(userID uuid.UUID, month string) (*LeaveBalance, error) {
	start := analytics.MonthOf(s.calendar.Today()).From
	if month != "" {
		t, err := time.Parse("2006-01", month)
		if err != nil {
			return nil, ErrInvalidLeaveMonth
		}
		start = analytics.DateOf(t)
	}

	r := analytics.MonthOf(start)
	requests, err := s.repo.ListLeave(userID, r.From.Time(), r.To.Time())
	if err != nil {
		return nil, err
	}
	b := ComputeLeaveBalance(requests, start.MonthKey())
	return &b, nil
}

func (s *AttendanceService) pendingLeave(id uuid.UUID) (*models.LeaveRequest, error) {
	leave, err := s.repo.GetLeave(id)
	if err != nil {
		return nil, err
	}
	if leave.Status != models.LeavePending {
		return nil, ErrLeaveNotPending
	}
	return leave, nil
}

func (s *AttendanceService) review(leave *models.LeaveRequest, reviewer uuid.UUID, status models.LeaveStatus) (*models.LeaveRequest, error) {
	now := s.calendar.Now()
	leave.Status = status
	leave.ReviewedBy = &reviewer
	leave.ReviewedAt = &now
	if err := s.repo.UpdateLeave(leave); err != nil {
		return nil, err
	}
	s.logger.Info("leave reviewed",
		zap.String("leave_id", leave.ID.String()),
		zap.String("status", string(status)),
		zap.String("by", reviewer.String()),
	)
	return leave, nil
}

func (s *AttendanceService) listScope(actor Actor, q *ListAttendanceQuery) (uuid.UUID, time.Time, time.Time, error) {
	userID := actor.ID
	if actor.IsAdmin() {
		userID = uuid.Nil
		if q.UserID != "" {
			id, err := uuid.Parse(q.UserID)
			if err != nil {
				return uuid.Nil, time.Time{}, time.Time{}, fmt.Errorf("%w: user_id", ErrInvalidID)
			}
			userID = id
		}
	}

	rq := q.RangeQuery
	if rq.Range == "" {
		rq.Range = string(analytics.FilterMonth)
	}
	_, _, scope, err := s.calendar.Resolve(rq)
	if err != nil {
		return uuid.Nil, time.Time{}, time.Time{}, err
	}
	return userID, scope.From.Time(), scope.To.Time(), nil
}

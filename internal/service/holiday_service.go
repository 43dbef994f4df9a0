package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/tradedesk-portal/internal/analytics"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrHolidayExists = errors.New("a holiday already exists on this date")
)

// HolidayService manages the firm holiday calendar
type HolidayService struct {
	holidayRepo HolidayStore
	calendar    *Calendar
	logger      *zap.Logger
}

// NewHolidayService creates a new HolidayService
func NewHolidayService(holidayRepo HolidayStore, calendar *Calendar) *HolidayService {
	return &HolidayService{
		holidayRepo: holidayRepo,
		calendar:    calendar,
		logger:      zap.L().Named("holiday"),
	}
}

// CreateHolidayRequest represents the create holiday request
type CreateHolidayRequest struct {
	Date string `json:"date" binding:"required"`
	Name string `json:"name" binding:"required,max=100"`
}

// ListHolidays returns holidays inside the requested range
func (s *HolidayService) ListHolidays(q RangeQuery) ([]models.Holiday, error) {
	if q.Range == "" {
		q.Range = string(analytics.FilterYear)
	}
	_, _, scope, err := s.calendar.Resolve(q)
	if err != nil {
		return nil, err
	}
	return s.holidayRepo.ListBetween(scope.From.Time(), scope.To.Time())
}

// IsHoliday reports whether date is on the firm calendar
func (s *HolidayService) IsHoliday(date analytics.Date) (bool, error) {
	return s.holidayRepo.ExistsOn(date.Time())
}

// CreateHoliday adds a holiday and flags records already entered on that date
func (s *HolidayService) CreateHoliday(req *CreateHolidayRequest) (*models.Holiday, error) {
	date, err := analytics.ParseDate(req.Date)
	if err != nil {
		return nil, ErrInvalidDate
	}

	holiday := &models.Holiday{Date: date.Time(), Name: req.Name}
	if err := s.holidayRepo.CreateAndFlag(holiday); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrHolidayExists
		}
		return nil, fmt.Errorf("failed to add holiday: %w", err)
	}
	s.logger.Info("holiday added", zap.String("date", date.String()), zap.String("name", req.Name))
	return holiday, nil
}

// DeleteHoliday removes a holiday and unflags the records on that date
func (s *HolidayService) DeleteHoliday(id uuid.UUID) error {
	holiday, err := s.holidayRepo.DeleteAndUnflag(id)
	if err != nil {
		return err
	}
	s.logger.Info("holiday removed", zap.String("date", analytics.DateOf(holiday.Date).String()))
	return nil
}

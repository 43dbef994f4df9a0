package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/tradedesk-portal/internal/analytics"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/repository"
	"go.uber.org/zap"
)

var (
	ErrDuplicateTradeRecord = errors.New("a record for this account and date already exists")
	ErrAccountNotOwned      = errors.New("account does not belong to user")
	ErrNegativeShares       = errors.New("shares traded cannot be negative")
)

// TradeRecordService handles daily P&L entry
type TradeRecordService struct {
	recordRepo  TradeRecordStore
	accountRepo AccountStore
	holidayRepo HolidayStore
	calendar    *Calendar
	logger      *zap.Logger
}

// NewTradeRecordService creates a new TradeRecordService
func NewTradeRecordService(recordRepo TradeRecordStore, accountRepo AccountStore, holidayRepo HolidayStore, calendar *Calendar) *TradeRecordService {
	return &TradeRecordService{
		recordRepo:  recordRepo,
		accountRepo: accountRepo,
		holidayRepo: holidayRepo,
		calendar:    calendar,
		logger:      zap.L().Named("trade_record"),
	}
}

// CreateTradeRecordRequest represents the create trade record request.
// UserID is honoured for admins only; employees always record for themselves.
type CreateTradeRecordRequest struct {
	UserID       uuid.UUID       `json:"user_id"`
	AccountID    uuid.UUID       `json:"account_id" binding:"required"`
	TradeDate    string          `json:"trade_date" binding:"required"`
	NetPnL       decimal.Decimal `json:"net_pnl"`
	SharesTraded int64           `json:"shares_traded" binding:"min=0"`
	Notes        string          `json:"notes" binding:"omitempty,max=500"`
}

// UpdateTradeRecordRequest represents the update trade record request
type UpdateTradeRecordRequest struct {
	NetPnL       *decimal.Decimal `json:"net_pnl"`
	SharesTraded *int64           `json:"shares_traded" binding:"omitempty,min=0"`
	Notes        *string          `json:"notes" binding:"omitempty,max=500"`
}

// ListTradeRecordsQuery represents the list query
type ListTradeRecordsQuery struct {
	RangeQuery
	UserID    string `form:"user_id"`
	AccountID string `form:"account_id"`
}

// CreateTradeRecord records one day of P&L for one account
func (s *TradeRecordService) CreateTradeRecord(actor Actor, req *CreateTradeRecordRequest) (*models.TradeRecord, error) {
	userID := actor.ID
	if actor.IsAdmin() && req.UserID != uuid.Nil {
		userID = req.UserID
	}

	if req.SharesTraded < 0 {
		return nil, ErrNegativeShares
	}
	date, err := analytics.ParseDate(req.TradeDate)
	if err != nil {
		return nil, ErrInvalidDate
	}

	if _, err := s.accountRepo.GetByIDAndUserID(req.AccountID, userID); err != nil {
		if errors.Is(err, repository.ErrAccountNotFound) {
			return nil, ErrAccountNotOwned
		}
		return nil, err
	}

	holiday, err := s.holidayRepo.ExistsOn(date.Time())
	if err != nil {
		return nil, fmt.Errorf("failed to check holiday calendar: %w", err)
	}

	record := &models.TradeRecord{
		UserID:       userID,
		AccountID:    req.AccountID,
		TradeDate:    date.Time(),
		NetPnL:       req.NetPnL.Round(2),
		SharesTraded: req.SharesTraded,
		IsHoliday:    holiday,
		Notes:        req.Notes,
	}
	if err := s.recordRepo.Create(record); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrDuplicateTradeRecord
		}
		return nil, err
	}

	s.logger.Info("trade record created",
		zap.String("user_id", userID.String()),
		zap.String("account_id", req.AccountID.String()),
		zap.String("date", date.String()),
		zap.String("net_pnl", record.NetPnL.StringFixed(2)),
		zap.Bool("holiday", holiday),
	)
	return record, nil
}

// UpdateTradeRecord changes the figures of an existing record
func (s *TradeRecordService) UpdateTradeRecord(actor Actor, id uuid.UUID, req *UpdateTradeRecordRequest) (*models.TradeRecord, error) {
	record, err := s.owned(actor, id)
	if err != nil {
		return nil, err
	}

	if req.NetPnL != nil {
		record.NetPnL = req.NetPnL.Round(2)
	}
	if req.SharesTraded != nil {
		if *req.SharesTraded < 0 {
			return nil, ErrNegativeShares
		}
		record.SharesTraded = *req.SharesTraded
	}
	if req.Notes != nil {
		record.Notes = *req.Notes
	}

	if err := s.recordRepo.Update(record); err != nil {
		return nil, err
	}
	return record, nil
}

// DeleteTradeRecord removes a record
func (s *TradeRecordService) DeleteTradeRecord(actor Actor, id uuid.UUID) error {
	if _, err := s.owned(actor, id); err != nil {
		return err
	}
	return s.recordRepo.Delete(id)
}

// ListTradeRecords lists records in the requested range. Employees only see their own.
func (s *TradeRecordService) ListTradeRecords(actor Actor, q *ListTradeRecordsQuery) ([]models.TradeRecord, error) {
	filter := repository.TradeRecordFilter{UserID: actor.ID}

	if actor.IsAdmin() {
		filter.UserID = uuid.Nil
		if q.UserID != "" {
			id, err := uuid.Parse(q.UserID)
			if err != nil {
				return nil, fmt.Errorf("%w: user_id", ErrInvalidID)
			}
			filter.UserID = id
		}
	}
	if q.AccountID != "" {
		id, err := uuid.Parse(q.AccountID)
		if err != nil {
			return nil, fmt.Errorf("%w: account_id", ErrInvalidID)
		}
		filter.AccountID = id
	}

	if q.Range != "" {
		_, _, scope, err := s.calendar.Resolve(q.RangeQuery)
		if err != nil {
			return nil, err
		}
		filter.From, filter.To = scope.From.Time(), scope.To.Time()
	}

	return s.recordRepo.Find(filter)
}

// owned loads a record the actor may modify
func (s *TradeRecordService) owned(actor Actor, id uuid.UUID) (*models.TradeRecord, error) {
	record, err := s.recordRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && record.UserID != actor.ID {
		return nil, ErrForbidden
	}
	return record, nil
}

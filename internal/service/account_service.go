package service

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/internal/repository"
	"github.com/tradedesk-portal/pkg/keygen"
)

var (
	ErrAccountNumberTaken = errors.New("account number already in use")
)

// AccountService handles trading account operations
type AccountService struct {
	accountRepo AccountStore
	userRepo    UserStore
}

// NewAccountService creates a new AccountService
func NewAccountService(accountRepo AccountStore, userRepo UserStore) *AccountService {
	return &AccountService{
		accountRepo: accountRepo,
		userRepo:    userRepo,
	}
}

// CreateAccountRequest represents the create account request.
// An empty AccountNumber gets a generated one.
type CreateAccountRequest struct {
	UserID        uuid.UUID `json:"user_id" binding:"required"`
	Broker        string    `json:"broker" binding:"required,max=50"`
	AccountNumber string    `json:"account_number" binding:"omitempty,max=50"`
	Label         string    `json:"label" binding:"omitempty,max=100"`
}

// UpdateAccountRequest represents the update account request
type UpdateAccountRequest struct {
	UserID *uuid.UUID `json:"user_id"`
	Broker *string    `json:"broker" binding:"omitempty,max=50"`
	Label  *string    `json:"label" binding:"omitempty,max=100"`
}

// CreateAccount assigns a new trading account to a user
func (s *AccountService) CreateAccount(req *CreateAccountRequest) (*models.TradingAccount, error) {
	if _, err := s.userRepo.GetByID(req.UserID); err != nil {
		return nil, err
	}

	broker := strings.TrimSpace(req.Broker)
	number := strings.TrimSpace(req.AccountNumber)
	if number == "" {
		number = keygen.GenerateAccountNumber(broker)
	}

	account := &models.TradingAccount{
		UserID:        req.UserID,
		Broker:        broker,
		AccountNumber: number,
		Label:         req.Label,
	}
	if err := s.accountRepo.Create(account); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrAccountNumberTaken
		}
		return nil, err
	}
	return account, nil
}

// ListAccounts returns the caller's accounts, or every account for admins
func (s *AccountService) ListAccounts(actor Actor) ([]models.TradingAccount, error) {
	if actor.IsAdmin() {
		return s.accountRepo.List()
	}
	return s.accountRepo.GetByUserID(actor.ID)
}

// UpdateAccount changes the owner, broker or label of an account
func (s *AccountService) UpdateAccount(id uuid.UUID, req *UpdateAccountRequest) (*models.TradingAccount, error) {
	account, err := s.accountRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	if req.UserID != nil {
		if _, err := s.userRepo.GetByID(*req.UserID); err != nil {
			return nil, err
		}
		account.UserID = *req.UserID
	}
	if req.Broker != nil {
		account.Broker = strings.TrimSpace(*req.Broker)
	}
	if req.Label != nil {
		account.Label = *req.Label
	}

	if err := s.accountRepo.Update(account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteAccount removes an account
func (s *AccountService) DeleteAccount(id uuid.UUID) error {
	return s.accountRepo.Delete(id)
}

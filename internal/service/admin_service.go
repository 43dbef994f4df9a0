package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/tradedesk-portal/internal/config"
	"github.com/tradedesk-portal/internal/models"
	"github.com/tradedesk-portal/pkg/crypto"
	"github.com/tradedesk-portal/pkg/keygen"
	"go.uber.org/zap"
)

var (
	ErrEmailTaken          = errors.New("email already taken")
	ErrCannotDeleteSelf    = errors.New("admins cannot delete their own account")
	ErrAdminSeedIncomplete = errors.New("admin seed requires email and password")
)

const tempPasswordLength = 12

// AdminService handles user management by administrators
type AdminService struct {
	userRepo UserStore
	logger   *zap.Logger
}

// NewAdminService creates a new AdminService
func NewAdminService(userRepo UserStore) *AdminService {
	return &AdminService{
		userRepo: userRepo,
		logger:   zap.L().Named("admin"),
	}
}

// CreateUserRequest represents the create user request
type CreateUserRequest struct {
	Name  string      `json:"name" binding:"required,max=100"`
	Email string      `json:"email" binding:"required,email"`
	Role  models.Role `json:"role" binding:"omitempty,oneof=admin employee"`
}

// UserCredentials is a user together with a freshly generated temporary password
type UserCredentials struct {
	User              *models.User `json:"user"`
	TemporaryPassword string       `json:"temporary_password"`
}

// ListUsers returns every user ordered by name
func (s *AdminService) ListUsers() ([]models.User, error) {
	return s.userRepo.List()
}

// CreateUser creates a user with a generated temporary password
func (s *AdminService) CreateUser(req *CreateUserRequest) (*UserCredentials, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.userRepo.ExistsByEmail(email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrEmailTaken
	}

	role := req.Role
	if role == "" {
		role = models.RoleEmployee
	}

	password, err := keygen.GeneratePassword(tempPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Name:         strings.TrimSpace(req.Name),
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		Active:       true,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, err
	}

	s.logger.Info("user created", zap.String("user_id", user.ID.String()), zap.String("role", string(role)))
	return &UserCredentials{User: user, TemporaryPassword: password}, nil
}

// DeleteUser removes a user; an admin cannot remove themselves
func (s *AdminService) DeleteUser(actor Actor, id uuid.UUID) error {
	if actor.ID == id {
		return ErrCannotDeleteSelf
	}
	if err := s.userRepo.Delete(id); err != nil {
		return err
	}
	s.logger.Info("user deleted", zap.String("user_id", id.String()), zap.String("by", actor.ID.String()))
	return nil
}

// ResetPassword replaces a user's password with a generated temporary one
func (s *AdminService) ResetPassword(id uuid.UUID) (*UserCredentials, error) {
	user, err := s.userRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	password, err := keygen.GeneratePassword(tempPasswordLength)
	if err != nil {
		return nil, fmt.Errorf("failed to generate password: %w", err)
	}
	hash, err := crypto.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}
	if err := s.userRepo.UpdatePassword(id, hash); err != nil {
		return nil, err
	}

	return &UserCredentials{User: user, TemporaryPassword: password}, nil
}

// EnsureAdmin creates the configured administrator when no admin exists yet
func (s *AdminService) EnsureAdmin(cfg config.AdminConfig) error {
	count, err := s.userRepo.CountByRole(models.RoleAdmin)
	if err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	if cfg.Email == "" || cfg.Password == "" {
		return ErrAdminSeedIncomplete
	}

	hash, err := crypto.HashPassword(cfg.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	name := cfg.Name
	if name == "" {
		name = "Administrator"
	}

	admin := &models.User{
		Name:         name,
		Email:        strings.ToLower(cfg.Email),
		PasswordHash: hash,
		Role:         models.RoleAdmin,
		Active:       true,
	}
	if err := s.userRepo.Create(admin); err != nil {
		return err
	}
	s.logger.Info("seeded administrator", zap.String("email", admin.Email))
	return nil
}

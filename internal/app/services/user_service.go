package services

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	authz "github.com/oyilmaz/deptportal/internal/app/auth"
	"github.com/oyilmaz/deptportal/internal/app/models"
	"github.com/oyilmaz/deptportal/internal/app/models/dto"
	"github.com/oyilmaz/deptportal/internal/pkg/apperrors"
	"github.com/oyilmaz/deptportal/internal/pkg/auth"
	"github.com/oyilmaz/deptportal/internal/pkg/email"
	"github.com/oyilmaz/deptportal/internal/pkg/validation"
)

// adminUserStore is the slice of the user repository user management needs
type adminUserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	ListByRoles(ctx context.Context, roles []models.RoleType) ([]models.User, error)
	DeleteUser(ctx context.Context, id int64) error
}

// UserService defines the interface for faculty account management
type UserService interface {
	ListUsers(ctx context.Context, caller models.Caller) ([]models.User, error)
	InviteUser(ctx context.Context, caller models.Caller, req *dto.InviteUserRequest) (*models.User, error)
	DeleteUser(ctx context.Context, caller models.Caller, id int64) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// userServiceImpl implements UserService
type userServiceImpl struct {
	userStore    adminUserStore
	authService  *authz.AuthorizationService
	emailService email.EmailService
	logger       zerolog.Logger
}

// NewUserService creates a new UserService
func NewUserService(userStore adminUserStore, authService *authz.AuthorizationService, emailService email.EmailService, logger zerolog.Logger) UserService {
	return &userServiceImpl{
		userStore:    userStore,
		authService:  authService,
		emailService: emailService,
		logger:       logger,
	}
}

// ListUsers retrieves all faculty accounts. Student accounts are excluded;
// they register themselves and are not administered here.
func (s *userServiceImpl) ListUsers(ctx context.Context, caller models.Caller) ([]models.User, error) {
	if err := s.authService.ValidateUserManagement(caller); err != nil {
		return nil, err
	}
	return s.userStore.ListByRoles(ctx, models.FacultyRoles)
}

// InviteUser creates a faculty account with a generated temporary password
// and emails the credentials. A failed email does not roll back the account.
func (s *userServiceImpl) InviteUser(ctx context.Context, caller models.Caller, req *dto.InviteUserRequest) (*models.User, error) {
	if err := s.authService.ValidateUserManagement(caller); err != nil {
		return nil, err
	}
	if !req.Role.IsValid() || req.Role == models.RoleStudent {
		return nil, apperrors.NewValidationError("role must be one of TEACHER, CLERK, ADMIN, SUPER_ADMIN")
	}
	if !validation.IsValidName(req.Name) {
		return nil, apperrors.NewValidationError("name must be between 2 and 100 characters")
	}

	tempPassword, err := auth.GenerateSecureToken(16)
	if err != nil {
		return nil, fmt.Errorf("failed to generate temporary password: %w", err)
	}
	hash, err := auth.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:    req.Email,
		Name:     &req.Name,
		Password: hash,
		Role:     req.Role,
	}
	if err := s.userStore.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	if err := s.emailService.SendInvitationEmail(user.Email, tempPassword, string(user.Role)); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send invitation email")
	}

	s.logger.Info().Int64("userID", user.ID).Str("role", string(user.Role)).Int64("byUserID", caller.ID).Msg("Faculty account created")
	return user, nil
}

// DeleteUser removes a faculty account. Callers can never delete themselves.
func (s *userServiceImpl) DeleteUser(ctx context.Context, caller models.Caller, id int64) error {
	if err := s.authService.ValidateUserDelete(caller, id); err != nil {
		return err
	}

	target, err := s.userStore.GetUserByID(ctx, id)
	if err != nil {
		return err
	}
	// Students are not managed here; a student id behaves like an unknown one
	if target.Role == models.RoleStudent {
		return apperrors.ErrUserNotFound
	}

	if err := s.userStore.DeleteUser(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("userID", id).Int64("byUserID", caller.ID).Msg("User deleted")
	return nil
}

// GetUserByID retrieves a user by id
func (s *userServiceImpl) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	return s.userStore.GetUserByID(ctx, id)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/oyilmaz/deptportal/internal/app/models"
	"github.com/oyilmaz/deptportal/internal/app/models/dto"
	"github.com/oyilmaz/deptportal/internal/pkg/apperrors"
	"github.com/oyilmaz/deptportal/internal/pkg/auth"
	"github.com/oyilmaz/deptportal/internal/pkg/email"
	"github.com/oyilmaz/deptportal/internal/pkg/validation"
)

const resetTokenTTL = time.Hour

// authUserStore is the slice of the user repository the auth service needs
type authUserStore interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByResetToken(ctx context.Context, token string) (*models.User, error)
	SetResetToken(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// AuthService defines the interface for authentication operations
type AuthService interface {
	RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.AuthResponse, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error)
	ForgotPassword(ctx context.Context, emailAddr string) error
	ResetPassword(ctx context.Context, token, newPassword string) error
}

// authServiceImpl implements AuthService
type authServiceImpl struct {
	userStore    authUserStore
	jwtService   *auth.JWTService
	emailService email.EmailService
	logger       zerolog.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(userStore authUserStore, jwtService *auth.JWTService, emailService email.EmailService, logger zerolog.Logger) AuthService {
	return &authServiceImpl{
		userStore:    userStore,
		jwtService:   jwtService,
		emailService: emailService,
		logger:       logger,
	}
}

// RegisterStudent creates a STUDENT account and logs it in
func (s *authServiceImpl) RegisterStudent(ctx context.Context, req *dto.RegisterStudentRequest) (*dto.AuthResponse, error) {
	if !validation.IsValidRollNumber(req.RollNumber) {
		return nil, apperrors.NewValidationError("roll number format is invalid")
	}
	if !validation.IsValidName(req.Name) {
		return nil, apperrors.NewValidationError("name must be between 2 and 100 characters")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &models.User{
		Email:      req.Email,
		RollNumber: &req.RollNumber,
		Name:       &req.Name,
		Password:   hash,
		Role:       models.RoleStudent,
	}
	if err := s.userStore.CreateUser(ctx, user); err != nil {
		return nil, err
	}

	return s.issueToken(user)
}

// Login verifies credentials and issues a JWT
func (s *authServiceImpl) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userStore.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.Password, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	return s.issueToken(user)
}

// ForgotPassword stores a reset token and emails it. It reports success even
// when the email is unknown so the endpoint cannot be used to probe accounts.
func (s *authServiceImpl) ForgotPassword(ctx context.Context, emailAddr string) error {
	user, err := s.userStore.GetUserByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			s.logger.Debug().Str("email", emailAddr).Msg("Password reset requested for unknown email")
			return nil
		}
		return err
	}

	token, err := auth.GenerateSecureToken(32)
	if err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}

	if err := s.userStore.SetResetToken(ctx, user.ID, token, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	// A failed send must not change the response; a distinguishable error
	// here would confirm which addresses have accounts.
	if err := s.emailService.SendPasswordResetEmail(user.Email, token); err != nil {
		s.logger.Error().Err(err).Str("email", user.Email).Msg("Failed to send password reset email")
	}
	return nil
}

// ResetPassword redeems an unexpired token for a new password
func (s *authServiceImpl) ResetPassword(ctx context.Context, token, newPassword string) error {
	if !validation.IsValidPassword(newPassword) {
		return apperrors.NewValidationError("password must be at least 8 characters")
	}

	user, err := s.userStore.GetUserByResetToken(ctx, token)
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return apperrors.ErrInvalidResetToken
		}
		return err
	}

	hash, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	return s.userStore.UpdatePassword(ctx, user.ID, hash)
}

func (s *authServiceImpl) issueToken(user *models.User) (*dto.AuthResponse, error) {
	token, expiresIn, err := s.jwtService.GenerateToken(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}
	return &dto.AuthResponse{
		Token: dto.TokenResponse{
			AccessToken: token,
			TokenType:   "Bearer",
			ExpiresIn:   expiresIn,
		},
		User: dto.ToUserResponse(user),
	}, nil
}

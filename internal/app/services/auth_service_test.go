package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/oyilmaz/deptportal/internal/app/models"
	"github.com/oyilmaz/deptportal/internal/app/models/dto"
	"github.com/oyilmaz/deptportal/internal/pkg/apperrors"
	pkgAuth "github.com/oyilmaz/deptportal/internal/pkg/auth"
)

// fakeAuthUserStore is an in-memory authUserStore
type fakeAuthUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeAuthUserStore() *fakeAuthUserStore {
	return &fakeAuthUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (s *fakeAuthUserStore) CreateUser(_ context.Context, user *models.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
		if existing.RollNumber != nil && user.RollNumber != nil && *existing.RollNumber == *user.RollNumber {
			return apperrors.ErrRollNumberExists
		}
	}
	user.ID = s.nextID
	s.nextID++
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *fakeAuthUserStore) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeAuthUserStore) GetUserByResetToken(_ context.Context, token string) (*models.User, error) {
	for _, u := range s.users {
		if u.PasswordResetToken != nil && *u.PasswordResetToken == token &&
			u.PasswordResetExpiresAt != nil && u.PasswordResetExpiresAt.After(time.Now()) {
			copied := *u
			return &copied, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *fakeAuthUserStore) SetResetToken(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.PasswordResetToken = &token
	u.PasswordResetExpiresAt = &expiresAt
	return nil
}

func (s *fakeAuthUserStore) UpdatePassword(_ context.Context, userID int64, passwordHash string) error {
	u, ok := s.users[userID]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	u.Password = passwordHash
	u.PasswordResetToken = nil
	u.PasswordResetExpiresAt = nil
	return nil
}

// stubEmailService records sent emails
type stubEmailService struct {
	invitations []string
	resetTokens []string
	err         error
}

func (s *stubEmailService) SendInvitationEmail(toEmail, _, _ string) error {
	s.invitations = append(s.invitations, toEmail)
	return s.err
}

func (s *stubEmailService) SendPasswordResetEmail(_, token string) error {
	s.resetTokens = append(s.resetTokens, token)
	return s.err
}

func newTestJWTService() *pkgAuth.JWTService {
	return pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      "test-secret-key-for-unit-tests",
		AccessTokenExp: time.Hour,
		TokenIssuer:    "deptportal-test",
	})
}

func registerRequest() *dto.RegisterStudentRequest {
	return &dto.RegisterStudentRequest{
		Email:      "student@department.edu",
		Password:   "correct-horse-battery",
		Name:       "Jane Doe",
		RollNumber: "CS-1021",
	}
}

func TestRegisterStudent(t *testing.T) {
	store := newFakeAuthUserStore()
	svc := NewAuthService(store, newTestJWTService(), &stubEmailService{}, zerolog.Nop())

	resp, err := svc.RegisterStudent(context.Background(), registerRequest())
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token.AccessToken)
	assert.Equal(t, models.RoleStudent, resp.User.Role)
	require.NotNil(t, resp.User.RollNumber)
	assert.Equal(t, "CS-1021", *resp.User.RollNumber)

	// The stored password is a hash, never the plaintext
	stored, err := store.GetUserByEmail(context.Background(), "student@department.edu")
	require.NoError(t, err)
	assert.NotEqual(t, "correct-horse-battery", stored.Password)
}

func TestRegisterStudentDuplicates(t *testing.T) {
	store := newFakeAuthUserStore()
	svc := NewAuthService(store, newTestJWTService(), &stubEmailService{}, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, registerRequest())
	require.NoError(t, err)

	// Same email
	_, err = svc.RegisterStudent(ctx, registerRequest())
	assert.ErrorIs(t, err, apperrors.ErrEmailAlreadyExists)

	// Same roll number under a different email
	req := registerRequest()
	req.Email = "other@department.edu"
	_, err = svc.RegisterStudent(ctx, req)
	assert.ErrorIs(t, err, apperrors.ErrRollNumberExists)
}

func TestRegisterStudentRejectsBadRollNumber(t *testing.T) {
	svc := NewAuthService(newFakeAuthUserStore(), newTestJWTService(), &stubEmailService{}, zerolog.Nop())

	req := registerRequest()
	req.RollNumber = "not a roll number"
	_, err := svc.RegisterStudent(context.Background(), req)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestLogin(t *testing.T) {
	store := newFakeAuthUserStore()
	svc := NewAuthService(store, newTestJWTService(), &stubEmailService{}, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, registerRequest())
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "student@department.edu", Password: "correct-horse-battery"})
	require.NoError(t, err)
	assert.Equal(t, "Bearer", resp.Token.TokenType)

	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "student@department.edu", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	// Unknown email maps to the same error as a wrong password
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "nobody@department.edu", Password: "whatever"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestForgotPasswordUnknownEmailReportsSuccess(t *testing.T) {
	emails := &stubEmailService{}
	svc := NewAuthService(newFakeAuthUserStore(), newTestJWTService(), emails, zerolog.Nop())

	err := svc.ForgotPassword(context.Background(), "nobody@department.edu")
	assert.NoError(t, err)
	assert.Empty(t, emails.resetTokens)
}

func TestForgotPasswordEmailFailureReportsSuccess(t *testing.T) {
	store := newFakeAuthUserStore()
	emails := &stubEmailService{err: assert.AnError}
	svc := NewAuthService(store, newTestJWTService(), emails, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, registerRequest())
	require.NoError(t, err)

	// A send failure must look identical to success from the outside
	assert.NoError(t, svc.ForgotPassword(ctx, "student@department.edu"))
}

func TestPasswordResetRoundTrip(t *testing.T) {
	store := newFakeAuthUserStore()
	emails := &stubEmailService{}
	svc := NewAuthService(store, newTestJWTService(), emails, zerolog.Nop())
	ctx := context.Background()

	_, err := svc.RegisterStudent(ctx, registerRequest())
	require.NoError(t, err)

	require.NoError(t, svc.ForgotPassword(ctx, "student@department.edu"))
	require.Len(t, emails.resetTokens, 1)
	token := emails.resetTokens[0]

	require.NoError(t, svc.ResetPassword(ctx, token, "brand-new-password"))

	// Old password no longer works, new one does
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "student@department.edu", Password: "correct-horse-battery"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
	_, err = svc.Login(ctx, &dto.LoginRequest{Email: "student@department.edu", Password: "brand-new-password"})
	assert.NoError(t, err)

	// The token is single use
	err = svc.ResetPassword(ctx, token, "another-password-again")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)
}

func TestResetPasswordInvalidToken(t *testing.T) {
	svc := NewAuthService(newFakeAuthUserStore(), newTestJWTService(), &stubEmailService{}, zerolog.Nop())

	err := svc.ResetPassword(context.Background(), "deadbeef", "brand-new-password")
	assert.ErrorIs(t, err, apperrors.ErrInvalidResetToken)

	err = svc.ResetPassword(context.Background(), "deadbeef", "short")
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	authz "github.com/oyilmaz/deptportal/internal/app/auth"
	"github.com/oyilmaz/deptportal/internal/app/models"
	"github.com/oyilmaz/deptportal/internal/app/models/dto"
	"github.com/oyilmaz/deptportal/internal/pkg/apperrors"
)

// fakeAdminUserStore is an in-memory adminUserStore
type fakeAdminUserStore struct {
	users  map[int64]*models.User
	nextID int64
}

func newFakeAdminUserStore() *fakeAdminUserStore {
	return &fakeAdminUserStore{users: map[int64]*models.User{}, nextID: 1}
}

func (s *fakeAdminUserStore) CreateUser(_ context.Context, user *models.User) error {
	for _, existing := range s.users {
		if existing.Email == user.Email {
			return apperrors.ErrEmailAlreadyExists
		}
	}
	user.ID = s.nextID
	s.nextID++
	stored := *user
	s.users[user.ID] = &stored
	return nil
}

func (s *fakeAdminUserStore) GetUserByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	copied := *u
	return &copied, nil
}

func (s *fakeAdminUserStore) ListByRoles(_ context.Context, roles []models.RoleType) ([]models.User, error) {
	result := []models.User{}
	for _, u := range s.users {
		for _, role := range roles {
			if u.Role == role {
				result = append(result, *u)
				break
			}
		}
	}
	return result, nil
}

func (s *fakeAdminUserStore) DeleteUser(_ context.Context, id int64) error {
	if _, ok := s.users[id]; !ok {
		return apperrors.ErrUserNotFound
	}
	delete(s.users, id)
	return nil
}

func newUserService(store *fakeAdminUserStore, emails *stubEmailService) UserService {
	return NewUserService(store, authz.NewAuthorizationService(), emails, zerolog.Nop())
}

var superAdmin = models.Caller{ID: 100, Role: models.RoleSuperAdmin}

func TestInviteUser(t *testing.T) {
	store := newFakeAdminUserStore()
	emails := &stubEmailService{}
	svc := newUserService(store, emails)

	user, err := svc.InviteUser(context.Background(), superAdmin, &dto.InviteUserRequest{
		Email: "clerk@department.edu",
		Name:  "Office Clerk",
		Role:  models.RoleClerk,
	})
	require.NoError(t, err)
	assert.Equal(t, models.RoleClerk, user.Role)
	assert.NotEmpty(t, user.Password, "a temporary password hash must be set")
	assert.Equal(t, []string{"clerk@department.edu"}, emails.invitations)
}

func TestInviteUserRoleRules(t *testing.T) {
	svc := newUserService(newFakeAdminUserStore(), &stubEmailService{})
	ctx := context.Background()

	// Students self-register, they are never invited
	_, err := svc.InviteUser(ctx, superAdmin, &dto.InviteUserRequest{
		Email: "x@department.edu", Name: "X", Role: models.RoleStudent,
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.InviteUser(ctx, superAdmin, &dto.InviteUserRequest{
		Email: "x@department.edu", Name: "X", Role: models.RoleType("JANITOR"),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	// Only SUPER_ADMIN may invite
	_, err = svc.InviteUser(ctx, models.Caller{ID: 1, Role: models.RoleAdmin}, &dto.InviteUserRequest{
		Email: "x@department.edu", Name: "X", Role: models.RoleClerk,
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestInviteUserSurvivesEmailFailure(t *testing.T) {
	store := newFakeAdminUserStore()
	emails := &stubEmailService{err: assert.AnError}
	svc := newUserService(store, emails)

	user, err := svc.InviteUser(context.Background(), superAdmin, &dto.InviteUserRequest{
		Email: "teacher@department.edu", Name: "New Teacher", Role: models.RoleTeacher,
	})
	require.NoError(t, err)

	// The account exists despite the failed email
	_, err = store.GetUserByID(context.Background(), user.ID)
	assert.NoError(t, err)
}

func TestListUsersExcludesStudents(t *testing.T) {
	store := newFakeAdminUserStore()
	svc := newUserService(store, &stubEmailService{})
	ctx := context.Background()

	roll := "CS-1001"
	require.NoError(t, store.CreateUser(ctx, &models.User{Email: "s@department.edu", RollNumber: &roll, Role: models.RoleStudent}))
	require.NoError(t, store.CreateUser(ctx, &models.User{Email: "t@department.edu", Role: models.RoleTeacher}))
	require.NoError(t, store.CreateUser(ctx, &models.User{Email: "a@department.edu", Role: models.RoleAdmin}))

	users, err := svc.ListUsers(ctx, superAdmin)
	require.NoError(t, err)
	assert.Len(t, users, 2)
	for _, u := range users {
		assert.NotEqual(t, models.RoleStudent, u.Role)
	}

	_, err = svc.ListUsers(ctx, models.Caller{ID: 1, Role: models.RoleAdmin})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
}

func TestDeleteUser(t *testing.T) {
	store := newFakeAdminUserStore()
	svc := newUserService(store, &stubEmailService{})
	ctx := context.Background()

	require.NoError(t, store.CreateUser(ctx, &models.User{Email: "t@department.edu", Role: models.RoleTeacher}))

	// Self-deletion is rejected before touching the store
	err := svc.DeleteUser(ctx, superAdmin, superAdmin.ID)
	assert.ErrorIs(t, err, apperrors.ErrSelfDeletionDenied)

	require.NoError(t, svc.DeleteUser(ctx, superAdmin, 1))

	err = svc.DeleteUser(ctx, superAdmin, 1)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestDeleteUserStudentTargetNotFound(t *testing.T) {
	store := newFakeAdminUserStore()
	svc := newUserService(store, &stubEmailService{})
	ctx := context.Background()

	roll := "CS-1001"
	require.NoError(t, store.CreateUser(ctx, &models.User{Email: "s@department.edu", RollNumber: &roll, Role: models.RoleStudent}))

	// Student accounts are invisible to user management
	err := svc.DeleteUser(ctx, superAdmin, 1)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)

	_, err = store.GetUserByID(ctx, 1)
	assert.NoError(t, err, "the student account must remain")
}

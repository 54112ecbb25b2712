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

// fakeApplicationStore is an in-memory applicationStore
type fakeApplicationStore struct {
	apps   map[int64]*models.Application
	nextID int64
}

func newFakeApplicationStore() *fakeApplicationStore {
	return &fakeApplicationStore{apps: map[int64]*models.Application{}, nextID: 1}
}

func (s *fakeApplicationStore) Create(_ context.Context, app *models.Application) error {
	app.ID = s.nextID
	s.nextID++
	stored := *app
	s.apps[app.ID] = &stored
	return nil
}

func (s *fakeApplicationStore) GetByID(_ context.Context, id int64) (*models.Application, error) {
	app, ok := s.apps[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	copied := *app
	copied.Remarks = []models.Remark{}
	return &copied, nil
}

func (s *fakeApplicationStore) List(_ context.Context, studentID *int64) ([]models.Application, error) {
	result := []models.Application{}
	for _, app := range s.apps {
		if studentID == nil || app.StudentID == *studentID {
			copied := *app
			copied.Remarks = []models.Remark{}
			result = append(result, copied)
		}
	}
	return result, nil
}

func (s *fakeApplicationStore) UpdateStatus(_ context.Context, id int64, status models.ApplicationStatus) error {
	app, ok := s.apps[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	app.Status = status
	return nil
}

// fakeRemarkStore is an in-memory remarkStore
type fakeRemarkStore struct {
	remarks []models.Remark
	nextID  int64
}

func newFakeRemarkStore() *fakeRemarkStore {
	return &fakeRemarkStore{nextID: 1}
}

func (s *fakeRemarkStore) Create(_ context.Context, remark *models.Remark) error {
	remark.ID = s.nextID
	s.nextID++
	s.remarks = append(s.remarks, *remark)
	return nil
}

func (s *fakeRemarkStore) ListByApplication(_ context.Context, applicationID int64) ([]models.Remark, error) {
	result := []models.Remark{}
	for _, rm := range s.remarks {
		if rm.ApplicationID == applicationID {
			result = append(result, rm)
		}
	}
	return result, nil
}

func (s *fakeRemarkStore) ListByApplications(ctx context.Context, ids []int64) (map[int64][]models.Remark, error) {
	result := map[int64][]models.Remark{}
	for _, id := range ids {
		remarks, _ := s.ListByApplication(ctx, id)
		if len(remarks) > 0 {
			result[id] = remarks
		}
	}
	return result, nil
}

func newApplicationService(appStore *fakeApplicationStore, remarkStore *fakeRemarkStore) ApplicationService {
	return NewApplicationService(appStore, remarkStore, authz.NewAuthorizationService(), zerolog.Nop())
}

func TestCreateApplicationStartsPending(t *testing.T) {
	svc := newApplicationService(newFakeApplicationStore(), newFakeRemarkStore())
	student := models.Caller{ID: 5, Role: models.RoleStudent}

	app, err := svc.CreateApplication(context.Background(), student, &dto.CreateApplicationRequest{
		Title:   "Transcript request",
		Content: "I need a transcript for a scholarship application",
	})
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, app.Status)
	assert.Equal(t, int64(5), app.StudentID)
}

func TestCreateApplicationRejectsNonStudents(t *testing.T) {
	svc := newApplicationService(newFakeApplicationStore(), newFakeRemarkStore())

	for _, role := range []models.RoleType{models.RoleTeacher, models.RoleClerk, models.RoleAdmin, models.RoleSuperAdmin} {
		_, err := svc.CreateApplication(context.Background(), models.Caller{ID: 1, Role: role}, &dto.CreateApplicationRequest{
			Title:   "t",
			Content: "c",
		})
		assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	}
}

func TestListApplicationsStudentIsolation(t *testing.T) {
	appStore := newFakeApplicationStore()
	svc := newApplicationService(appStore, newFakeRemarkStore())
	ctx := context.Background()

	alice := models.Caller{ID: 1, Role: models.RoleStudent}
	bob := models.Caller{ID: 2, Role: models.RoleStudent}

	_, err := svc.CreateApplication(ctx, alice, &dto.CreateApplicationRequest{Title: "a", Content: "a"})
	require.NoError(t, err)
	_, err = svc.CreateApplication(ctx, bob, &dto.CreateApplicationRequest{Title: "b", Content: "b"})
	require.NoError(t, err)

	aliceApps, err := svc.ListApplications(ctx, alice)
	require.NoError(t, err)
	require.Len(t, aliceApps, 1)
	assert.Equal(t, int64(1), aliceApps[0].StudentID)

	adminApps, err := svc.ListApplications(ctx, models.Caller{ID: 9, Role: models.RoleAdmin})
	require.NoError(t, err)
	assert.Len(t, adminApps, 2)
}

func TestGetApplicationDeniesOtherStudents(t *testing.T) {
	appStore := newFakeApplicationStore()
	svc := newApplicationService(appStore, newFakeRemarkStore())
	ctx := context.Background()

	owner := models.Caller{ID: 1, Role: models.RoleStudent}
	app, err := svc.CreateApplication(ctx, owner, &dto.CreateApplicationRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	_, err = svc.GetApplication(ctx, models.Caller{ID: 2, Role: models.RoleStudent}, app.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	got, err := svc.GetApplication(ctx, owner, app.ID)
	require.NoError(t, err)
	assert.Equal(t, app.ID, got.ID)
}

func TestUpdateStatus(t *testing.T) {
	appStore := newFakeApplicationStore()
	svc := newApplicationService(appStore, newFakeRemarkStore())
	ctx := context.Background()

	app, err := svc.CreateApplication(ctx, models.Caller{ID: 1, Role: models.RoleStudent}, &dto.CreateApplicationRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	admin := models.Caller{ID: 9, Role: models.RoleAdmin}

	updated, err := svc.UpdateStatus(ctx, admin, app.ID, models.StatusUnderReview)
	require.NoError(t, err)
	assert.Equal(t, models.StatusUnderReview, updated.Status)

	// Any valid status may replace any other
	updated, err = svc.UpdateStatus(ctx, admin, app.ID, models.StatusPending)
	require.NoError(t, err)
	assert.Equal(t, models.StatusPending, updated.Status)

	_, err = svc.UpdateStatus(ctx, admin, app.ID, models.ApplicationStatus("ARCHIVED"))
	assert.ErrorIs(t, err, apperrors.ErrInvalidStatus)

	_, err = svc.UpdateStatus(ctx, models.Caller{ID: 1, Role: models.RoleStudent}, app.ID, models.StatusResolved)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.UpdateStatus(ctx, admin, 9999, models.StatusResolved)
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)
}

func TestAddRemarkAndRetrieval(t *testing.T) {
	appStore := newFakeApplicationStore()
	remarkStore := newFakeRemarkStore()
	svc := newApplicationService(appStore, remarkStore)
	ctx := context.Background()

	owner := models.Caller{ID: 1, Role: models.RoleStudent}
	app, err := svc.CreateApplication(ctx, owner, &dto.CreateApplicationRequest{Title: "t", Content: "c"})
	require.NoError(t, err)

	admin := models.Caller{ID: 9, Role: models.RoleAdmin}
	remark, err := svc.AddRemark(ctx, admin, app.ID, "Forwarded to the exam cell")
	require.NoError(t, err)
	assert.Equal(t, int64(9), remark.AuthorID)

	_, err = svc.AddRemark(ctx, owner, app.ID, "students cannot remark")
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.AddRemark(ctx, admin, 9999, "no such application")
	assert.ErrorIs(t, err, apperrors.ErrApplicationNotFound)

	// The owner sees the remark log on their application
	got, err := svc.GetApplication(ctx, owner, app.ID)
	require.NoError(t, err)
	require.Len(t, got.Remarks, 1)
	assert.Equal(t, "Forwarded to the exam cell", got.Remarks[0].Content)

	// And the list view carries it too
	apps, err := svc.ListApplications(ctx, owner)
	require.NoError(t, err)
	require.Len(t, apps, 1)
	assert.Len(t, apps[0].Remarks, 1)
}

package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	authz "github.com/oyilmaz/deptportal/internal/app/auth"
	"github.com/oyilmaz/deptportal/internal/app/models"
	"github.com/oyilmaz/deptportal/internal/app/models/dto"
	"github.com/oyilmaz/deptportal/internal/pkg/apperrors"
)

// fakeNoticeStore is an in-memory noticeStore
type fakeNoticeStore struct {
	notices map[int64]*models.Notice
	nextID  int64
}

func newFakeNoticeStore() *fakeNoticeStore {
	return &fakeNoticeStore{notices: map[int64]*models.Notice{}, nextID: 1}
}

func (s *fakeNoticeStore) Create(_ context.Context, notice *models.Notice) error {
	notice.ID = s.nextID
	s.nextID++
	stored := *notice
	s.notices[notice.ID] = &stored
	return nil
}

func (s *fakeNoticeStore) GetByID(_ context.Context, id int64) (*models.Notice, error) {
	notice, ok := s.notices[id]
	if !ok {
		return nil, apperrors.ErrNoticeNotFound
	}
	copied := *notice
	return &copied, nil
}

func (s *fakeNoticeStore) List(_ context.Context, category *models.NoticeCategory) ([]models.Notice, error) {
	result := []models.Notice{}
	for _, n := range s.notices {
		if category == nil || n.Category == *category {
			result = append(result, *n)
		}
	}
	return result, nil
}

func (s *fakeNoticeStore) Update(_ context.Context, notice *models.Notice) error {
	if _, ok := s.notices[notice.ID]; !ok {
		return apperrors.ErrNoticeNotFound
	}
	stored := *notice
	s.notices[notice.ID] = &stored
	return nil
}

func (s *fakeNoticeStore) Delete(_ context.Context, id int64) error {
	if _, ok := s.notices[id]; !ok {
		return apperrors.ErrNoticeNotFound
	}
	delete(s.notices, id)
	return nil
}

// stubNotifier records pushes and can be told to fail
type stubNotifier struct {
	calls chan string
	err   error
}

func newStubNotifier(err error) *stubNotifier {
	return &stubNotifier{calls: make(chan string, 8), err: err}
}

func (n *stubNotifier) NotifyAll(_ context.Context, _ string, message string) error {
	n.calls <- message
	return n.err
}

func newNoticeService(store *fakeNoticeStore, notifier *stubNotifier) NoticeService {
	return NewNoticeService(store, authz.NewAuthorizationService(), notifier, zerolog.Nop())
}

func TestCreateNoticePushesToAllDevices(t *testing.T) {
	notifier := newStubNotifier(nil)
	svc := newNoticeService(newFakeNoticeStore(), notifier)

	admin := models.Caller{ID: 1, Role: models.RoleAdmin}
	notice, err := svc.CreateNotice(context.Background(), admin, &dto.CreateNoticeRequest{
		Title:    "Midterm schedule",
		Content:  "The schedule is attached",
		Category: models.CategoryExams,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), notice.AuthorID)

	select {
	case message := <-notifier.calls:
		assert.Equal(t, "New Notice: Midterm schedule", message)
	case <-time.After(2 * time.Second):
		t.Fatal("expected a push notification")
	}
}

func TestCreateNoticeSurvivesPushFailure(t *testing.T) {
	notifier := newStubNotifier(errors.New("onesignal unavailable"))
	store := newFakeNoticeStore()
	svc := newNoticeService(store, notifier)

	notice, err := svc.CreateNotice(context.Background(), models.Caller{ID: 1, Role: models.RoleSuperAdmin}, &dto.CreateNoticeRequest{
		Title:    "Holiday announcement",
		Content:  "Campus closed on Friday",
		Category: models.CategoryGeneral,
	})
	require.NoError(t, err)

	// Push failed, the notice stays published
	<-notifier.calls
	got, err := svc.GetNotice(context.Background(), notice.ID)
	require.NoError(t, err)
	assert.Equal(t, "Holiday announcement", got.Title)
}

func TestCreateNoticeValidation(t *testing.T) {
	svc := newNoticeService(newFakeNoticeStore(), newStubNotifier(nil))
	ctx := context.Background()

	_, err := svc.CreateNotice(ctx, models.Caller{ID: 1, Role: models.RoleStudent}, &dto.CreateNoticeRequest{
		Title: "t", Content: "c", Category: models.CategoryGeneral,
	})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	_, err = svc.CreateNotice(ctx, models.Caller{ID: 1, Role: models.RoleAdmin}, &dto.CreateNoticeRequest{
		Title: "t", Content: "c", Category: models.NoticeCategory("SPORTS"),
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestUpdateNoticeOwnership(t *testing.T) {
	notifier := newStubNotifier(nil)
	svc := newNoticeService(newFakeNoticeStore(), notifier)
	ctx := context.Background()

	author := models.Caller{ID: 7, Role: models.RoleAdmin}
	notice, err := svc.CreateNotice(ctx, author, &dto.CreateNoticeRequest{
		Title: "Original", Content: "c", Category: models.CategoryEvents,
	})
	require.NoError(t, err)
	<-notifier.calls

	newTitle := "Edited"

	// Another admin may not edit it
	_, err = svc.UpdateNotice(ctx, models.Caller{ID: 8, Role: models.RoleAdmin}, notice.ID, &dto.UpdateNoticeRequest{Title: &newTitle})
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	// The author may, and untouched fields survive the partial edit
	updated, err := svc.UpdateNotice(ctx, author, notice.ID, &dto.UpdateNoticeRequest{Title: &newTitle})
	require.NoError(t, err)
	assert.Equal(t, "Edited", updated.Title)
	assert.Equal(t, "c", updated.Content)
	assert.Equal(t, models.CategoryEvents, updated.Category)

	// A super admin may edit anything
	_, err = svc.UpdateNotice(ctx, models.Caller{ID: 99, Role: models.RoleSuperAdmin}, notice.ID, &dto.UpdateNoticeRequest{Title: &newTitle})
	assert.NoError(t, err)
}

func TestDeleteNotice(t *testing.T) {
	notifier := newStubNotifier(nil)
	svc := newNoticeService(newFakeNoticeStore(), notifier)
	ctx := context.Background()

	author := models.Caller{ID: 7, Role: models.RoleAdmin}
	notice, err := svc.CreateNotice(ctx, author, &dto.CreateNoticeRequest{
		Title: "t", Content: "c", Category: models.CategoryGeneral,
	})
	require.NoError(t, err)
	<-notifier.calls

	err = svc.DeleteNotice(ctx, models.Caller{ID: 8, Role: models.RoleAdmin}, notice.ID)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)

	require.NoError(t, svc.DeleteNotice(ctx, author, notice.ID))

	_, err = svc.GetNotice(ctx, notice.ID)
	assert.ErrorIs(t, err, apperrors.ErrNoticeNotFound)
}

func TestListNoticesCategoryFilter(t *testing.T) {
	notifier := newStubNotifier(nil)
	svc := newNoticeService(newFakeNoticeStore(), notifier)
	ctx := context.Background()
	admin := models.Caller{ID: 1, Role: models.RoleAdmin}

	for _, category := range []models.NoticeCategory{models.CategoryGeneral, models.CategoryExams, models.CategoryExams} {
		_, err := svc.CreateNotice(ctx, admin, &dto.CreateNoticeRequest{Title: "t", Content: "c", Category: category})
		require.NoError(t, err)
		<-notifier.calls
	}

	exams := models.CategoryExams
	notices, err := svc.ListNotices(ctx, &exams)
	require.NoError(t, err)
	assert.Len(t, notices, 2)

	bogus := models.NoticeCategory("SPORTS")
	_, err = svc.ListNotices(ctx, &bogus)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

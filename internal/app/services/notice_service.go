package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	authz "github.com/oyilmaz/deptportal/internal/app/auth"
	"github.com/oyilmaz/deptportal/internal/app/models"
	"github.com/oyilmaz/deptportal/internal/app/models/dto"
	"github.com/oyilmaz/deptportal/internal/pkg/apperrors"
	"github.com/oyilmaz/deptportal/internal/pkg/push"
)

const pushTimeout = 15 * time.Second

// noticeStore is the slice of the notice repository the service needs
type noticeStore interface {
	Create(ctx context.Context, notice *models.Notice) error
	GetByID(ctx context.Context, id int64) (*models.Notice, error)
	List(ctx context.Context, category *models.NoticeCategory) ([]models.Notice, error)
	Update(ctx context.Context, notice *models.Notice) error
	Delete(ctx context.Context, id int64) error
}

// NoticeService defines the interface for notice operations
type NoticeService interface {
	CreateNotice(ctx context.Context, caller models.Caller, req *dto.CreateNoticeRequest) (*models.Notice, error)
	GetNotice(ctx context.Context, id int64) (*models.Notice, error)
	ListNotices(ctx context.Context, category *models.NoticeCategory) ([]models.Notice, error)
	UpdateNotice(ctx context.Context, caller models.Caller, id int64, req *dto.UpdateNoticeRequest) (*models.Notice, error)
	DeleteNotice(ctx context.Context, caller models.Caller, id int64) error
}

// noticeServiceImpl implements NoticeService
type noticeServiceImpl struct {
	noticeStore noticeStore
	authService *authz.AuthorizationService
	notifier    push.Notifier
	logger      zerolog.Logger
}

// NewNoticeService creates a new NoticeService
func NewNoticeService(noticeStore noticeStore, authService *authz.AuthorizationService, notifier push.Notifier, logger zerolog.Logger) NoticeService {
	return &noticeServiceImpl{
		noticeStore: noticeStore,
		authService: authService,
		notifier:    notifier,
		logger:      logger,
	}
}

// CreateNotice publishes a notice and pushes it to all subscribed devices.
// The push runs detached from the request; its failure never fails the create.
func (s *noticeServiceImpl) CreateNotice(ctx context.Context, caller models.Caller, req *dto.CreateNoticeRequest) (*models.Notice, error) {
	if err := s.authService.ValidateNoticeCreate(caller); err != nil {
		return nil, err
	}
	if !req.Category.IsValid() {
		return nil, apperrors.NewValidationError("category must be one of GENERAL, EXAMS, EVENTS")
	}

	notice := &models.Notice{
		Title:          req.Title,
		Content:        req.Content,
		Category:       req.Category,
		AttachmentURL:  req.AttachmentURL,
		AttachmentType: req.AttachmentType,
		AuthorID:       caller.ID,
	}
	if err := s.noticeStore.Create(ctx, notice); err != nil {
		return nil, err
	}

	go func(title string) {
		pushCtx, cancel := context.WithTimeout(context.Background(), pushTimeout)
		defer cancel()
		if err := s.notifier.NotifyAll(pushCtx, "Department Update", fmt.Sprintf("New Notice: %s", title)); err != nil {
			s.logger.Error().Err(err).Str("title", title).Msg("Failed to push notice notification")
		}
	}(notice.Title)

	s.logger.Info().Int64("noticeID", notice.ID).Int64("authorID", caller.ID).Msg("Notice published")
	return s.noticeStore.GetByID(ctx, notice.ID)
}

// GetNotice retrieves one notice. Reads are open to every authenticated role.
func (s *noticeServiceImpl) GetNotice(ctx context.Context, id int64) (*models.Notice, error) {
	return s.noticeStore.GetByID(ctx, id)
}

// ListNotices retrieves the feed newest first, optionally filtered by category
func (s *noticeServiceImpl) ListNotices(ctx context.Context, category *models.NoticeCategory) ([]models.Notice, error) {
	if category != nil && !category.IsValid() {
		return nil, apperrors.NewValidationError("category must be one of GENERAL, EXAMS, EVENTS")
	}
	return s.noticeStore.List(ctx, category)
}

// UpdateNotice applies a partial edit to a notice
func (s *noticeServiceImpl) UpdateNotice(ctx context.Context, caller models.Caller, id int64, req *dto.UpdateNoticeRequest) (*models.Notice, error) {
	notice, err := s.noticeStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authService.ValidateNoticeModify(caller, notice); err != nil {
		return nil, err
	}

	if req.Title != nil {
		notice.Title = *req.Title
	}
	if req.Content != nil {
		notice.Content = *req.Content
	}
	if req.Category != nil {
		if !req.Category.IsValid() {
			return nil, apperrors.NewValidationError("category must be one of GENERAL, EXAMS, EVENTS")
		}
		notice.Category = *req.Category
	}
	if req.AttachmentURL != nil {
		notice.AttachmentURL = req.AttachmentURL
	}
	if req.AttachmentType != nil {
		notice.AttachmentType = req.AttachmentType
	}

	if err := s.noticeStore.Update(ctx, notice); err != nil {
		return nil, err
	}
	return s.noticeStore.GetByID(ctx, id)
}

// DeleteNotice removes a notice
func (s *noticeServiceImpl) DeleteNotice(ctx context.Context, caller models.Caller, id int64) error {
	notice, err := s.noticeStore.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authService.ValidateNoticeModify(caller, notice); err != nil {
		return err
	}

	if err := s.noticeStore.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info().Int64("noticeID", id).Int64("byUserID", caller.ID).Msg("Notice deleted")
	return nil
}

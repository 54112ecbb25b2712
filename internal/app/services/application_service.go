package services

import (
	"context"

	"github.com/rs/zerolog"
	authz "github.com/oyilmaz/deptportal/internal/app/auth"
	"github.com/oyilmaz/deptportal/internal/app/models"
	"github.com/oyilmaz/deptportal/internal/app/models/dto"
	"github.com/oyilmaz/deptportal/internal/pkg/apperrors"
)

// applicationStore is the slice of the application repository the service needs
type applicationStore interface {
	Create(ctx context.Context, app *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	List(ctx context.Context, studentID *int64) ([]models.Application, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus) error
}

// remarkStore is the slice of the remark repository the service needs
type remarkStore interface {
	Create(ctx context.Context, remark *models.Remark) error
	ListByApplication(ctx context.Context, applicationID int64) ([]models.Remark, error)
	ListByApplications(ctx context.Context, applicationIDs []int64) (map[int64][]models.Remark, error)
}

// ApplicationService defines the interface for the application workflow
type ApplicationService interface {
	CreateApplication(ctx context.Context, caller models.Caller, req *dto.CreateApplicationRequest) (*models.Application, error)
	GetApplication(ctx context.Context, caller models.Caller, id int64) (*models.Application, error)
	ListApplications(ctx context.Context, caller models.Caller) ([]models.Application, error)
	UpdateStatus(ctx context.Context, caller models.Caller, id int64, status models.ApplicationStatus) (*models.Application, error)
	AddRemark(ctx context.Context, caller models.Caller, id int64, content string) (*models.Remark, error)
}

// applicationServiceImpl implements ApplicationService
type applicationServiceImpl struct {
	applicationStore applicationStore
	remarkStore      remarkStore
	authService      *authz.AuthorizationService
	logger           zerolog.Logger
}

// NewApplicationService creates a new ApplicationService
func NewApplicationService(
	applicationStore applicationStore,
	remarkStore remarkStore,
	authService *authz.AuthorizationService,
	logger zerolog.Logger,
) ApplicationService {
	return &applicationServiceImpl{
		applicationStore: applicationStore,
		remarkStore:      remarkStore,
		authService:      authService,
		logger:           logger,
	}
}

// CreateApplication submits a new application in PENDING state
func (s *applicationServiceImpl) CreateApplication(ctx context.Context, caller models.Caller, req *dto.CreateApplicationRequest) (*models.Application, error) {
	if err := s.authService.ValidateApplicationCreate(caller); err != nil {
		return nil, err
	}

	app := &models.Application{
		Title:         req.Title,
		Content:       req.Content,
		AttachmentURL: req.AttachmentURL,
		Status:        models.StatusPending,
		StudentID:     caller.ID,
	}
	if err := s.applicationStore.Create(ctx, app); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", app.ID).Int64("studentID", caller.ID).Msg("Application submitted")
	return s.applicationStore.GetByID(ctx, app.ID)
}

// GetApplication retrieves one application with its full remark log
func (s *applicationServiceImpl) GetApplication(ctx context.Context, caller models.Caller, id int64) (*models.Application, error) {
	app, err := s.applicationStore.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authService.ValidateApplicationRead(caller, app); err != nil {
		return nil, err
	}

	remarks, err := s.remarkStore.ListByApplication(ctx, id)
	if err != nil {
		return nil, err
	}
	app.Remarks = remarks
	return app, nil
}

// ListApplications returns the caller's view of the queue. Students only ever
// see their own applications; the admin tier sees everything.
func (s *applicationServiceImpl) ListApplications(ctx context.Context, caller models.Caller) ([]models.Application, error) {
	var studentID *int64
	if !caller.Role.IsAdminTier() {
		if caller.Role != models.RoleStudent {
			return nil, apperrors.ErrPermissionDenied
		}
		studentID = &caller.ID
	}

	apps, err := s.applicationStore.List(ctx, studentID)
	if err != nil {
		return nil, err
	}
	if len(apps) == 0 {
		return apps, nil
	}

	ids := make([]int64, len(apps))
	for i := range apps {
		ids[i] = apps[i].ID
	}
	remarksByApp, err := s.remarkStore.ListByApplications(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range apps {
		if remarks, ok := remarksByApp[apps[i].ID]; ok {
			apps[i].Remarks = remarks
		}
	}
	return apps, nil
}

// UpdateStatus moves an application to the given status and returns the
// refreshed record.
func (s *applicationServiceImpl) UpdateStatus(ctx context.Context, caller models.Caller, id int64, status models.ApplicationStatus) (*models.Application, error) {
	if err := s.authService.ValidateApplicationModerate(caller); err != nil {
		return nil, err
	}
	if !status.IsValid() {
		return nil, apperrors.ErrInvalidStatus
	}

	if err := s.applicationStore.UpdateStatus(ctx, id, status); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("applicationID", id).Str("status", string(status)).Int64("byUserID", caller.ID).Msg("Application status updated")
	return s.GetApplication(ctx, caller, id)
}

// AddRemark appends a remark to an application's log
func (s *applicationServiceImpl) AddRemark(ctx context.Context, caller models.Caller, id int64, content string) (*models.Remark, error) {
	if err := s.authService.ValidateApplicationModerate(caller); err != nil {
		return nil, err
	}

	// Verify the application exists before appending
	if _, err := s.applicationStore.GetByID(ctx, id); err != nil {
		return nil, err
	}

	remark := &models.Remark{
		Content:       content,
		AuthorID:      caller.ID,
		ApplicationID: id,
	}
	if err := s.remarkStore.Create(ctx, remark); err != nil {
		return nil, err
	}

	remarks, err := s.remarkStore.ListByApplication(ctx, id)
	if err != nil {
		// The remark was written; return it without the author join
		return remark, nil
	}
	for i := range remarks {
		if remarks[i].ID == remark.ID {
			return &remarks[i], nil
		}
	}
	return remark, nil
}

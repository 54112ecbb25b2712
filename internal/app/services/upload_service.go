package services

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	authz "github.com/oyilmaz/deptportal/internal/app/auth"
	"github.com/oyilmaz/deptportal/internal/app/models"
	"github.com/oyilmaz/deptportal/internal/app/models/dto"
	"github.com/oyilmaz/deptportal/internal/pkg/apperrors"
	"github.com/oyilmaz/deptportal/internal/pkg/storage"
)

// allowedUploadExtensions are the attachment types the portal accepts
var allowedUploadExtensions = map[string]bool{
	".pdf":  true,
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".webp": true,
	".doc":  true,
	".docx": true,
}

// UploadService defines the interface for presigned upload operations
type UploadService interface {
	PresignUpload(ctx context.Context, caller models.Caller, req *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error)
}

// uploadServiceImpl implements UploadService
type uploadServiceImpl struct {
	presigner   storage.Presigner
	authService *authz.AuthorizationService
	logger      zerolog.Logger
}

// NewUploadService creates a new UploadService
func NewUploadService(presigner storage.Presigner, authService *authz.AuthorizationService, logger zerolog.Logger) UploadService {
	return &uploadServiceImpl{
		presigner:   presigner,
		authService: authService,
		logger:      logger,
	}
}

// PresignUpload validates the file name and returns a signed PUT URL. The
// file itself never passes through this server.
func (s *uploadServiceImpl) PresignUpload(ctx context.Context, caller models.Caller, req *dto.PresignUploadRequest) (*dto.PresignUploadResponse, error) {
	if err := s.authService.ValidateUploadRequest(caller); err != nil {
		return nil, err
	}

	ext := strings.ToLower(filepath.Ext(req.FileName))
	if !allowedUploadExtensions[ext] {
		return nil, apperrors.NewValidationError("file type is not allowed")
	}

	upload, err := s.presigner.PresignUpload(ctx, req.FileName, req.ContentType)
	if err != nil {
		s.logger.Error().Err(err).Str("fileName", req.FileName).Msg("Failed to presign upload")
		return nil, apperrors.ErrUpstreamFailure
	}

	return &dto.PresignUploadResponse{
		UploadURL: upload.UploadURL,
		FileURL:   upload.FileURL,
		Key:       upload.Key,
		ExpiresIn: int(upload.ExpiresIn.Seconds()),
	}, nil
}

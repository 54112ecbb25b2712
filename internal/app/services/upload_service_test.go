package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	authz "github.com/oyilmaz/deptportal/internal/app/auth"
	"github.com/oyilmaz/deptportal/internal/app/models"
	"github.com/oyilmaz/deptportal/internal/app/models/dto"
	"github.com/oyilmaz/deptportal/internal/pkg/apperrors"
	"github.com/oyilmaz/deptportal/internal/pkg/storage"
)

// stubPresigner returns canned URLs
type stubPresigner struct {
	err error
}

func (p *stubPresigner) PresignUpload(_ context.Context, fileName, _ string) (*storage.PresignedUpload, error) {
	if p.err != nil {
		return nil, p.err
	}
	return &storage.PresignedUpload{
		UploadURL: "https://bucket.s3.amazonaws.com/uploads/" + fileName + "?sig=abc",
		FileURL:   "https://bucket.s3.amazonaws.com/uploads/" + fileName,
		Key:       "uploads/" + fileName,
		ExpiresIn: 15 * time.Minute,
	}, nil
}

func TestPresignUpload(t *testing.T) {
	svc := NewUploadService(&stubPresigner{}, authz.NewAuthorizationService(), zerolog.Nop())
	student := models.Caller{ID: 1, Role: models.RoleStudent}

	resp, err := svc.PresignUpload(context.Background(), student, &dto.PresignUploadRequest{
		FileName:    "transcript.pdf",
		ContentType: "application/pdf",
	})
	require.NoError(t, err)
	assert.Contains(t, resp.UploadURL, "transcript.pdf")
	assert.Equal(t, 900, resp.ExpiresIn)
}

func TestPresignUploadRejectsDisallowedTypes(t *testing.T) {
	svc := NewUploadService(&stubPresigner{}, authz.NewAuthorizationService(), zerolog.Nop())
	student := models.Caller{ID: 1, Role: models.RoleStudent}

	for _, name := range []string{"malware.exe", "script.sh", "archive.zip", "noextension"} {
		_, err := svc.PresignUpload(context.Background(), student, &dto.PresignUploadRequest{
			FileName:    name,
			ContentType: "application/octet-stream",
		})
		assert.ErrorIs(t, err, apperrors.ErrValidationFailed, "file %s must be rejected", name)
	}
}

func TestPresignUploadProviderFailure(t *testing.T) {
	svc := NewUploadService(&stubPresigner{err: assert.AnError}, authz.NewAuthorizationService(), zerolog.Nop())

	_, err := svc.PresignUpload(context.Background(), models.Caller{ID: 1, Role: models.RoleAdmin}, &dto.PresignUploadRequest{
		FileName:    "photo.png",
		ContentType: "image/png",
	})
	assert.ErrorIs(t, err, apperrors.ErrUpstreamFailure)
}

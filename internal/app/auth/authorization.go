package auth

import (
	"github.com/oyilmaz/deptportal/internal/app/models"
	"github.com/oyilmaz/deptportal/internal/pkg/apperrors"
)

// AuthorizationService holds the access rules for the portal. It is a pure
// rule table over the caller identity and the resource being touched; it
// never hits the database, which keeps every rule trivially testable.
type AuthorizationService struct{}

// NewAuthorizationService creates a new AuthorizationService
func NewAuthorizationService() *AuthorizationService {
	return &AuthorizationService{}
}

// ValidateApplicationCreate allows only students to submit applications
func (s *AuthorizationService) ValidateApplicationCreate(caller models.Caller) error {
	if caller.Role != models.RoleStudent {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateApplicationRead allows the owning student and the admin tier
func (s *AuthorizationService) ValidateApplicationRead(caller models.Caller, app *models.Application) error {
	if caller.Role.IsAdminTier() {
		return nil
	}
	if caller.Role == models.RoleStudent && app.StudentID == caller.ID {
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// ValidateApplicationModerate gates status changes and remarks to the admin tier
func (s *AuthorizationService) ValidateApplicationModerate(caller models.Caller) error {
	if !caller.Role.IsAdminTier() {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateNoticeCreate allows the admin tier to publish notices
func (s *AuthorizationService) ValidateNoticeCreate(caller models.Caller) error {
	if !caller.Role.IsAdminTier() {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateNoticeModify gates updates and deletes. SUPER_ADMIN may touch any
// notice, ADMIN only their own.
func (s *AuthorizationService) ValidateNoticeModify(caller models.Caller, notice *models.Notice) error {
	switch {
	case caller.Role == models.RoleSuperAdmin:
		return nil
	case caller.Role == models.RoleAdmin && notice.AuthorID == caller.ID:
		return nil
	}
	return apperrors.ErrPermissionDenied
}

// ValidateUserManagement gates listing, inviting and deleting accounts
func (s *AuthorizationService) ValidateUserManagement(caller models.Caller) error {
	if caller.Role != models.RoleSuperAdmin {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

// ValidateUserDelete additionally rejects self-deletion
func (s *AuthorizationService) ValidateUserDelete(caller models.Caller, targetID int64) error {
	if err := s.ValidateUserManagement(caller); err != nil {
		return err
	}
	if caller.ID == targetID {
		return apperrors.ErrSelfDeletionDenied
	}
	return nil
}

// ValidateUploadRequest allows any authenticated role to request an upload URL
func (s *AuthorizationService) ValidateUploadRequest(caller models.Caller) error {
	if !caller.Role.IsValid() {
		return apperrors.ErrPermissionDenied
	}
	return nil
}

package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/oyilmaz/deptportal/internal/app/models/dto"
	"github.com/oyilmaz/deptportal/internal/pkg/apperrors"
	"github.com/oyilmaz/deptportal/internal/pkg/logger"
)

// HandleAPIError maps service errors onto the API error envelope. Sentinel
// errors carry the status; a wrapping CustomError only refines the message.
func HandleAPIError(c *gin.Context, err error) {
	var customErr *apperrors.CustomError
	message := func(fallback string) string {
		if errors.As(err, &customErr) && customErr.Message != "" {
			return customErr.Message
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrNoticeNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, message("Notice not found"))
	case errors.Is(err, apperrors.ErrApplicationNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, message("Application not found"))
	case errors.Is(err, apperrors.ErrUserNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, message("User not found"))
	case errors.Is(err, apperrors.ErrResourceNotFound):
		respond(c, http.StatusNotFound, dto.ErrorCodeResourceNotFound, message("Resource not found"))
	case errors.Is(err, apperrors.ErrSelfDeletionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, message("You cannot delete your own account"))
	case errors.Is(err, apperrors.ErrPermissionDenied):
		respond(c, http.StatusForbidden, dto.ErrorCodeForbidden, message("Permission denied"))
	case errors.Is(err, apperrors.ErrInvalidCredentials):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidCredentials, message("Invalid email or password"))
	case errors.Is(err, apperrors.ErrTokenExpired):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeExpiredToken, message("Token expired"))
	case errors.Is(err, apperrors.ErrTokenInvalid):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeInvalidToken, message("Invalid token"))
	case errors.Is(err, apperrors.ErrUnauthenticated):
		respond(c, http.StatusUnauthorized, dto.ErrorCodeUnauthorized, message("Authentication required"))
	case errors.Is(err, apperrors.ErrInvalidResetToken):
		respond(c, http.StatusBadRequest, dto.ErrorCodeInvalidResetToken, message("Invalid or expired reset token"))
	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, message("Email already registered"))
	case errors.Is(err, apperrors.ErrRollNumberExists):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, message("Roll number already registered"))
	case errors.Is(err, apperrors.ErrConflict):
		respond(c, http.StatusConflict, dto.ErrorCodeResourceAlreadyExists, message("Conflict"))
	case errors.Is(err, apperrors.ErrInvalidStatus):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, message("Invalid application status"))
	case errors.Is(err, apperrors.ErrValidationFailed):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, message("Validation failed"))
	case errors.Is(err, apperrors.ErrBadRequest):
		respond(c, http.StatusBadRequest, dto.ErrorCodeValidationFailed, message("Bad request"))
	case errors.Is(err, apperrors.ErrUpstreamFailure):
		respond(c, http.StatusBadGateway, dto.ErrorCodeExternalServiceError, message("External service failure"))
	default:
		logger.Error().Err(err).Str("path", c.Request.URL.Path).Msg("Unhandled API error")
		respond(c, http.StatusInternalServerError, dto.ErrorCodeInternalServer, "Internal server error")
	}
}

func respond(c *gin.Context, status int, code dto.ErrorCode, message string) {
	c.JSON(status, dto.APIResponse{
		Error: dto.NewErrorDetail(code, message),
	})
}

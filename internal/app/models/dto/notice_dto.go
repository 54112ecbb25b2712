package dto

import "github.com/oyilmaz/deptportal/internal/app/models"

// CreateNoticeRequest represents a new announcement
type CreateNoticeRequest struct {
	Title          string                `json:"title" binding:"required,max=200"`
	Content        string                `json:"content" binding:"required"`
	Category       models.NoticeCategory `json:"category" binding:"required"`
	AttachmentURL  *string               `json:"attachmentUrl,omitempty" binding:"omitempty,url"`
	AttachmentType *string               `json:"attachmentType,omitempty"`
}

// UpdateNoticeRequest carries a partial edit. Nil fields are left untouched.
type UpdateNoticeRequest struct {
	Title          *string                `json:"title,omitempty" binding:"omitempty,max=200"`
	Content        *string                `json:"content,omitempty"`
	Category       *models.NoticeCategory `json:"category,omitempty"`
	AttachmentURL  *string                `json:"attachmentUrl,omitempty" binding:"omitempty,url"`
	AttachmentType *string                `json:"attachmentType,omitempty"`
}

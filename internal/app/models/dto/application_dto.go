package dto

import "github.com/oyilmaz/deptportal/internal/app/models"

// CreateApplicationRequest represents a student application submission
type CreateApplicationRequest struct {
	Title         string  `json:"title" binding:"required,max=200"`
	Content       string  `json:"content" binding:"required"`
	AttachmentURL *string `json:"attachmentUrl,omitempty" binding:"omitempty,url"`
}

// UpdateApplicationStatusRequest moves an application through the workflow
type UpdateApplicationStatusRequest struct {
	Status models.ApplicationStatus `json:"status" binding:"required"`
}

// AddRemarkRequest appends an admin remark to an application
type AddRemarkRequest struct {
	Content string `json:"content" binding:"required"`
}

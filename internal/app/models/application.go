package models

import "time"

// ApplicationStatus tracks where an application sits in the review workflow
type ApplicationStatus string

const (
	StatusPending     ApplicationStatus = "PENDING"
	StatusUnderReview ApplicationStatus = "UNDER_REVIEW"
	StatusResolved    ApplicationStatus = "RESOLVED"
	StatusRejected    ApplicationStatus = "REJECTED"
)

// IsValid reports whether the status is one of the known values.
// Any valid status may replace any other; ordering is not enforced.
func (s ApplicationStatus) IsValid() bool {
	switch s {
	case StatusPending, StatusUnderReview, StatusResolved, StatusRejected:
		return true
	}
	return false
}

// Application represents a student request in the 'applications' table
type Application struct {
	ID            int64             `json:"id" db:"id"`
	Title         string            `json:"title" db:"title"`
	Content       string            `json:"content" db:"content"`
	AttachmentURL *string           `json:"attachmentUrl,omitempty" db:"attachment_url"`
	Status        ApplicationStatus `json:"status" db:"status"`
	StudentID     int64             `json:"studentId" db:"student_id"`
	CreatedAt     time.Time         `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time         `json:"updatedAt" db:"updated_at"`

	// Relations
	Student *UserSummary `json:"student,omitempty"`
	Remarks []Remark     `json:"remarks"`
}

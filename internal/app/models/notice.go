package models

import "time"

// NoticeCategory classifies a notice on the feed
type NoticeCategory string

const (
	CategoryGeneral NoticeCategory = "GENERAL"
	CategoryExams   NoticeCategory = "EXAMS"
	CategoryEvents  NoticeCategory = "EVENTS"
)

// IsValid reports whether the category is one of the known values.
func (c NoticeCategory) IsValid() bool {
	switch c {
	case CategoryGeneral, CategoryExams, CategoryEvents:
		return true
	}
	return false
}

// Notice represents a department-wide announcement in the 'notices' table
type Notice struct {
	ID             int64          `json:"id" db:"id"`
	Title          string         `json:"title" db:"title"`
	Content        string         `json:"content" db:"content"`
	Category       NoticeCategory `json:"category" db:"category"`
	AttachmentURL  *string        `json:"attachmentUrl,omitempty" db:"attachment_url"`
	AttachmentType *string        `json:"attachmentType,omitempty" db:"attachment_type"`
	AuthorID       int64          `json:"authorId" db:"author_id"`
	CreatedAt      time.Time      `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time      `json:"updatedAt" db:"updated_at"`

	// Relations
	Author *UserSummary `json:"author,omitempty"`
}

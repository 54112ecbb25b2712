package models

import "time"

// Remark is an admin-authored note on an application. Remarks are append-only:
// there are no update or delete paths anywhere in the codebase.
type Remark struct {
	ID            int64     `json:"id" db:"id"`
	Content       string    `json:"content" db:"content"`
	AuthorID      int64     `json:"authorId" db:"author_id"`
	ApplicationID int64     `json:"applicationId" db:"application_id"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`

	// Relations
	Author *UserSummary `json:"author,omitempty"`
}

package models

import (
	"time"
)

// User defines the user model based on the 'users' table
type User struct {
	ID                     int64      `json:"id" db:"id" example:"1"`
	Email                  string     `json:"email" db:"email" example:"student@iub.edu"`
	RollNumber             *string    `json:"rollNumber,omitempty" db:"roll_number" example:"CS-101"` // Students only, unique when present
	Name                   *string    `json:"name,omitempty" db:"name" example:"Jane Doe"`
	Password               string     `json:"-" db:"password"` // Bcrypt hash, excluded from JSON
	Role                   RoleType   `json:"role" db:"role" example:"STUDENT"`
	PasswordResetToken     *string    `json:"-" db:"password_reset_token"`
	PasswordResetExpiresAt *time.Time `json:"-" db:"password_reset_expires_at"`
	CreatedAt              time.Time  `json:"createdAt" db:"created_at" example:"2026-01-01T10:00:00Z"`
	UpdatedAt              time.Time  `json:"updatedAt" db:"updated_at" example:"2026-01-02T15:30:00Z"`
}

// UserSummary is the slim user projection embedded in notices, applications
// and remarks.
type UserSummary struct {
	ID         int64    `json:"id"`
	Name       *string  `json:"name,omitempty"`
	Email      string   `json:"email"`
	RollNumber *string  `json:"rollNumber,omitempty"`
	Role       RoleType `json:"role,omitempty"`
}

// Summary returns the embeddable projection of the user.
func (u *User) Summary() *UserSummary {
	if u == nil {
		return nil
	}
	return &UserSummary{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		RollNumber: u.RollNumber,
		Role:       u.Role,
	}
}

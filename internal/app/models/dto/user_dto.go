package dto

import "github.com/oyilmaz/deptportal/internal/app/models"

// InviteUserRequest creates a faculty account with a generated password
type InviteUserRequest struct {
	Email string          `json:"email" binding:"required,email"`
	Name  string          `json:"name" binding:"required"`
	Role  models.RoleType `json:"role" binding:"required"`
}

// InviteUserResponse echoes the created account. The temporary password is
// only delivered by email, never in the API response.
type InviteUserResponse struct {
	User    UserResponse `json:"user"`
	Message string       `json:"message"`
}

package models

// RoleType defines the user role type
type RoleType string

const (
	RoleStudent    RoleType = "STUDENT"
	RoleTeacher    RoleType = "TEACHER"
	RoleClerk      RoleType = "CLERK"
	RoleAdmin      RoleType = "ADMIN"
	RoleSuperAdmin RoleType = "SUPER_ADMIN"
)

// FacultyRoles are the roles manageable through user administration.
// Students register themselves and are never listed or deleted there.
var FacultyRoles = []RoleType{RoleTeacher, RoleClerk, RoleAdmin, RoleSuperAdmin}

// IsValid reports whether the role is one of the known role values.
func (r RoleType) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleClerk, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

// IsAdminTier reports whether the role carries moderation privileges.
func (r RoleType) IsAdminTier() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// Caller is the authenticated identity attached to every request by the
// auth middleware and passed explicitly to services. There is no ambient
// session state anywhere else.
type Caller struct {
	ID    int64
	Email string
	Role  RoleType
}

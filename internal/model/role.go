package model

// Role is the user's global role. It is a closed set: role checks compare
// typed constants, never raw strings.
type Role string

const (
	// RoleStudent is the default role assigned at registration.
	RoleStudent Role = "student"
	// RoleTeacher marks class staff accounts.
	RoleTeacher Role = "teacher"
	// RoleAdmin may mutate any resource regardless of ownership.
	RoleAdmin Role = "admin"
)

// IsValid checks if the role is one of the predefined valid roles.
func (r Role) IsValid() bool {
	switch r {
	case RoleStudent, RoleTeacher, RoleAdmin:
		return true
	default:
		return false
	}
}

// IsAdmin reports whether this role overrides ownership checks.
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

// ParseRole returns the role for a stored string value and whether it is valid.
func ParseRole(s string) (Role, bool) {
	r := Role(s)
	return r, r.IsValid()
}

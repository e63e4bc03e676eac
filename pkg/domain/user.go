package domain

// User is the authenticated principal returned by the auth service's verify
// endpoint. It is only meaningful while the token it was derived from is held.
type User struct {
	UserID   int    `json:"user_id"`
	Username string `json:"username"`
	UserType string `json:"user_type"`
}

// Role returns the user's role. The auth service reports it as user_type.
func (u User) Role() string {
	return u.UserType
}

// IsAdmin reports whether the user may use the management sections.
func (u User) IsAdmin() bool {
	return u.UserType == RoleAdmin
}

// Account roles accepted by the auth service.
const (
	RoleAdmin   = "admin"
	RoleTeacher = "teacher"
	RoleStudent = "student"
)

// ValidRoles lists the roles a new account may be registered with.
var ValidRoles = []string{RoleAdmin, RoleTeacher, RoleStudent}

// ValidRole returns true if role is one of the registrable roles.
func ValidRole(role string) bool {
	for _, r := range ValidRoles {
		if r == role {
			return true
		}
	}
	return false
}

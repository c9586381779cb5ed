// Package entity contains the core business objects of the project.
package entity

// Role represents the type of role a user can have in the system.
type Role string

const (
	// RoleUser indicates a regular user role.
	RoleUser Role = "user"
	// RoleAdmin indicates a moderation role.
	RoleAdmin Role = "admin"
)

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	default:
		return false
	}
}

// RolesOf derives the roles held by a user.
func RolesOf(u *User) []Role {
	roles := []Role{RoleUser}
	if u.IsAdmin {
		roles = append(roles, RoleAdmin)
	}

	return roles
}

// HasRole reports whether the user holds the given role.
func HasRole(u *User, role Role) bool {
	if u == nil || !role.IsValid() {
		return false
	}
	for _, held := range RolesOf(u) {
		if held == role {
			return true
		}
	}

	return false
}

package domain

// Role is the coarse permission tier of a member account.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "adm"
)

// AllRoles contains every valid role
var AllRoles = []Role{RoleUser, RoleAdmin}

// IsValid checks if a role is valid
func (r Role) IsValid() bool {
	switch r {
	case RoleUser, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string {
	return string(r)
}

// IsAdmin reports whether the role carries administrative rights
func (r Role) IsAdmin() bool {
	return r == RoleAdmin
}

package models

type UserRole string

const (
	RoleReferee     UserRole = "referee"
	RoleHeadReferee UserRole = "head_referee"
	RoleAdmin       UserRole = "admin"
)

// ValidUserRole reports whether the role is one of the three event roles.
func ValidUserRole(role UserRole) bool {
	switch role {
	case RoleReferee, RoleHeadReferee, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	ID           int      `json:"id"`
	Username     string   `json:"username"`
	Email        string   `json:"email"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
}

type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

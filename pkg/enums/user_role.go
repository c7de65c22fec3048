package enums

import "fmt"

// UserRole separates students from their guardians.
type UserRole string

const (
	UserRoleStudent  UserRole = "STUDENT"
	UserRoleGuardian UserRole = "GUARDIAN"
)

var validUserRoles = []UserRole{
	UserRoleStudent,
	UserRoleGuardian,
}

func (u UserRole) String() string {
	return string(u)
}

func (u UserRole) IsValid() bool {
	for _, candidate := range validUserRoles {
		if candidate == u {
			return true
		}
	}
	return false
}

func ParseUserRole(value string) (UserRole, error) {
	for _, candidate := range validUserRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid user role %q", value)
}

package auth

import (
	"strings"

	"github.com/cognitia-web/Cognitia-Scratch/internal/users"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
)

// RegisterRequest carries the payload for account creation.
type RegisterRequest struct {
	Email         string  `json:"email" validate:"required,email"`
	Password      string  `json:"password" validate:"required,min=8,max=128"`
	DisplayName   string  `json:"displayName" validate:"required,min=1,max=120"`
	Role          string  `json:"role" validate:"omitempty,oneof=STUDENT GUARDIAN"`
	GuardianEmail *string `json:"guardianEmail" validate:"omitempty,email"`
}

// NormalizedEmail lowercases and trims the submitted address.
func (r RegisterRequest) NormalizedEmail() string {
	return normalizeEmail(r.Email)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// RoleOrDefault maps the optional role string onto the enum, defaulting to student.
func (r RegisterRequest) RoleOrDefault() enums.UserRole {
	role := enums.UserRole(strings.ToUpper(strings.TrimSpace(r.Role)))
	if !role.IsValid() {
		return enums.UserRoleStudent
	}
	return role
}

// LoginRequest carries credentials for session creation.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest exchanges an expired access token plus refresh token for a new pair.
type RefreshRequest struct {
	AccessToken  string `json:"accessToken" validate:"required"`
	RefreshToken string `json:"refreshToken" validate:"required"`
}

// LoginResponse is returned from Login and Refresh.
type LoginResponse struct {
	AccessToken  string         `json:"accessToken"`
	RefreshToken string         `json:"refreshToken"`
	User         *users.UserDTO `json:"user"`
}

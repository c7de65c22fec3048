package users

import (
	"time"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID            uuid.UUID      `json:"id"`
	Email         string         `json:"email"`
	DisplayName   string         `json:"displayName"`
	Role          enums.UserRole `json:"role"`
	GuardianEmail *string        `json:"guardianEmail,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email         string
	PasswordHash  string
	DisplayName   string
	Role          enums.UserRole
	GuardianEmail *string
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:            u.ID,
		Email:         u.Email,
		DisplayName:   u.DisplayName,
		Role:          u.Role,
		GuardianEmail: u.GuardianEmail,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	role := c.Role
	if !role.IsValid() {
		role = enums.UserRoleStudent
	}

	return &models.User{
		ID:            uuid.New(),
		Email:         c.Email,
		PasswordHash:  c.PasswordHash,
		DisplayName:   c.DisplayName,
		Role:          role,
		GuardianEmail: c.GuardianEmail,
	}
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
)

// User is an authenticated student or guardian account.
type User struct {
	ID            uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Email         string         `gorm:"column:email;not null;unique"`
	PasswordHash  string         `gorm:"column:password_hash;not null"`
	DisplayName   string         `gorm:"column:display_name;not null"`
	Role          enums.UserRole `gorm:"column:role;not null;default:STUDENT"`
	GuardianEmail *string        `gorm:"column:guardian_email"`
	CreatedAt     time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// Workout is one logged exercise session, optionally backed by a video
// verification.
type Workout struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	UserID          uuid.UUID  `gorm:"column:user_id;type:uuid;not null;index"`
	Kind            string     `gorm:"column:kind;not null"`
	DurationMinutes int        `gorm:"column:duration_minutes;not null"`
	Calories        int        `gorm:"column:calories;not null;default:0"`
	Notes           *string    `gorm:"column:notes"`
	VerificationID  *uuid.UUID `gorm:"column:verification_id;type:uuid"`
	PerformedAt     time.Time  `gorm:"column:performed_at;not null"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
)

// Task is a student to-do item; completing one may award reward points and
// may require video verification.
type Task struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;primaryKey"`
	UserID        uuid.UUID        `gorm:"column:user_id;type:uuid;not null;index"`
	Title         string           `gorm:"column:title;not null"`
	Description   *string          `gorm:"column:description"`
	Status        enums.TaskStatus `gorm:"column:status;not null;default:PENDING"`
	Points        int              `gorm:"column:points;not null;default:0"`
	RequiresVideo bool             `gorm:"column:requires_video;not null;default:false"`
	DueDate       *time.Time       `gorm:"column:due_date"`
	CompletedAt   *time.Time       `gorm:"column:completed_at"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
)

// Habit is a recurring commitment tracked with a streak counter.
type Habit struct {
	ID           uuid.UUID            `gorm:"column:id;type:uuid;primaryKey"`
	UserID       uuid.UUID            `gorm:"column:user_id;type:uuid;not null;index"`
	Name         string               `gorm:"column:name;not null"`
	Frequency    enums.HabitFrequency `gorm:"column:frequency;not null;default:DAILY"`
	Streak       int                  `gorm:"column:streak;not null;default:0"`
	LastLoggedAt *time.Time           `gorm:"column:last_logged_at"`
	CreatedAt    time.Time            `gorm:"column:created_at;autoCreateTime"`
}

// HabitLog is a single completion of a habit.
type HabitLog struct {
	ID       uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	HabitID  uuid.UUID `gorm:"column:habit_id;type:uuid;not null;index"`
	UserID   uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	LoggedAt time.Time `gorm:"column:logged_at;not null"`
}

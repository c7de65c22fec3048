package models

import (
	"time"

	"github.com/google/uuid"
)

// Exam is an upcoming test a student is preparing for.
type Exam struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Title     string    `gorm:"column:title;not null"`
	Subject   string    `gorm:"column:subject;not null"`
	Date      time.Time `gorm:"column:date;not null"`
	Notes     *string   `gorm:"column:notes"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

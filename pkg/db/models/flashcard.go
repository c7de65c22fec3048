package models

import (
	"time"

	"github.com/google/uuid"
)

// Flashcard is one spaced-repetition card. NextReview drives the review
// queue ordering; a fresh card is due immediately.
type Flashcard struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID     uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Front      string    `gorm:"column:front;not null"`
	Back       string    `gorm:"column:back;not null"`
	NextReview time.Time `gorm:"column:next_review;not null"`
	CreatedAt  time.Time `gorm:"column:created_at;autoCreateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

// StudyMessage is one turn of the study chat. The assistant side is a canned
// placeholder; rows are kept so the UI can replay the thread.
type StudyMessage struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Sender    string    `gorm:"column:sender;not null"`
	Content   string    `gorm:"column:content;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

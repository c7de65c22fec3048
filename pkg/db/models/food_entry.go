package models

import (
	"time"

	"github.com/google/uuid"
)

// FoodEntry is one logged meal or snack.
type FoodEntry struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;index"`
	Name      string    `gorm:"column:name;not null"`
	Calories  int       `gorm:"column:calories;not null"`
	ProteinG  int       `gorm:"column:protein_g;not null;default:0"`
	CarbsG    int       `gorm:"column:carbs_g;not null;default:0"`
	FatG      int       `gorm:"column:fat_g;not null;default:0"`
	EatenAt   time.Time `gorm:"column:eaten_at;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

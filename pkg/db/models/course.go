package models

import (
	"time"

	"github.com/google/uuid"
)

// Course is a catalog entry students can enroll against.
type Course struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	Title     string    `gorm:"column:title;not null"`
	Subject   string    `gorm:"column:subject;not null"`
	Lessons   int       `gorm:"column:lessons;not null"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// CourseProgress is a student's position in a course; one row per
// (user, course) pair.
type CourseProgress struct {
	ID               uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	UserID           uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:course_progress_user_course"`
	CourseID         uuid.UUID `gorm:"column:course_id;type:uuid;not null;uniqueIndex:course_progress_user_course"`
	CompletedLessons int       `gorm:"column:completed_lessons;not null;default:0"`
	UpdatedAt        time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (CourseProgress) TableName() string {
	return "course_progress"
}

package courses

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

// Repository persists the course catalog and per-student progress.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, course *models.Course) error {
	return r.db.WithContext(ctx).Create(course).Error
}

func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error) {
	var course models.Course
	if err := r.db.WithContext(ctx).First(&course, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *Repository) List(ctx context.Context, page pagination.Params) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Order("title asc").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&courses).Error
	if err != nil {
		return nil, err
	}
	return courses, nil
}

// UpsertProgress writes the student's position, relying on the
// (user_id, course_id) unique index to collapse concurrent updates.
func (r *Repository) UpsertProgress(ctx context.Context, progress *models.CourseProgress) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "course_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"completed_lessons", "updated_at"}),
		}).
		Create(progress).Error
}

func (r *Repository) FindProgress(ctx context.Context, userID, courseID uuid.UUID) (*models.CourseProgress, error) {
	var progress models.CourseProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND course_id = ?", userID, courseID).
		First(&progress).Error
	if err != nil {
		return nil, err
	}
	return &progress, nil
}

func (r *Repository) ListProgress(ctx context.Context, userID uuid.UUID) ([]models.CourseProgress, error) {
	var progress []models.CourseProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Find(&progress).Error
	if err != nil {
		return nil, err
	}
	return progress, nil
}

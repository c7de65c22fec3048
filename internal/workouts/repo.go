package workouts

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

// Repository persists workout sessions.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, workout *models.Workout) error {
	return r.db.WithContext(ctx).Create(workout).Error
}

func (r *Repository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Workout, error) {
	var workout models.Workout
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&workout).Error
	if err != nil {
		return nil, err
	}
	return &workout, nil
}

func (r *Repository) List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Workout, error) {
	var workouts []models.Workout
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("performed_at desc").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&workouts).Error
	if err != nil {
		return nil, err
	}
	return workouts, nil
}

// WeeklyStats aggregates the user's workouts since the cutoff.
func (r *Repository) WeeklyStats(ctx context.Context, userID uuid.UUID, since time.Time) (count int, minutes int, calories int, err error) {
	row := struct {
		Count    int
		Minutes  *int
		Calories *int
	}{}
	err = r.db.WithContext(ctx).
		Model(&models.Workout{}).
		Select("COUNT(*) as count, SUM(duration_minutes) as minutes, SUM(calories) as calories").
		Where("user_id = ? AND performed_at >= ?", userID, since).
		Scan(&row).Error
	if err != nil {
		return 0, 0, 0, err
	}
	if row.Minutes != nil {
		minutes = *row.Minutes
	}
	if row.Calories != nil {
		calories = *row.Calories
	}
	return row.Count, minutes, calories, nil
}

func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Workout{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
)

// Repository runs the read-only aggregate queries behind the dashboard.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// TaskCounts returns how many of the user's tasks are open and done.
func (r *Repository) TaskCounts(ctx context.Context, userID uuid.UUID) (open int64, completed int64, err error) {
	base := r.db.WithContext(ctx).Model(&models.Task{}).Where("user_id = ?", userID)

	if err = base.Session(&gorm.Session{}).
		Where("status <> ?", enums.TaskStatusCompleted).
		Count(&open).Error; err != nil {
		return 0, 0, err
	}
	if err = base.Session(&gorm.Session{}).
		Where("status = ?", enums.TaskStatusCompleted).
		Count(&completed).Error; err != nil {
		return 0, 0, err
	}
	return open, completed, nil
}

// BestStreak returns the user's highest current habit streak.
func (r *Repository) BestStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	var best *int
	err := r.db.WithContext(ctx).
		Model(&models.Habit{}).
		Where("user_id = ?", userID).
		Select("MAX(streak)").
		Scan(&best).Error
	if err != nil {
		return 0, err
	}
	if best == nil {
		return 0, nil
	}
	return *best, nil
}

// VerifiedClipCount counts the user's live verified workout clips.
func (r *Repository) VerifiedClipCount(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.VerificationRecord{}).
		Joins("JOIN video_records ON video_records.id = verification_records.video_id").
		Where("video_records.owner_id = ? AND video_records.deleted_at IS NULL", userID).
		Where("verification_records.status = ?", enums.VerificationStatusVerified).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}

// WorkoutStats aggregates workouts performed since the cutoff.
func (r *Repository) WorkoutStats(ctx context.Context, userID uuid.UUID, since time.Time) (count int64, minutes int, err error) {
	row := struct {
		Count   int64
		Minutes *int
	}{}
	err = r.db.WithContext(ctx).
		Model(&models.Workout{}).
		Select("COUNT(*) as count, SUM(duration_minutes) as minutes").
		Where("user_id = ? AND performed_at >= ?", userID, since).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	if row.Minutes != nil {
		minutes = *row.Minutes
	}
	return row.Count, minutes, nil
}

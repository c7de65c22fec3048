package account

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
)

// Snapshot is everything personal the app holds for one user. Clip metadata
// and blobs are deliberately absent; encrypted video content is never
// exported.
type Snapshot struct {
	User           models.User
	Tasks          []models.Task
	Habits         []models.Habit
	Workouts       []models.Workout
	CourseProgress []models.CourseProgress
	Exams          []models.Exam
	Flashcards     []models.Flashcard
	RewardEvents   []models.RewardEvent
	FoodEntries    []models.FoodEntry
	StudyMessages  []models.StudyMessage
}

// Repository reads and erases a user's data across every vertical.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Snapshot collects the user's rows from every table that stores them.
func (r *Repository) Snapshot(ctx context.Context, userID uuid.UUID) (*Snapshot, error) {
	db := r.db.WithContext(ctx)

	var snap Snapshot
	if err := db.First(&snap.User, "id = ?", userID).Error; err != nil {
		return nil, err
	}

	byUser := func(dest any, order string) error {
		query := db.Where("user_id = ?", userID)
		if order != "" {
			query = query.Order(order)
		}
		return query.Find(dest).Error
	}

	steps := []struct {
		dest  any
		order string
	}{
		{&snap.Tasks, "created_at asc"},
		{&snap.Habits, "created_at asc"},
		{&snap.Workouts, "performed_at asc"},
		{&snap.CourseProgress, ""},
		{&snap.Exams, "date asc"},
		{&snap.Flashcards, "created_at asc"},
		{&snap.RewardEvents, "created_at asc"},
		{&snap.FoodEntries, "eaten_at asc"},
		{&snap.StudyMessages, "created_at asc"},
	}
	for _, step := range steps {
		if err := byUser(step.dest, step.order); err != nil {
			return nil, err
		}
	}
	return &snap, nil
}

// Purge erases the user's data in one transaction. Verification records go
// first because they hang off the user's clips; the clip rows themselves are
// tombstoned rather than deleted so the reconcile job collects their blobs.
// The user row is scrubbed to an anonymous husk instead of removed, which
// keeps the owner reference on the tombstoned clips intact until they age
// out.
func (r *Repository) Purge(ctx context.Context, userID uuid.UUID, now time.Time) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		videoIDs := tx.Model(&models.VideoRecord{}).
			Select("id").
			Where("owner_id = ?", userID)
		if err := tx.Where("video_id IN (?)", videoIDs).
			Delete(&models.VerificationRecord{}).Error; err != nil {
			return fmt.Errorf("delete verification records: %w", err)
		}

		err := tx.Model(&models.VideoRecord{}).
			Where("owner_id = ? AND deleted_at IS NULL", userID).
			UpdateColumn("deleted_at", now).Error
		if err != nil {
			return fmt.Errorf("tombstone clips: %w", err)
		}

		owned := []any{
			&models.Task{},
			&models.HabitLog{},
			&models.Habit{},
			&models.RewardEvent{},
			&models.Workout{},
			&models.FoodEntry{},
			&models.CourseProgress{},
			&models.Exam{},
			&models.Flashcard{},
			&models.StudyMessage{},
		}
		for _, model := range owned {
			if err := tx.Where("user_id = ?", userID).Delete(model).Error; err != nil {
				return fmt.Errorf("delete user rows: %w", err)
			}
		}

		result := tx.Model(&models.User{}).
			Where("id = ?", userID).
			Updates(map[string]any{
				"email":          fmt.Sprintf("deleted+%s@cognitia.invalid", userID),
				"display_name":   "Deleted Account",
				"password_hash":  scrubbedPasswordHash,
				"guardian_email": nil,
				"updated_at":     now,
			})
		if result.Error != nil {
			return fmt.Errorf("scrub user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// scrubbedPasswordHash is not a valid argon2id encoding, so the scrubbed
// account can never authenticate again.
const scrubbedPasswordHash = "!"

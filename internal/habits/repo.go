package habits

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

// Repository persists habits and their completion log.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, habit *models.Habit) error {
	return r.db.WithContext(ctx).Create(habit).Error
}

func (r *Repository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Habit, error) {
	var habit models.Habit
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&habit).Error
	if err != nil {
		return nil, err
	}
	return &habit, nil
}

func (r *Repository) List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Habit, error) {
	var habits []models.Habit
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&habits).Error
	if err != nil {
		return nil, err
	}
	return habits, nil
}

// SaveWithTx persists streak updates inside the caller's transaction.
func (r *Repository) SaveWithTx(tx *gorm.DB, habit *models.Habit) error {
	return tx.Save(habit).Error
}

// CreateLogWithTx appends a completion entry inside the caller's transaction.
func (r *Repository) CreateLogWithTx(tx *gorm.DB, log *models.HabitLog) error {
	return tx.Create(log).Error
}

func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Habit{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package nutrition

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

// Repository persists food diary entries.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, entry *models.FoodEntry) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

// ListBetween returns entries eaten inside the half-open range [from, to).
func (r *Repository) ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time, page pagination.Params) ([]models.FoodEntry, error) {
	var entries []models.FoodEntry
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND eaten_at >= ? AND eaten_at < ?", userID, from, to).
		Order("eaten_at desc").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.FoodEntry{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

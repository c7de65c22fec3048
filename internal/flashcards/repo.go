package flashcards

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
)

// Repository persists flashcards.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, card *models.Flashcard) error {
	return r.db.WithContext(ctx).Create(card).Error
}

// List returns the user's cards in review order, most overdue first.
func (r *Repository) List(ctx context.Context, userID uuid.UUID) ([]models.Flashcard, error) {
	var cards []models.Flashcard
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("next_review asc").
		Find(&cards).Error
	if err != nil {
		return nil, err
	}
	return cards, nil
}

func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Flashcard{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

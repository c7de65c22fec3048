package study

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

// Repository persists the study chat transcript.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, message *models.StudyMessage) error {
	return r.db.WithContext(ctx).Create(message).Error
}

// List returns the transcript oldest first so it renders top-down.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.StudyMessage, error) {
	var messages []models.StudyMessage
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

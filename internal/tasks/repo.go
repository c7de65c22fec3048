package tasks

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

// Repository persists tasks. All reads are scoped to the owning user.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

func (r *Repository) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Task, error) {
	var task models.Task
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&task).Error
	if err != nil {
		return nil, err
	}
	return &task, nil
}

// List returns the user's tasks, optionally filtered by status, newest first.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, status *enums.TaskStatus, page pagination.Params) ([]models.Task, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}

	var tasks []models.Task
	err := query.
		Order("created_at desc").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&tasks).Error
	if err != nil {
		return nil, err
	}
	return tasks, nil
}

func (r *Repository) Save(ctx context.Context, task *models.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// SaveWithTx persists the task inside the caller's transaction so completion
// and the points award commit together.
func (r *Repository) SaveWithTx(tx *gorm.DB, task *models.Task) error {
	return tx.Save(task).Error
}

func (r *Repository) Delete(ctx context.Context, userID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&models.Task{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

package rewards

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

// Repository persists and reads the points ledger.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithTx appends a ledger entry inside the caller's transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, event *models.RewardEvent) error {
	return tx.Create(event).Error
}

// SumPoints returns the user's current balance across all ledger entries.
func (r *Repository) SumPoints(ctx context.Context, userID uuid.UUID) (int, error) {
	return sumPoints(r.db.WithContext(ctx), userID)
}

// SumPointsWithTx is SumPoints executed against the caller's transaction,
// used when a conversion must see its own balance check atomically.
func (r *Repository) SumPointsWithTx(tx *gorm.DB, userID uuid.UUID) (int, error) {
	return sumPoints(tx, userID)
}

func sumPoints(db *gorm.DB, userID uuid.UUID) (int, error) {
	var total *int
	err := db.Model(&models.RewardEvent{}).
		Where("user_id = ?", userID).
		Select("SUM(points)").
		Scan(&total).Error
	if err != nil {
		return 0, err
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// List returns the most recent ledger entries for a user.
func (r *Repository) List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.RewardEvent, error) {
	var events []models.RewardEvent
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&events).Error
	if err != nil {
		return nil, err
	}
	return events, nil
}

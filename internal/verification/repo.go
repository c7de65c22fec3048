package verification

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

// Repository exposes verification record persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a verification repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithTx inserts a verification record inside the caller's transaction.
func (r *Repository) CreateWithTx(tx *gorm.DB, record *models.VerificationRecord) error {
	return tx.Create(record).Error
}

// FindByID loads a verification record together with its clip ownership check
// pushed down to SQL.
func (r *Repository) FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.VerificationRecord, error) {
	var record models.VerificationRecord
	err := r.db.WithContext(ctx).
		Joins("JOIN video_records ON video_records.id = verification_records.video_id").
		Where("verification_records.id = ? AND video_records.owner_id = ?", id, ownerID).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListByOwner returns the owner's verification records, newest first.
func (r *Repository) ListByOwner(ctx context.Context, ownerID uuid.UUID, page pagination.Params) ([]models.VerificationRecord, error) {
	var rows []models.VerificationRecord
	err := r.db.WithContext(ctx).
		Joins("JOIN video_records ON video_records.id = verification_records.video_id").
		Where("video_records.owner_id = ?", ownerID).
		Order("verification_records.created_at desc").
		Limit(page.Limit).
		Offset(page.Offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

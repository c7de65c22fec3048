package videos

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
)

// Repository exposes persistence for encrypted clip metadata.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a videos repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateWithTx inserts a clip row inside the caller's transaction. A unique
// violation on video_records_content_hash_live surfaces as the driver error
// so the caller can translate it.
func (r *Repository) CreateWithTx(tx *gorm.DB, record *models.VideoRecord) error {
	return tx.Create(record).Error
}

// FindByID loads a clip row by ID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.VideoRecord, error) {
	var record models.VideoRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindLiveByHash returns the undeleted clip carrying the given digest, if any.
func (r *Repository) FindLiveByHash(ctx context.Context, contentHash string) (*models.VideoRecord, error) {
	var record models.VideoRecord
	err := r.db.WithContext(ctx).
		Where("content_hash = ? AND deleted_at IS NULL", contentHash).
		First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

// ListExpired returns live rows whose retention window has lapsed.
func (r *Repository) ListExpired(ctx context.Context, now time.Time, limit int) ([]models.VideoRecord, error) {
	var rows []models.VideoRecord
	query := r.db.WithContext(ctx).
		Where("deleted_at IS NULL AND expires_at <= ?", now).
		Order("expires_at asc")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Tombstone marks a clip deleted. The conditional update means only one
// caller wins when sweeps overlap; claimed reports whether this call did.
func (r *Repository) Tombstone(ctx context.Context, id uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.VideoRecord{}).
		Where("id = ? AND deleted_at IS NULL", id).
		UpdateColumn("deleted_at", at)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// ListLivePaths returns storage paths referenced by undeleted rows.
func (r *Repository) ListLivePaths(ctx context.Context) ([]string, error) {
	var paths []string
	err := r.db.WithContext(ctx).
		Model(&models.VideoRecord{}).
		Where("deleted_at IS NULL").
		Pluck("storage_path", &paths).Error
	if err != nil {
		return nil, err
	}
	return paths, nil
}

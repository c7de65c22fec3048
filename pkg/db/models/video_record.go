package models

import (
	"time"

	"github.com/google/uuid"
)

// VideoRecord is the metadata row for one encrypted workout clip.
//
// ContentHash is unique across live rows via a partial index
// (video_records_content_hash_live, WHERE deleted_at IS NULL) created in the
// migrations; the constraint, not application code, enforces duplicate
// rejection under concurrent submissions.
//
// WrappedKey holds the per-clip data key sealed under the master wrapping key.
// The row alone cannot decrypt the blob.
type VideoRecord struct {
	ID              uuid.UUID  `gorm:"column:id;type:uuid;primaryKey"`
	OwnerID         uuid.UUID  `gorm:"column:owner_id;type:uuid;not null;index"`
	StoragePath     string     `gorm:"column:storage_path;not null"`
	ContentHash     string     `gorm:"column:content_hash;not null;index"`
	SizeBytes       int64      `gorm:"column:size_bytes;not null"`
	DurationSeconds int        `gorm:"column:duration_seconds;not null"`
	WrappedKey      string     `gorm:"column:wrapped_key;not null"`
	CreatedAt       time.Time  `gorm:"column:created_at;autoCreateTime"`
	ExpiresAt       time.Time  `gorm:"column:expires_at;not null;index"`
	DeletedAt       *time.Time `gorm:"column:deleted_at"`
}

// Expired reports whether the record is past retention and still undeleted.
func (v VideoRecord) Expired(now time.Time) bool {
	return v.DeletedAt == nil && !now.Before(v.ExpiresAt)
}

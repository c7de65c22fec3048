package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
)

// VerificationRecord binds an uploaded clip to a task and an outcome. It is
// created in the same transaction as its VideoRecord and never hard-deleted;
// once the clip is tombstoned the record survives for audit only.
type VerificationRecord struct {
	ID              uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	TaskID          *uuid.UUID               `gorm:"column:task_id;type:uuid;index"`
	VideoID         uuid.UUID                `gorm:"column:video_id;type:uuid;not null;unique"`
	Kind            enums.VerificationKind   `gorm:"column:kind;not null"`
	Status          enums.VerificationStatus `gorm:"column:status;not null"`
	ContentHash     string                   `gorm:"column:content_hash;not null"`
	PoseData        *string                  `gorm:"column:pose_data"`
	ChallengeID     *string                  `gorm:"column:challenge_id"`
	LivenessChecked bool                     `gorm:"column:liveness_checked;not null;default:false"`
	VerifiedAt      time.Time                `gorm:"column:verified_at;not null"`
	CreatedAt       time.Time                `gorm:"column:created_at;autoCreateTime"`
}

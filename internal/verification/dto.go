package verification

import (
	"time"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
)

// SubmitRequest carries one clip upload through the pipeline.
type SubmitRequest struct {
	UserID          uuid.UUID
	TaskID          *uuid.UUID
	ChallengeID     string
	ClientDigest    string
	Data            []byte
	DurationSeconds int
	PoseData        *string
}

// SubmitResult reports the stored clip and its verification outcome.
type SubmitResult struct {
	VerificationID uuid.UUID                `json:"verificationId"`
	VideoID        uuid.UUID                `json:"videoId"`
	Status         enums.VerificationStatus `json:"status"`
	ContentHash    string                   `json:"contentHash"`
	ExpiresAt      time.Time                `json:"expiresAt"`
}

// View is the client-facing shape of a verification record.
type View struct {
	ID              uuid.UUID                `json:"id"`
	TaskID          *uuid.UUID               `json:"taskId,omitempty"`
	VideoID         uuid.UUID                `json:"videoId"`
	Kind            enums.VerificationKind   `json:"kind"`
	Status          enums.VerificationStatus `json:"status"`
	ContentHash     string                   `json:"contentHash"`
	LivenessChecked bool                     `json:"livenessChecked"`
	VerifiedAt      time.Time                `json:"verifiedAt"`
	CreatedAt       time.Time                `json:"createdAt"`
}

// FromModel converts a persisted record into its API view.
func FromModel(record *models.VerificationRecord) View {
	return View{
		ID:              record.ID,
		TaskID:          record.TaskID,
		VideoID:         record.VideoID,
		Kind:            record.Kind,
		Status:          record.Status,
		ContentHash:     record.ContentHash,
		LivenessChecked: record.LivenessChecked,
		VerifiedAt:      record.VerifiedAt,
		CreatedAt:       record.CreatedAt,
	}
}

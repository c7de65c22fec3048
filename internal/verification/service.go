package verification

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/config"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/crypto"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/db"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/metrics"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

const (
	duplicateContentMessage = "identical clip already submitted"
	videoLiveIndex          = "video_records_content_hash_live"
)

// Service defines the behavior needed by the verification controller.
type Service interface {
	IssuePrompt(ctx context.Context, userID uuid.UUID) (*Challenge, error)
	Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error)
	Get(ctx context.Context, userID, id uuid.UUID) (*View, error)
	List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]View, error)
	Download(ctx context.Context, userID, videoID uuid.UUID) ([]byte, error)
}

type videoRepository interface {
	CreateWithTx(tx *gorm.DB, record *models.VideoRecord) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.VideoRecord, error)
	FindLiveByHash(ctx context.Context, contentHash string) (*models.VideoRecord, error)
}

type verificationRepository interface {
	CreateWithTx(tx *gorm.DB, record *models.VerificationRecord) error
	FindByID(ctx context.Context, ownerID, id uuid.UUID) (*models.VerificationRecord, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID, page pagination.Params) ([]models.VerificationRecord, error)
}

type blobStore interface {
	Write(ctx context.Context, name string, data []byte) error
	Read(ctx context.Context, name string) ([]byte, error)
	Delete(ctx context.Context, name string) error
}

type keyring interface {
	NewDataKey() (key []byte, wrapped string, err error)
	Unwrap(wrapped string) ([]byte, error)
}

type challenger interface {
	Issue(ctx context.Context, userID uuid.UUID) (*Challenge, error)
	Consume(ctx context.Context, userID uuid.UUID, challengeID string) (*Challenge, error)
}

type pointsAwarder interface {
	AwardWithTx(tx *gorm.DB, userID uuid.UUID, eventType enums.RewardEventType, points int, reference *uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// ServiceParams bundles the dependencies required to build the service.
type ServiceParams struct {
	Logger      *logger.Logger
	DB          txRunner
	Videos      videoRepository
	Records     verificationRepository
	Blobs       blobStore
	Keyring     keyring
	Challenger  challenger
	Rewards     pointsAwarder
	Metrics     *metrics.VerificationMetrics
	VideoConfig config.VideoConfig
	RewardsCfg  config.RewardsConfig
}

type service struct {
	logg       *logger.Logger
	db         txRunner
	videos     videoRepository
	records    verificationRepository
	blobs      blobStore
	keyring    keyring
	challenger challenger
	rewards    pointsAwarder
	metrics    *metrics.VerificationMetrics
	videoCfg   config.VideoConfig
	rewardsCfg config.RewardsConfig
	now        func() time.Time
}

// NewService constructs the verification pipeline service.
func NewService(params ServiceParams) (Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("tx runner is required")
	}
	if params.Videos == nil {
		return nil, fmt.Errorf("video repository is required")
	}
	if params.Records == nil {
		return nil, fmt.Errorf("verification repository is required")
	}
	if params.Blobs == nil {
		return nil, fmt.Errorf("blob store is required")
	}
	if params.Keyring == nil {
		return nil, fmt.Errorf("keyring is required")
	}
	if params.Challenger == nil {
		return nil, fmt.Errorf("challenger is required")
	}
	return &service{
		logg:       params.Logger,
		db:         params.DB,
		videos:     params.Videos,
		records:    params.Records,
		blobs:      params.Blobs,
		keyring:    params.Keyring,
		challenger: params.Challenger,
		rewards:    params.Rewards,
		metrics:    params.Metrics,
		videoCfg:   params.VideoConfig,
		rewardsCfg: params.RewardsCfg,
		now:        time.Now,
	}, nil
}

// IssuePrompt hands out a fresh liveness prompt for the user's next recording.
func (s *service) IssuePrompt(ctx context.Context, userID uuid.UUID) (*Challenge, error) {
	challenge, err := s.challenger.Issue(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue liveness prompt")
	}
	return challenge, nil
}

// Submit runs the full clip pipeline: size and type gates, content
// addressing, duplicate rejection, liveness check, encryption, blob write,
// and the transactional metadata insert.
func (s *service) Submit(ctx context.Context, req SubmitRequest) (*SubmitResult, error) {
	if len(req.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "clip payload is empty")
	}
	if int64(len(req.Data)) > s.videoCfg.MaxUploadBytes() {
		s.metrics.IncSubmission(metrics.OutcomeTooLarge)
		return nil, pkgerrors.New(pkgerrors.CodePayloadTooLarge,
			fmt.Sprintf("clip exceeds the %dMB limit", s.videoCfg.MaxUploadMB))
	}
	if req.DurationSeconds <= 0 || req.DurationSeconds > s.videoCfg.MaxDurationSeconds {
		s.metrics.IncSubmission(metrics.OutcomeRejected)
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("clip duration must be between 1 and %d seconds", s.videoCfg.MaxDurationSeconds))
	}
	if detected := mimetype.Detect(req.Data); !strings.HasPrefix(detected.String(), "video/") {
		s.metrics.IncSubmission(metrics.OutcomeRejected)
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("expected a video upload, got %s", detected.String()))
	}

	contentHash := crypto.HashBytes(req.Data)
	if req.ClientDigest != "" && !strings.EqualFold(req.ClientDigest, contentHash) {
		s.metrics.IncSubmission(metrics.OutcomeRejected)
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "client digest does not match upload")
	}

	// Fast path; the partial unique index is the real guarantee under races.
	if _, err := s.videos.FindLiveByHash(ctx, contentHash); err == nil {
		s.metrics.IncSubmission(metrics.OutcomeDuplicate)
		return nil, pkgerrors.New(pkgerrors.CodeDuplicateContent, duplicateContentMessage)
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "duplicate lookup")
	}

	// A challenge is optional; submitting one binds the clip to a consumed
	// liveness prompt, omitting it records the clip as unchecked.
	var challengeID *string
	livenessChecked := false
	if req.ChallengeID != "" {
		challenge, err := s.challenger.Consume(ctx, req.UserID, req.ChallengeID)
		if err != nil {
			if errors.Is(err, ErrChallengeInvalid) {
				s.metrics.IncSubmission(metrics.OutcomeRejected)
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "liveness challenge invalid or expired")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "consume liveness challenge")
		}
		challengeID = &challenge.ID
		livenessChecked = true
	}

	dataKey, wrappedKey, err := s.keyring.NewDataKey()
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "generate data key")
	}
	sealed, err := crypto.Encrypt(dataKey, req.Data)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encrypt clip")
	}

	now := s.now().UTC()
	videoID := uuid.New()
	storagePath := fmt.Sprintf("%s/%s.bin", req.UserID, videoID)

	if err := s.blobs.Write(ctx, storagePath, sealed); err != nil {
		s.metrics.IncSubmission(metrics.OutcomeStorageFailure)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist clip blob")
	}

	video := &models.VideoRecord{
		ID:              videoID,
		OwnerID:         req.UserID,
		StoragePath:     storagePath,
		ContentHash:     contentHash,
		SizeBytes:       int64(len(req.Data)),
		DurationSeconds: req.DurationSeconds,
		WrappedKey:      wrappedKey,
		ExpiresAt:       now.Add(s.videoCfg.Retention()),
	}
	record := &models.VerificationRecord{
		ID:              uuid.New(),
		TaskID:          req.TaskID,
		VideoID:         videoID,
		Kind:            enums.VerificationKindVideo,
		Status:          enums.VerificationStatusVerified,
		ContentHash:     contentHash,
		PoseData:        req.PoseData,
		ChallengeID:     challengeID,
		LivenessChecked: livenessChecked,
		VerifiedAt:      now,
	}

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.videos.CreateWithTx(tx, video); err != nil {
			return err
		}
		if err := s.records.CreateWithTx(tx, record); err != nil {
			return err
		}
		if s.rewards != nil {
			if err := s.rewards.AwardWithTx(tx, req.UserID, enums.RewardEventVideoVerified,
				s.rewardsCfg.VerifiedPoints, &record.ID); err != nil {
				return fmt.Errorf("award points: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		// the blob has no metadata row; remove it so nothing leaks
		if cleanupErr := s.blobs.Delete(ctx, storagePath); cleanupErr != nil {
			s.logg.Error(ctx, "orphan blob cleanup failed", cleanupErr)
		}
		if db.IsUniqueViolation(err, videoLiveIndex) {
			s.metrics.IncSubmission(metrics.OutcomeDuplicate)
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateContent, duplicateContentMessage)
		}
		s.metrics.IncSubmission(metrics.OutcomeStorageFailure)
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "persist clip metadata")
	}

	s.metrics.IncSubmission(metrics.OutcomeAccepted)
	logCtx := s.logg.WithVideoID(ctx, videoID.String())
	s.logg.Info(logCtx, "clip accepted")

	return &SubmitResult{
		VerificationID: record.ID,
		VideoID:        videoID,
		Status:         record.Status,
		ContentHash:    contentHash,
		ExpiresAt:      video.ExpiresAt,
	}, nil
}

// Get returns one of the caller's verification records.
func (s *service) Get(ctx context.Context, userID, id uuid.UUID) (*View, error) {
	record, err := s.records.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "verification not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load verification")
	}
	view := FromModel(record)
	return &view, nil
}

// List returns the caller's verification history, newest first.
func (s *service) List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]View, error) {
	rows, err := s.records.ListByOwner(ctx, userID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list verifications")
	}
	views := make([]View, 0, len(rows))
	for i := range rows {
		views = append(views, FromModel(&rows[i]))
	}
	return views, nil
}

// Download decrypts and returns the caller's clip. The plaintext is re-hashed
// against the stored digest before it leaves the service.
func (s *service) Download(ctx context.Context, userID, videoID uuid.UUID) ([]byte, error) {
	video, err := s.videos.FindByID(ctx, videoID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "clip not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load clip metadata")
	}
	if video.OwnerID != userID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "clip belongs to another user")
	}
	if video.DeletedAt != nil {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "clip not found")
	}

	sealed, err := s.blobs.Read(ctx, video.StoragePath)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "read clip blob")
	}
	dataKey, err := s.keyring.Unwrap(video.WrappedKey)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "unwrap data key")
	}
	plaintext, err := crypto.Decrypt(dataKey, sealed)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "decrypt clip")
	}
	if crypto.HashBytes(plaintext) != video.ContentHash {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "clip digest mismatch")
	}
	return plaintext, nil
}

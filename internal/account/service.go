package account

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

// ProfileView is the account owner's own profile, minus credentials.
type ProfileView struct {
	ID            uuid.UUID      `json:"id"`
	Email         string         `json:"email"`
	DisplayName   string         `json:"displayName"`
	Role          enums.UserRole `json:"role"`
	GuardianEmail *string        `json:"guardianEmail,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}

// ExportView is the full data-export document. Vertical rows are exported
// in their stored shape; encrypted clips are excluded.
type ExportView struct {
	User           ProfileView             `json:"user"`
	Tasks          []models.Task           `json:"tasks"`
	Habits         []models.Habit          `json:"habits"`
	Workouts       []models.Workout        `json:"workouts"`
	CourseProgress []models.CourseProgress `json:"courseProgress"`
	Exams          []models.Exam           `json:"exams"`
	Flashcards     []models.Flashcard      `json:"flashcards"`
	RewardEvents   []models.RewardEvent    `json:"rewardEvents"`
	FoodEntries    []models.FoodEntry      `json:"foodEntries"`
	StudyMessages  []models.StudyMessage   `json:"studyMessages"`
}

type accountRepository interface {
	Snapshot(ctx context.Context, userID uuid.UUID) (*Snapshot, error)
	Purge(ctx context.Context, userID uuid.UUID, now time.Time) error
}

// Service backs the data-export and account-deletion endpoints.
type Service struct {
	logg *logger.Logger
	repo accountRepository
	now  func() time.Time
}

// NewService validates dependencies and returns the account service.
func NewService(logg *logger.Logger, repo accountRepository) (*Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if repo == nil {
		return nil, fmt.Errorf("account repository is required")
	}
	return &Service{logg: logg, repo: repo, now: time.Now}, nil
}

// Export assembles the user's complete data dump.
func (s *Service) Export(ctx context.Context, userID uuid.UUID) (*ExportView, error) {
	snap, err := s.repo.Snapshot(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "export account data")
	}

	return &ExportView{
		User: ProfileView{
			ID:            snap.User.ID,
			Email:         snap.User.Email,
			DisplayName:   snap.User.DisplayName,
			Role:          snap.User.Role,
			GuardianEmail: snap.User.GuardianEmail,
			CreatedAt:     snap.User.CreatedAt,
		},
		Tasks:          snap.Tasks,
		Habits:         snap.Habits,
		Workouts:       snap.Workouts,
		CourseProgress: snap.CourseProgress,
		Exams:          snap.Exams,
		Flashcards:     snap.Flashcards,
		RewardEvents:   snap.RewardEvents,
		FoodEntries:    snap.FoodEntries,
		StudyMessages:  snap.StudyMessages,
	}, nil
}

// Delete erases the user's data and tombstones their clips. The clip blobs
// themselves disappear on the next reconcile run.
func (s *Service) Delete(ctx context.Context, userID uuid.UUID) error {
	if err := s.repo.Purge(ctx, userID, s.now().UTC()); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete account data")
	}

	logCtx := s.logg.WithUserID(ctx, userID.String())
	s.logg.Info(logCtx, "account data erased")
	return nil
}

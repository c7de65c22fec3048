package workouts

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

// CreateRequest is the payload for logging a workout session.
type CreateRequest struct {
	Kind            string     `json:"kind" validate:"required,min=1,max=60"`
	DurationMinutes int        `json:"durationMinutes" validate:"required,gt=0,lte=600"`
	Calories        int        `json:"calories" validate:"omitempty,gte=0,lte=10000"`
	Notes           *string    `json:"notes" validate:"omitempty,max=2000"`
	VerificationID  *uuid.UUID `json:"verificationId"`
	PerformedAt     *time.Time `json:"performedAt"`
}

// View is the transport shape for a workout.
type View struct {
	ID              uuid.UUID  `json:"id"`
	Kind            string     `json:"kind"`
	DurationMinutes int        `json:"durationMinutes"`
	Calories        int        `json:"calories"`
	Notes           *string    `json:"notes,omitempty"`
	VerificationID  *uuid.UUID `json:"verificationId,omitempty"`
	Verified        bool       `json:"verified"`
	PerformedAt     time.Time  `json:"performedAt"`
	CreatedAt       time.Time  `json:"createdAt"`
}

func viewFromModel(w *models.Workout) View {
	return View{
		ID:              w.ID,
		Kind:            w.Kind,
		DurationMinutes: w.DurationMinutes,
		Calories:        w.Calories,
		Notes:           w.Notes,
		VerificationID:  w.VerificationID,
		Verified:        w.VerificationID != nil,
		PerformedAt:     w.PerformedAt,
		CreatedAt:       w.CreatedAt,
	}
}

type workoutRepository interface {
	Create(ctx context.Context, workout *models.Workout) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Workout, error)
	List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Workout, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service records workout sessions, optionally linked to a verification.
type Service struct {
	logg     *logger.Logger
	workouts workoutRepository
	now      func() time.Time
}

// NewService validates dependencies and returns the workouts service.
func NewService(logg *logger.Logger, workouts workoutRepository) (*Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if workouts == nil {
		return nil, fmt.Errorf("workouts repository is required")
	}
	return &Service{logg: logg, workouts: workouts, now: time.Now}, nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*View, error) {
	performedAt := s.now()
	if req.PerformedAt != nil {
		if req.PerformedAt.After(s.now()) {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "performedAt cannot be in the future")
		}
		performedAt = *req.PerformedAt
	}

	workout := &models.Workout{
		ID:              uuid.New(),
		UserID:          userID,
		Kind:            req.Kind,
		DurationMinutes: req.DurationMinutes,
		Calories:        req.Calories,
		Notes:           req.Notes,
		VerificationID:  req.VerificationID,
		PerformedAt:     performedAt,
	}
	if err := s.workouts.Create(ctx, workout); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create workout")
	}

	view := viewFromModel(workout)
	return &view, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*View, error) {
	workout, err := s.workouts.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "workout not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load workout")
	}
	view := viewFromModel(workout)
	return &view, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]View, error) {
	workouts, err := s.workouts.List(ctx, userID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list workouts")
	}

	views := make([]View, 0, len(workouts))
	for i := range workouts {
		views = append(views, viewFromModel(&workouts[i]))
	}
	return views, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.workouts.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "workout not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete workout")
	}
	return nil
}

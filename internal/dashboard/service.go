package dashboard

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/internal/rewards"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

// View is the student dashboard summary.
type View struct {
	OpenTasks          int64               `json:"openTasks"`
	CompletedTasks     int64               `json:"completedTasks"`
	BestHabitStreak    int                 `json:"bestHabitStreak"`
	VerifiedClips      int64               `json:"verifiedClips"`
	WorkoutsThisWeek   int64               `json:"workoutsThisWeek"`
	WorkoutMinutesWeek int                 `json:"workoutMinutesThisWeek"`
	Rewards            rewards.BalanceView `json:"rewards"`
	GeneratedAt        time.Time           `json:"generatedAt"`
}

type statsRepository interface {
	TaskCounts(ctx context.Context, userID uuid.UUID) (open int64, completed int64, err error)
	BestStreak(ctx context.Context, userID uuid.UUID) (int, error)
	VerifiedClipCount(ctx context.Context, userID uuid.UUID) (int64, error)
	WorkoutStats(ctx context.Context, userID uuid.UUID, since time.Time) (count int64, minutes int, err error)
}

type balanceProvider interface {
	Balance(ctx context.Context, userID uuid.UUID) (*rewards.BalanceView, error)
}

// Service assembles the dashboard from the per-vertical stores.
type Service struct {
	logg    *logger.Logger
	stats   statsRepository
	rewards balanceProvider
	now     func() time.Time
}

// NewService validates dependencies and returns the dashboard service.
func NewService(logg *logger.Logger, stats statsRepository, balances balanceProvider) (*Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if stats == nil {
		return nil, fmt.Errorf("stats repository is required")
	}
	if balances == nil {
		return nil, fmt.Errorf("balance provider is required")
	}
	return &Service{logg: logg, stats: stats, rewards: balances, now: time.Now}, nil
}

// Overview builds the summary for one student.
func (s *Service) Overview(ctx context.Context, userID uuid.UUID) (*View, error) {
	now := s.now()

	open, completed, err := s.stats.TaskCounts(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count tasks")
	}

	streak, err := s.stats.BestStreak(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "best streak")
	}

	clips, err := s.stats.VerifiedClipCount(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "count verified clips")
	}

	workoutCount, workoutMinutes, err := s.stats.WorkoutStats(ctx, userID, now.AddDate(0, 0, -7))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "workout stats")
	}

	balance, err := s.rewards.Balance(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &View{
		OpenTasks:          open,
		CompletedTasks:     completed,
		BestHabitStreak:    streak,
		VerifiedClips:      clips,
		WorkoutsThisWeek:   workoutCount,
		WorkoutMinutesWeek: workoutMinutes,
		Rewards:            *balance,
		GeneratedAt:        now,
	}, nil
}

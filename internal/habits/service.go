package habits

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/config"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

type habitRepository interface {
	Create(ctx context.Context, habit *models.Habit) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Habit, error)
	List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Habit, error)
	SaveWithTx(tx *gorm.DB, habit *models.Habit) error
	CreateLogWithTx(tx *gorm.DB, log *models.HabitLog) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type pointsAwarder interface {
	AwardWithTx(tx *gorm.DB, userID uuid.UUID, eventType enums.RewardEventType, points int, reference *uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns the habit lifecycle and streak accounting.
type Service struct {
	logg    *logger.Logger
	db      txRunner
	habits  habitRepository
	rewards pointsAwarder
	cfg     config.RewardsConfig
	now     func() time.Time
}

// ServiceParams bundles the dependencies for NewService.
type ServiceParams struct {
	Logger  *logger.Logger
	DB      txRunner
	Habits  habitRepository
	Rewards pointsAwarder
	Config  config.RewardsConfig
}

// NewService validates dependencies and returns the habits service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db is required")
	}
	if params.Habits == nil {
		return nil, fmt.Errorf("habits repository is required")
	}

	return &Service{
		logg:    params.Logger,
		db:      params.DB,
		habits:  params.Habits,
		rewards: params.Rewards,
		cfg:     params.Config,
		now:     time.Now,
	}, nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*View, error) {
	frequency := enums.HabitFrequencyDaily
	if req.Frequency != "" {
		parsed, err := enums.ParseHabitFrequency(req.Frequency)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "frequency must be DAILY or WEEKLY")
		}
		frequency = parsed
	}

	habit := &models.Habit{
		ID:        uuid.New(),
		UserID:    userID,
		Name:      req.Name,
		Frequency: frequency,
	}
	if err := s.habits.Create(ctx, habit); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create habit")
	}

	view := viewFromModel(habit)
	return &view, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]View, error) {
	habits, err := s.habits.List(ctx, userID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list habits")
	}

	views := make([]View, 0, len(habits))
	for i := range habits {
		views = append(views, viewFromModel(&habits[i]))
	}
	return views, nil
}

// Log records one completion of a habit. At most one completion counts per
// frequency window; consecutive windows extend the streak, a gap resets it.
func (s *Service) Log(ctx context.Context, userID, id uuid.UUID) (*LogView, error) {
	habit, err := s.habits.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "habit not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load habit")
	}

	now := s.now()
	if habit.LastLoggedAt != nil && sameWindow(habit.Frequency, *habit.LastLoggedAt, now) {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "habit already logged for this period")
	}

	if habit.LastLoggedAt != nil && consecutiveWindow(habit.Frequency, *habit.LastLoggedAt, now) {
		habit.Streak++
	} else {
		habit.Streak = 1
	}
	habit.LastLoggedAt = &now

	entry := &models.HabitLog{
		ID:       uuid.New(),
		HabitID:  habit.ID,
		UserID:   userID,
		LoggedAt: now,
	}

	points := s.cfg.HabitPoints
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.habits.SaveWithTx(tx, habit); err != nil {
			return err
		}
		if err := s.habits.CreateLogWithTx(tx, entry); err != nil {
			return err
		}
		if s.rewards != nil && points > 0 {
			return s.rewards.AwardWithTx(tx, userID, enums.RewardEventHabitLogged, points, &entry.ID)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "log habit")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"habit_id": habit.ID.String(),
		"streak":   habit.Streak,
	}), "habit logged")

	return &LogView{
		Habit:         viewFromModel(habit),
		PointsAwarded: points,
	}, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.habits.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "habit not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete habit")
	}
	return nil
}

// sameWindow reports whether both timestamps fall into the same
// frequency bucket, using UTC calendar days and ISO weeks.
func sameWindow(freq enums.HabitFrequency, last, now time.Time) bool {
	switch freq {
	case enums.HabitFrequencyWeekly:
		lastYear, lastWeek := last.UTC().ISOWeek()
		nowYear, nowWeek := now.UTC().ISOWeek()
		return lastYear == nowYear && lastWeek == nowWeek
	default:
		ly, lm, ld := last.UTC().Date()
		ny, nm, nd := now.UTC().Date()
		return ly == ny && lm == nm && ld == nd
	}
}

// consecutiveWindow reports whether now lands in the bucket directly
// after the last completion, meaning the streak continues.
func consecutiveWindow(freq enums.HabitFrequency, last, now time.Time) bool {
	switch freq {
	case enums.HabitFrequencyWeekly:
		return sameWindow(freq, last.AddDate(0, 0, 7), now)
	default:
		return sameWindow(freq, last.AddDate(0, 0, 1), now)
	}
}

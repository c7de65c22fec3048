package habits

import (
	"context"
	"io"
	"testing"
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

type fakeHabitRepo struct {
	byID map[uuid.UUID]*models.Habit
	logs []models.HabitLog
}

func newFakeHabitRepo() *fakeHabitRepo {
	return &fakeHabitRepo{byID: make(map[uuid.UUID]*models.Habit)}
}

func (f *fakeHabitRepo) Create(ctx context.Context, habit *models.Habit) error {
	if habit.CreatedAt.IsZero() {
		habit.CreatedAt = time.Now()
	}
	copied := *habit
	f.byID[habit.ID] = &copied
	return nil
}

func (f *fakeHabitRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Habit, error) {
	habit, ok := f.byID[id]
	if !ok || habit.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *habit
	return &copied, nil
}

func (f *fakeHabitRepo) List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.Habit, error) {
	var out []models.Habit
	for _, habit := range f.byID {
		if habit.UserID == userID {
			out = append(out, *habit)
		}
	}
	return out, nil
}

func (f *fakeHabitRepo) SaveWithTx(tx *gorm.DB, habit *models.Habit) error {
	copied := *habit
	f.byID[habit.ID] = &copied
	return nil
}

func (f *fakeHabitRepo) CreateLogWithTx(tx *gorm.DB, log *models.HabitLog) error {
	f.logs = append(f.logs, *log)
	return nil
}

func (f *fakeHabitRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	habit, ok := f.byID[id]
	if !ok || habit.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

type recordedAward struct {
	eventType enums.RewardEventType
	points    int
}

type fakeAwarder struct {
	awards []recordedAward
}

func (f *fakeAwarder) AwardWithTx(tx *gorm.DB, userID uuid.UUID, eventType enums.RewardEventType, points int, reference *uuid.UUID) error {
	f.awards = append(f.awards, recordedAward{eventType, points})
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo *fakeHabitRepo, awarder *fakeAwarder) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Logger:  logger.New(logger.Options{ServiceName: "habits-test", Output: io.Discard}),
		DB:      passthroughTx{},
		Habits:  repo,
		Rewards: awarder,
		Config:  config.RewardsConfig{HabitPoints: 5},
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func createHabit(t *testing.T, svc *Service, userID uuid.UUID, frequency string) *View {
	t.Helper()
	view, err := svc.Create(context.Background(), userID, CreateRequest{Name: "Drink water", Frequency: frequency})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	return view
}

func TestLogStartsStreakAndAwardsPoints(t *testing.T) {
	t.Parallel()

	repo := newFakeHabitRepo()
	awarder := &fakeAwarder{}
	svc := newTestService(t, repo, awarder)
	userID := uuid.New()
	view := createHabit(t, svc, userID, "")

	logged, err := svc.Log(context.Background(), userID, view.ID)
	if err != nil {
		t.Fatalf("Log: %v", err)
	}
	if logged.Habit.Streak != 1 {
		t.Fatalf("expected streak 1, got %d", logged.Habit.Streak)
	}
	if logged.PointsAwarded != 5 {
		t.Fatalf("expected 5 points, got %d", logged.PointsAwarded)
	}
	if len(repo.logs) != 1 {
		t.Fatalf("expected 1 log row, got %d", len(repo.logs))
	}
	if len(awarder.awards) != 1 || awarder.awards[0].eventType != enums.RewardEventHabitLogged {
		t.Fatalf("unexpected awards %+v", awarder.awards)
	}
}

func TestLogRejectsSecondEntrySameDay(t *testing.T) {
	t.Parallel()

	repo := newFakeHabitRepo()
	svc := newTestService(t, repo, &fakeAwarder{})
	userID := uuid.New()
	view := createHabit(t, svc, userID, "DAILY")

	if _, err := svc.Log(context.Background(), userID, view.ID); err != nil {
		t.Fatalf("Log: %v", err)
	}
	_, err := svc.Log(context.Background(), userID, view.ID)
	if !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestLogExtendsStreakOnConsecutiveDays(t *testing.T) {
	t.Parallel()

	repo := newFakeHabitRepo()
	svc := newTestService(t, repo, &fakeAwarder{})
	userID := uuid.New()
	view := createHabit(t, svc, userID, "DAILY")

	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	for day := 0; day < 3; day++ {
		offset := day
		svc.now = func() time.Time { return base.AddDate(0, 0, offset) }
		logged, err := svc.Log(context.Background(), userID, view.ID)
		if err != nil {
			t.Fatalf("Log day %d: %v", day, err)
		}
		if logged.Habit.Streak != day+1 {
			t.Fatalf("day %d: expected streak %d, got %d", day, day+1, logged.Habit.Streak)
		}
	}
}

func TestLogResetsStreakAfterGap(t *testing.T) {
	t.Parallel()

	repo := newFakeHabitRepo()
	svc := newTestService(t, repo, &fakeAwarder{})
	userID := uuid.New()
	view := createHabit(t, svc, userID, "DAILY")

	base := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return base }
	if _, err := svc.Log(context.Background(), userID, view.ID); err != nil {
		t.Fatalf("Log: %v", err)
	}

	svc.now = func() time.Time { return base.AddDate(0, 0, 3) }
	logged, err := svc.Log(context.Background(), userID, view.ID)
	if err != nil {
		t.Fatalf("Log after gap: %v", err)
	}
	if logged.Habit.Streak != 1 {
		t.Fatalf("expected streak reset to 1, got %d", logged.Habit.Streak)
	}
}

func TestLogWeeklyUsesISOWeeks(t *testing.T) {
	t.Parallel()

	repo := newFakeHabitRepo()
	svc := newTestService(t, repo, &fakeAwarder{})
	userID := uuid.New()
	view := createHabit(t, svc, userID, "WEEKLY")

	monday := time.Date(2026, 8, 10, 9, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return monday }
	if _, err := svc.Log(context.Background(), userID, view.ID); err != nil {
		t.Fatalf("Log: %v", err)
	}

	// Friday of the same ISO week is a duplicate
	svc.now = func() time.Time { return monday.AddDate(0, 0, 4) }
	if _, err := svc.Log(context.Background(), userID, view.ID); !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict within same week, got %v", err)
	}

	// next week extends the streak
	svc.now = func() time.Time { return monday.AddDate(0, 0, 7) }
	logged, err := svc.Log(context.Background(), userID, view.ID)
	if err != nil {
		t.Fatalf("Log next week: %v", err)
	}
	if logged.Habit.Streak != 2 {
		t.Fatalf("expected streak 2, got %d", logged.Habit.Streak)
	}
}

func TestLogUnknownHabitReturnsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeHabitRepo(), &fakeAwarder{})
	_, err := svc.Log(context.Background(), uuid.New(), uuid.New())
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestCreateRejectsUnknownFrequency(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeHabitRepo(), &fakeAwarder{})
	_, err := svc.Create(context.Background(), uuid.New(), CreateRequest{Name: "X", Frequency: "MONTHLY"})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

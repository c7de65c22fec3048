package tasks

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

type fakeTaskRepo struct {
	byID map[uuid.UUID]*models.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{byID: make(map[uuid.UUID]*models.Task)}
}

func (f *fakeTaskRepo) Create(ctx context.Context, task *models.Task) error {
	if task.CreatedAt.IsZero() {
		task.CreatedAt = time.Now()
	}
	copied := *task
	f.byID[task.ID] = &copied
	return nil
}

func (f *fakeTaskRepo) FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Task, error) {
	task, ok := f.byID[id]
	if !ok || task.UserID != userID {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *task
	return &copied, nil
}

func (f *fakeTaskRepo) List(ctx context.Context, userID uuid.UUID, status *enums.TaskStatus, page pagination.Params) ([]models.Task, error) {
	var out []models.Task
	for _, task := range f.byID {
		if task.UserID != userID {
			continue
		}
		if status != nil && task.Status != *status {
			continue
		}
		out = append(out, *task)
	}
	return out, nil
}

func (f *fakeTaskRepo) Save(ctx context.Context, task *models.Task) error {
	copied := *task
	f.byID[task.ID] = &copied
	return nil
}

func (f *fakeTaskRepo) SaveWithTx(tx *gorm.DB, task *models.Task) error {
	return f.Save(context.Background(), task)
}

func (f *fakeTaskRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	task, ok := f.byID[id]
	if !ok || task.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

type recordedAward struct {
	userID    uuid.UUID
	eventType enums.RewardEventType
	points    int
	reference *uuid.UUID
}

type fakeAwarder struct {
	awards []recordedAward
	err    error
}

func (f *fakeAwarder) AwardWithTx(tx *gorm.DB, userID uuid.UUID, eventType enums.RewardEventType, points int, reference *uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.awards = append(f.awards, recordedAward{userID, eventType, points, reference})
	return nil
}

type passthroughTx struct{}

func (passthroughTx) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

func newTestService(t *testing.T, repo *fakeTaskRepo, awarder *fakeAwarder) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		Logger:  logger.New(logger.Options{ServiceName: "tasks-test", Output: io.Discard}),
		DB:      passthroughTx{},
		Tasks:   repo,
		Rewards: awarder,
		Config:  config.RewardsConfig{TaskPoints: 10},
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateDefaultsPoints(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	svc := newTestService(t, repo, &fakeAwarder{})

	view, err := svc.Create(context.Background(), uuid.New(), CreateRequest{Title: "Read chapter 4"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Points != 10 {
		t.Fatalf("expected default 10 points, got %d", view.Points)
	}
	if view.Status != enums.TaskStatusPending {
		t.Fatalf("expected pending status, got %s", view.Status)
	}
}

func TestCompleteAwardsPointsOnce(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	awarder := &fakeAwarder{}
	svc := newTestService(t, repo, awarder)
	userID := uuid.New()

	view, err := svc.Create(context.Background(), userID, CreateRequest{Title: "Morning run", Points: 15})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	done, err := svc.Complete(context.Background(), userID, view.ID, CompleteRequest{})
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if done.PointsAwarded != 15 {
		t.Fatalf("expected 15 points awarded, got %d", done.PointsAwarded)
	}
	if done.Task.Status != enums.TaskStatusCompleted || done.Task.CompletedAt == nil {
		t.Fatalf("task not marked completed: %+v", done.Task)
	}
	if len(awarder.awards) != 1 {
		t.Fatalf("expected 1 award, got %d", len(awarder.awards))
	}
	award := awarder.awards[0]
	if award.eventType != enums.RewardEventTaskCompleted || award.points != 15 || *award.reference != view.ID {
		t.Fatalf("unexpected award %+v", award)
	}

	// repeat completion must not double-credit
	_, err = svc.Complete(context.Background(), userID, view.ID, CompleteRequest{})
	if !pkgerrors.HasCode(err, pkgerrors.CodeConflict) {
		t.Fatalf("expected conflict on repeat completion, got %v", err)
	}
	if len(awarder.awards) != 1 {
		t.Fatal("repeat completion credited points again")
	}
}

func TestCompleteRequiresVerificationForVideoTasks(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	awarder := &fakeAwarder{}
	svc := newTestService(t, repo, awarder)
	userID := uuid.New()

	view, err := svc.Create(context.Background(), userID, CreateRequest{Title: "Pushups", RequiresVideo: true})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Complete(context.Background(), userID, view.ID, CompleteRequest{})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error without verification, got %v", err)
	}

	verificationID := uuid.New()
	done, err := svc.Complete(context.Background(), userID, view.ID, CompleteRequest{VerificationID: &verificationID})
	if err != nil {
		t.Fatalf("Complete with verification: %v", err)
	}
	if done.Task.Status != enums.TaskStatusCompleted {
		t.Fatal("task not completed")
	}
}

func TestCompleteHidesOtherUsersTasks(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	svc := newTestService(t, repo, &fakeAwarder{})
	owner := uuid.New()

	view, err := svc.Create(context.Background(), owner, CreateRequest{Title: "Private task"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	_, err = svc.Complete(context.Background(), uuid.New(), view.ID, CompleteRequest{})
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for foreign user, got %v", err)
	}
}

func TestUpdateRejectsCompletedStatusEdit(t *testing.T) {
	t.Parallel()

	repo := newFakeTaskRepo()
	svc := newTestService(t, repo, &fakeAwarder{})
	userID := uuid.New()

	view, err := svc.Create(context.Background(), userID, CreateRequest{Title: "Stretch"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	completed := "COMPLETED"
	_, err = svc.Update(context.Background(), userID, view.ID, UpdateRequest{Status: &completed})
	if !pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	inProgress := "IN_PROGRESS"
	updated, err := svc.Update(context.Background(), userID, view.ID, UpdateRequest{Status: &inProgress})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Status != enums.TaskStatusInProgress {
		t.Fatalf("expected in progress, got %s", updated.Status)
	}
}

func TestDeleteUnknownTaskReturnsNotFound(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeTaskRepo(), &fakeAwarder{})
	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	if !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

package tasks

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

type taskRepository interface {
	Create(ctx context.Context, task *models.Task) error
	FindByID(ctx context.Context, userID, id uuid.UUID) (*models.Task, error)
	List(ctx context.Context, userID uuid.UUID, status *enums.TaskStatus, page pagination.Params) ([]models.Task, error)
	Save(ctx context.Context, task *models.Task) error
	SaveWithTx(tx *gorm.DB, task *models.Task) error
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

type pointsAwarder interface {
	AwardWithTx(tx *gorm.DB, userID uuid.UUID, eventType enums.RewardEventType, points int, reference *uuid.UUID) error
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service owns the task lifecycle including the completion award.
type Service struct {
	logg    *logger.Logger
	db      txRunner
	tasks   taskRepository
	rewards pointsAwarder
	cfg     config.RewardsConfig
	now     func() time.Time
}

// ServiceParams bundles the dependencies for NewService.
type ServiceParams struct {
	Logger  *logger.Logger
	DB      txRunner
	Tasks   taskRepository
	Rewards pointsAwarder
	Config  config.RewardsConfig
}

// NewService validates dependencies and returns the tasks service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db is required")
	}
	if params.Tasks == nil {
		return nil, fmt.Errorf("tasks repository is required")
	}

	return &Service{
		logg:    params.Logger,
		db:      params.DB,
		tasks:   params.Tasks,
		rewards: params.Rewards,
		cfg:     params.Config,
		now:     time.Now,
	}, nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*View, error) {
	points := req.Points
	if points == 0 {
		points = s.cfg.TaskPoints
	}

	task := &models.Task{
		ID:            uuid.New(),
		UserID:        userID,
		Title:         req.Title,
		Description:   req.Description,
		Status:        enums.TaskStatusPending,
		Points:        points,
		RequiresVideo: req.RequiresVideo,
		DueDate:       req.DueDate,
	}
	if err := s.tasks.Create(ctx, task); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create task")
	}

	view := viewFromModel(task)
	return &view, nil
}

func (s *Service) Get(ctx context.Context, userID, id uuid.UUID) (*View, error) {
	task, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	view := viewFromModel(task)
	return &view, nil
}

func (s *Service) List(ctx context.Context, userID uuid.UUID, status *enums.TaskStatus, page pagination.Params) ([]View, error) {
	tasks, err := s.tasks.List(ctx, userID, status, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list tasks")
	}

	views := make([]View, 0, len(tasks))
	for i := range tasks {
		views = append(views, viewFromModel(&tasks[i]))
	}
	return views, nil
}

func (s *Service) Update(ctx context.Context, userID, id uuid.UUID, req UpdateRequest) (*View, error) {
	task, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if task.Status == enums.TaskStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "completed tasks cannot be edited")
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = req.Description
	}
	if req.Status != nil {
		status, err := enums.ParseTaskStatus(*req.Status)
		if err != nil || status == enums.TaskStatusCompleted {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "status must be PENDING or IN_PROGRESS")
		}
		task.Status = status
	}
	if req.DueDate != nil {
		task.DueDate = req.DueDate
	}

	if err := s.tasks.Save(ctx, task); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update task")
	}

	view := viewFromModel(task)
	return &view, nil
}

// Complete marks the task done and credits its points in one transaction.
func (s *Service) Complete(ctx context.Context, userID, id uuid.UUID, req CompleteRequest) (*CompleteView, error) {
	task, err := s.findOwned(ctx, userID, id)
	if err != nil {
		return nil, err
	}
	if task.Status == enums.TaskStatusCompleted {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "task is already completed")
	}
	if task.RequiresVideo && req.VerificationID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "this task requires a verified workout clip")
	}

	completedAt := s.now()
	task.Status = enums.TaskStatusCompleted
	task.CompletedAt = &completedAt

	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		if err := s.tasks.SaveWithTx(tx, task); err != nil {
			return err
		}
		if s.rewards != nil && task.Points > 0 {
			return s.rewards.AwardWithTx(tx, userID, enums.RewardEventTaskCompleted, task.Points, &task.ID)
		}
		return nil
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "complete task")
	}

	s.logg.Info(s.logg.WithFields(ctx, map[string]any{
		"task_id": task.ID.String(),
		"points":  task.Points,
	}), "task completed")

	return &CompleteView{
		Task:          viewFromModel(task),
		PointsAwarded: task.Points,
	}, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.tasks.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete task")
	}
	return nil
}

func (s *Service) findOwned(ctx context.Context, userID, id uuid.UUID) (*models.Task, error) {
	task, err := s.tasks.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "task not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load task")
	}
	return task, nil
}

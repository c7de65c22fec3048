package courses

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

// CreateRequest adds a course to the catalog.
type CreateRequest struct {
	Title   string `json:"title" validate:"required,min=1,max=200"`
	Subject string `json:"subject" validate:"required,min=1,max=100"`
	Lessons int    `json:"lessons" validate:"required,gt=0,lte=1000"`
}

// ProgressRequest sets how many lessons the student has finished.
type ProgressRequest struct {
	CompletedLessons int `json:"completedLessons" validate:"gte=0"`
}

// View is the transport shape for a course, with the caller's progress
// attached when available.
type View struct {
	ID               uuid.UUID `json:"id"`
	Title            string    `json:"title"`
	Subject          string    `json:"subject"`
	Lessons          int       `json:"lessons"`
	CompletedLessons int       `json:"completedLessons"`
	Completed        bool      `json:"completed"`
	CreatedAt        time.Time `json:"createdAt"`
}

func viewFromModel(c *models.Course, progress *models.CourseProgress) View {
	view := View{
		ID:        c.ID,
		Title:     c.Title,
		Subject:   c.Subject,
		Lessons:   c.Lessons,
		CreatedAt: c.CreatedAt,
	}
	if progress != nil {
		view.CompletedLessons = progress.CompletedLessons
		view.Completed = progress.CompletedLessons >= c.Lessons
	}
	return view
}

type courseRepository interface {
	Create(ctx context.Context, course *models.Course) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Course, error)
	List(ctx context.Context, page pagination.Params) ([]models.Course, error)
	UpsertProgress(ctx context.Context, progress *models.CourseProgress) error
	FindProgress(ctx context.Context, userID, courseID uuid.UUID) (*models.CourseProgress, error)
	ListProgress(ctx context.Context, userID uuid.UUID) ([]models.CourseProgress, error)
}

// Service serves the catalog and tracks per-student progress.
type Service struct {
	logg    *logger.Logger
	courses courseRepository
}

// NewService validates dependencies and returns the courses service.
func NewService(logg *logger.Logger, courses courseRepository) (*Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if courses == nil {
		return nil, fmt.Errorf("courses repository is required")
	}
	return &Service{logg: logg, courses: courses}, nil
}

func (s *Service) Create(ctx context.Context, req CreateRequest) (*View, error) {
	course := &models.Course{
		ID:      uuid.New(),
		Title:   req.Title,
		Subject: req.Subject,
		Lessons: req.Lessons,
	}
	if err := s.courses.Create(ctx, course); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create course")
	}

	view := viewFromModel(course, nil)
	return &view, nil
}

// List returns the catalog with the caller's progress merged in.
func (s *Service) List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]View, error) {
	catalog, err := s.courses.List(ctx, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list courses")
	}

	progress, err := s.courses.ListProgress(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list course progress")
	}
	byCourse := make(map[uuid.UUID]*models.CourseProgress, len(progress))
	for i := range progress {
		byCourse[progress[i].CourseID] = &progress[i]
	}

	views := make([]View, 0, len(catalog))
	for i := range catalog {
		views = append(views, viewFromModel(&catalog[i], byCourse[catalog[i].ID]))
	}
	return views, nil
}

func (s *Service) Get(ctx context.Context, userID, courseID uuid.UUID) (*View, error) {
	course, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}

	progress, err := s.courses.FindProgress(ctx, userID, courseID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load course progress")
	}

	view := viewFromModel(course, progress)
	return &view, nil
}

// SetProgress records the student's position, clamped to the lesson count.
func (s *Service) SetProgress(ctx context.Context, userID, courseID uuid.UUID, req ProgressRequest) (*View, error) {
	course, err := s.findCourse(ctx, courseID)
	if err != nil {
		return nil, err
	}
	if req.CompletedLessons < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "completedLessons cannot be negative")
	}

	completed := req.CompletedLessons
	if completed > course.Lessons {
		completed = course.Lessons
	}

	progress := &models.CourseProgress{
		ID:               uuid.New(),
		UserID:           userID,
		CourseID:         courseID,
		CompletedLessons: completed,
	}
	if err := s.courses.UpsertProgress(ctx, progress); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "save course progress")
	}

	view := viewFromModel(course, progress)
	return &view, nil
}

func (s *Service) findCourse(ctx context.Context, courseID uuid.UUID) (*models.Course, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "course not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load course")
	}
	return course, nil
}

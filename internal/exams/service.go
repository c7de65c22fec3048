package exams

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
)

const defaultSubject = "General"

// CreateRequest is the payload for scheduling an exam.
type CreateRequest struct {
	Title   string    `json:"title" validate:"required,min=1,max=200"`
	Subject string    `json:"subject" validate:"omitempty,max=100"`
	Date    time.Time `json:"date" validate:"required"`
	Notes   *string   `json:"notes" validate:"omitempty,max=2000"`
}

// View is the transport shape for an exam.
type View struct {
	ID        uuid.UUID `json:"id"`
	Title     string    `json:"title"`
	Subject   string    `json:"subject"`
	Date      time.Time `json:"date"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func viewFromModel(e *models.Exam) View {
	return View{
		ID:        e.ID,
		Title:     e.Title,
		Subject:   e.Subject,
		Date:      e.Date,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
	}
}

type examRepository interface {
	Create(ctx context.Context, exam *models.Exam) error
	List(ctx context.Context, userID uuid.UUID) ([]models.Exam, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service tracks upcoming exams.
type Service struct {
	logg  *logger.Logger
	exams examRepository
}

// NewService validates dependencies and returns the exams service.
func NewService(logg *logger.Logger, exams examRepository) (*Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if exams == nil {
		return nil, fmt.Errorf("exams repository is required")
	}
	return &Service{logg: logg, exams: exams}, nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*View, error) {
	subject := req.Subject
	if subject == "" {
		subject = defaultSubject
	}

	exam := &models.Exam{
		ID:      uuid.New(),
		UserID:  userID,
		Title:   req.Title,
		Subject: subject,
		Date:    req.Date,
		Notes:   req.Notes,
	}
	if err := s.exams.Create(ctx, exam); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create exam")
	}

	view := viewFromModel(exam)
	return &view, nil
}

// List returns the user's exams soonest first.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]View, error) {
	exams, err := s.exams.List(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list exams")
	}

	views := make([]View, 0, len(exams))
	for i := range exams {
		views = append(views, viewFromModel(&exams[i]))
	}
	return views, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.exams.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "exam not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete exam")
	}
	return nil
}

package exams

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
)

type fakeExamRepo struct {
	byID map[uuid.UUID]*models.Exam
}

func newFakeExamRepo() *fakeExamRepo {
	return &fakeExamRepo{byID: make(map[uuid.UUID]*models.Exam)}
}

func (f *fakeExamRepo) Create(ctx context.Context, exam *models.Exam) error {
	copied := *exam
	f.byID[exam.ID] = &copied
	return nil
}

func (f *fakeExamRepo) List(ctx context.Context, userID uuid.UUID) ([]models.Exam, error) {
	var out []models.Exam
	for _, exam := range f.byID {
		if exam.UserID == userID {
			out = append(out, *exam)
		}
	}
	return out, nil
}

func (f *fakeExamRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	exam, ok := f.byID[id]
	if !ok || exam.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

func newTestService(t *testing.T, repo *fakeExamRepo) *Service {
	t.Helper()
	svc, err := NewService(logger.New(logger.Options{ServiceName: "exams-test", Output: io.Discard}), repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateDefaultsSubject(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeExamRepo())

	view, err := svc.Create(context.Background(), uuid.New(), CreateRequest{
		Title: "Midterm",
		Date:  time.Now().Add(7 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Subject != defaultSubject {
		t.Fatalf("expected default subject, got %q", view.Subject)
	}
}

func TestCreateKeepsExplicitSubject(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeExamRepo())

	view, err := svc.Create(context.Background(), uuid.New(), CreateRequest{
		Title:   "Finals",
		Subject: "Chemistry",
		Date:    time.Now().Add(14 * 24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.Subject != "Chemistry" {
		t.Fatalf("expected Chemistry, got %q", view.Subject)
	}
}

func TestDeleteScopesToOwner(t *testing.T) {
	t.Parallel()

	repo := newFakeExamRepo()
	svc := newTestService(t, repo)
	owner := uuid.New()

	view, err := svc.Create(context.Background(), owner, CreateRequest{
		Title: "Quiz",
		Date:  time.Now().Add(24 * time.Hour),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if err := svc.Delete(context.Background(), uuid.New(), view.ID); !pkgerrors.HasCode(err, pkgerrors.CodeNotFound) {
		t.Fatalf("expected not found for stranger, got %v", err)
	}
	if err := svc.Delete(context.Background(), owner, view.ID); err != nil {
		t.Fatalf("Delete as owner: %v", err)
	}
}

package flashcards

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

type fakeCardRepo struct {
	byID map[uuid.UUID]*models.Flashcard
}

func newFakeCardRepo() *fakeCardRepo {
	return &fakeCardRepo{byID: make(map[uuid.UUID]*models.Flashcard)}
}

func (f *fakeCardRepo) Create(ctx context.Context, card *models.Flashcard) error {
	copied := *card
	f.byID[card.ID] = &copied
	return nil
}

func (f *fakeCardRepo) List(ctx context.Context, userID uuid.UUID) ([]models.Flashcard, error) {
	var out []models.Flashcard
	for _, card := range f.byID {
		if card.UserID == userID {
			out = append(out, *card)
		}
	}
	return out, nil
}

func (f *fakeCardRepo) Delete(ctx context.Context, userID, id uuid.UUID) error {
	card, ok := f.byID[id]
	if !ok || card.UserID != userID {
		return gorm.ErrRecordNotFound
	}
	delete(f.byID, id)
	return nil
}

func newTestService(t *testing.T, repo *fakeCardRepo) *Service {
	t.Helper()
	svc, err := NewService(logger.New(logger.Options{ServiceName: "flashcards-test", Output: io.Discard}), repo)
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestCreateSchedulesImmediateReview(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newFakeCardRepo())
	before := time.Now().UTC()

	view, err := svc.Create(context.Background(), uuid.New(), CreateRequest{
		Question: "What is the powerhouse of the cell?",
		Answer:   "The mitochondria",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.NextReview.Before(before) || view.NextReview.After(time.Now().UTC()) {
		t.Fatalf("expected next review now, got %v", view.NextReview)
	}
	if view.Question != "What is the powerhouse of the cell?" || view.Answer != "The mitochondria" {
		t.Fatalf("front/back not mapped to question/answer: %+v", view)
	}
}

func TestDeleteScopesToOwner(t *testing.T) {
	t.Parallel()

	repo := newFakeCardRepo()
	svc := newTestService(t, repo)
	owner := uuid.New()

	view, err := svc.Create(context.Background(), owner, CreateRequest{Question: "q", Answer: "a"})
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

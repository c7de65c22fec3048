package flashcards

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

// CreateRequest is the payload for adding a card. The client speaks
// question/answer; storage uses front/back.
type CreateRequest struct {
	Question string `json:"question" validate:"required,min=1,max=2000"`
	Answer   string `json:"answer" validate:"required,min=1,max=2000"`
}

// View is the transport shape for a flashcard.
type View struct {
	ID         uuid.UUID `json:"id"`
	Question   string    `json:"question"`
	Answer     string    `json:"answer"`
	NextReview time.Time `json:"nextReview"`
	CreatedAt  time.Time `json:"createdAt"`
}

func viewFromModel(c *models.Flashcard) View {
	return View{
		ID:         c.ID,
		Question:   c.Front,
		Answer:     c.Back,
		NextReview: c.NextReview,
		CreatedAt:  c.CreatedAt,
	}
}

type flashcardRepository interface {
	Create(ctx context.Context, card *models.Flashcard) error
	List(ctx context.Context, userID uuid.UUID) ([]models.Flashcard, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service manages the spaced-repetition card deck.
type Service struct {
	logg  *logger.Logger
	cards flashcardRepository
	now   func() time.Time
}

// NewService validates dependencies and returns the flashcards service.
func NewService(logg *logger.Logger, cards flashcardRepository) (*Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if cards == nil {
		return nil, fmt.Errorf("flashcards repository is required")
	}
	return &Service{logg: logg, cards: cards, now: time.Now}, nil
}

// Create adds a card due for review immediately.
func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*View, error) {
	card := &models.Flashcard{
		ID:         uuid.New(),
		UserID:     userID,
		Front:      req.Question,
		Back:       req.Answer,
		NextReview: s.now().UTC(),
	}
	if err := s.cards.Create(ctx, card); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create flashcard")
	}

	view := viewFromModel(card)
	return &view, nil
}

// List returns the user's cards in review order.
func (s *Service) List(ctx context.Context, userID uuid.UUID) ([]View, error) {
	cards, err := s.cards.List(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list flashcards")
	}

	views := make([]View, 0, len(cards))
	for i := range cards {
		views = append(views, viewFromModel(&cards[i]))
	}
	return views, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.cards.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "flashcard not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete flashcard")
	}
	return nil
}

package study

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

const (
	SenderStudent   = "student"
	SenderAssistant = "assistant"
)

// SendRequest is one chat message from the student.
type SendRequest struct {
	Content string `json:"content" validate:"required,min=1,max=4000"`
}

// MessageView is the transport shape for one transcript entry.
type MessageView struct {
	ID        uuid.UUID `json:"id"`
	Sender    string    `json:"sender"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// ExchangeView pairs the student's message with the assistant's reply.
type ExchangeView struct {
	Message MessageView `json:"message"`
	Reply   MessageView `json:"reply"`
}

func messageViewFromModel(m *models.StudyMessage) MessageView {
	return MessageView{
		ID:        m.ID,
		Sender:    m.Sender,
		Content:   m.Content,
		CreatedAt: m.CreatedAt,
	}
}

type messageRepository interface {
	Create(ctx context.Context, message *models.StudyMessage) error
	List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.StudyMessage, error)
}

// Service stores the chat transcript and answers with a rule-based
// study helper. The responder is an interface so a real model can be
// plugged in later without touching the transcript handling.
type Service struct {
	logg     *logger.Logger
	messages messageRepository
	respond  func(content string) string
}

// NewService validates dependencies and returns the study chat service.
func NewService(logg *logger.Logger, messages messageRepository) (*Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if messages == nil {
		return nil, fmt.Errorf("messages repository is required")
	}
	return &Service{logg: logg, messages: messages, respond: cannedReply}, nil
}

// Send stores the student message, produces a reply, and stores that too.
func (s *Service) Send(ctx context.Context, userID uuid.UUID, req SendRequest) (*ExchangeView, error) {
	content := strings.TrimSpace(req.Content)
	if content == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "message content is empty")
	}

	message := &models.StudyMessage{
		ID:      uuid.New(),
		UserID:  userID,
		Sender:  SenderStudent,
		Content: content,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store message")
	}

	reply := &models.StudyMessage{
		ID:      uuid.New(),
		UserID:  userID,
		Sender:  SenderAssistant,
		Content: s.respond(content),
	}
	if err := s.messages.Create(ctx, reply); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "store reply")
	}

	return &ExchangeView{
		Message: messageViewFromModel(message),
		Reply:   messageViewFromModel(reply),
	}, nil
}

// History returns the transcript oldest first.
func (s *Service) History(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]MessageView, error) {
	messages, err := s.messages.List(ctx, userID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list messages")
	}

	views := make([]MessageView, 0, len(messages))
	for i := range messages {
		views = append(views, messageViewFromModel(&messages[i]))
	}
	return views, nil
}

func cannedReply(content string) string {
	lower := strings.ToLower(content)
	switch {
	case strings.Contains(lower, "math") || strings.Contains(lower, "algebra"):
		return "Try breaking the problem into smaller steps and solving each one before combining them. Which step are you stuck on?"
	case strings.Contains(lower, "plan") || strings.Contains(lower, "schedule"):
		return "Short, regular sessions beat cramming. Block 25 minutes per subject, then take a 5 minute break."
	case strings.Contains(lower, "motivat"):
		return "Pick the smallest task on your list and finish it first. Momentum does the rest."
	default:
		return "Can you tell me more about what you are working on? The more specific the question, the better I can help."
	}
}

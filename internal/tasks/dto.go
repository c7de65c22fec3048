package tasks

import (
	"time"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
)

// CreateRequest is the payload for creating a task.
type CreateRequest struct {
	Title         string     `json:"title" validate:"required,min=1,max=200"`
	Description   *string    `json:"description" validate:"omitempty,max=2000"`
	Points        int        `json:"points" validate:"omitempty,gte=0,lte=1000"`
	RequiresVideo bool       `json:"requiresVideo"`
	DueDate       *time.Time `json:"dueDate"`
}

// UpdateRequest carries partial task edits. Nil fields are left unchanged.
type UpdateRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description *string    `json:"description" validate:"omitempty,max=2000"`
	Status      *string    `json:"status" validate:"omitempty,oneof=PENDING IN_PROGRESS"`
	DueDate     *time.Time `json:"dueDate"`
}

// CompleteRequest finishes a task. Tasks flagged requiresVideo must name
// the verification record proving the workout happened.
type CompleteRequest struct {
	VerificationID *uuid.UUID `json:"verificationId"`
}

// View is the transport shape for a task.
type View struct {
	ID            uuid.UUID        `json:"id"`
	Title         string           `json:"title"`
	Description   *string          `json:"description,omitempty"`
	Status        enums.TaskStatus `json:"status"`
	Points        int              `json:"points"`
	RequiresVideo bool             `json:"requiresVideo"`
	DueDate       *time.Time       `json:"dueDate,omitempty"`
	CompletedAt   *time.Time       `json:"completedAt,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
	UpdatedAt     time.Time        `json:"updatedAt"`
}

// CompleteView extends View with the points credited by completion.
type CompleteView struct {
	Task          View `json:"task"`
	PointsAwarded int  `json:"pointsAwarded"`
}

func viewFromModel(t *models.Task) View {
	return View{
		ID:            t.ID,
		Title:         t.Title,
		Description:   t.Description,
		Status:        t.Status,
		Points:        t.Points,
		RequiresVideo: t.RequiresVideo,
		DueDate:       t.DueDate,
		CompletedAt:   t.CompletedAt,
		CreatedAt:     t.CreatedAt,
		UpdatedAt:     t.UpdatedAt,
	}
}

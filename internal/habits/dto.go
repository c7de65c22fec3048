package habits

import (
	"time"

	"github.com/google/uuid"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
)

// CreateRequest is the payload for creating a habit.
type CreateRequest struct {
	Name      string `json:"name" validate:"required,min=1,max=120"`
	Frequency string `json:"frequency" validate:"omitempty,oneof=DAILY WEEKLY"`
}

// View is the transport shape for a habit.
type View struct {
	ID           uuid.UUID            `json:"id"`
	Name         string               `json:"name"`
	Frequency    enums.HabitFrequency `json:"frequency"`
	Streak       int                  `json:"streak"`
	LastLoggedAt *time.Time           `json:"lastLoggedAt,omitempty"`
	CreatedAt    time.Time            `json:"createdAt"`
}

// LogView reports the habit state after a completion was logged.
type LogView struct {
	Habit         View `json:"habit"`
	PointsAwarded int  `json:"pointsAwarded"`
}

func viewFromModel(h *models.Habit) View {
	return View{
		ID:           h.ID,
		Name:         h.Name,
		Frequency:    h.Frequency,
		Streak:       h.Streak,
		LastLoggedAt: h.LastLoggedAt,
		CreatedAt:    h.CreatedAt,
	}
}

package nutrition

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

// CreateRequest logs one meal or snack.
type CreateRequest struct {
	Name     string     `json:"name" validate:"required,min=1,max=200"`
	Calories int        `json:"calories" validate:"required,gt=0,lte=10000"`
	ProteinG int        `json:"proteinG" validate:"omitempty,gte=0,lte=1000"`
	CarbsG   int        `json:"carbsG" validate:"omitempty,gte=0,lte=1000"`
	FatG     int        `json:"fatG" validate:"omitempty,gte=0,lte=1000"`
	EatenAt  *time.Time `json:"eatenAt"`
}

// View is the transport shape for a food entry.
type View struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Calories int       `json:"calories"`
	ProteinG int       `json:"proteinG"`
	CarbsG   int       `json:"carbsG"`
	FatG     int       `json:"fatG"`
	EatenAt  time.Time `json:"eatenAt"`
}

// DayView is the diary for one calendar day with macro totals.
type DayView struct {
	Date          string `json:"date"`
	Entries       []View `json:"entries"`
	TotalCalories int    `json:"totalCalories"`
	TotalProteinG int    `json:"totalProteinG"`
	TotalCarbsG   int    `json:"totalCarbsG"`
	TotalFatG     int    `json:"totalFatG"`
}

func viewFromModel(e *models.FoodEntry) View {
	return View{
		ID:       e.ID,
		Name:     e.Name,
		Calories: e.Calories,
		ProteinG: e.ProteinG,
		CarbsG:   e.CarbsG,
		FatG:     e.FatG,
		EatenAt:  e.EatenAt,
	}
}

type foodRepository interface {
	Create(ctx context.Context, entry *models.FoodEntry) error
	ListBetween(ctx context.Context, userID uuid.UUID, from, to time.Time, page pagination.Params) ([]models.FoodEntry, error)
	Delete(ctx context.Context, userID, id uuid.UUID) error
}

// Service is the food diary.
type Service struct {
	logg *logger.Logger
	food foodRepository
	now  func() time.Time
}

// NewService validates dependencies and returns the nutrition service.
func NewService(logg *logger.Logger, food foodRepository) (*Service, error) {
	if logg == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if food == nil {
		return nil, fmt.Errorf("food repository is required")
	}
	return &Service{logg: logg, food: food, now: time.Now}, nil
}

func (s *Service) Create(ctx context.Context, userID uuid.UUID, req CreateRequest) (*View, error) {
	eatenAt := s.now()
	if req.EatenAt != nil {
		eatenAt = *req.EatenAt
	}

	entry := &models.FoodEntry{
		ID:       uuid.New(),
		UserID:   userID,
		Name:     req.Name,
		Calories: req.Calories,
		ProteinG: req.ProteinG,
		CarbsG:   req.CarbsG,
		FatG:     req.FatG,
		EatenAt:  eatenAt,
	}
	if err := s.food.Create(ctx, entry); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create food entry")
	}

	view := viewFromModel(entry)
	return &view, nil
}

// Day returns the diary for the UTC calendar day containing the given time.
func (s *Service) Day(ctx context.Context, userID uuid.UUID, day time.Time) (*DayView, error) {
	year, month, dom := day.UTC().Date()
	from := time.Date(year, month, dom, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, 1)

	entries, err := s.food.ListBetween(ctx, userID, from, to, pagination.Params{Limit: pagination.MaxLimit})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list food entries")
	}

	view := &DayView{
		Date:    from.Format("2006-01-02"),
		Entries: make([]View, 0, len(entries)),
	}
	for i := range entries {
		view.Entries = append(view.Entries, viewFromModel(&entries[i]))
		view.TotalCalories += entries[i].Calories
		view.TotalProteinG += entries[i].ProteinG
		view.TotalCarbsG += entries[i].CarbsG
		view.TotalFatG += entries[i].FatG
	}
	return view, nil
}

func (s *Service) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.food.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "food entry not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete food entry")
	}
	return nil
}

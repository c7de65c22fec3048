package rewards

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/config"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
	pkgerrors "github.com/cognitia-web/Cognitia-Scratch/pkg/errors"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/logger"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/pagination"
)

type ledgerRepository interface {
	CreateWithTx(tx *gorm.DB, event *models.RewardEvent) error
	SumPoints(ctx context.Context, userID uuid.UUID) (int, error)
	SumPointsWithTx(tx *gorm.DB, userID uuid.UUID) (int, error)
	List(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]models.RewardEvent, error)
}

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service maintains the points ledger and performs conversions.
type Service struct {
	logg   *logger.Logger
	db     txRunner
	ledger ledgerRepository
	cfg    config.RewardsConfig
}

// ServiceParams bundles the dependencies for NewService.
type ServiceParams struct {
	Logger *logger.Logger
	DB     txRunner
	Ledger ledgerRepository
	Config config.RewardsConfig
}

// NewService validates dependencies and returns the rewards service.
func NewService(params ServiceParams) (*Service, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	if params.DB == nil {
		return nil, fmt.Errorf("db is required")
	}
	if params.Ledger == nil {
		return nil, fmt.Errorf("ledger repository is required")
	}
	if params.Config.PointsPerUnit <= 0 {
		return nil, fmt.Errorf("points per unit must be positive")
	}

	return &Service{
		logg:   params.Logger,
		db:     params.DB,
		ledger: params.Ledger,
		cfg:    params.Config,
	}, nil
}

// AwardWithTx appends a positive ledger entry inside the caller's transaction.
// Other verticals call this when a task, habit, or verified clip earns points.
func (s *Service) AwardWithTx(tx *gorm.DB, userID uuid.UUID, eventType enums.RewardEventType, points int, reference *uuid.UUID) error {
	if points <= 0 {
		return fmt.Errorf("award points must be positive, got %d", points)
	}
	if !eventType.IsValid() {
		return fmt.Errorf("invalid reward event type %q", eventType)
	}

	return s.ledger.CreateWithTx(tx, &models.RewardEvent{
		ID:        uuid.New(),
		UserID:    userID,
		Type:      eventType,
		Points:    points,
		Reference: reference,
	})
}

// Balance returns the current points total with its cash equivalent.
func (s *Service) Balance(ctx context.Context, userID uuid.UUID) (*BalanceView, error) {
	points, err := s.ledger.SumPoints(ctx, userID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "sum points")
	}

	return &BalanceView{
		Points:         points,
		CashEquivalent: s.pointsToAmount(points),
		Currency:       s.cfg.Currency,
	}, nil
}

// History returns the newest ledger entries first.
func (s *Service) History(ctx context.Context, userID uuid.UUID, page pagination.Params) ([]EventView, error) {
	events, err := s.ledger.List(ctx, userID, page)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list reward events")
	}

	views := make([]EventView, 0, len(events))
	for _, event := range events {
		views = append(views, eventViewFromModel(event))
	}
	return views, nil
}

// Convert cashes out points as a negative ledger entry carrying the
// decimal amount. The balance check runs inside the same transaction as
// the insert so concurrent conversions cannot overdraw.
func (s *Service) Convert(ctx context.Context, userID uuid.UUID, points int) (*ConversionView, error) {
	if points <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "points to convert must be positive")
	}
	if points%s.cfg.PointsPerUnit != 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation,
			fmt.Sprintf("points must be a multiple of %d", s.cfg.PointsPerUnit))
	}

	amount := s.pointsToAmount(points)
	currency := s.cfg.Currency
	event := &models.RewardEvent{
		ID:       uuid.New(),
		UserID:   userID,
		Type:     enums.RewardEventConversion,
		Points:   -points,
		Amount:   decimal.NewNullDecimal(amount),
		Currency: &currency,
	}

	var remaining int
	err := s.db.WithTx(ctx, func(tx *gorm.DB) error {
		balance, err := s.ledger.SumPointsWithTx(tx, userID)
		if err != nil {
			return err
		}
		if balance < points {
			return pkgerrors.New(pkgerrors.CodeValidation,
				fmt.Sprintf("insufficient balance: have %d points, need %d", balance, points))
		}
		remaining = balance - points
		return s.ledger.CreateWithTx(tx, event)
	})
	if err != nil {
		if pkgerrors.HasCode(err, pkgerrors.CodeValidation) {
			return nil, err
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "convert points")
	}

	logCtx := s.logg.WithUserID(ctx, userID.String())
	s.logg.Info(s.logg.WithFields(logCtx, map[string]any{
		"points": points,
		"amount": amount.String(),
	}), "points converted")

	return &ConversionView{
		EventID:         event.ID,
		PointsConverted: points,
		Amount:          amount,
		Currency:        currency,
		RemainingPoints: remaining,
	}, nil
}

func (s *Service) pointsToAmount(points int) decimal.Decimal {
	return decimal.NewFromInt(int64(points)).
		DivRound(decimal.NewFromInt(int64(s.cfg.PointsPerUnit)), 2)
}

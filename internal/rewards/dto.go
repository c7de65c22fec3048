package rewards

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/db/models"
	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
)

// BalanceView reports the current points total and its cash equivalent.
type BalanceView struct {
	Points         int             `json:"points"`
	CashEquivalent decimal.Decimal `json:"cashEquivalent"`
	Currency       string          `json:"currency"`
}

// ConvertRequest asks to cash out a number of points.
type ConvertRequest struct {
	Points int `json:"points" validate:"required,gt=0"`
}

// ConversionView is the outcome of a points conversion.
type ConversionView struct {
	EventID         uuid.UUID       `json:"eventId"`
	PointsConverted int             `json:"pointsConverted"`
	Amount          decimal.Decimal `json:"amount"`
	Currency        string          `json:"currency"`
	RemainingPoints int             `json:"remainingPoints"`
}

// EventView is one ledger entry in history responses.
type EventView struct {
	ID        uuid.UUID             `json:"id"`
	Type      enums.RewardEventType `json:"type"`
	Points    int                   `json:"points"`
	Amount    *decimal.Decimal      `json:"amount,omitempty"`
	Currency  *string               `json:"currency,omitempty"`
	Reference *uuid.UUID            `json:"reference,omitempty"`
	CreatedAt time.Time             `json:"createdAt"`
}

func eventViewFromModel(e models.RewardEvent) EventView {
	view := EventView{
		ID:        e.ID,
		Type:      e.Type,
		Points:    e.Points,
		Currency:  e.Currency,
		Reference: e.Reference,
		CreatedAt: e.CreatedAt,
	}
	if e.Amount.Valid {
		amount := e.Amount.Decimal
		view.Amount = &amount
	}
	return view
}

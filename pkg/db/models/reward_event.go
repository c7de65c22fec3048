package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/cognitia-web/Cognitia-Scratch/pkg/enums"
)

// RewardEvent is one entry in the append-only points ledger. Points are
// positive for awards and negative for conversions; Amount/Currency are set
// only on conversion entries.
type RewardEvent struct {
	ID        uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	UserID    uuid.UUID             `gorm:"column:user_id;type:uuid;not null;index"`
	Type      enums.RewardEventType `gorm:"column:type;not null"`
	Points    int                   `gorm:"column:points;not null"`
	Amount    decimal.NullDecimal   `gorm:"column:amount;type:numeric(12,2)"`
	Currency  *string               `gorm:"column:currency"`
	Reference *uuid.UUID            `gorm:"column:reference;type:uuid"`
	CreatedAt time.Time             `gorm:"column:created_at;autoCreateTime"`
}

package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Bill is one direction of a shared expense: Ower owes Owee Amount.
// A bill stays outstanding until PaidAt is set; settled bills are kept so
// that payment latency can be scored later.
type Bill struct {
	ID        uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	Owee      uuid.UUID       `gorm:"type:uuid;index:idx_bills_pair" json:"owee"`
	Ower      uuid.UUID       `gorm:"type:uuid;index:idx_bills_pair" json:"ower"`
	Amount    decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
	PaidAt    *time.Time      `json:"paid_at,omitempty"`
}

func (b *Bill) BeforeCreate(tx *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}

// Outstanding reports whether the bill has not been settled yet.
func (b *Bill) Outstanding() bool {
	return b.PaidAt == nil
}

// LedgerView is the per-counterparty balance summary for one user, keyed by
// counterparty username. IOwe holds what the user owes others; FriendsOwe
// holds what others owe the user.
type LedgerView struct {
	IOwe            map[string]decimal.Decimal `json:"i_owe"`
	FriendsOwe      map[string]decimal.Decimal `json:"friends_owe"`
	IOweTotal       decimal.Decimal            `json:"i_owe_total"`
	FriendsOweTotal decimal.Decimal            `json:"friends_owe_total"`
}

// Request structs
type SplitBillRequest struct {
	Splits []SplitInput `json:"splits" binding:"required"`
}

type SplitInput struct {
	FriendID string          `json:"friend_id" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
}

type SettleDebtRequest struct {
	OwerID string `json:"ower_id" binding:"required"`
}

// SettleDebtResponse confirms how much was cleared in one settlement.
type SettleDebtResponse struct {
	Ower         uuid.UUID       `json:"ower"`
	SettledCount int             `json:"settled_count"`
	SettledTotal decimal.Decimal `json:"settled_total"`
	Badge        Badge           `json:"badge"`
}

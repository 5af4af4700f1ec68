package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Parlay is a combined bet over two or more legs. The combined decimal
// odds are always the product of the legs' decimal odds; status is set
// by the caller, never derived from leg statuses.
type Parlay struct {
	bun.BaseModel `bun:"table:parlays,alias:pl"`

	ID              int       `bun:"id,pk,autoincrement" json:"id"`
	UserID          int       `bun:"user_id,notnull" json:"userID"`
	CombinedOdds    string    `bun:"combined_odds,notnull" json:"combinedOdds"`
	CombinedDecimal float64   `bun:"combined_decimal,notnull" json:"combinedDecimal"`
	Stake           int       `bun:"stake,notnull" json:"stake"`
	SuggestedStake  int       `bun:"suggested_stake,notnull" json:"suggestedStake"`
	PotentialPayout int       `bun:"potential_payout,notnull" json:"potentialPayout"`
	Status          string    `bun:"status,notnull,default:'pending'" json:"status"`
	CreatedAt       time.Time `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`

	Legs []ParlayLeg `bun:"rel:has-many,join:id=parlay_id" json:"legs,omitempty"`
	User *User       `bun:"rel:belongs-to,join:user_id=id" json:"-"`
}

// ParlayLeg is a single selection inside a parlay. Legs are owned
// exclusively by their parlay and never shared.
type ParlayLeg struct {
	bun.BaseModel `bun:"table:parlay_legs,alias:pll"`

	ID          int     `bun:"id,pk,autoincrement" json:"id"`
	ParlayID    int     `bun:"parlay_id,notnull" json:"parlayID"`
	Sport       string  `bun:"sport,notnull" json:"sport"`
	Event       string  `bun:"event,notnull" json:"event"`
	Prediction  string  `bun:"prediction,notnull" json:"prediction"`
	Odds        string  `bun:"odds,notnull" json:"odds"`
	DecimalOdds float64 `bun:"decimal_odds,notnull" json:"decimalOdds"`
	Confidence  int     `bun:"confidence,notnull" json:"confidence"`
	Status      string  `bun:"status,notnull,default:'pending'" json:"status"`

	Parlay *Parlay `bun:"rel:belongs-to,join:parlay_id=id" json:"-"`
}

package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Pick statuses. A pick starts pending and moves exactly once to
// won, lost or void.
const (
	StatusPending = "pending"
	StatusWon     = "won"
	StatusLost    = "lost"
	StatusVoid    = "void"
)

// ValidStatusTransition reports whether a pick or parlay may move
// from one status to another. Only pending records can transition.
func ValidStatusTransition(from, to string) bool {
	if from != StatusPending {
		return false
	}
	switch to {
	case StatusWon, StatusLost, StatusVoid:
		return true
	}
	return false
}

// Pick is a single betting recommendation tracked against the bankroll.
type Pick struct {
	bun.BaseModel `bun:"table:picks,alias:p"`

	ID          int        `bun:"id,pk,autoincrement" json:"id"`
	UserID      int        `bun:"user_id,notnull" json:"userID"`
	Sport       string     `bun:"sport,notnull" json:"sport"`
	Event       string     `bun:"event,notnull" json:"event"`
	Prediction  string     `bun:"prediction,notnull" json:"prediction"`
	Odds        string     `bun:"odds,notnull" json:"odds"`
	Confidence  int        `bun:"confidence,notnull" json:"confidence"`
	Status      string     `bun:"status,notnull,default:'pending'" json:"status"`
	Stake       *int       `bun:"stake" json:"stake,omitempty"`
	ScheduledAt *time.Time `bun:"scheduled_at" json:"scheduledAt,omitempty"`
	Reasoning   *string    `bun:"reasoning" json:"reasoning,omitempty"`
	CreatedAt   time.Time  `bun:"created_at,notnull,default:current_timestamp" json:"createdAt"`
	SettledAt   *time.Time `bun:"settled_at" json:"settledAt,omitempty"`

	User *User `bun:"rel:belongs-to,join:user_id=id" json:"-"`
}

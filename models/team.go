package models

import (
	"time"

	"github.com/uptrace/bun"
)

// Team is a canonical team identity. Many free-text surface forms map
// to one team via the matching package's alias tables.
type Team struct {
	bun.BaseModel `bun:"table:teams,alias:t"`

	ID     int    `bun:"id,pk,autoincrement" json:"id"`
	Name   string `bun:"name,notnull,unique" json:"name"`
	Code   string `bun:"code,notnull" json:"code"`
	League string `bun:"league,notnull" json:"league"`
}

// TeamStatus tracks a team's current consecutive-win streak, refreshed
// by the scheduler from recent results.
type TeamStatus struct {
	bun.BaseModel `bun:"table:team_statuses,alias:ts"`

	ID         int       `bun:"id,pk,autoincrement" json:"id"`
	TeamID     int       `bun:"team_id,notnull,unique" json:"teamID"`
	Streak     int       `bun:"streak,notnull,default:0" json:"streak"`
	LastResult string    `bun:"last_result" json:"lastResult,omitempty"`
	UpdatedAt  time.Time `bun:"updated_at,notnull,default:current_timestamp" json:"updatedAt"`

	Team *Team `bun:"rel:belongs-to,join:team_id=id" json:"-"`
}

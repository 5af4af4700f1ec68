package models

import "github.com/uptrace/bun"

// Player is a canonical player identity. CanonicalKey is the normalized
// form the matching package keys its alias tables on.
type Player struct {
	bun.BaseModel `bun:"table:players,alias:py"`

	ID           int    `bun:"id,pk,autoincrement" json:"id"`
	Name         string `bun:"name,notnull" json:"name"`
	CanonicalKey string `bun:"canonical_key,notnull,unique" json:"canonicalKey"`
	Tour         string `bun:"tour,notnull" json:"tour"`
}

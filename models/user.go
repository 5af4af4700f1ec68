package models

import "github.com/uptrace/bun"

// User is an API user with bcrypt-hashed password and a virtual bankroll.
type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	ID       int     `bun:"id,pk,autoincrement" json:"id"`
	Username string  `bun:"username,notnull,unique" json:"username"`
	Password string  `bun:"password,notnull" json:"-"`
	Bankroll float64 `bun:"bankroll,notnull,default:0" json:"bankroll"`
}

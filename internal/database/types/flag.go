package types

import (
	"time"
)

// UserFlag is the per-(guild, user) violation counter. Created on the first
// flag, incremented atomically per flag event, and removed entirely when a
// moderator clears the user. FlagCount is never decremented otherwise.
type UserFlag struct {
	GuildID       uint64    `bun:",pk"       json:"guildId"`
	UserID        uint64    `bun:",pk"       json:"userId"`
	FlagCount     int       `bun:",notnull"  json:"flagCount"`
	LastFlaggedAt time.Time `bun:",notnull"  json:"lastFlaggedAt"`
	Notes         string    `bun:",nullzero" json:"notes"`
}

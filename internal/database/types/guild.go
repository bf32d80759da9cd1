package types

import (
	"time"
)

// GuildConfig holds per-guild moderation settings. One row per guild,
// created when the bot joins and mutated only by admin operations.
type GuildConfig struct {
	GuildID        uint64    `bun:",pk"                json:"guildId"`
	Name           string    `bun:",notnull"           json:"name"`
	ModChannelID   uint64    `bun:",nullzero"          json:"modChannelId"`
	AutoModEnabled bool      `bun:",notnull"           json:"autoModEnabled"`
	FlagThreshold  int       `bun:",notnull,default:3" json:"flagThreshold"`
	CreatedAt      time.Time `bun:",notnull"           json:"createdAt"`
	UpdatedAt      time.Time `bun:",notnull"           json:"updatedAt"`
}

// MonitoredChannel marks a channel whose messages are run through the
// moderation engine. Messages in unlisted channels are ignored.
type MonitoredChannel struct {
	GuildID   uint64    `bun:",pk"      json:"guildId"`
	ChannelID uint64    `bun:",pk"      json:"channelId"`
	Enabled   bool      `bun:",notnull" json:"enabled"`
	CreatedAt time.Time `bun:",notnull" json:"createdAt"`
}

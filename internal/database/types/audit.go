package types

import (
	"time"

	"github.com/castellan/castellan/internal/database/types/enum"
)

// AuditEntry records a single moderation decision, automatic or manual.
// Entries are append-only; they are never mutated and only disappear when
// their guild is removed.
type AuditEntry struct {
	ID              int64            `bun:",pk,autoincrement" json:"id"`
	GuildID         uint64           `bun:",notnull"          json:"guildId"`
	ChannelID       uint64           `bun:",notnull"          json:"channelId"`
	UserID          uint64           `bun:",notnull"          json:"userId"`
	ModeratorID     uint64           `bun:",nullzero"         json:"moderatorId"`
	Action          enum.AuditAction `bun:",notnull"          json:"action"`
	Reason          string           `bun:",nullzero"         json:"reason"`
	MessageSnapshot string           `bun:",nullzero"         json:"messageSnapshot"`
	MessageID       uint64           `bun:",nullzero"         json:"messageId"`
	CreatedAt       time.Time        `bun:",notnull"          json:"createdAt"`
}

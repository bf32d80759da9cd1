package types

import (
	"time"

	"github.com/castellan/castellan/internal/database/types/enum"
)

// Rule is a configured (pattern, action) pair evaluated against message
// content. Rules are immutable once matched against; the ascending ID is
// the stable creation-order sort key used for first-match-wins evaluation.
type Rule struct {
	ID        int64           `bun:",pk,autoincrement" json:"id"`
	GuildID   uint64          `bun:",notnull"          json:"guildId"`
	Type      enum.RuleType   `bun:"rule_type,notnull" json:"type"`
	Pattern   string          `bun:",notnull"          json:"pattern"`
	Action    enum.RuleAction `bun:",notnull"          json:"action"`
	Enabled   bool            `bun:",notnull"          json:"enabled"`
	CreatedAt time.Time       `bun:",notnull"          json:"createdAt"`
}

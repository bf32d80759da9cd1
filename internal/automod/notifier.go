package automod

import (
	"context"
	"time"

	"github.com/castellan/castellan/internal/database/types/enum"
)

// ModAlert describes a moderation action taken on a message, for delivery
// to a guild's moderator channel.
type ModAlert struct {
	GuildID   uint64
	ChannelID uint64
	UserID    uint64
	MessageID uint64
	Action    enum.RuleAction
	RuleType  enum.RuleType
	Pattern   string
	Excerpt   string
}

// Escalation describes a user whose flag count reached the guild threshold.
type Escalation struct {
	GuildID       uint64
	UserID        uint64
	FlagCount     int
	Threshold     int
	LastFlaggedAt time.Time
}

// Notifier delivers the outward-facing side effects of moderation: message
// removal, author warnings and moderator channel notifications. Callers
// treat every failure as non-fatal.
type Notifier interface {
	DeleteMessage(ctx context.Context, channelID, messageID uint64) error
	SendDirectMessage(ctx context.Context, userID uint64, content string) error
	SendModAlert(ctx context.Context, modChannelID uint64, alert *ModAlert) error
	SendEscalation(ctx context.Context, modChannelID uint64, escalation *Escalation) error
}

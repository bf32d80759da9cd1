package automod

import (
	"context"
	"fmt"
	"strings"

	"github.com/castellan/castellan/internal/database/types"
	"github.com/castellan/castellan/internal/database/types/enum"
	"github.com/castellan/castellan/pkg/utils"
	"go.uber.org/zap"
)

// excerptLimit caps message content carried in alerts and audit snapshots.
const excerptLimit = 1024

// FlagStore increments per-user violation counters.
type FlagStore interface {
	IncrementFlag(ctx context.Context, guildID, userID uint64, notes string) (*types.UserFlag, error)
}

// AuditStore appends moderation decisions to the audit log.
type AuditStore interface {
	Record(ctx context.Context, entry *types.AuditEntry) error
}

// Dispatcher executes the action of a matched rule: message removal, flag
// accumulation, author warnings, audit entries and moderator alerts.
type Dispatcher struct {
	flags    FlagStore
	audit    AuditStore
	notifier Notifier
	logger   *zap.Logger
}

// NewDispatcher creates a new dispatcher instance.
func NewDispatcher(flags FlagStore, audit AuditStore, notifier Notifier, logger *zap.Logger) *Dispatcher {
	return &Dispatcher{
		flags:    flags,
		audit:    audit,
		notifier: notifier,
		logger:   logger.Named("dispatcher"),
	}
}

// Dispatch carries out a rule's action against a message. It never returns
// an error: each collaborator failure is logged and the remaining steps
// continue, so one broken side effect cannot block moderation.
func (d *Dispatcher) Dispatch(ctx context.Context, msg *Message, rule *types.Rule, cfg *types.GuildConfig) {
	logger := d.logger.With(
		zap.Uint64("guildID", msg.GuildID),
		zap.Uint64("userID", msg.UserID),
		zap.Int64("ruleID", rule.ID),
		zap.String("action", rule.Action.String()))

	switch rule.Action {
	case enum.RuleActionDelete:
		d.deleteMessage(ctx, msg, rule, logger)
	case enum.RuleActionFlag:
		d.flagUser(ctx, msg, rule, cfg, logger)
	case enum.RuleActionDeleteAndFlag:
		d.deleteMessage(ctx, msg, rule, logger)
		d.flagUser(ctx, msg, rule, cfg, logger)
	case enum.RuleActionWarn:
		d.warnUser(ctx, msg, rule, logger)
	default:
		// Legacy or corrupted action values are skipped without side effects.
		logger.Warn("Rule has unknown action, skipping")
		return
	}

	if cfg.ModChannelID == 0 {
		return
	}

	alert := &ModAlert{
		GuildID:   msg.GuildID,
		ChannelID: msg.ChannelID,
		UserID:    msg.UserID,
		MessageID: msg.MessageID,
		Action:    rule.Action,
		RuleType:  rule.Type,
		Pattern:   rule.Pattern,
		Excerpt:   utils.Truncate(msg.Content, excerptLimit),
	}
	if err := d.notifier.SendModAlert(ctx, cfg.ModChannelID, alert); err != nil {
		logger.Warn("Failed to send moderation alert", zap.Error(err))
	}
}

// deleteMessage removes the offending message and audits the removal with a
// content snapshot, since the message itself is gone afterwards.
func (d *Dispatcher) deleteMessage(ctx context.Context, msg *Message, rule *types.Rule, logger *zap.Logger) {
	if err := d.notifier.DeleteMessage(ctx, msg.ChannelID, msg.MessageID); err != nil {
		logger.Warn("Failed to delete message", zap.Error(err))
	}

	entry := &types.AuditEntry{
		GuildID:         msg.GuildID,
		ChannelID:       msg.ChannelID,
		UserID:          msg.UserID,
		Action:          enum.AuditActionDelete,
		Reason:          matchReason(rule),
		MessageSnapshot: utils.Truncate(msg.Content, excerptLimit),
		MessageID:       msg.MessageID,
	}
	if err := d.audit.Record(ctx, entry); err != nil {
		logger.Error("Failed to record delete audit entry", zap.Error(err))
	}
}

// flagUser bumps the author's violation counter and fires an escalation
// when this increment reaches the guild threshold. Matches that do not
// increment never escalate.
func (d *Dispatcher) flagUser(
	ctx context.Context, msg *Message, rule *types.Rule, cfg *types.GuildConfig, logger *zap.Logger,
) {
	note := fmt.Sprintf("auto-flagged: %s - %s", strings.ToLower(rule.Type.String()), rule.Pattern)

	flag, err := d.flags.IncrementFlag(ctx, msg.GuildID, msg.UserID, note)
	if err != nil {
		logger.Error("Failed to increment user flag", zap.Error(err))
		return
	}

	entry := &types.AuditEntry{
		GuildID:         msg.GuildID,
		ChannelID:       msg.ChannelID,
		UserID:          msg.UserID,
		Action:          enum.AuditActionFlag,
		Reason:          matchReason(rule),
		MessageSnapshot: utils.Truncate(msg.Content, excerptLimit),
		MessageID:       msg.MessageID,
	}
	if err := d.audit.Record(ctx, entry); err != nil {
		logger.Error("Failed to record flag audit entry", zap.Error(err))
	}

	if flag.FlagCount < cfg.FlagThreshold {
		return
	}

	if cfg.ModChannelID == 0 {
		logger.Warn("User reached flag threshold but guild has no moderator channel",
			zap.Int("flagCount", flag.FlagCount))
		return
	}

	escalation := &Escalation{
		GuildID:       msg.GuildID,
		UserID:        msg.UserID,
		FlagCount:     flag.FlagCount,
		Threshold:     cfg.FlagThreshold,
		LastFlaggedAt: flag.LastFlaggedAt,
	}
	if err := d.notifier.SendEscalation(ctx, cfg.ModChannelID, escalation); err != nil {
		logger.Warn("Failed to send escalation", zap.Error(err))
	}
}

// warnUser sends the author a best-effort direct message. The warning is
// audited whether or not the DM could be delivered.
func (d *Dispatcher) warnUser(ctx context.Context, msg *Message, rule *types.Rule, logger *zap.Logger) {
	warning := fmt.Sprintf("Your message was flagged by moderation: %s", matchReason(rule))
	if err := d.notifier.SendDirectMessage(ctx, msg.UserID, warning); err != nil {
		logger.Warn("Failed to send warning DM", zap.Error(err))
	}

	entry := &types.AuditEntry{
		GuildID:         msg.GuildID,
		ChannelID:       msg.ChannelID,
		UserID:          msg.UserID,
		Action:          enum.AuditActionWarn,
		Reason:          matchReason(rule),
		MessageSnapshot: utils.Truncate(msg.Content, excerptLimit),
		MessageID:       msg.MessageID,
	}
	if err := d.audit.Record(ctx, entry); err != nil {
		logger.Error("Failed to record warn audit entry", zap.Error(err))
	}
}

func matchReason(rule *types.Rule) string {
	return fmt.Sprintf("matched rule: %s - %s", strings.ToLower(rule.Type.String()), rule.Pattern)
}

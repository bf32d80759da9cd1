package discord

import (
	"context"
	"fmt"

	"github.com/castellan/castellan/internal/automod"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/discord"
	"github.com/disgoorg/disgo/rest"
	"github.com/disgoorg/snowflake/v2"
	"go.uber.org/zap"
)

const (
	alertColor      = 0xffa500
	escalationColor = 0xff0000
)

// Notifier delivers moderation side effects through the Discord REST API.
type Notifier struct {
	rest   rest.Rest
	logger *zap.Logger
}

// NewNotifier creates a notifier backed by the given Discord client.
func NewNotifier(client bot.Client, logger *zap.Logger) *Notifier {
	return &Notifier{
		rest:   client.Rest(),
		logger: logger.Named("discord"),
	}
}

// DeleteMessage removes a message from a channel.
func (n *Notifier) DeleteMessage(ctx context.Context, channelID, messageID uint64) error {
	err := n.rest.DeleteMessage(snowflake.ID(channelID), snowflake.ID(messageID), rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to delete message %d: %w", messageID, err)
	}

	return nil
}

// SendDirectMessage delivers a DM to a user. Fails when the user blocks
// DMs; callers treat that as non-fatal.
func (n *Notifier) SendDirectMessage(ctx context.Context, userID uint64, content string) error {
	channel, err := n.rest.CreateDMChannel(snowflake.ID(userID), rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to create DM channel for user %d: %w", userID, err)
	}

	_, err = n.rest.CreateMessage(channel.ID(),
		discord.NewMessageCreateBuilder().SetContent(content).Build(),
		rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to send DM to user %d: %w", userID, err)
	}

	return nil
}

// SendModAlert posts a moderation action summary to the guild's moderator
// channel.
func (n *Notifier) SendModAlert(ctx context.Context, modChannelID uint64, alert *automod.ModAlert) error {
	embed := discord.NewEmbedBuilder().
		SetTitle("Auto-Moderation Action").
		SetColor(alertColor).
		AddField("User", fmt.Sprintf("<@%d>", alert.UserID), true).
		AddField("Channel", fmt.Sprintf("<#%d>", alert.ChannelID), true).
		AddField("Action", alert.Action.String(), true).
		AddField("Rule", fmt.Sprintf("%s - %s", alert.RuleType, alert.Pattern), false)

	if alert.Excerpt != "" {
		embed.AddField("Message Content", alert.Excerpt, false)
	}

	_, err := n.rest.CreateMessage(snowflake.ID(modChannelID),
		discord.NewMessageCreateBuilder().SetEmbeds(embed.Build()).Build(),
		rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to send moderation alert: %w", err)
	}

	return nil
}

// SendEscalation notifies moderators that a user crossed the flag threshold.
func (n *Notifier) SendEscalation(ctx context.Context, modChannelID uint64, escalation *automod.Escalation) error {
	embed := discord.NewEmbedBuilder().
		SetTitle("Flag Threshold Reached").
		SetColor(escalationColor).
		AddField("User", fmt.Sprintf("<@%d>", escalation.UserID), true).
		AddField("Flags", fmt.Sprintf("%d / %d", escalation.FlagCount, escalation.Threshold), true).
		AddField("Last Flagged", escalation.LastFlaggedAt.Format("2006-01-02 15:04:05 MST"), true).
		Build()

	_, err := n.rest.CreateMessage(snowflake.ID(modChannelID),
		discord.NewMessageCreateBuilder().SetEmbeds(embed).Build(),
		rest.WithCtx(ctx))
	if err != nil {
		return fmt.Errorf("failed to send escalation: %w", err)
	}

	return nil
}

package bot

import (
	"context"
	"errors"

	"github.com/castellan/castellan/internal/automod"
	"github.com/castellan/castellan/internal/database"
	"github.com/disgoorg/disgo"
	"github.com/disgoorg/disgo/bot"
	"github.com/disgoorg/disgo/events"
	"github.com/disgoorg/disgo/gateway"
	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"
)

// ErrNoEngine is returned when Start is called before SetEngine.
var ErrNoEngine = errors.New("moderation engine not attached")

// Bot receives guild messages from the Discord gateway and feeds them into
// the moderation engine on a bounded worker pool.
type Bot struct {
	client bot.Client
	db     database.Client
	engine *automod.Engine
	pool   *pool.Pool
	logger *zap.Logger
}

// New initializes the gateway client with the intents and event listeners
// the moderation pipeline needs. The engine is attached separately with
// SetEngine because its notifier needs the gateway client created here.
func New(token string, db database.Client, messageWorkers int, logger *zap.Logger) (*Bot, error) {
	b := &Bot{
		db:     db,
		pool:   pool.New().WithMaxGoroutines(messageWorkers),
		logger: logger.Named("bot"),
	}

	client, err := disgo.New(token,
		bot.WithGatewayConfigOpts(
			gateway.WithIntents(
				gateway.IntentGuilds,
				gateway.IntentGuildMessages,
				gateway.IntentMessageContent,
			),
		),
		bot.WithEventListeners(&events.ListenerAdapter{
			OnGuildMessageCreate: b.handleGuildMessageCreate,
			OnGuildJoin:          b.handleGuildJoin,
		}),
	)
	if err != nil {
		return nil, err
	}

	b.client = client

	return b, nil
}

// Client returns the underlying gateway client.
func (b *Bot) Client() bot.Client {
	return b.client
}

// SetEngine attaches the moderation engine. Must be called before Start.
func (b *Bot) SetEngine(engine *automod.Engine) {
	b.engine = engine
}

// Start opens the gateway connection.
func (b *Bot) Start(ctx context.Context) error {
	if b.engine == nil {
		return ErrNoEngine
	}

	b.logger.Info("Starting bot")

	return b.client.OpenGateway(ctx)
}

// Close shuts down the gateway and drains in-flight message processing.
func (b *Bot) Close(ctx context.Context) {
	b.logger.Info("Closing bot")
	b.client.Close(ctx)
	b.pool.Wait()
}

// handleGuildMessageCreate queues an inbound message for moderation.
// Messages from bots are ignored so the pipeline cannot react to its own
// moderation alerts.
func (b *Bot) handleGuildMessageCreate(event *events.GuildMessageCreate) {
	if event.Message.Author.Bot {
		return
	}

	msg := &automod.Message{
		GuildID:   uint64(event.GuildID),
		ChannelID: uint64(event.ChannelID),
		UserID:    uint64(event.Message.Author.ID),
		MessageID: uint64(event.MessageID),
		Content:   event.Message.Content,
	}

	b.pool.Go(func() {
		b.engine.ProcessMessage(context.Background(), msg)
	})
}

// handleGuildJoin registers a guild with default moderation settings the
// moment the bot is added to it.
func (b *Bot) handleGuildJoin(event *events.GuildJoin) {
	guildID := uint64(event.GuildID)

	err := b.db.Model().Guild().UpsertGuild(context.Background(), guildID, event.Guild.Name)
	if err != nil {
		b.logger.Error("Failed to register guild",
			zap.Uint64("guildID", guildID),
			zap.Error(err))

		return
	}

	b.logger.Info("Registered guild",
		zap.Uint64("guildID", guildID),
		zap.String("name", event.Guild.Name))
}

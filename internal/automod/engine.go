package automod

import (
	"context"
	"encoding/binary"
	"sync"

	"github.com/castellan/castellan/internal/database/types"
	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"
)

// lockShards bounds the keyed-mutex set: authors map onto a fixed shard
// array instead of one mutex per author ever seen.
const lockShards = 512

// Message is the normalized form of an inbound guild message.
type Message struct {
	GuildID   uint64
	ChannelID uint64
	UserID    uint64
	MessageID uint64
	Content   string
}

// GuildSource provides the guild-level state needed to decide whether a
// message is subject to moderation.
type GuildSource interface {
	GetGuild(ctx context.Context, guildID uint64) (*types.GuildConfig, error)
	IsChannelMonitored(ctx context.Context, guildID, channelID uint64) (bool, error)
}

// Engine is the moderation pipeline entry point, tying channel filtering,
// guild configuration, rule evaluation and action dispatch together.
type Engine struct {
	guilds     GuildSource
	evaluator  *Evaluator
	dispatcher *Dispatcher
	locks      [lockShards]sync.Mutex
	logger     *zap.Logger
}

// NewEngine creates a new moderation engine.
func NewEngine(guilds GuildSource, evaluator *Evaluator, dispatcher *Dispatcher, logger *zap.Logger) *Engine {
	return &Engine{
		guilds:     guilds,
		evaluator:  evaluator,
		dispatcher: dispatcher,
		logger:     logger.Named("automod"),
	}
}

// ProcessMessage runs one message through the pipeline. It never returns an
// error: message ingestion must not stall on a single failure, so every
// problem is logged and the message is skipped.
//
// Messages from different authors may be processed concurrently; dispatches
// for the same (guild, user) pair are serialized so flag counts and audit
// entries stay in message order.
func (e *Engine) ProcessMessage(ctx context.Context, msg *Message) {
	logger := e.logger.With(
		zap.Uint64("guildID", msg.GuildID),
		zap.Uint64("channelID", msg.ChannelID),
		zap.Uint64("userID", msg.UserID))

	monitored, err := e.guilds.IsChannelMonitored(ctx, msg.GuildID, msg.ChannelID)
	if err != nil {
		logger.Error("Failed to check monitored channel, skipping message", zap.Error(err))
		return
	}

	if !monitored {
		return
	}

	cfg, err := e.guilds.GetGuild(ctx, msg.GuildID)
	if err != nil {
		logger.Error("Failed to load guild config, skipping message", zap.Error(err))
		return
	}

	if cfg == nil {
		logger.Warn("Message from unregistered guild, skipping")
		return
	}

	if !cfg.AutoModEnabled {
		return
	}

	rule, err := e.evaluator.Evaluate(ctx, msg.GuildID, msg.Content)
	if err != nil {
		logger.Error("Failed to evaluate rules, skipping message", zap.Error(err))
		return
	}

	if rule == nil {
		return
	}

	mu := e.lockFor(msg.GuildID, msg.UserID)
	mu.Lock()
	defer mu.Unlock()

	e.dispatcher.Dispatch(ctx, msg, rule, cfg)
}

// lockFor returns the mutex serializing dispatches for one author. Distinct
// authors may share a shard, which over-serializes them but never reorders
// a single author's dispatches.
func (e *Engine) lockFor(guildID, userID uint64) *sync.Mutex {
	var key [16]byte

	binary.BigEndian.PutUint64(key[:8], guildID)
	binary.BigEndian.PutUint64(key[8:], userID)

	return &e.locks[xxhash.Sum64(key[:])%lockShards]
}

package models

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/castellan/castellan/internal/database/dbretry"
	"github.com/castellan/castellan/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// GuildModel handles database operations for guild configuration and
// monitored channels.
type GuildModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewGuild creates a new guild model instance.
func NewGuild(db *bun.DB, logger *zap.Logger) *GuildModel {
	return &GuildModel{
		db:     db,
		logger: logger.Named("db_guild"),
	}
}

// UpsertGuild registers a guild, refreshing its name if it already exists.
// Moderation settings of an existing row are left untouched.
func (m *GuildModel) UpsertGuild(ctx context.Context, guildID uint64, name string) error {
	now := time.Now()
	cfg := &types.GuildConfig{
		GuildID:        guildID,
		Name:           name,
		AutoModEnabled: true,
		FlagThreshold:  3,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().
			Model(cfg).
			On("CONFLICT (guild_id) DO UPDATE").
			Set("name = EXCLUDED.name").
			Set("updated_at = EXCLUDED.updated_at").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to upsert guild: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Debug("Upserted guild",
		zap.Uint64("guildID", guildID),
		zap.String("name", name))

	return nil
}

// GetGuild retrieves a guild's configuration. Returns (nil, nil) when the
// guild is not registered.
func (m *GuildModel) GetGuild(ctx context.Context, guildID uint64) (*types.GuildConfig, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.GuildConfig, error) {
		cfg := new(types.GuildConfig)

		err := m.db.NewSelect().
			Model(cfg).
			Where("guild_id = ?", guildID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}

			return nil, fmt.Errorf("failed to get guild: %w", err)
		}

		return cfg, nil
	})
}

// SetModChannel updates the channel that receives moderation alerts.
// A zero channel ID clears it.
func (m *GuildModel) SetModChannel(ctx context.Context, guildID, channelID uint64) error {
	return m.updateGuild(ctx, guildID, "mod_channel_id = ?", channelID)
}

// SetAutoModEnabled toggles automatic moderation for a guild.
func (m *GuildModel) SetAutoModEnabled(ctx context.Context, guildID uint64, enabled bool) error {
	return m.updateGuild(ctx, guildID, "auto_mod_enabled = ?", enabled)
}

// SetFlagThreshold updates the flag count at which escalation fires.
func (m *GuildModel) SetFlagThreshold(ctx context.Context, guildID uint64, threshold int) error {
	return m.updateGuild(ctx, guildID, "flag_threshold = ?", threshold)
}

func (m *GuildModel) updateGuild(ctx context.Context, guildID uint64, set string, value any) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewUpdate().
			Model((*types.GuildConfig)(nil)).
			Set(set, value).
			Set("updated_at = ?", time.Now()).
			Where("guild_id = ?", guildID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to update guild: %w", err)
		}

		return nil
	})
}

// DeleteGuild removes a guild and all of its moderation data. Audit
// entries are only ever deleted through this cascade.
func (m *GuildModel) DeleteGuild(ctx context.Context, guildID uint64) error {
	err := dbretry.Transaction(ctx, m.db, func(ctx context.Context, tx bun.Tx) error {
		tables := []any{
			(*types.AuditEntry)(nil),
			(*types.UserFlag)(nil),
			(*types.Rule)(nil),
			(*types.MonitoredChannel)(nil),
			(*types.GuildConfig)(nil),
		}

		for _, table := range tables {
			if _, err := tx.NewDelete().
				Model(table).
				Where("guild_id = ?", guildID).
				Exec(ctx); err != nil {
				return fmt.Errorf("failed to delete guild data: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Debug("Deleted guild", zap.Uint64("guildID", guildID))

	return nil
}

// AddMonitoredChannel enables moderation for a channel.
func (m *GuildModel) AddMonitoredChannel(ctx context.Context, guildID, channelID uint64) error {
	channel := &types.MonitoredChannel{
		GuildID:   guildID,
		ChannelID: channelID,
		Enabled:   true,
		CreatedAt: time.Now(),
	}

	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().
			Model(channel).
			On("CONFLICT (guild_id, channel_id) DO UPDATE").
			Set("enabled = true").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to add monitored channel: %w", err)
		}

		return nil
	})
}

// RemoveMonitoredChannel disables moderation for a channel. Idempotent.
func (m *GuildModel) RemoveMonitoredChannel(ctx context.Context, guildID, channelID uint64) error {
	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewDelete().
			Model((*types.MonitoredChannel)(nil)).
			Where("guild_id = ?", guildID).
			Where("channel_id = ?", channelID).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to remove monitored channel: %w", err)
		}

		return nil
	})
}

// IsChannelMonitored reports whether a channel is actively moderated.
func (m *GuildModel) IsChannelMonitored(ctx context.Context, guildID, channelID uint64) (bool, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (bool, error) {
		exists, err := m.db.NewSelect().
			Model((*types.MonitoredChannel)(nil)).
			Where("guild_id = ?", guildID).
			Where("channel_id = ?", channelID).
			Where("enabled = true").
			Exists(ctx)
		if err != nil {
			return false, fmt.Errorf("failed to check monitored channel: %w", err)
		}

		return exists, nil
	})
}

// GetMonitoredChannels lists the actively moderated channels of a guild.
func (m *GuildModel) GetMonitoredChannels(ctx context.Context, guildID uint64) ([]*types.MonitoredChannel, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.MonitoredChannel, error) {
		var channels []*types.MonitoredChannel

		err := m.db.NewSelect().
			Model(&channels).
			Where("guild_id = ?", guildID).
			Where("enabled = true").
			Order("created_at ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get monitored channels: %w", err)
		}

		return channels, nil
	})
}

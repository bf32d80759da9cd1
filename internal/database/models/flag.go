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

// FlagModel handles database operations for per-user violation counters.
type FlagModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewFlag creates a new flag model instance.
func NewFlag(db *bun.DB, logger *zap.Logger) *FlagModel {
	return &FlagModel{
		db:     db,
		logger: logger.Named("db_flag"),
	}
}

// IncrementFlag bumps a user's violation counter by one, creating the row
// on first flag. The upsert is a single statement so concurrent flags from
// different processes never lose increments. An empty note leaves any
// existing notes untouched. Returns the counter state after the increment.
func (m *FlagModel) IncrementFlag(ctx context.Context, guildID, userID uint64, notes string) (*types.UserFlag, error) {
	flag := &types.UserFlag{
		GuildID:       guildID,
		UserID:        userID,
		FlagCount:     1,
		LastFlaggedAt: time.Now(),
		Notes:         notes,
	}

	result, err := dbretry.Operation(ctx, func(ctx context.Context) (*types.UserFlag, error) {
		_, err := m.db.NewInsert().
			Model(flag).
			On("CONFLICT (guild_id, user_id) DO UPDATE").
			Set("flag_count = user_flag.flag_count + 1").
			Set("last_flagged_at = EXCLUDED.last_flagged_at").
			Set("notes = COALESCE(NULLIF(EXCLUDED.notes, ''), user_flag.notes)").
			Returning("flag_count, last_flagged_at, notes").
			Exec(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to increment flag: %w", err)
		}

		return flag, nil
	})
	if err != nil {
		return nil, err
	}

	m.logger.Debug("Incremented user flag",
		zap.Uint64("guildID", guildID),
		zap.Uint64("userID", userID),
		zap.Int("flagCount", result.FlagCount))

	return result, nil
}

// GetUserFlag retrieves a user's violation counter. Returns (nil, nil) when
// the user has never been flagged.
func (m *FlagModel) GetUserFlag(ctx context.Context, guildID, userID uint64) (*types.UserFlag, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.UserFlag, error) {
		flag := new(types.UserFlag)

		err := m.db.NewSelect().
			Model(flag).
			Where("guild_id = ?", guildID).
			Where("user_id = ?", userID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}

			return nil, fmt.Errorf("failed to get user flag: %w", err)
		}

		return flag, nil
	})
}

// GetFlaggedUsers lists a guild's flagged users, most-flagged first.
func (m *FlagModel) GetFlaggedUsers(ctx context.Context, guildID uint64) ([]*types.UserFlag, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.UserFlag, error) {
		var flags []*types.UserFlag

		err := m.db.NewSelect().
			Model(&flags).
			Where("guild_id = ?", guildID).
			Order("flag_count DESC", "last_flagged_at DESC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get flagged users: %w", err)
		}

		return flags, nil
	})
}

// ClearFlags removes a user's violation counter entirely. Clearing a user
// who was never flagged is a no-op. Returns the number of rows deleted.
func (m *FlagModel) ClearFlags(ctx context.Context, guildID, userID uint64) (int64, error) {
	affected, err := dbretry.Operation(ctx, func(ctx context.Context) (int64, error) {
		res, err := m.db.NewDelete().
			Model((*types.UserFlag)(nil)).
			Where("guild_id = ?", guildID).
			Where("user_id = ?", userID).
			Exec(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to clear flags: %w", err)
		}

		deleted, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get affected rows: %w", err)
		}

		return deleted, nil
	})
	if err != nil {
		return 0, err
	}

	m.logger.Debug("Cleared user flags",
		zap.Uint64("guildID", guildID),
		zap.Uint64("userID", userID),
		zap.Int64("deleted", affected))

	return affected, nil
}

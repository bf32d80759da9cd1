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

// RuleModel handles database operations for moderation rules.
type RuleModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewRule creates a new rule model instance.
func NewRule(db *bun.DB, logger *zap.Logger) *RuleModel {
	return &RuleModel{
		db:     db,
		logger: logger.Named("db_rule"),
	}
}

// CreateRule inserts a rule and fills in its assigned ID.
func (m *RuleModel) CreateRule(ctx context.Context, rule *types.Rule) error {
	rule.CreatedAt = time.Now()

	err := dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().
			Model(rule).
			Returning("id").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create rule: %w", err)
		}

		return nil
	})
	if err != nil {
		return err
	}

	m.logger.Debug("Created rule",
		zap.Int64("ruleID", rule.ID),
		zap.Uint64("guildID", rule.GuildID),
		zap.String("type", rule.Type.String()))

	return nil
}

// GetRule retrieves a single rule by ID within a guild. Returns (nil, nil)
// when no such rule exists.
func (m *RuleModel) GetRule(ctx context.Context, guildID uint64, ruleID int64) (*types.Rule, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (*types.Rule, error) {
		rule := new(types.Rule)

		err := m.db.NewSelect().
			Model(rule).
			Where("guild_id = ?", guildID).
			Where("id = ?", ruleID).
			Scan(ctx)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return nil, nil
			}

			return nil, fmt.Errorf("failed to get rule: %w", err)
		}

		return rule, nil
	})
}

// GetEnabledRules returns a guild's enabled rules in creation order. This
// ordering decides which rule wins when several match the same message.
func (m *RuleModel) GetEnabledRules(ctx context.Context, guildID uint64) ([]*types.Rule, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Rule, error) {
		var rules []*types.Rule

		err := m.db.NewSelect().
			Model(&rules).
			Where("guild_id = ?", guildID).
			Where("enabled = true").
			Order("id ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get enabled rules: %w", err)
		}

		return rules, nil
	})
}

// GetRules returns all of a guild's rules, enabled or not, in creation order.
func (m *RuleModel) GetRules(ctx context.Context, guildID uint64) ([]*types.Rule, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.Rule, error) {
		var rules []*types.Rule

		err := m.db.NewSelect().
			Model(&rules).
			Where("guild_id = ?", guildID).
			Order("id ASC").
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get rules: %w", err)
		}

		return rules, nil
	})
}

// SetRuleEnabled toggles a rule without deleting it. Returns the number of
// rows updated so callers can detect a missing rule.
func (m *RuleModel) SetRuleEnabled(ctx context.Context, guildID uint64, ruleID int64, enabled bool) (int64, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int64, error) {
		res, err := m.db.NewUpdate().
			Model((*types.Rule)(nil)).
			Set("enabled = ?", enabled).
			Where("guild_id = ?", guildID).
			Where("id = ?", ruleID).
			Exec(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to update rule: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get affected rows: %w", err)
		}

		return affected, nil
	})
}

// DeleteRule removes a rule. Returns the number of rows deleted.
func (m *RuleModel) DeleteRule(ctx context.Context, guildID uint64, ruleID int64) (int64, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) (int64, error) {
		res, err := m.db.NewDelete().
			Model((*types.Rule)(nil)).
			Where("guild_id = ?", guildID).
			Where("id = ?", ruleID).
			Exec(ctx)
		if err != nil {
			return 0, fmt.Errorf("failed to delete rule: %w", err)
		}

		affected, err := res.RowsAffected()
		if err != nil {
			return 0, fmt.Errorf("failed to get affected rows: %w", err)
		}

		return affected, nil
	})
}

package models

import (
	"context"
	"fmt"
	"time"

	"github.com/castellan/castellan/internal/database/dbretry"
	"github.com/castellan/castellan/internal/database/types"
	"github.com/uptrace/bun"
	"go.uber.org/zap"
)

// AuditModel handles database operations for the append-only moderation log.
type AuditModel struct {
	db     *bun.DB
	logger *zap.Logger
}

// NewAudit creates a new audit model instance.
func NewAudit(db *bun.DB, logger *zap.Logger) *AuditModel {
	return &AuditModel{
		db:     db,
		logger: logger.Named("db_audit"),
	}
}

// Record appends an audit entry and fills in its assigned ID.
func (m *AuditModel) Record(ctx context.Context, entry *types.AuditEntry) error {
	entry.CreatedAt = time.Now()

	return dbretry.NoResult(ctx, func(ctx context.Context) error {
		_, err := m.db.NewInsert().
			Model(entry).
			Returning("id").
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to record audit entry: %w", err)
		}

		return nil
	})
}

// GetGuildEntries returns a guild's most recent audit entries, newest first.
// Entries created in the same instant sort by descending ID so the order
// stays stable.
func (m *AuditModel) GetGuildEntries(ctx context.Context, guildID uint64, limit int) ([]*types.AuditEntry, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.AuditEntry, error) {
		var entries []*types.AuditEntry

		err := m.db.NewSelect().
			Model(&entries).
			Where("guild_id = ?", guildID).
			Order("created_at DESC", "id DESC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get guild audit entries: %w", err)
		}

		return entries, nil
	})
}

// GetUserEntries returns the most recent audit entries for one user in a
// guild, newest first.
func (m *AuditModel) GetUserEntries(ctx context.Context, guildID, userID uint64, limit int) ([]*types.AuditEntry, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.AuditEntry, error) {
		var entries []*types.AuditEntry

		err := m.db.NewSelect().
			Model(&entries).
			Where("guild_id = ?", guildID).
			Where("user_id = ?", userID).
			Order("created_at DESC", "id DESC").
			Limit(limit).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get user audit entries: %w", err)
		}

		return entries, nil
	})
}

// GetAllEntries streams every audit entry of a guild in ascending ID order,
// for export. The cursor form avoids loading the whole log at once.
func (m *AuditModel) GetAllEntries(ctx context.Context, guildID uint64, afterID int64, batchSize int) ([]*types.AuditEntry, error) {
	return dbretry.Operation(ctx, func(ctx context.Context) ([]*types.AuditEntry, error) {
		var entries []*types.AuditEntry

		err := m.db.NewSelect().
			Model(&entries).
			Where("guild_id = ?", guildID).
			Where("id > ?", afterID).
			Order("id ASC").
			Limit(batchSize).
			Scan(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to get audit entries: %w", err)
		}

		return entries, nil
	})
}

package migrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			-- Rule evaluation fetches a guild's enabled rules in creation order
			CREATE INDEX IF NOT EXISTS idx_rules_guild_enabled
			ON rules (guild_id, id ASC)
			WHERE enabled = true;

			-- Audit queries are newest-first per guild and per user
			CREATE INDEX IF NOT EXISTS idx_audit_entries_guild_time
			ON audit_entries (guild_id, created_at DESC, id DESC);

			CREATE INDEX IF NOT EXISTS idx_audit_entries_user_time
			ON audit_entries (guild_id, user_id, created_at DESC, id DESC);

			-- Flagged user listings sort by count, then recency
			CREATE INDEX IF NOT EXISTS idx_user_flags_guild_count
			ON user_flags (guild_id, flag_count DESC, last_flagged_at DESC);
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to create indexes: %w", err)
		}

		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		_, err := db.NewRaw(`
			DROP INDEX IF EXISTS idx_rules_guild_enabled;
			DROP INDEX IF EXISTS idx_audit_entries_guild_time;
			DROP INDEX IF EXISTS idx_audit_entries_user_time;
			DROP INDEX IF EXISTS idx_user_flags_guild_count;
		`).Exec(ctx)
		if err != nil {
			return fmt.Errorf("failed to drop indexes: %w", err)
		}

		return nil
	})
}

package sqlite

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/castellan/castellan/internal/database/types"
	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitex"
)

// Exporter handles exporting audit entries to SQLite databases.
type Exporter struct {
	outDir string
}

// New creates a new SQLite exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes a guild's audit entries to a standalone SQLite database.
func (e *Exporter) Export(guildID uint64, entries []*types.AuditEntry) error {
	filename := fmt.Sprintf("audit_%d.db", guildID)

	path := filepath.Join(e.outDir, filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing file %s: %w", filename, err)
	}

	conn, err := sqlite.OpenConn(path, sqlite.OpenCreate|sqlite.OpenReadWrite)
	if err != nil {
		return fmt.Errorf("failed to open SQLite database: %w", err)
	}
	defer conn.Close()

	err = sqlitex.Execute(conn, `
		CREATE TABLE audit_entries (
			id INTEGER PRIMARY KEY,
			created_at TEXT NOT NULL,
			action TEXT NOT NULL,
			user_id TEXT NOT NULL,
			channel_id TEXT NOT NULL,
			moderator_id TEXT NOT NULL,
			reason TEXT NOT NULL,
			message_id TEXT NOT NULL,
			message_snapshot TEXT NOT NULL
		)
	`, nil)
	if err != nil {
		return fmt.Errorf("failed to create table: %w", err)
	}

	// Insert records in batches
	const batchSize = 1000
	for i := 0; i < len(entries); i += batchSize {
		end := min(i+batchSize, len(entries))

		if err := sqlitex.Execute(conn, "BEGIN TRANSACTION", nil); err != nil {
			return fmt.Errorf("failed to begin transaction: %w", err)
		}

		for _, entry := range entries[i:end] {
			err = sqlitex.Execute(conn, `
				INSERT INTO audit_entries (
					id, created_at, action, user_id, channel_id,
					moderator_id, reason, message_id, message_snapshot
				) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
			`, &sqlitex.ExecOptions{
				Args: []any{
					entry.ID,
					entry.CreatedAt.UTC().Format(time.RFC3339),
					entry.Action.String(),
					fmt.Sprintf("%d", entry.UserID),
					fmt.Sprintf("%d", entry.ChannelID),
					fmt.Sprintf("%d", entry.ModeratorID),
					entry.Reason,
					fmt.Sprintf("%d", entry.MessageID),
					entry.MessageSnapshot,
				},
			})
			if err != nil {
				return fmt.Errorf("failed to insert record: %w", err)
			}
		}

		if err := sqlitex.Execute(conn, "COMMIT", nil); err != nil {
			return fmt.Errorf("failed to commit transaction: %w", err)
		}
	}

	return nil
}

package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/castellan/castellan/internal/database/types"
)

// Exporter handles exporting audit entries to csv files.
type Exporter struct {
	outDir string
}

// New creates a new csv exporter instance.
func New(outDir string) *Exporter {
	return &Exporter{outDir: outDir}
}

// Export writes a guild's audit entries to a csv file.
func (e *Exporter) Export(guildID uint64, entries []*types.AuditEntry) error {
	filename := fmt.Sprintf("audit_%d.csv", guildID)

	path := filepath.Join(e.outDir, filename)
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove existing file %s: %w", filename, err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create csv file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"id", "created_at", "action", "user_id", "channel_id",
		"moderator_id", "reason", "message_id", "message_snapshot",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	for _, entry := range entries {
		record := []string{
			strconv.FormatInt(entry.ID, 10),
			entry.CreatedAt.UTC().Format(time.RFC3339),
			entry.Action.String(),
			strconv.FormatUint(entry.UserID, 10),
			strconv.FormatUint(entry.ChannelID, 10),
			strconv.FormatUint(entry.ModeratorID, 10),
			entry.Reason,
			strconv.FormatUint(entry.MessageID, 10),
			entry.MessageSnapshot,
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("failed to write record: %w", err)
		}
	}

	return nil
}

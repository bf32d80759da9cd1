package csv

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/castellan/castellan/internal/database/types"
	"github.com/castellan/castellan/internal/database/types/enum"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExporter_Export(t *testing.T) {
	t.Parallel()

	created := time.Date(2025, 3, 12, 10, 30, 0, 0, time.UTC)

	tests := []struct {
		name    string
		entries []*types.AuditEntry
	}{
		{
			name: "basic export",
			entries: []*types.AuditEntry{
				{
					ID:              1,
					GuildID:         100,
					ChannelID:       200,
					UserID:          300,
					Action:          enum.AuditActionDelete,
					Reason:          "matched rule: keyword - badword",
					MessageSnapshot: "a badword message",
					MessageID:       400,
					CreatedAt:       created,
				},
				{
					ID:          2,
					GuildID:     100,
					ChannelID:   200,
					UserID:      300,
					ModeratorID: 500,
					Action:      enum.AuditActionUnflag,
					Reason:      "appeal accepted",
					CreatedAt:   created.Add(time.Minute),
				},
			},
		},
		{
			name:    "empty log",
			entries: []*types.AuditEntry{},
		},
		{
			name: "reason with comma and quotes",
			entries: []*types.AuditEntry{
				{
					ID:        1,
					GuildID:   100,
					ChannelID: 200,
					UserID:    300,
					Action:    enum.AuditActionWarn,
					Reason:    `matched rule: regex - "a,b"`,
					CreatedAt: created,
				},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			outDir := t.TempDir()

			err := New(outDir).Export(100, tt.entries)
			require.NoError(t, err)

			file, err := os.Open(filepath.Join(outDir, "audit_100.csv"))
			require.NoError(t, err)
			defer file.Close()

			rows, err := csv.NewReader(file).ReadAll()
			require.NoError(t, err)

			// Header plus one row per entry
			require.Len(t, rows, len(tt.entries)+1)
			assert.Equal(t, "id", rows[0][0])
			assert.Equal(t, "action", rows[0][2])

			for i, entry := range tt.entries {
				row := rows[i+1]
				assert.Equal(t, entry.Action.String(), row[2])
				assert.Equal(t, entry.Reason, row[6])
			}
		})
	}
}

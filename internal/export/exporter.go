package export

import (
	"context"
	"fmt"

	"github.com/castellan/castellan/internal/database"
	"github.com/castellan/castellan/internal/database/types"
	"github.com/castellan/castellan/internal/export/csv"
	"github.com/castellan/castellan/internal/export/sqlite"
	"go.uber.org/zap"
)

// DefaultBatchSize is used when the configured export batch size is unset.
const DefaultBatchSize = 1000

// Exporter writes a guild's audit log to portable file formats.
type Exporter struct {
	db        database.Client
	outDir    string
	batchSize int
	logger    *zap.Logger
}

// New creates a new exporter writing into outDir.
func New(db database.Client, outDir string, batchSize int, logger *zap.Logger) *Exporter {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}

	return &Exporter{
		db:        db,
		outDir:    outDir,
		batchSize: batchSize,
		logger:    logger.Named("export"),
	}
}

// ExportGuild fetches a guild's full audit log and writes it in all
// supported formats.
func (e *Exporter) ExportGuild(ctx context.Context, guildID uint64) error {
	entries, err := e.fetchAll(ctx, guildID)
	if err != nil {
		return err
	}

	e.logger.Info("Fetched audit entries",
		zap.Uint64("guildID", guildID),
		zap.Int("count", len(entries)))

	if err := csv.New(e.outDir).Export(guildID, entries); err != nil {
		return fmt.Errorf("failed to export CSV: %w", err)
	}

	if err := sqlite.New(e.outDir).Export(guildID, entries); err != nil {
		return fmt.Errorf("failed to export SQLite: %w", err)
	}

	e.logger.Info("Export finished", zap.String("outDir", e.outDir))

	return nil
}

// fetchAll pages through the audit log in ascending ID order so exports of
// large guilds stay within bounded query sizes.
func (e *Exporter) fetchAll(ctx context.Context, guildID uint64) ([]*types.AuditEntry, error) {
	var (
		entries []*types.AuditEntry
		afterID int64
	)

	for {
		batch, err := e.db.Model().Audit().GetAllEntries(ctx, guildID, afterID, e.batchSize)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch audit entries: %w", err)
		}

		if len(batch) == 0 {
			return entries, nil
		}

		entries = append(entries, batch...)
		afterID = batch[len(batch)-1].ID
	}
}

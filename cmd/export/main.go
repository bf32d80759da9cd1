package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/castellan/castellan/internal/export"
	"github.com/castellan/castellan/internal/setup"
	"github.com/urfave/cli/v3"
)

const (
	// ExportLogDir specifies where export log files are stored.
	ExportLogDir = "logs/export_logs"
)

func main() {
	if err := run(); err != nil {
		log.Printf("Error: %v", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.Command{
		Name:  "export",
		Usage: "Export a guild's moderation audit log to portable file formats",
		Flags: []cli.Flag{
			&cli.UintFlag{
				Name:     "guild",
				Aliases:  []string{"g"},
				Usage:    "Guild ID whose audit log to export",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "exports",
				Usage:   "Base output directory for export files",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			// Initialize application with required dependencies
			app, err := setup.InitializeApp(ctx, ExportLogDir)
			if err != nil {
				return fmt.Errorf("failed to initialize application: %w", err)
			}
			defer app.Cleanup(ctx)

			// Create timestamped output directory
			baseDir := c.String("output")
			timestamp := time.Now().UTC().Format("2006-01-02_150405")

			outDir := filepath.Join(baseDir, timestamp)
			if err := os.MkdirAll(outDir, 0o755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			exporter := export.New(app.DB, outDir, app.Config.AutoMod.ExportBatchSize, app.Logger)

			if err := exporter.ExportGuild(ctx, uint64(c.Uint("guild"))); err != nil {
				return fmt.Errorf("failed to export audit log: %w", err)
			}

			return nil
		},
	}

	return app.Run(context.Background(), os.Args)
}

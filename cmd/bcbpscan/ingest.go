package main

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/gyeh/bcbpscan/internal/db"
	"github.com/gyeh/bcbpscan/internal/exitcode"
	"github.com/gyeh/bcbpscan/internal/ingest"
	"github.com/gyeh/bcbpscan/internal/logging"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest",
	Short: "Ingest a payload file into the database",
	RunE:  runIngest,
}

func init() {
	f := ingestCmd.Flags()
	f.StringVar(&cfg.FilePath, "file", "", "Path to payload file, one BCBP string per line (required)")
	f.BoolVar(&cfg.Force, "force", false, "Re-import even if file SHA already loaded")
	f.BoolVar(&cfg.KeepStaging, "keep-staging", false, "Keep staging rows after transform")
	addCityFlags(ingestCmd)
	_ = ingestCmd.MarkFlagRequired("file")
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	ctx := context.Background()

	if err := cfg.ValidateWithDSN(); err != nil {
		log.Error().Err(err).Msg("config validation failed")
		os.Exit(exitcode.UsageError)
	}
	cities := loadCities(log)

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	summary, err := ingest.Run(ctx, pool, log, &cfg, cities)
	if err != nil {
		var pe *ingest.PipelineError
		if errors.As(err, &pe) {
			log.Error().Err(pe.Err).Str("phase", pe.Phase).Msg("ingest failed")
			pool.Close()
			switch pe.Phase {
			case "preflight":
				os.Exit(exitcode.ValidationError)
			case "stage":
				os.Exit(exitcode.CopyError)
			default:
				os.Exit(exitcode.TransformError)
			}
		}
		log.Error().Err(err).Msg("ingest failed")
		pool.Close()
		os.Exit(exitcode.TransformError)
	}

	fmt.Printf("Ingest complete: %d lines read, %d rejected, %d passes inserted (%d duplicate), %d segments (%.1fs)\n",
		summary.LinesRead, summary.LinesRejected, summary.PassesInserted,
		summary.PassesDuplicate, summary.SegmentsInserted, summary.DurationTotal.Seconds())

	if summary.LinesRejected > 0 {
		pool.Close()
		os.Exit(exitcode.PartialSuccess)
	}
	return nil
}

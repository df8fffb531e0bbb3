package main

import (
	"context"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gyeh/bcbpscan/internal/db"
	"github.com/gyeh/bcbpscan/internal/exitcode"
	"github.com/gyeh/bcbpscan/internal/logging"
)

var migrateTimeout time.Duration

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the ingest, ref and bcbp schemas",
	RunE:  runMigrate,
}

func init() {
	migrateCmd.Flags().DurationVar(&migrateTimeout, "timeout", 2*time.Minute, "Give up if migrations take longer than this")
	rootCmd.AddCommand(migrateCmd)
}

func runMigrate(cmd *cobra.Command, args []string) error {
	log := logging.Setup(cfg.LogFormat)
	if cfg.DSN == "" {
		log.Error().Msg("--dsn or BCBP_DB_URL is required")
		os.Exit(exitcode.UsageError)
	}

	ctx, cancel := context.WithTimeout(context.Background(), migrateTimeout)
	defer cancel()
	start := time.Now()

	pool, err := db.NewPool(ctx, cfg.DSN)
	if err != nil {
		log.Error().Err(err).Msg("database connection failed")
		cancel()
		os.Exit(exitcode.DBConnError)
	}
	defer pool.Close()

	if err := db.ApplyMigrations(ctx, pool, log); err != nil {
		log.Error().Err(err).Msg("migration failed")
		pool.Close()
		cancel()
		os.Exit(exitcode.TransformError)
	}

	log.Info().Str("duration", time.Since(start).String()).Msg("schema up to date")
	return nil
}

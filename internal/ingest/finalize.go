package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

// analyzeTables are refreshed after every load.
var analyzeTables = []string{"bcbp.passes", "bcbp.flight_segments", "ref.airports", "ref.carriers"}

// Finalize marks the scan file loaded and runs ANALYZE on the serving tables.
func Finalize(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, scanFileID int64) (time.Duration, error) {
	start := time.Now()

	if err := UpdateStatus(ctx, pool, scanFileID, StatusLoaded); err != nil {
		return 0, fmt.Errorf("update status to loaded: %w", err)
	}
	log.Info().Int64("scan_file_id", scanFileID).Msg("scan file loaded")

	for _, table := range analyzeTables {
		if _, err := pool.Exec(ctx, "ANALYZE "+table); err != nil {
			return 0, fmt.Errorf("analyze %s: %w", table, err)
		}
	}
	log.Info().Msg("ANALYZE complete")

	return time.Since(start), nil
}

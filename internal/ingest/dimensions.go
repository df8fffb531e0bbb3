package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	embedsql "github.com/gyeh/bcbpscan/internal/sql"
)

// UpsertDimensions upserts the airports and carriers seen in the staging
// batch into the ref tables.
func UpsertDimensions(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, batchID uuid.UUID) error {
	start := time.Now()

	tag, err := pool.Exec(ctx, embedsql.UpsertAirports, batchID)
	if err != nil {
		return fmt.Errorf("upsert airports: %w", err)
	}
	log.Info().Int64("airports_upserted", tag.RowsAffected()).Msg("airports upserted")

	tag, err = pool.Exec(ctx, embedsql.UpsertCarriers, batchID)
	if err != nil {
		return fmt.Errorf("upsert carriers: %w", err)
	}
	log.Info().
		Int64("carriers_upserted", tag.RowsAffected()).
		Dur("duration", time.Since(start)).
		Msg("carriers upserted")

	return nil
}

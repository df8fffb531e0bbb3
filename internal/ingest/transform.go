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

// TransformResult holds metrics from the staging → serving split.
type TransformResult struct {
	PassesInserted   int64
	SegmentsInserted int64
	Duration         time.Duration
}

// Transform splits the staging batch into bcbp.passes and
// bcbp.flight_segments in one transaction. Passes whose payload hash is
// already loaded are skipped along with their legs.
func Transform(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, batchID uuid.UUID) (*TransformResult, error) {
	start := time.Now()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin transform: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	passes, err := tx.Exec(ctx, embedsql.InsertPasses, batchID)
	if err != nil {
		return nil, fmt.Errorf("insert passes: %w", err)
	}
	segments, err := tx.Exec(ctx, embedsql.InsertSegments, batchID)
	if err != nil {
		return nil, fmt.Errorf("insert segments: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit transform: %w", err)
	}

	dur := time.Since(start)
	res := &TransformResult{
		PassesInserted:   passes.RowsAffected(),
		SegmentsInserted: segments.RowsAffected(),
		Duration:         dur,
	}

	log.Info().
		Int64("passes_inserted", res.PassesInserted).
		Int64("segments_inserted", res.SegmentsInserted).
		Str("duration", dur.String()).
		Msg("transform complete")

	return res, nil
}

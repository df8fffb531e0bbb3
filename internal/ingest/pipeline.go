package ingest

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/bcbpscan/internal/config"
	"github.com/gyeh/bcbpscan/internal/model"
	"github.com/gyeh/bcbpscan/internal/normalize"
)

// PipelineError wraps an error with the phase where it occurred.
type PipelineError struct {
	Phase string
	Err   error
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("%s: %s", e.Phase, e.Err)
}

func (e *PipelineError) Unwrap() error {
	return e.Err
}

// Run executes the full ingest pipeline: preflight → stage → dimensions →
// transform → finalize → cleanup. cities may be nil.
func Run(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, cfg *config.Config, cities normalize.Cities) (*model.IngestSummary, error) {
	totalStart := time.Now()

	// Phase 1: Preflight
	log.Info().Str("file", cfg.FilePath).Msg("starting preflight")
	pf, err := Preflight(ctx, pool, log, cfg.FilePath, cfg.Force)
	if err != nil {
		return nil, &PipelineError{Phase: "preflight", Err: err}
	}

	if pf.AlreadyLoaded {
		log.Info().
			Int64("scan_file_id", pf.ScanFileID).
			Str("sha256", pf.FileSHA256).
			Msg("file already loaded, skipping (use --force to re-import)")
		return &model.IngestSummary{
			FilePath:      pf.FilePath,
			FileSHA256:    pf.FileSHA256,
			ScanFileID:    pf.ScanFileID,
			IngestBatchID: pf.IngestBatchID.String(),
			DurationTotal: time.Since(totalStart),
		}, nil
	}

	fail := func(phase string, err error) error {
		if uerr := UpdateStatus(ctx, pool, pf.ScanFileID, StatusFailed); uerr != nil {
			log.Warn().Err(uerr).Msg("could not mark scan file failed")
		}
		if cerr := Cleanup(ctx, pool, log, pf.IngestBatchID); cerr != nil {
			log.Warn().Err(cerr).Msg("staging cleanup failed (non-fatal)")
		}
		return &PipelineError{Phase: phase, Err: err}
	}

	// Phase 2: Stage
	log.Info().Msg("starting staging")
	if err := UpdateStatus(ctx, pool, pf.ScanFileID, StatusStaging); err != nil {
		return nil, &PipelineError{Phase: "stage", Err: err}
	}

	stageResult, err := Stage(ctx, pool, log, pf, StageOptions{
		Accept: cfg.AcceptsFormat,
		Cities: cities,
	})
	if err != nil {
		return nil, fail("stage", err)
	}

	if err := UpdateStatus(ctx, pool, pf.ScanFileID, StatusStaged); err != nil {
		return nil, fail("stage", err)
	}

	// Phase 3: Dimension upserts
	log.Info().Msg("upserting dimensions")
	if err := UpsertDimensions(ctx, pool, log, pf.IngestBatchID); err != nil {
		return nil, fail("dimensions", err)
	}

	// Phase 4: Transform
	log.Info().Msg("starting transform")
	if err := UpdateStatus(ctx, pool, pf.ScanFileID, StatusTransforming); err != nil {
		return nil, fail("transform", err)
	}

	transformResult, err := Transform(ctx, pool, log, pf.IngestBatchID)
	if err != nil {
		return nil, fail("transform", err)
	}

	// Phase 5: Finalize
	log.Info().Msg("finalizing")
	finalizeDur, err := Finalize(ctx, pool, log, pf.ScanFileID)
	if err != nil {
		return nil, fail("finalize", err)
	}

	// Phase 6: Cleanup staging
	if !cfg.KeepStaging {
		log.Info().Msg("cleaning up staging")
		if err := Cleanup(ctx, pool, log, pf.IngestBatchID); err != nil {
			log.Warn().Err(err).Msg("staging cleanup failed (non-fatal)")
		}
	}

	summary := &model.IngestSummary{
		FilePath:          pf.FilePath,
		FileSHA256:        pf.FileSHA256,
		ScanFileID:        pf.ScanFileID,
		IngestBatchID:     pf.IngestBatchID.String(),
		LinesRead:         stageResult.LinesRead,
		LinesRejected:     stageResult.LinesRejected,
		PassesStaged:      stageResult.PassesStaged,
		RowsStaged:        stageResult.RowsStaged,
		PassesInserted:    transformResult.PassesInserted,
		SegmentsInserted:  transformResult.SegmentsInserted,
		PassesDuplicate:   stageResult.PassesStaged - transformResult.PassesInserted,
		DurationStage:     stageResult.Duration,
		DurationTransform: transformResult.Duration,
		DurationFinalize:  finalizeDur,
		DurationTotal:     time.Since(totalStart),
	}

	log.Info().
		Int64("lines_read", summary.LinesRead).
		Int64("lines_rejected", summary.LinesRejected).
		Int64("passes_inserted", summary.PassesInserted).
		Int64("segments_inserted", summary.SegmentsInserted).
		Int64("passes_duplicate", summary.PassesDuplicate).
		Str("total_duration", summary.DurationTotal.String()).
		Msg("ingest pipeline complete")

	return summary, nil
}

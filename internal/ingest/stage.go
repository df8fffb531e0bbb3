package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/bcbpscan/internal/bcbp"
	"github.com/gyeh/bcbpscan/internal/db"
	"github.com/gyeh/bcbpscan/internal/model"
	"github.com/gyeh/bcbpscan/internal/normalize"
	"github.com/gyeh/bcbpscan/internal/payloads"
	"github.com/gyeh/bcbpscan/internal/specs"
	embedsql "github.com/gyeh/bcbpscan/internal/sql"
)

const readBatchSize = 1024

// StageOptions controls which passes are staged and how they are enriched.
type StageOptions struct {
	// Accept filters passes by format code; nil accepts every known code.
	Accept func(specs.FormatCode) bool
	// Cities fills the city columns; nil leaves them empty.
	Cities normalize.Cities
	// Now anchors Julian-date resolution; the zero value means the stage start.
	Now time.Time
}

// StageResult holds metrics from the staging phase.
type StageResult struct {
	LinesRead     int64
	LinesRejected int64
	PassesStaged  int64
	RowsStaged    int64
	Duration      time.Duration
}

// Stage streams lines from the payload file, decodes them, and COPY-loads
// one row per leg into the staging table via a channel-backed CopyFromSource.
func Stage(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, pf *PreflightResult, opts StageOptions) (*StageResult, error) {
	start := time.Now()
	if opts.Now.IsZero() {
		opts.Now = start
	}
	if opts.Accept == nil {
		opts.Accept = func(fc specs.FormatCode) bool { return fc != specs.FormatUnknown }
	}

	reader, err := payloads.Open(pf.FilePath)
	if err != nil {
		return nil, fmt.Errorf("stage open: %w", err)
	}
	defer reader.Close()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch := make(chan *model.StagingRow, readBatchSize)
	errCh := make(chan error, 1)

	var linesRead, linesRejected, passesStaged int64

	// Producer goroutine: read lines → decode → flatten → push to channel
	go func() {
		defer close(ch)
		buf := make([]payloads.Line, readBatchSize)

		for {
			n, readErr := reader.Read(buf)
			for i := 0; i < n; i++ {
				linesRead++
				line := buf[i]

				rows, rejectErr := decodeLine(line, pf, opts)
				if rejectErr != nil {
					linesRejected++
					logRejected(log, line.Number, rejectErr)
					continue
				}
				passesStaged++

				for _, row := range rows {
					select {
					case ch <- row:
					case <-ctx.Done():
						errCh <- ctx.Err()
						return
					}
				}
			}
			if readErr == io.EOF {
				break
			}
			if readErr != nil {
				errCh <- readErr
				return
			}
		}
		errCh <- nil
	}()

	// Consumer: COPY from channel into staging table
	source := db.NewChannelSource(ch)
	rowsStaged, err := pool.CopyFrom(ctx,
		pgx.Identifier{"ingest", "stage_scans"},
		model.StagingColumns(),
		source,
	)
	if err != nil {
		// Unblock the producer if COPY stopped reading early.
		cancel()
	}

	// Wait for producer to finish
	prodErr := <-errCh
	if err != nil {
		return nil, fmt.Errorf("stage copy: %w", err)
	}
	if prodErr != nil {
		return nil, fmt.Errorf("stage producer: %w", prodErr)
	}

	dur := time.Since(start)
	log.Info().
		Int64("lines_read", linesRead).
		Int64("lines_rejected", linesRejected).
		Int64("passes_staged", passesStaged).
		Int64("rows_staged", rowsStaged).
		Str("duration", dur.String()).
		Float64("lines_per_sec", float64(linesRead)/dur.Seconds()).
		Msg("staging complete")

	return &StageResult{
		LinesRead:     linesRead,
		LinesRejected: linesRejected,
		PassesStaged:  passesStaged,
		RowsStaged:    rowsStaged,
		Duration:      dur,
	}, nil
}

// errFormatNotAccepted marks a line whose format code the config filters out.
var errFormatNotAccepted = errors.New("format code not accepted")

func decodeLine(line payloads.Line, pf *PreflightResult, opts StageOptions) ([]*model.StagingRow, error) {
	if err := line.Validate(); err != nil {
		return nil, err
	}
	pass, err := bcbp.Parse(line.Payload)
	if err != nil {
		return nil, err
	}
	if fc := pass.FormatCode(); !opts.Accept(fc) {
		return nil, fmt.Errorf("%w: %q", errFormatNotAccepted, line.Payload[:1])
	}
	pr, segs, err := normalize.ToRows(pass, line.Payload, normalize.Source{
		BatchID:    pf.IngestBatchID,
		ScanFileID: pf.ScanFileID,
		Line:       line.Number,
		Now:        opts.Now,
		Cities:     opts.Cities,
	})
	if err != nil {
		return nil, err
	}
	return normalize.ToStagingRows(pr, segs), nil
}

func logRejected(log zerolog.Logger, line int64, err error) {
	ev := log.Warn().Err(err).Int64("line", line)
	var pe *bcbp.ParseError
	if errors.As(err, &pe) {
		ev = ev.Str("element", pe.Element.Name()).Int("offset", pe.Offset)
	}
	ev.Msg("line rejected")
}

// CountStagedPasses returns the number of distinct lines staged for a batch.
func CountStagedPasses(ctx context.Context, pool *pgxpool.Pool, batchID uuid.UUID) (int64, error) {
	var n int64
	err := pool.QueryRow(ctx, embedsql.CountStagedPasses, batchID).Scan(&n)
	return n, err
}

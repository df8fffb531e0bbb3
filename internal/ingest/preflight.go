package ingest

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/gyeh/bcbpscan/internal/normalize"
	embedsql "github.com/gyeh/bcbpscan/internal/sql"
)

// Scan file statuses, in pipeline order.
const (
	StatusPending      = "pending"
	StatusStaging      = "staging"
	StatusStaged       = "staged"
	StatusTransforming = "transforming"
	StatusLoaded       = "loaded"
	StatusFailed       = "failed"
)

// PreflightResult holds all context resolved during the preflight phase.
type PreflightResult struct {
	// FilePath is the original path passed to Preflight, stored as-is.
	FilePath string
	// FileSHA256 is the hex-encoded SHA-256 digest of the file.
	FileSHA256 string
	// FileSize is the file size in bytes from os.Stat.
	FileSize int64
	// ScanFileID is the DB primary key for this file, inserted or looked up by sha256.
	ScanFileID int64
	// IngestBatchID tags every staged row of this run.
	IngestBatchID uuid.UUID
	// AlreadyLoaded is true when the file's sha256 is already loaded and
	// force mode is off.
	AlreadyLoaded bool
	// Purged counts passes removed from an earlier load of the same file.
	Purged int64
}

// Preflight hashes the payload file and registers it. A file seen before
// is skipped when loaded, unless force is set; otherwise its earlier passes
// are purged so the rerun starts clean.
func Preflight(ctx context.Context, pool *pgxpool.Pool, log zerolog.Logger, filePath string, force bool) (*PreflightResult, error) {
	start := time.Now()

	sha, err := normalize.FileHash(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight hash: %w", err)
	}

	stat, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("preflight stat: %w", err)
	}

	res := &PreflightResult{
		FilePath:      filePath,
		FileSHA256:    sha,
		FileSize:      stat.Size(),
		IngestBatchID: uuid.New(),
	}

	if err := registerScanFile(ctx, pool, res, force); err != nil {
		return nil, fmt.Errorf("preflight register file: %w", err)
	}

	log.Info().
		Str("file", filepath.Base(filePath)).
		Str("sha256", sha).
		Int64("size", res.FileSize).
		Int64("scan_file_id", res.ScanFileID).
		Int64("purged", res.Purged).
		Dur("duration", time.Since(start)).
		Msg("preflight complete")

	return res, nil
}

func registerScanFile(ctx context.Context, pool *pgxpool.Pool, res *PreflightResult, force bool) error {
	err := pool.QueryRow(ctx, embedsql.RegisterScanFile,
		filepath.Base(res.FilePath), res.FileSHA256, res.FileSize,
	).Scan(&res.ScanFileID)
	if err == nil {
		return nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("register scan file: %w", err)
	}

	// Already exists (ON CONFLICT DO NOTHING returned no rows)
	var status string
	if err := pool.QueryRow(ctx, embedsql.LookupScanFile, res.FileSHA256).Scan(&res.ScanFileID, &status); err != nil {
		return fmt.Errorf("lookup existing scan file: %w", err)
	}
	if !force && status == StatusLoaded {
		res.AlreadyLoaded = true
		return nil
	}

	tag, err := pool.Exec(ctx, embedsql.PurgeScanFile, res.ScanFileID)
	if err != nil {
		return fmt.Errorf("purge earlier load: %w", err)
	}
	res.Purged = tag.RowsAffected()

	if err := UpdateStatus(ctx, pool, res.ScanFileID, StatusPending); err != nil {
		return fmt.Errorf("reset scan file status: %w", err)
	}
	return nil
}

// UpdateStatus updates the scan file status.
func UpdateStatus(ctx context.Context, pool *pgxpool.Pool, scanFileID int64, status string) error {
	_, err := pool.Exec(ctx, embedsql.UpdateScanStatus, scanFileID, status)
	return err
}

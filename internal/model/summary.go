package model

import "time"

// IngestSummary captures metrics from a single scan file ingest run.
type IngestSummary struct {
	FilePath      string
	FileSHA256    string
	ScanFileID    int64
	IngestBatchID string

	LinesRead        int64
	LinesRejected    int64
	PassesStaged     int64
	RowsStaged       int64
	PassesInserted   int64
	SegmentsInserted int64
	// PassesDuplicate counts staged passes whose payload was already loaded.
	PassesDuplicate int64

	DurationStage     time.Duration
	DurationTransform time.Duration
	DurationFinalize  time.Duration
	DurationTotal     time.Duration
}

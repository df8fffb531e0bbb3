package model

// StagingRow is one leg of one pass as it lands in ingest.stage_scans.
// Pass-level columns are repeated on every leg; the transform step splits
// them back out into bcbp.passes and bcbp.flight_segments.
type StagingRow struct {
	Pass    *PassRow
	Segment *SegmentRow
}

// StagingColumns returns the ordered column names for COPY into
// ingest.stage_scans: every pass column followed by the leg columns.
func StagingColumns() []string {
	return append(PassColumns(), SegmentColumns()[segmentKeyColumns:]...)
}

// CopyValues returns the row values in the same order as StagingColumns().
func (r *StagingRow) CopyValues() []any {
	return append(r.Pass.CopyValues(), r.Segment.CopyValues()[segmentKeyColumns:]...)
}

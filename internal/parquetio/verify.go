package parquetio

import (
	"fmt"
	"io"

	"github.com/gyeh/bcbpscan/internal/model"
)

// Stats summarizes a segment export read back from disk.
type Stats struct {
	Rows     int64
	Passes   int64
	Carriers map[string]int64
	Airports map[string]int64
}

// Scan opens the export at path, checks its schema and streams every row.
func Scan(path string) (*Stats, error) {
	r, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	if err := ValidateSchema(r.Schema()); err != nil {
		return nil, fmt.Errorf("validate %s: %w", path, err)
	}

	st := &Stats{Carriers: make(map[string]int64), Airports: make(map[string]int64)}
	passes := make(map[string]struct{})
	buf := make([]model.SegmentRow, 512)
	for {
		n, readErr := r.Read(buf)
		for i := 0; i < n; i++ {
			row := &buf[i]
			st.Rows++
			passes[row.PayloadHash] = struct{}{}
			if row.OperatingCarrier != nil {
				st.Carriers[*row.OperatingCarrier]++
			}
			st.Airports[row.FromAirport]++
			st.Airports[row.ToAirport]++
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return nil, readErr
		}
	}
	st.Passes = int64(len(passes))

	if st.Rows != r.NumRows() {
		return nil, fmt.Errorf("read %d rows, footer declares %d", st.Rows, r.NumRows())
	}
	return st, nil
}

// Verify scans the export at path and checks it holds wantRows rows.
func Verify(path string, wantRows int64) (*Stats, error) {
	st, err := Scan(path)
	if err != nil {
		return nil, err
	}
	if st.Rows != wantRows {
		return nil, fmt.Errorf("export has %d rows, wrote %d", st.Rows, wantRows)
	}
	return st, nil
}

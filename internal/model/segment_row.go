package model

import (
	"time"

	"github.com/google/uuid"
)

// SegmentRow is one flight leg of a decoded pass, flattened with the
// pass-level fields analysts filter on. It doubles as the Parquet export
// schema; the batch/file identifiers only exist in the database.
type SegmentRow struct {
	IngestBatchID uuid.UUID `parquet:"-"`
	ScanFileID    int64     `parquet:"-"`

	PayloadHash   string `parquet:"payload_hash"`
	SourceLine    int64  `parquet:"source_line"`
	LegIndex      int32  `parquet:"leg_index"`
	FormatCode    string `parquet:"format_code"`
	PassengerName string `parquet:"passenger_name"`

	PNR              *string `parquet:"pnr,optional"`
	FromAirport      string  `parquet:"from_airport"`
	ToAirport        string  `parquet:"to_airport"`
	FromCity         *string `parquet:"from_city,optional"`
	ToCity           *string `parquet:"to_city,optional"`
	OperatingCarrier *string `parquet:"operating_carrier,optional"`
	FlightNumber     *string `parquet:"flight_number,optional"`
	JulianDate       *int32  `parquet:"julian_date,optional"`
	FlightDate       *string `parquet:"flight_date,optional"` // YYYY-MM-DD, UTC
	Compartment      string  `parquet:"compartment"`
	CompartmentDesc  string  `parquet:"compartment_description"`
	SeatNumber       *string `parquet:"seat_number,optional"`
	CheckInSequence  *string `parquet:"check_in_sequence,optional"`
	PassengerStatus  *string `parquet:"passenger_status,optional"`

	// Repeated conditional items
	AirlineNumericCode   *int32  `parquet:"airline_numeric_code,optional"`
	SerialNumber         *string `parquet:"serial_number,optional"`
	SelecteeIndicator    *string `parquet:"selectee_indicator,optional"`
	DocumentVerification string  `parquet:"document_verification"`
	MarketingCarrier     *string `parquet:"marketing_carrier,optional"`
	FrequentFlyerAirline *string `parquet:"frequent_flyer_airline,optional"`
	FrequentFlyerNumber  *string `parquet:"frequent_flyer_number,optional"`
	FreeBaggageAllowance *string `parquet:"free_baggage_allowance,optional"`
	FastTrack            *string `parquet:"fast_track,optional"`
	AirlineUse           *string `parquet:"airline_use,optional"`
}

// segmentKeyColumns is the number of leading SegmentColumns that identify
// the owning pass (batch, file, line) rather than the leg itself.
const segmentKeyColumns = 3

// SegmentColumns returns the ordered column names of a leg, keyed by the
// batch, file and line of the pass it belongs to.
func SegmentColumns() []string {
	return []string{
		"ingest_batch_id",
		"scan_file_id",
		"source_line",
		"leg_index",
		"from_airport",
		"to_airport",
		"from_city",
		"to_city",
		"pnr",
		"operating_carrier",
		"flight_number",
		"julian_date",
		"flight_date",
		"compartment",
		"seat_number",
		"check_in_sequence",
		"passenger_status",
		"airline_numeric_code",
		"serial_number",
		"selectee_indicator",
		"document_verification",
		"marketing_carrier",
		"frequent_flyer_airline",
		"frequent_flyer_number",
		"free_baggage_allowance",
		"fast_track",
		"airline_use",
	}
}

// CopyValues returns the row values in the same order as SegmentColumns().
func (r *SegmentRow) CopyValues() []any {
	return []any{
		r.IngestBatchID,
		r.ScanFileID,
		r.SourceLine,
		r.LegIndex,
		r.FromAirport,
		r.ToAirport,
		r.FromCity,
		r.ToCity,
		r.PNR,
		r.OperatingCarrier,
		r.FlightNumber,
		r.JulianDate,
		dateValue(r.FlightDate),
		r.Compartment,
		r.SeatNumber,
		r.CheckInSequence,
		r.PassengerStatus,
		r.AirlineNumericCode,
		r.SerialNumber,
		r.SelecteeIndicator,
		r.DocumentVerification,
		r.MarketingCarrier,
		r.FrequentFlyerAirline,
		r.FrequentFlyerNumber,
		r.FreeBaggageAllowance,
		r.FastTrack,
		r.AirlineUse,
	}
}

// dateValue converts an ISO date string to a *time.Time for a DATE column.
func dateValue(s *string) *time.Time {
	if s == nil {
		return nil
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return nil
	}
	return &t
}

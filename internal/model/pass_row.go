package model

import (
	"time"

	"github.com/google/uuid"
)

// PassRow is the DB-ready representation of one decoded boarding pass.
// Optional elements are nil when the payload did not carry them.
type PassRow struct {
	IngestBatchID uuid.UUID
	ScanFileID    int64

	SourceLine  int64
	PayloadHash []byte
	Payload     string

	FormatCode         string
	LegCount           int16
	PassengerName      string
	PassengerLastName  *string
	PassengerFirstName *string
	ETicketIndicator   *string

	// Unique conditional items
	VersionNumber        *string
	PassengerDescription *string
	CheckinSource        *string
	IssuanceSource       *string
	IssuanceDate         *time.Time
	DocumentType         *string
	IssuerDesignator     *string
	BaggageTag           *string

	SecurityDataType *string
	SecurityData     *string
}

// PassColumns returns the ordered column names for COPY into bcbp.passes.
func PassColumns() []string {
	return []string{
		"ingest_batch_id",
		"scan_file_id",
		"source_line",
		"payload_hash",
		"payload",
		"format_code",
		"leg_count",
		"passenger_name",
		"passenger_last_name",
		"passenger_first_name",
		"eticket_indicator",
		"version_number",
		"passenger_description",
		"checkin_source",
		"issuance_source",
		"issuance_date",
		"document_type",
		"issuer_designator",
		"baggage_tag",
		"security_data_type",
		"security_data",
	}
}

// CopyValues returns the row values in the same order as PassColumns(),
// suitable for pgx CopyFromSource.
func (r *PassRow) CopyValues() []any {
	return []any{
		r.IngestBatchID,
		r.ScanFileID,
		r.SourceLine,
		r.PayloadHash,
		r.Payload,
		r.FormatCode,
		r.LegCount,
		r.PassengerName,
		r.PassengerLastName,
		r.PassengerFirstName,
		r.ETicketIndicator,
		r.VersionNumber,
		r.PassengerDescription,
		r.CheckinSource,
		r.IssuanceSource,
		r.IssuanceDate,
		r.DocumentType,
		r.IssuerDesignator,
		r.BaggageTag,
		r.SecurityDataType,
		r.SecurityData,
	}
}

package normalize

import (
	"time"

	"github.com/google/uuid"

	"github.com/gyeh/bcbpscan/internal/bcbp"
	"github.com/gyeh/bcbpscan/internal/model"
)

// Cities resolves an airport code to its city name. A nil Cities leaves
// the city columns empty.
type Cities interface {
	CityFor(code string) string
}

// Source identifies where a payload came from and when it was decoded.
type Source struct {
	BatchID    uuid.UUID
	ScanFileID int64
	Line       int64
	// Now anchors Julian-date resolution; the zero value means time.Now().
	Now    time.Time
	Cities Cities
}

// ToRows flattens a decoded pass into one PassRow and one SegmentRow per leg.
func ToRows(p *bcbp.BoardingPass, raw string, src Source) (*model.PassRow, []*model.SegmentRow, error) {
	segs := p.Segments()
	if len(segs) == 0 {
		return nil, nil, bcbp.ErrNoSegments
	}
	now := src.Now
	if now.IsZero() {
		now = time.Now()
	}

	hash := PayloadHash(raw)
	pr := &model.PassRow{
		IngestBatchID: src.BatchID,
		ScanFileID:    src.ScanFileID,
		SourceLine:    src.Line,
		PayloadHash:   hash,
		Payload:       raw,

		FormatCode:         p.FormatCode().Value(),
		LegCount:           int16(len(segs)),
		PassengerName:      NormalizeName(p.PassengerName()),
		PassengerLastName:  OptString(p.PassengerLastName()),
		PassengerFirstName: OptString(p.PassengerFirstName()),
		ETicketIndicator:   OptString(p.ElectronicTicketIndicator()),

		VersionNumber:        OptString(p.VersionNumber()),
		PassengerDescription: OptCode(p.PassengerDescription().Value()),
		CheckinSource:        OptCode(p.SourceOfCheckIn().Value()),
		IssuanceSource:       OptCode(p.SourceOfPassIssuance().Value()),
		DocumentType:         OptCode(p.DocumentType().Value()),
		IssuerDesignator:     TrimDesignator(p.AirlineDesignatorOfIssuer()),
		BaggageTag:           OptString(p.BaggageTagLicensePlate()),
	}
	if d, ok := p.IssuanceDate(now); ok {
		pr.IssuanceDate = &d
	}
	if sec := p.SecurityData(); sec.Type != "" || sec.Data != "" {
		pr.SecurityDataType = OptString(sec.Type)
		pr.SecurityData = OptString(sec.Data)
	}

	hexHash := PayloadHashHex(raw)
	rows := make([]*model.SegmentRow, 0, len(segs))
	for i, s := range segs {
		rows = append(rows, segmentRow(pr, hexHash, i+1, s, now, src.Cities))
	}
	return pr, rows, nil
}

// ToStagingRows pairs a pass with each of its legs for the staging COPY.
func ToStagingRows(pr *model.PassRow, segs []*model.SegmentRow) []*model.StagingRow {
	out := make([]*model.StagingRow, len(segs))
	for i, s := range segs {
		out[i] = &model.StagingRow{Pass: pr, Segment: s}
	}
	return out
}

func segmentRow(pr *model.PassRow, hash string, leg int, s bcbp.FlightSegment, now time.Time, cities Cities) *model.SegmentRow {
	from := derefStr(TrimDesignator(s.FromCity()))
	to := derefStr(TrimDesignator(s.ToCity()))
	compartment := s.Compartment()

	row := &model.SegmentRow{
		IngestBatchID: pr.IngestBatchID,
		ScanFileID:    pr.ScanFileID,

		PayloadHash:   hash,
		SourceLine:    pr.SourceLine,
		LegIndex:      int32(leg),
		FormatCode:    pr.FormatCode,
		PassengerName: pr.PassengerName,

		PNR:              OptString(s.PNR()),
		FromAirport:      from,
		ToAirport:        to,
		OperatingCarrier: TrimDesignator(s.OperatingCarrierDesignator()),
		FlightNumber:     OptString(s.FlightNumber()),
		Compartment:      compartment.Value(),
		CompartmentDesc:  compartment.Description(),
		SeatNumber:       OptString(s.SeatNumber()),
		CheckInSequence:  OptString(s.CheckInSequenceNumber()),
		PassengerStatus:  OptString(s.PassengerStatus()),

		SerialNumber:         OptString(s.SerialNumber()),
		SelecteeIndicator:    OptString(s.SelecteeIndicator()),
		DocumentVerification: s.InternationalDocumentVerification().Value(),
		MarketingCarrier:     TrimDesignator(s.MarketingCarrierDesignator()),
		FrequentFlyerAirline: TrimDesignator(s.FrequentFlyerDesignator()),
		FrequentFlyerNumber:  OptString(s.FrequentFlyerNumber()),
		FreeBaggageAllowance: OptString(s.FreeBaggageAllowance()),
		FastTrack:            OptString(s.FastTrack()),
		AirlineUse:           OptString(s.AirlineUse()),
	}

	if cities != nil {
		row.FromCity = OptString(cities.CityFor(from))
		row.ToCity = OptString(cities.CityFor(to))
	}
	if day, ok := s.JulianDateOfFlight(); ok {
		d := int32(day)
		row.JulianDate = &d
		if t, ok := s.DateOfFlight(now); ok {
			iso := t.Format(time.DateOnly)
			row.FlightDate = &iso
		}
	}
	if code, ok := s.AirlineNumericCode(); ok {
		c := int32(code)
		row.AirlineNumericCode = &c
	}
	return row
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

package api

import (
	"time"

	"github.com/gyeh/bcbpscan/internal/bcbp"
	"github.com/gyeh/bcbpscan/internal/normalize"
	"github.com/gyeh/bcbpscan/internal/specs"
)

// code is any registry-backed value.
type code interface {
	Name() string
	Value() string
	Description() string
}

func entryOf(c code) specs.Entry {
	return specs.Entry{Name: c.Name(), Value: c.Value(), Description: c.Description()}
}

// PassView is the JSON rendering of a decoded boarding pass.
type PassView struct {
	ScanID               string        `json:"scan_id,omitempty"`
	FormatCode           specs.Entry   `json:"format_code"`
	PassengerName        string        `json:"passenger_name"`
	PassengerLastName    string        `json:"passenger_last_name,omitempty"`
	PassengerFirstName   string        `json:"passenger_first_name,omitempty"`
	ETicketIndicator     string        `json:"eticket_indicator,omitempty"`
	VersionNumber        string        `json:"version_number,omitempty"`
	PassengerDescription specs.Entry   `json:"passenger_description"`
	CheckinSource        specs.Entry   `json:"checkin_source"`
	IssuanceSource       specs.Entry   `json:"issuance_source"`
	IssuanceDate         string        `json:"issuance_date,omitempty"`
	DocumentType         specs.Entry   `json:"document_type"`
	IssuerDesignator     string        `json:"issuer_designator,omitempty"`
	BaggageTag           string        `json:"baggage_tag,omitempty"`
	Segments             []SegmentView `json:"segments"`
	SecurityDataType     string        `json:"security_data_type,omitempty"`
	SecurityData         string        `json:"security_data,omitempty"`
	Trailing             string        `json:"trailing,omitempty"`
}

// SegmentView is the JSON rendering of one flight leg.
type SegmentView struct {
	PNR                  string      `json:"pnr"`
	FromAirport          string      `json:"from_airport"`
	FromCity             string      `json:"from_city,omitempty"`
	ToAirport            string      `json:"to_airport"`
	ToCity               string      `json:"to_city,omitempty"`
	OperatingCarrier     string      `json:"operating_carrier"`
	FlightNumber         string      `json:"flight_number"`
	JulianDate           int         `json:"julian_date,omitempty"`
	FlightDate           string      `json:"flight_date,omitempty"`
	Compartment          specs.Entry `json:"compartment"`
	SeatNumber           string      `json:"seat_number"`
	CheckInSequence      string      `json:"check_in_sequence"`
	PassengerStatus      string      `json:"passenger_status"`
	AirlineNumericCode   int         `json:"airline_numeric_code,omitempty"`
	SerialNumber         string      `json:"serial_number,omitempty"`
	SelecteeIndicator    string      `json:"selectee_indicator,omitempty"`
	DocumentVerification specs.Entry `json:"document_verification"`
	MarketingCarrier     string      `json:"marketing_carrier,omitempty"`
	FrequentFlyerAirline string      `json:"frequent_flyer_airline,omitempty"`
	FrequentFlyerNumber  string      `json:"frequent_flyer_number,omitempty"`
	FreeBaggageAllowance string      `json:"free_baggage_allowance,omitempty"`
	FastTrack            string      `json:"fast_track,omitempty"`
	AirlineUse           string      `json:"airline_use,omitempty"`
}

// NewPassView renders p. Dates resolve relative to now; cities may be nil.
func NewPassView(p *bcbp.BoardingPass, now time.Time, cities normalize.Cities) PassView {
	v := PassView{
		FormatCode:           entryOf(p.FormatCode()),
		PassengerName:        p.PassengerName(),
		PassengerLastName:    p.PassengerLastName(),
		PassengerFirstName:   p.PassengerFirstName(),
		ETicketIndicator:     p.ElectronicTicketIndicator(),
		VersionNumber:        p.VersionNumber(),
		PassengerDescription: entryOf(p.PassengerDescription()),
		CheckinSource:        entryOf(p.SourceOfCheckIn()),
		IssuanceSource:       entryOf(p.SourceOfPassIssuance()),
		DocumentType:         entryOf(p.DocumentType()),
		IssuerDesignator:     p.AirlineDesignatorOfIssuer(),
		BaggageTag:           p.BaggageTagLicensePlate(),
		Trailing:             p.Trailing(),
	}
	if d, ok := p.IssuanceDate(now); ok {
		v.IssuanceDate = d.Format(time.DateOnly)
	}
	sec := p.SecurityData()
	v.SecurityDataType, v.SecurityData = sec.Type, sec.Data

	for _, s := range p.Segments() {
		v.Segments = append(v.Segments, newSegmentView(s, now, cities))
	}
	return v
}

func newSegmentView(s bcbp.FlightSegment, now time.Time, cities normalize.Cities) SegmentView {
	sv := SegmentView{
		PNR:                  s.PNR(),
		FromAirport:          s.FromCity(),
		ToAirport:            s.ToCity(),
		OperatingCarrier:     s.OperatingCarrierDesignator(),
		FlightNumber:         s.FlightNumber(),
		Compartment:          entryOf(s.Compartment()),
		SeatNumber:           s.SeatNumber(),
		CheckInSequence:      s.CheckInSequenceNumber(),
		PassengerStatus:      s.PassengerStatus(),
		SerialNumber:         s.SerialNumber(),
		SelecteeIndicator:    s.SelecteeIndicator(),
		DocumentVerification: entryOf(s.InternationalDocumentVerification()),
		MarketingCarrier:     s.MarketingCarrierDesignator(),
		FrequentFlyerAirline: s.FrequentFlyerDesignator(),
		FrequentFlyerNumber:  s.FrequentFlyerNumber(),
		FreeBaggageAllowance: s.FreeBaggageAllowance(),
		FastTrack:            s.FastTrack(),
		AirlineUse:           s.AirlineUse(),
	}
	if cities != nil {
		sv.FromCity = cities.CityFor(sv.FromAirport)
		sv.ToCity = cities.CityFor(sv.ToAirport)
	}
	if day, ok := s.JulianDateOfFlight(); ok {
		sv.JulianDate = day
		if d, ok := s.DateOfFlight(now); ok {
			sv.FlightDate = d.Format(time.DateOnly)
		}
	}
	if n, ok := s.AirlineNumericCode(); ok {
		sv.AirlineNumericCode = n
	}
	return sv
}

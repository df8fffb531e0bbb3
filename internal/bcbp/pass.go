// Package bcbp decodes and encodes IATA Bar Coded Boarding Pass payloads.
package bcbp

import (
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/gyeh/bcbpscan/internal/specs"
)

// MaxSegments is the largest number of legs a single payload can carry.
const MaxSegments = 4

// BoardingPass is a decoded payload: the unique elements plus one
// FlightSegment per encoded leg. It is immutable once built.
type BoardingPass struct {
	elements map[specs.Element]string
	segments []FlightSegment
	trailing string
}

// SecurityData is the optional airline signature section.
type SecurityData struct {
	Type string
	Data string
}

// Value returns the raw value of a unique element, or ok=false if the
// payload did not carry it.
func (p *BoardingPass) Value(e specs.Element) (string, bool) {
	v, ok := p.elements[e]
	return v, ok
}

func (p *BoardingPass) value(e specs.Element) string {
	return p.elements[e]
}

// Elements returns a copy of the unique elements.
func (p *BoardingPass) Elements() map[specs.Element]string {
	return maps.Clone(p.elements)
}

// Segments returns a copy of the flight segments in leg order.
func (p *BoardingPass) Segments() []FlightSegment {
	return slices.Clone(p.segments)
}

// FirstSegment returns the first leg, or ok=false for a pass built without
// segments.
func (p *BoardingPass) FirstSegment() (FlightSegment, bool) {
	if len(p.segments) == 0 {
		return FlightSegment{}, false
	}
	return p.segments[0], true
}

// Trailing returns any bytes found after the last recognized section.
func (p *BoardingPass) Trailing() string {
	return p.trailing
}

func (p *BoardingPass) FormatCode() specs.FormatCode {
	return specs.ParseFormatCode(p.value(specs.ElementFormatCode))
}

// PassengerName returns the name field with padding removed, e.g. "DESMARAIS/LUC".
func (p *BoardingPass) PassengerName() string {
	return trimPadding(p.value(specs.ElementPassengerName))
}

// PassengerLastName returns the part of the name before the slash.
func (p *BoardingPass) PassengerLastName() string {
	last, _, _ := splitPassengerName(p.PassengerName())
	return last
}

// PassengerFirstName returns the part of the name after the slash, which
// may be empty.
func (p *BoardingPass) PassengerFirstName() string {
	_, first, _ := splitPassengerName(p.PassengerName())
	return first
}

func (p *BoardingPass) ElectronicTicketIndicator() string {
	return p.value(specs.ElementETicketIndicator)
}

func (p *BoardingPass) VersionNumber() string {
	return p.value(specs.ElementVersionNumber)
}

func (p *BoardingPass) PassengerDescription() specs.PassengerDescription {
	return specs.ParsePassengerDescription(p.value(specs.ElementPassengerDescription))
}

func (p *BoardingPass) SourceOfCheckIn() specs.CheckinSource {
	return specs.ParseCheckinSource(p.value(specs.ElementSourceOfCheckIn))
}

func (p *BoardingPass) SourceOfPassIssuance() specs.PassIssuanceSource {
	return specs.ParsePassIssuanceSource(p.value(specs.ElementSourceOfIssuance))
}

// DateOfPassIssuance returns the raw 4-digit issuance date (last digit of
// the year followed by the day of year).
func (p *BoardingPass) DateOfPassIssuance() string {
	return p.value(specs.ElementDateOfIssuance)
}

// IssuanceDate resolves DateOfPassIssuance to the latest matching calendar
// date that is not after now.
func (p *BoardingPass) IssuanceDate(now time.Time) (time.Time, bool) {
	return ResolveIssuanceDate(p.DateOfPassIssuance(), now)
}

func (p *BoardingPass) DocumentType() specs.DocumentType {
	return specs.ParseDocumentType(p.value(specs.ElementDocumentType))
}

func (p *BoardingPass) AirlineDesignatorOfIssuer() string {
	return trimPadding(p.value(specs.ElementIssuerDesignator))
}

func (p *BoardingPass) BaggageTagLicensePlate() string {
	return p.value(specs.ElementBaggageTag)
}

func (p *BoardingPass) SecurityData() SecurityData {
	return SecurityData{
		Type: p.value(specs.ElementSecurityDataType),
		Data: p.value(specs.ElementSecurityData),
	}
}

// Equal reports whether two passes carry the same elements, segments and
// trailing bytes.
func (p *BoardingPass) Equal(o *BoardingPass) bool {
	if p == o {
		return true
	}
	if p == nil || o == nil {
		return false
	}
	return maps.Equal(p.elements, o.elements) &&
		slices.EqualFunc(p.segments, o.segments, FlightSegment.Equal) &&
		p.trailing == o.trailing
}

// PassBuilder assembles a BoardingPass from unique elements and segments.
type PassBuilder struct {
	elements map[specs.Element]string
	segments []FlightSegment
	trailing string
}

func NewPassBuilder() *PassBuilder {
	return &PassBuilder{elements: make(map[specs.Element]string)}
}

// Element sets a unique element. Repeated (per-leg) elements are rejected
// with ErrOccurrence.
func (b *PassBuilder) Element(e specs.Element, v string) error {
	if e.Occurrence() != specs.OccurrenceUnique {
		return fmt.Errorf("%w: element (%s) does not have unique occurrence", ErrOccurrence, e)
	}
	b.put(e, v)
	return nil
}

func (b *PassBuilder) put(e specs.Element, v string) {
	b.elements[e] = v
}

// Segment appends a leg. A fifth leg is rejected with ErrTooManySegments.
func (b *PassBuilder) Segment(s FlightSegment) error {
	if len(b.segments) >= MaxSegments {
		return fmt.Errorf("%w: at most %d", ErrTooManySegments, MaxSegments)
	}
	b.segments = append(b.segments, s)
	return nil
}

// Build returns the pass. The builder may be reused; later changes do not
// affect passes already built.
func (b *PassBuilder) Build() *BoardingPass {
	return &BoardingPass{
		elements: maps.Clone(b.elements),
		segments: slices.Clone(b.segments),
		trailing: b.trailing,
	}
}

func trimPadding(s string) string {
	return strings.TrimFunc(s, func(r rune) bool { return r <= ' ' })
}

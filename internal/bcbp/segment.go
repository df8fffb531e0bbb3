package bcbp

import (
	"fmt"
	"maps"
	"strconv"
	"time"

	"github.com/gyeh/bcbpscan/internal/specs"
)

// FlightSegment holds the repeated elements of one leg.
type FlightSegment struct {
	elements map[specs.Element]string
}

// Value returns the raw value of a repeated element, or ok=false if the
// leg did not carry it.
func (s FlightSegment) Value(e specs.Element) (string, bool) {
	v, ok := s.elements[e]
	return v, ok
}

func (s FlightSegment) value(e specs.Element) string {
	return s.elements[e]
}

// Elements returns a copy of the leg's elements.
func (s FlightSegment) Elements() map[specs.Element]string {
	return maps.Clone(s.elements)
}

func (s FlightSegment) Equal(o FlightSegment) bool {
	return maps.Equal(s.elements, o.elements)
}

func (s FlightSegment) PNR() string {
	return trimPadding(s.value(specs.ElementPNRCode))
}

func (s FlightSegment) FromCity() string {
	return s.value(specs.ElementFromCity)
}

func (s FlightSegment) ToCity() string {
	return s.value(specs.ElementToCity)
}

func (s FlightSegment) OperatingCarrierDesignator() string {
	return trimPadding(s.value(specs.ElementOperatingCarrier))
}

func (s FlightSegment) FlightNumber() string {
	return trimPadding(s.value(specs.ElementFlightNumber))
}

// JulianDateOfFlight returns the day of year of the flight, or ok=false if
// the field is not numeric.
func (s FlightSegment) JulianDateOfFlight() (int, bool) {
	return atoi(s.value(specs.ElementDateOfFlight))
}

// DateOfFlight resolves the Julian date to a UTC calendar date nearest to now.
func (s FlightSegment) DateOfFlight(now time.Time) (time.Time, bool) {
	day, ok := s.JulianDateOfFlight()
	if !ok {
		return time.Time{}, false
	}
	return ResolveDayOfYear(day, now)
}

func (s FlightSegment) Compartment() specs.Compartment {
	return specs.ParseCompartment(s.value(specs.ElementCompartmentCode))
}

func (s FlightSegment) SeatNumber() string {
	return s.value(specs.ElementSeatNumber)
}

func (s FlightSegment) CheckInSequenceNumber() string {
	return trimPadding(s.value(specs.ElementCheckInSequence))
}

func (s FlightSegment) PassengerStatus() string {
	return s.value(specs.ElementPassengerStatus)
}

// AirlineNumericCode returns the 3-digit airline accounting code, or
// ok=false if absent or not numeric.
func (s FlightSegment) AirlineNumericCode() (int, bool) {
	return atoi(s.value(specs.ElementAirlineNumericCode))
}

func (s FlightSegment) SerialNumber() string {
	return s.value(specs.ElementSerialNumber)
}

func (s FlightSegment) SelecteeIndicator() string {
	return s.value(specs.ElementSelecteeIndicator)
}

func (s FlightSegment) InternationalDocumentVerification() specs.DocumentVerification {
	return specs.ParseDocumentVerification(s.value(specs.ElementDocumentVerification))
}

func (s FlightSegment) MarketingCarrierDesignator() string {
	return trimPadding(s.value(specs.ElementMarketingCarrier))
}

func (s FlightSegment) FrequentFlyerDesignator() string {
	return trimPadding(s.value(specs.ElementFrequentFlyerAirline))
}

func (s FlightSegment) FrequentFlyerNumber() string {
	return s.value(specs.ElementFrequentFlyerNumber)
}

func (s FlightSegment) IDADIndicator() string {
	return s.value(specs.ElementIDADIndicator)
}

func (s FlightSegment) FreeBaggageAllowance() string {
	return s.value(specs.ElementFreeBaggageAllowance)
}

func (s FlightSegment) FastTrack() string {
	return s.value(specs.ElementFastTrack)
}

// AirlineUse returns the free-form airline data that follows the
// structured conditional items.
func (s FlightSegment) AirlineUse() string {
	return s.value(specs.ElementAirlineUse)
}

// SegmentBuilder assembles a FlightSegment from repeated elements.
type SegmentBuilder struct {
	elements map[specs.Element]string
}

func NewSegmentBuilder() *SegmentBuilder {
	return &SegmentBuilder{elements: make(map[specs.Element]string)}
}

// Element sets a repeated element. Unique elements are rejected with
// ErrOccurrence.
func (b *SegmentBuilder) Element(e specs.Element, v string) error {
	if e.Occurrence() != specs.OccurrenceRepeated {
		return fmt.Errorf("%w: element (%s) does not have repeated occurrence", ErrOccurrence, e)
	}
	b.put(e, v)
	return nil
}

func (b *SegmentBuilder) put(e specs.Element, v string) {
	b.elements[e] = v
}

func (b *SegmentBuilder) Build() FlightSegment {
	return FlightSegment{elements: maps.Clone(b.elements)}
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

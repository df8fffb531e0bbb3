package bcbp

import (
	"strconv"

	"github.com/gyeh/bcbpscan/internal/specs"
)

const (
	versionMarker  = ">"
	securityMarker = "^"
)

var (
	headerLayout = []specs.Element{
		specs.ElementFormatCode,
		specs.ElementNumberOfLegs,
		specs.ElementPassengerName,
		specs.ElementETicketIndicator,
	}

	legLayout = []specs.Element{
		specs.ElementPNRCode,
		specs.ElementFromCity,
		specs.ElementToCity,
		specs.ElementOperatingCarrier,
		specs.ElementFlightNumber,
		specs.ElementDateOfFlight,
		specs.ElementCompartmentCode,
		specs.ElementSeatNumber,
		specs.ElementCheckInSequence,
		specs.ElementPassengerStatus,
	}

	uniqueConditionalLayout = []specs.Element{
		specs.ElementPassengerDescription,
		specs.ElementSourceOfCheckIn,
		specs.ElementSourceOfIssuance,
		specs.ElementDateOfIssuance,
		specs.ElementDocumentType,
		specs.ElementIssuerDesignator,
		specs.ElementBaggageTag,
		specs.ElementFirstBaggageTag,
		specs.ElementSecondBaggageTag,
	}

	repeatedConditionalLayout = []specs.Element{
		specs.ElementAirlineNumericCode,
		specs.ElementSerialNumber,
		specs.ElementSelecteeIndicator,
		specs.ElementDocumentVerification,
		specs.ElementMarketingCarrier,
		specs.ElementFrequentFlyerAirline,
		specs.ElementFrequentFlyerNumber,
		specs.ElementIDADIndicator,
		specs.ElementFreeBaggageAllowance,
		specs.ElementFastTrack,
	}
)

// Parse decodes a raw BCBP payload.
//
// Mandatory fields must be complete and every leg's variable field must fit
// in the payload. Conditional blocks are read leniently: a block shorter
// than its layout ends at the last field it reaches, and a declared block
// size larger than the enclosing field is clamped. Bytes after the last
// recognized section are kept as Trailing.
func Parse(raw string) (*BoardingPass, error) {
	c := newCursor(raw)
	pb := NewPassBuilder()

	for _, e := range headerLayout {
		v, ok := c.take(e.Size())
		if !ok {
			return nil, &ParseError{Element: e, Offset: c.pos, Err: ErrTruncated}
		}
		pb.put(e, v)
	}

	legs, ok := atoi(pb.elements[specs.ElementNumberOfLegs])
	if !ok || legs < 1 || legs > MaxSegments {
		return nil, &ParseError{Element: specs.ElementNumberOfLegs, Offset: 1, Err: ErrInvalidLegCount}
	}

	for i := 0; i < legs; i++ {
		seg, err := parseLeg(c, pb, i == 0)
		if err != nil {
			return nil, err
		}
		pb.segments = append(pb.segments, seg)
	}

	if err := parseSecurity(c, pb); err != nil {
		return nil, err
	}

	pb.trailing = c.rest()
	return pb.Build(), nil
}

func parseLeg(c *cursor, pb *PassBuilder, first bool) (FlightSegment, error) {
	sb := NewSegmentBuilder()
	for _, e := range legLayout {
		v, ok := c.take(e.Size())
		if !ok {
			return FlightSegment{}, &ParseError{Element: e, Offset: c.pos, Err: ErrTruncated}
		}
		sb.put(e, v)
	}

	size, raw, err := takeSize(c, specs.ElementVariableFieldSize)
	if err != nil {
		return FlightSegment{}, err
	}
	sb.put(specs.ElementVariableFieldSize, raw)

	if c.remaining() < size {
		return FlightSegment{}, &ParseError{Element: specs.ElementVariableFieldSize, Offset: c.pos, Err: ErrTruncated}
	}
	if err := parseVariableField(c.sub(size), pb, sb, first); err != nil {
		return FlightSegment{}, err
	}
	return sb.Build(), nil
}

// parseVariableField reads the conditional items of one leg. Only the first
// leg carries the version marker and the unique conditional block.
func parseVariableField(c *cursor, pb *PassBuilder, sb *SegmentBuilder, first bool) error {
	if first && c.hasPrefix(versionMarker) {
		pb.put(specs.ElementVersionMarker, c.takeUpTo(1))
		if v := c.takeUpTo(1); v != "" {
			pb.put(specs.ElementVersionNumber, v)
		}
		if c.remaining() > 0 {
			size, raw, err := takeSize(c, specs.ElementUniqueConditionalSize)
			if err != nil {
				return err
			}
			pb.put(specs.ElementUniqueConditionalSize, raw)
			readBlock(c.sub(size), uniqueConditionalLayout, pb.put)
		}
	}

	if c.remaining() >= 2 {
		size, raw, err := takeSize(c, specs.ElementRepeatedConditionalSize)
		if err != nil {
			return err
		}
		sb.put(specs.ElementRepeatedConditionalSize, raw)
		readBlock(c.sub(size), repeatedConditionalLayout, sb.put)
	}

	if rest := c.rest(); rest != "" {
		sb.put(specs.ElementAirlineUse, rest)
	}
	return nil
}

func parseSecurity(c *cursor, pb *PassBuilder) error {
	if !c.hasPrefix(securityMarker) {
		return nil
	}
	pb.put(specs.ElementSecurityMarker, c.takeUpTo(1))
	if v := c.takeUpTo(1); v != "" {
		pb.put(specs.ElementSecurityDataType, v)
	}
	if c.remaining() == 0 {
		return nil
	}

	size, raw, err := takeSize(c, specs.ElementSecurityDataLength)
	if err != nil {
		return err
	}
	pb.put(specs.ElementSecurityDataLength, raw)
	if v := c.takeUpTo(size); v != "" {
		pb.put(specs.ElementSecurityData, v)
	}
	return nil
}

// readBlock fills layout fields in order until the block runs out. The
// field that hits the end keeps whatever was left.
func readBlock(c *cursor, layout []specs.Element, put func(specs.Element, string)) {
	for _, e := range layout {
		if c.remaining() == 0 {
			return
		}
		put(e, c.takeUpTo(e.Size()))
	}
}

// takeSize reads a two-character hexadecimal length.
func takeSize(c *cursor, e specs.Element) (int, string, error) {
	offset := c.pos
	raw, ok := c.take(e.Size())
	if !ok {
		return 0, "", &ParseError{Element: e, Offset: offset, Err: ErrTruncated}
	}
	n, err := strconv.ParseUint(raw, 16, 8)
	if err != nil {
		return 0, "", &ParseError{Element: e, Offset: offset, Err: ErrInvalidFieldSize}
	}
	return int(n), raw, nil
}

package bcbp

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/gyeh/bcbpscan/internal/specs"
)

// maxBlockSize is the largest length a two-digit hex size field can carry.
const maxBlockSize = 0xFF

// Encode renders a pass in BCBP wire format. Size fields, markers and the
// leg count are computed from the content; a stored size element only marks
// its block as present. Fixed-width fields are space-padded. The last field of a
// conditional block is written as-is so a truncated block survives a
// Parse/Encode round trip.
func Encode(p *BoardingPass) (string, error) {
	if p == nil {
		return "", ErrNilPass
	}
	if len(p.segments) == 0 {
		return "", ErrNoSegments
	}
	if len(p.segments) > MaxSegments {
		return "", ErrTooManySegments
	}

	var b strings.Builder

	format := p.value(specs.ElementFormatCode)
	if format == "" {
		format = specs.FormatSingle.Value()
		if len(p.segments) > 1 {
			format = specs.FormatMultiple.Value()
		}
	}
	header := map[specs.Element]string{
		specs.ElementFormatCode:       format,
		specs.ElementNumberOfLegs:     strconv.Itoa(len(p.segments)),
		specs.ElementPassengerName:    p.value(specs.ElementPassengerName),
		specs.ElementETicketIndicator: p.value(specs.ElementETicketIndicator),
	}
	for _, e := range headerLayout {
		if err := writeFixed(&b, e, header[e]); err != nil {
			return "", err
		}
	}

	for i, seg := range p.segments {
		for _, e := range legLayout {
			if err := writeFixed(&b, e, seg.value(e)); err != nil {
				return "", err
			}
		}
		variable, err := encodeVariableField(p, seg, i == 0)
		if err != nil {
			return "", err
		}
		if err := writeSize(&b, specs.ElementVariableFieldSize, len(variable)); err != nil {
			return "", err
		}
		b.WriteString(variable)
	}

	sec := p.SecurityData()
	if _, ok := p.Value(specs.ElementSecurityMarker); ok || sec.Type != "" || sec.Data != "" {
		b.WriteString(securityMarker)
		if err := writeFixed(&b, specs.ElementSecurityDataType, sec.Type); err != nil {
			return "", err
		}
		if err := writeSize(&b, specs.ElementSecurityDataLength, len(sec.Data)); err != nil {
			return "", err
		}
		b.WriteString(sec.Data)
	}

	b.WriteString(p.trailing)
	return b.String(), nil
}

func encodeVariableField(p *BoardingPass, seg FlightSegment, first bool) (string, error) {
	var b strings.Builder

	if first {
		unique, err := encodeBlock(uniqueConditionalLayout, p.value)
		if err != nil {
			return "", err
		}
		_, hasVersion := p.Value(specs.ElementVersionNumber)
		_, hasSize := p.Value(specs.ElementUniqueConditionalSize)
		if unique != "" || hasVersion || hasSize {
			b.WriteString(versionMarker)
			if err := writeFixed(&b, specs.ElementVersionNumber, p.VersionNumber()); err != nil {
				return "", err
			}
			if err := writeSize(&b, specs.ElementUniqueConditionalSize, len(unique)); err != nil {
				return "", err
			}
			b.WriteString(unique)
		}
	}

	repeated, err := encodeBlock(repeatedConditionalLayout, seg.value)
	if err != nil {
		return "", err
	}
	airlineUse := seg.AirlineUse()
	_, hasSize := seg.Value(specs.ElementRepeatedConditionalSize)
	if repeated != "" || airlineUse != "" || hasSize {
		if err := writeSize(&b, specs.ElementRepeatedConditionalSize, len(repeated)); err != nil {
			return "", err
		}
		b.WriteString(repeated)
		b.WriteString(airlineUse)
	}
	return b.String(), nil
}

// encodeBlock writes layout fields up to the last one that has a value.
func encodeBlock(layout []specs.Element, get func(specs.Element) string) (string, error) {
	last := -1
	for i, e := range layout {
		if get(e) != "" {
			last = i
		}
	}

	var b strings.Builder
	for i := 0; i <= last; i++ {
		e := layout[i]
		v := get(e)
		if i == last && len(v) < e.Size() {
			b.WriteString(v)
			break
		}
		if err := writeFixed(&b, e, v); err != nil {
			return "", err
		}
	}
	return b.String(), nil
}

func writeFixed(b *strings.Builder, e specs.Element, v string) error {
	if len(v) > e.Size() {
		return fmt.Errorf("%w: %s is %d bytes, max %d", ErrFieldTooLong, e, len(v), e.Size())
	}
	b.WriteString(v)
	b.WriteString(strings.Repeat(" ", e.Size()-len(v)))
	return nil
}

func writeSize(b *strings.Builder, e specs.Element, n int) error {
	if n > maxBlockSize {
		return fmt.Errorf("%w: %s of %d exceeds %d", ErrFieldTooLong, e, n, maxBlockSize)
	}
	fmt.Fprintf(b, "%02X", n)
	return nil
}

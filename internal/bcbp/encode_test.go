package bcbp

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/bcbpscan/internal/specs"
)

func TestEncode_RoundTrip(t *testing.T) {
	for name, raw := range map[string]string{
		"minimal":  minimalPayload,
		"full":     fullPayload(),
		"multiLeg": multiLegPayload(),
		"trailing": minimalPayload + "trailer",
	} {
		t.Run(name, func(t *testing.T) {
			p, err := Parse(raw)
			require.NoError(t, err)
			out, err := Encode(p)
			require.NoError(t, err)
			assert.Equal(t, raw, out)
		})
	}
}

func TestEncode_TruncatedBlockKeepsValues(t *testing.T) {
	p, err := Parse("M1" + passHeader + leg1Mandatory + sized(">6"+"18"+"1WW6"))
	require.NoError(t, err)
	raw, err := Encode(p)
	require.NoError(t, err)

	again, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "6", again.DateOfPassIssuance())
	assert.Equal(t, specs.IssuanceWeb, again.SourceOfPassIssuance())
	size, _ := again.Value(specs.ElementUniqueConditionalSize)
	assert.Equal(t, "04", size, "size is recomputed from content")
}

func TestEncode_BuiltPass(t *testing.T) {
	sb := NewSegmentBuilder()
	for e, v := range map[specs.Element]string{
		specs.ElementPNRCode:              "XYZ9",
		specs.ElementFromCity:             "JFK",
		specs.ElementToCity:               "ORD",
		specs.ElementOperatingCarrier:     "AA",
		specs.ElementFlightNumber:         "100",
		specs.ElementDateOfFlight:         "045",
		specs.ElementCompartmentCode:      "F",
		specs.ElementSeatNumber:           "002A",
		specs.ElementCheckInSequence:      "7",
		specs.ElementPassengerStatus:      "0",
		specs.ElementFreeBaggageAllowance: "",
		specs.ElementAirlineNumericCode:   "001",
	} {
		require.NoError(t, sb.Element(e, v))
	}

	pb := NewPassBuilder()
	require.NoError(t, pb.Element(specs.ElementPassengerName, "DOE/JANE"))
	require.NoError(t, pb.Element(specs.ElementETicketIndicator, "E"))
	require.NoError(t, pb.Element(specs.ElementVersionNumber, "6"))
	require.NoError(t, pb.Element(specs.ElementPassengerDescription, "2"))
	require.NoError(t, pb.Segment(sb.Build()))

	raw, err := Encode(pb.Build())
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(raw, "S1DOE/JANE            E"), raw)

	p, err := Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, specs.FormatSingle, p.FormatCode())
	assert.Equal(t, "JANE", p.PassengerFirstName())
	assert.Equal(t, specs.PassengerFemale, p.PassengerDescription())
	seg, _ := p.FirstSegment()
	assert.Equal(t, "XYZ9", seg.PNR())
	assert.Equal(t, "100", seg.FlightNumber())
	assert.Equal(t, "7", seg.CheckInSequenceNumber())
	assert.Equal(t, specs.CompartmentF, seg.Compartment())
	code, ok := seg.AirlineNumericCode()
	assert.True(t, ok)
	assert.Equal(t, 1, code)
}

func TestEncode_Errors(t *testing.T) {
	_, err := Encode(nil)
	assert.ErrorIs(t, err, ErrNilPass)

	_, err = Encode(NewPassBuilder().Build())
	assert.True(t, errors.Is(err, ErrNoSegments))

	pb := NewPassBuilder()
	require.NoError(t, pb.Element(specs.ElementPassengerName, strings.Repeat("N", 21)))
	require.NoError(t, pb.Segment(NewSegmentBuilder().Build()))
	_, err = Encode(pb.Build())
	assert.True(t, errors.Is(err, ErrFieldTooLong), "got %v", err)
}

func TestBuilders_Occurrence(t *testing.T) {
	err := NewPassBuilder().Element(specs.ElementSeatNumber, "001A")
	assert.True(t, errors.Is(err, ErrOccurrence))

	err = NewSegmentBuilder().Element(specs.ElementPassengerName, "DOE/JOHN")
	assert.True(t, errors.Is(err, ErrOccurrence))
}

func TestPassBuilder_MaxSegments(t *testing.T) {
	pb := NewPassBuilder()
	for i := 0; i < MaxSegments; i++ {
		require.NoError(t, pb.Segment(NewSegmentBuilder().Build()))
	}
	err := pb.Segment(NewSegmentBuilder().Build())
	assert.True(t, errors.Is(err, ErrTooManySegments))
}

func TestPassBuilder_BuildIsolated(t *testing.T) {
	pb := NewPassBuilder()
	require.NoError(t, pb.Element(specs.ElementPassengerName, "A/B"))
	p := pb.Build()
	require.NoError(t, pb.Element(specs.ElementPassengerName, "C/D"))
	assert.Equal(t, "A/B", p.PassengerName())

	elems := p.Elements()
	elems[specs.ElementPassengerName] = "X"
	assert.Equal(t, "A/B", p.PassengerName())
}

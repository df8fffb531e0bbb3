package bcbp

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/bcbpscan/internal/specs"
)

// ---------- fixtures ----------

const (
	minimalPayload = "M1DESMARAIS/LUC       EABC123 YULFRAAC 0834 326J001A0025 100"

	passHeader    = "DESMARAIS/LUC       " + "E"
	leg1Mandatory = "ABC123 " + "YUL" + "FRA" + "AC " + "0834 " + "326" + "J" + "001A" + "0025 " + "1"
	leg2Mandatory = "ABC123 " + "FRA" + "GVA" + "LH " + "5708 " + "327" + "Y" + "012C" + "0102 " + "1"

	uniqueBlock = "1" + "W" + "W" + "6225" + "B" + "AC " + "0014123456002"
	leg1Repeat  = "014" + "1234567890" + "1" + "0" + "AC " + "AC " + "1234567890123   " + "0" + "2PC" + "N"
	leg2Repeat  = "220" + "2345678901" + " " + "1" + "LH " + "AC " + "1234567890123   " + " " + "1PC"
	signature   = "GIWVC5EH7JNT684FVNJ91W2QA4DVN5J8K4F0L0GE"
)

func hex2(n int) string { return fmt.Sprintf("%02X", n) }

func sized(s string) string { return hex2(len(s)) + s }

func fullPayload() string {
	variable := ">" + "6" + sized(uniqueBlock) + sized(leg1Repeat) + "AIRLINEDATA"
	return "M1" + passHeader + leg1Mandatory + sized(variable) + "^" + "1" + sized(signature)
}

func multiLegPayload() string {
	v1 := ">" + "6" + sized(uniqueBlock) + sized(leg1Repeat)
	v2 := sized(leg2Repeat) + "LH-DATA"
	return "M2" + passHeader + leg1Mandatory + sized(v1) + leg2Mandatory + sized(v2)
}

// ---------- parse ----------

func TestParse_Minimal(t *testing.T) {
	p, err := Parse(minimalPayload)
	require.NoError(t, err)

	assert.Equal(t, specs.FormatMultiple, p.FormatCode())
	assert.Equal(t, "DESMARAIS/LUC", p.PassengerName())
	assert.Equal(t, "DESMARAIS", p.PassengerLastName())
	assert.Equal(t, "LUC", p.PassengerFirstName())
	assert.Equal(t, "E", p.ElectronicTicketIndicator())
	assert.Equal(t, "", p.VersionNumber())
	assert.Equal(t, specs.PassengerUnknown, p.PassengerDescription())
	assert.Equal(t, "", p.Trailing())

	require.Len(t, p.Segments(), 1)
	seg, ok := p.FirstSegment()
	require.True(t, ok)
	assert.Equal(t, "ABC123", seg.PNR())
	assert.Equal(t, "YUL", seg.FromCity())
	assert.Equal(t, "FRA", seg.ToCity())
	assert.Equal(t, "AC", seg.OperatingCarrierDesignator())
	assert.Equal(t, "0834", seg.FlightNumber())
	day, ok := seg.JulianDateOfFlight()
	assert.True(t, ok)
	assert.Equal(t, 326, day)
	assert.Equal(t, specs.CompartmentJ, seg.Compartment())
	assert.Equal(t, "001A", seg.SeatNumber())
	assert.Equal(t, "0025", seg.CheckInSequenceNumber())
	assert.Equal(t, "1", seg.PassengerStatus())
	assert.Equal(t, specs.VerificationUnknown, seg.InternationalDocumentVerification())
	_, ok = seg.AirlineNumericCode()
	assert.False(t, ok)
}

func TestParse_Full(t *testing.T) {
	p, err := Parse(fullPayload())
	require.NoError(t, err)

	assert.Equal(t, "6", p.VersionNumber())
	assert.Equal(t, specs.PassengerMale, p.PassengerDescription())
	assert.Equal(t, specs.CheckinWeb, p.SourceOfCheckIn())
	assert.Equal(t, specs.IssuanceWeb, p.SourceOfPassIssuance())
	assert.Equal(t, "6225", p.DateOfPassIssuance())
	assert.Equal(t, specs.DocumentBoardingPass, p.DocumentType())
	assert.Equal(t, "AC", p.AirlineDesignatorOfIssuer())
	assert.Equal(t, "0014123456002", p.BaggageTagLicensePlate())
	assert.Equal(t, SecurityData{Type: "1", Data: signature}, p.SecurityData())

	_, ok := p.Value(specs.ElementFirstBaggageTag)
	assert.False(t, ok, "absent conditional items are not recorded")

	seg, ok := p.FirstSegment()
	require.True(t, ok)
	code, ok := seg.AirlineNumericCode()
	assert.True(t, ok)
	assert.Equal(t, 14, code)
	assert.Equal(t, "1234567890", seg.SerialNumber())
	assert.Equal(t, "1", seg.SelecteeIndicator())
	assert.Equal(t, specs.VerificationNotRequired, seg.InternationalDocumentVerification())
	assert.Equal(t, "AC", seg.MarketingCarrierDesignator())
	assert.Equal(t, "AC", seg.FrequentFlyerDesignator())
	assert.Equal(t, "1234567890123   ", seg.FrequentFlyerNumber())
	assert.Equal(t, "0", seg.IDADIndicator())
	assert.Equal(t, "2PC", seg.FreeBaggageAllowance())
	assert.Equal(t, "N", seg.FastTrack())
	assert.Equal(t, "AIRLINEDATA", seg.AirlineUse())
}

func TestParse_MultiLeg(t *testing.T) {
	p, err := Parse(multiLegPayload())
	require.NoError(t, err)

	segs := p.Segments()
	require.Len(t, segs, 2)
	assert.Equal(t, "FRA", segs[1].FromCity())
	assert.Equal(t, "GVA", segs[1].ToCity())
	assert.Equal(t, "LH", segs[1].OperatingCarrierDesignator())
	assert.Equal(t, specs.CompartmentY, segs[1].Compartment())
	assert.Equal(t, specs.VerificationRequired, segs[1].InternationalDocumentVerification())
	assert.Equal(t, "1PC", segs[1].FreeBaggageAllowance())
	assert.Equal(t, "", segs[1].FastTrack())
	assert.Equal(t, "LH-DATA", segs[1].AirlineUse())

	// The second leg never carries unique items.
	assert.Equal(t, specs.PassengerMale, p.PassengerDescription())
}

func TestParse_TruncatedConditionalBlock(t *testing.T) {
	// Unique block declares 0x18 bytes but the variable field only holds 4.
	variable := ">6" + "18" + "1WW6"
	p, err := Parse("M1" + passHeader + leg1Mandatory + sized(variable))
	require.NoError(t, err)

	assert.Equal(t, specs.PassengerMale, p.PassengerDescription())
	assert.Equal(t, "6", p.DateOfPassIssuance())
	_, ok := p.Value(specs.ElementDocumentType)
	assert.False(t, ok)
}

func TestParse_UnknownFormatCodeStillDecodes(t *testing.T) {
	p, err := Parse("X" + minimalPayload[1:])
	require.NoError(t, err)
	assert.Equal(t, specs.FormatUnknown, p.FormatCode())
	assert.Equal(t, "<unknown>", p.FormatCode().Description())
}

func TestParse_Trailing(t *testing.T) {
	p, err := Parse(minimalPayload + "garbage")
	require.NoError(t, err)
	assert.Equal(t, "garbage", p.Trailing())
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		element specs.Element
		offset  int
		err     error
	}{
		{"empty", "", specs.ElementFormatCode, 0, ErrTruncated},
		{"short name", "M1DESMARAIS", specs.ElementPassengerName, 2, ErrTruncated},
		{"zero legs", "M0" + minimalPayload[2:], specs.ElementNumberOfLegs, 1, ErrInvalidLegCount},
		{"five legs", "M5" + minimalPayload[2:], specs.ElementNumberOfLegs, 1, ErrInvalidLegCount},
		{"non-digit legs", "MX" + minimalPayload[2:], specs.ElementNumberOfLegs, 1, ErrInvalidLegCount},
		{"short leg", minimalPayload[:30], specs.ElementFromCity, 30, ErrTruncated},
		{"missing size", minimalPayload[:58], specs.ElementVariableFieldSize, 58, ErrTruncated},
		{"bad size", minimalPayload[:58] + "ZZ", specs.ElementVariableFieldSize, 58, ErrInvalidFieldSize},
		{"size overrun", minimalPayload[:58] + "05AB", specs.ElementVariableFieldSize, 60, ErrTruncated},
		{"second leg missing", "M2" + minimalPayload[2:], specs.ElementPNRCode, 60, ErrTruncated},
		{"bad unique size", minimalPayload[:58] + sized(">6QQ"), specs.ElementUniqueConditionalSize, 62, ErrInvalidFieldSize},
		{"bad repeated size", minimalPayload[:58] + sized("Q1"), specs.ElementRepeatedConditionalSize, 60, ErrInvalidFieldSize},
		{"bad security length", minimalPayload + "^1ZZ", specs.ElementSecurityDataLength, 62, ErrInvalidFieldSize},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(tt.in)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.err), "got %v, want %v", err, tt.err)

			var pe *ParseError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tt.element, pe.Element)
			assert.Equal(t, tt.offset, pe.Offset)
		})
	}
}

func TestParse_SecurityLengthClamped(t *testing.T) {
	p, err := Parse(minimalPayload + "^1FF" + "SHORT")
	require.NoError(t, err)
	assert.Equal(t, "SHORT", p.SecurityData().Data)
}

func TestParse_Idempotent(t *testing.T) {
	a, err := Parse(fullPayload())
	require.NoError(t, err)
	b, err := Parse(fullPayload())
	require.NoError(t, err)
	assert.True(t, a.Equal(b))
}

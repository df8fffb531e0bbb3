package specs

// Occurrence tells whether an element appears once per payload or once per leg.
type Occurrence uint8

const (
	OccurrenceUnique Occurrence = iota
	OccurrenceRepeated
)

func (o Occurrence) String() string {
	if o == OccurrenceRepeated {
		return "R"
	}
	return "U"
}

// Section is the part of the payload an element lives in.
type Section uint8

const (
	SectionMandatory Section = iota
	SectionConditional
	SectionSecurity
)

func (s Section) String() string {
	switch s {
	case SectionConditional:
		return "conditional"
	case SectionSecurity:
		return "security"
	default:
		return "mandatory"
	}
}

// Element is one field of the BCBP layout. Constants are declared in wire
// order.
type Element uint8

const (
	ElementFormatCode Element = iota
	ElementNumberOfLegs
	ElementPassengerName
	ElementETicketIndicator

	ElementPNRCode
	ElementFromCity
	ElementToCity
	ElementOperatingCarrier
	ElementFlightNumber
	ElementDateOfFlight
	ElementCompartmentCode
	ElementSeatNumber
	ElementCheckInSequence
	ElementPassengerStatus
	ElementVariableFieldSize

	ElementVersionMarker
	ElementVersionNumber
	ElementUniqueConditionalSize
	ElementPassengerDescription
	ElementSourceOfCheckIn
	ElementSourceOfIssuance
	ElementDateOfIssuance
	ElementDocumentType
	ElementIssuerDesignator
	ElementBaggageTag
	ElementFirstBaggageTag
	ElementSecondBaggageTag

	ElementRepeatedConditionalSize
	ElementAirlineNumericCode
	ElementSerialNumber
	ElementSelecteeIndicator
	ElementDocumentVerification
	ElementMarketingCarrier
	ElementFrequentFlyerAirline
	ElementFrequentFlyerNumber
	ElementIDADIndicator
	ElementFreeBaggageAllowance
	ElementFastTrack
	ElementAirlineUse

	ElementSecurityMarker
	ElementSecurityDataType
	ElementSecurityDataLength
	ElementSecurityData

	elementCount
)

type elementSpec struct {
	name       string
	size       int // 0 means variable
	occurrence Occurrence
	section    Section
}

const (
	occU = OccurrenceUnique
	occR = OccurrenceRepeated
	secM = SectionMandatory
	secC = SectionConditional
	secS = SectionSecurity
)

var elements = [elementCount]elementSpec{
	ElementFormatCode:       {"FORMAT_CODE", 1, occU, secM},
	ElementNumberOfLegs:     {"NUMBER_OF_LEGS_ENCODED", 1, occU, secM},
	ElementPassengerName:    {"PASSENGER_NAME", 20, occU, secM},
	ElementETicketIndicator: {"ELECTRONIC_TICKET_INDICATOR", 1, occU, secM},

	ElementPNRCode:           {"OPERATING_CARRIER_PNR_CODE", 7, occR, secM},
	ElementFromCity:          {"FROM_CITY_AIRPORT_CODE", 3, occR, secM},
	ElementToCity:            {"TO_CITY_AIRPORT_CODE", 3, occR, secM},
	ElementOperatingCarrier:  {"OPERATING_CARRIER_DESIGNATOR", 3, occR, secM},
	ElementFlightNumber:      {"FLIGHT_NUMBER", 5, occR, secM},
	ElementDateOfFlight:      {"DATE_OF_FLIGHT", 3, occR, secM},
	ElementCompartmentCode:   {"COMPARTMENT_CODE", 1, occR, secM},
	ElementSeatNumber:        {"SEAT_NUMBER", 4, occR, secM},
	ElementCheckInSequence:   {"CHECK_IN_SEQUENCE_NUMBER", 5, occR, secM},
	ElementPassengerStatus:   {"PASSENGER_STATUS", 1, occR, secM},
	ElementVariableFieldSize: {"FIELD_SIZE_OF_VARIABLE_SIZE_FIELD", 2, occR, secM},

	ElementVersionMarker:         {"BEGINNING_OF_VERSION_NUMBER", 1, occU, secC},
	ElementVersionNumber:         {"VERSION_NUMBER", 1, occU, secC},
	ElementUniqueConditionalSize: {"FIELD_SIZE_OF_FOLLOWING_STRUCTURED_MESSAGE_UNIQUE", 2, occU, secC},
	ElementPassengerDescription:  {"PASSENGER_DESCRIPTION", 1, occU, secC},
	ElementSourceOfCheckIn:       {"SOURCE_OF_CHECK_IN", 1, occU, secC},
	ElementSourceOfIssuance:      {"SOURCE_OF_BOARDING_PASS_ISSUANCE", 1, occU, secC},
	ElementDateOfIssuance:        {"DATE_OF_PASS_ISSUANCE", 4, occU, secC},
	ElementDocumentType:          {"DOCUMENT_TYPE", 1, occU, secC},
	ElementIssuerDesignator:      {"AIRLINE_DESIGNATOR_OF_ISSUER", 3, occU, secC},
	ElementBaggageTag:            {"BAGGAGE_TAG_LICENSE_PLATE", 13, occU, secC},
	ElementFirstBaggageTag:       {"FIRST_NON_CONSECUTIVE_BAGGAGE_TAG", 13, occU, secC},
	ElementSecondBaggageTag:      {"SECOND_NON_CONSECUTIVE_BAGGAGE_TAG", 13, occU, secC},

	ElementRepeatedConditionalSize: {"FIELD_SIZE_OF_FOLLOWING_STRUCTURED_MESSAGE_REPEATED", 2, occR, secC},
	ElementAirlineNumericCode:      {"AIRLINE_NUMERIC_CODE", 3, occR, secC},
	ElementSerialNumber:            {"DOCUMENT_FORM_SERIAL_NUMBER", 10, occR, secC},
	ElementSelecteeIndicator:       {"SELECTEE_INDICATOR", 1, occR, secC},
	ElementDocumentVerification:    {"INTERNATIONAL_DOCUMENT_VERIFICATION", 1, occR, secC},
	ElementMarketingCarrier:        {"MARKETING_CARRIER_DESIGNATOR", 3, occR, secC},
	ElementFrequentFlyerAirline:    {"FREQUENT_FLYER_AIRLINE_DESIGNATOR", 3, occR, secC},
	ElementFrequentFlyerNumber:     {"FREQUENT_FLYER_NUMBER", 16, occR, secC},
	ElementIDADIndicator:           {"ID_AD_INDICATOR", 1, occR, secC},
	ElementFreeBaggageAllowance:    {"FREE_BAGGAGE_ALLOWANCE", 3, occR, secC},
	ElementFastTrack:               {"FAST_TRACK", 1, occR, secC},
	ElementAirlineUse:              {"FOR_AIRLINE_USE", 0, occR, secC},

	ElementSecurityMarker:     {"BEGINNING_OF_SECURITY_DATA", 1, occU, secS},
	ElementSecurityDataType:   {"TYPE_OF_SECURITY_DATA", 1, occU, secS},
	ElementSecurityDataLength: {"LENGTH_OF_SECURITY_DATA", 2, occU, secS},
	ElementSecurityData:       {"SECURITY_DATA", 0, occU, secS},
}

// Elements returns every element in wire order.
func Elements() []Element {
	out := make([]Element, elementCount)
	for i := range out {
		out[i] = Element(i)
	}
	return out
}

// ElementByName returns the element with the given layout name, or ok=false.
func ElementByName(name string) (Element, bool) {
	for i, e := range elements {
		if e.name == name {
			return Element(i), true
		}
	}
	return 0, false
}

func (e Element) valid() bool { return e < elementCount }

// Name returns the layout name, e.g. "FORMAT_CODE".
func (e Element) Name() string {
	if !e.valid() {
		return "UNKNOWN_ELEMENT"
	}
	return elements[e].name
}

// Size returns the fixed field width, or 0 for variable-length elements.
func (e Element) Size() int {
	if !e.valid() {
		return 0
	}
	return elements[e].size
}

func (e Element) Occurrence() Occurrence {
	if !e.valid() {
		return OccurrenceUnique
	}
	return elements[e].occurrence
}

func (e Element) Section() Section {
	if !e.valid() {
		return SectionMandatory
	}
	return elements[e].section
}

func (e Element) String() string { return e.Name() }

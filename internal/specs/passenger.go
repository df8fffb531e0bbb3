package specs

// PassengerDescription is the passenger category carried in the
// conditional section.
type PassengerDescription uint8

const (
	PassengerUnknown PassengerDescription = iota
	PassengerAdult
	PassengerMale
	PassengerFemale
	PassengerChild
	PassengerInfant
	PassengerNone
	PassengerAdultWithInfant
	PassengerUnaccompaniedMinor
)

var passengerDescriptions = [...]entry{
	PassengerUnknown:            {name: unknownName, value: "", description: unknownDescription},
	PassengerAdult:              {name: "ADULT", value: "0", description: "Adult"},
	PassengerMale:               {name: "MALE", value: "1", description: "Male"},
	PassengerFemale:             {name: "FEMALE", value: "2", description: "Female"},
	PassengerChild:              {name: "CHILD", value: "3", description: "Child"},
	PassengerInfant:             {name: "INFANT", value: "4", description: "Infant"},
	PassengerNone:               {name: "NO_PASSENGER", value: "5", description: "No passenger (cabin baggage)"},
	PassengerAdultWithInfant:    {name: "ADULT_WITH_INFANT", value: "6", description: "Adult traveling with infant"},
	PassengerUnaccompaniedMinor: {name: "UNACCOMPANIED_MINOR", value: "7", description: "Unaccompanied minor"},
}

var passengerDescriptionOrder = []PassengerDescription{
	PassengerAdult,
	PassengerMale,
	PassengerFemale,
	PassengerChild,
	PassengerInfant,
	PassengerNone,
	PassengerAdultWithInfant,
	PassengerUnaccompaniedMinor,
	PassengerUnknown,
}

func ParsePassengerDescription(s string) PassengerDescription {
	return lookup(passengerDescriptionOrder, passengerDescriptions[:], s, PassengerUnknown)
}

func (p PassengerDescription) Name() string {
	return at(passengerDescriptions[:], p, PassengerUnknown).name
}

func (p PassengerDescription) Value() string {
	return at(passengerDescriptions[:], p, PassengerUnknown).value
}

func (p PassengerDescription) Description() string {
	return at(passengerDescriptions[:], p, PassengerUnknown).description
}

func (p PassengerDescription) String() string { return p.Name() }

func (p PassengerDescription) MarshalText() ([]byte, error) { return []byte(p.Value()), nil }

func (p *PassengerDescription) UnmarshalText(b []byte) error {
	*p = ParsePassengerDescription(string(b))
	return nil
}

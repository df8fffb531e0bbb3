package specs

// Compartment is the fare/cabin compartment code of a leg. Constants are
// named after their wire letter since several letters share a cabin.
type Compartment uint8

const (
	CompartmentUnknown Compartment = iota
	CompartmentR
	CompartmentP
	CompartmentF
	CompartmentA
	CompartmentJ
	CompartmentC
	CompartmentD
	CompartmentI
	CompartmentZ
	CompartmentW
	CompartmentS
	CompartmentY
	CompartmentB
	CompartmentH
	CompartmentK
	CompartmentL
	CompartmentM
	CompartmentN
	CompartmentQ
	CompartmentT
	CompartmentV
	CompartmentX
)

const (
	firstDiscounted    = "First class discounted"
	businessDiscounted = "Business class discounted"
	economy            = "Economy/coach"
	economyDiscounted  = "Economy/coach discounted"
)

var compartments = [...]entry{
	CompartmentUnknown: {name: unknownName, value: "", description: unknownDescription},
	CompartmentR:       {name: "SUPERSONIC", value: "R", description: "Supersonic"},
	CompartmentP:       {name: "FIRST_PREMIUM", value: "P", description: "First class premium"},
	CompartmentF:       {name: "FIRST", value: "F", description: "First class"},
	CompartmentA:       {name: "FIRST_DISCOUNTED", value: "A", description: firstDiscounted},
	CompartmentJ:       {name: "BUSINESS_PREMIUM", value: "J", description: "Business class premium"},
	CompartmentC:       {name: "BUSINESS", value: "C", description: "Business class"},
	CompartmentD:       {name: "BUSINESS_DISCOUNTED_D", value: "D", description: businessDiscounted},
	CompartmentI:       {name: "BUSINESS_DISCOUNTED_I", value: "I", description: businessDiscounted},
	CompartmentZ:       {name: "BUSINESS_DISCOUNTED_Z", value: "Z", description: businessDiscounted},
	CompartmentW:       {name: "ECONOMY_PREMIUM", value: "W", description: "Economy/coach premium"},
	CompartmentS:       {name: "ECONOMY_S", value: "S", description: economy},
	CompartmentY:       {name: "ECONOMY_Y", value: "Y", description: economy},
	CompartmentB:       {name: "ECONOMY_DISCOUNTED_B", value: "B", description: economyDiscounted},
	CompartmentH:       {name: "ECONOMY_DISCOUNTED_H", value: "H", description: economyDiscounted},
	CompartmentK:       {name: "ECONOMY_DISCOUNTED_K", value: "K", description: economyDiscounted},
	CompartmentL:       {name: "ECONOMY_DISCOUNTED_L", value: "L", description: economyDiscounted},
	CompartmentM:       {name: "ECONOMY_DISCOUNTED_M", value: "M", description: economyDiscounted},
	CompartmentN:       {name: "ECONOMY_DISCOUNTED_N", value: "N", description: economyDiscounted},
	CompartmentQ:       {name: "ECONOMY_DISCOUNTED_Q", value: "Q", description: economyDiscounted},
	CompartmentT:       {name: "ECONOMY_DISCOUNTED_T", value: "T", description: economyDiscounted},
	CompartmentV:       {name: "ECONOMY_DISCOUNTED_V", value: "V", description: economyDiscounted},
	CompartmentX:       {name: "ECONOMY_DISCOUNTED_X", value: "X", description: economyDiscounted},
}

var compartmentOrder = []Compartment{
	CompartmentR,
	CompartmentP, CompartmentF, CompartmentA,
	CompartmentJ, CompartmentC, CompartmentD, CompartmentI, CompartmentZ,
	CompartmentW, CompartmentS, CompartmentY,
	CompartmentB, CompartmentH, CompartmentK, CompartmentL, CompartmentM,
	CompartmentN, CompartmentQ, CompartmentT, CompartmentV, CompartmentX,
	CompartmentUnknown,
}

func ParseCompartment(s string) Compartment {
	return lookup(compartmentOrder, compartments[:], s, CompartmentUnknown)
}

func (c Compartment) Name() string        { return at(compartments[:], c, CompartmentUnknown).name }
func (c Compartment) Value() string       { return at(compartments[:], c, CompartmentUnknown).value }
func (c Compartment) Description() string { return at(compartments[:], c, CompartmentUnknown).description }
func (c Compartment) String() string      { return c.Name() }

func (c Compartment) MarshalText() ([]byte, error) { return []byte(c.Value()), nil }

func (c *Compartment) UnmarshalText(b []byte) error {
	*c = ParseCompartment(string(b))
	return nil
}

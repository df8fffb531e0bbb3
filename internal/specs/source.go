package specs

// CheckinSource is where the passenger checked in.
type CheckinSource uint8

const (
	CheckinUnknown CheckinSource = iota
	CheckinWeb
	CheckinAirportKiosk
	CheckinRemoteKiosk
	CheckinMobile
	CheckinAirportAgent
	CheckinTownAgent
	CheckinThirdParty
)

var checkinSources = [...]entry{
	CheckinUnknown:      {name: unknownName, value: "", description: unknownDescription},
	CheckinWeb:          {name: "WEB", value: "W", description: "Web"},
	CheckinAirportKiosk: {name: "AIRPORT_KIOSK", value: "K", description: "Airport kiosk"},
	CheckinRemoteKiosk:  {name: "REMOTE_KIOSK", value: "R", description: "Remote or off site kiosk"},
	CheckinMobile:       {name: "MOBILE", value: "M", description: "Mobile device"},
	CheckinAirportAgent: {name: "AIRPORT_AGENT", value: "O", description: "Airport agent"},
	CheckinTownAgent:    {name: "TOWN_AGENT", value: "T", description: "Town agent"},
	CheckinThirdParty:   {name: "THIRD_PARTY", value: "V", description: "Third party vendor"},
}

var checkinSourceOrder = []CheckinSource{
	CheckinWeb,
	CheckinAirportKiosk,
	CheckinRemoteKiosk,
	CheckinMobile,
	CheckinAirportAgent,
	CheckinTownAgent,
	CheckinThirdParty,
	CheckinUnknown,
}

func ParseCheckinSource(s string) CheckinSource {
	return lookup(checkinSourceOrder, checkinSources[:], s, CheckinUnknown)
}

func (c CheckinSource) Name() string        { return at(checkinSources[:], c, CheckinUnknown).name }
func (c CheckinSource) Value() string       { return at(checkinSources[:], c, CheckinUnknown).value }
func (c CheckinSource) Description() string { return at(checkinSources[:], c, CheckinUnknown).description }
func (c CheckinSource) String() string      { return c.Name() }

func (c CheckinSource) MarshalText() ([]byte, error) { return []byte(c.Value()), nil }

func (c *CheckinSource) UnmarshalText(b []byte) error {
	*c = ParseCheckinSource(string(b))
	return nil
}

// PassIssuanceSource is where the boarding pass was issued. It shares most
// tokens with CheckinSource and adds the transfer kiosk.
type PassIssuanceSource uint8

const (
	IssuanceUnknown PassIssuanceSource = iota
	IssuanceWeb
	IssuanceAirportKiosk
	IssuanceTransferKiosk
	IssuanceRemoteKiosk
	IssuanceMobile
	IssuanceAirportAgent
	IssuanceTownAgent
	IssuanceThirdParty
)

var passIssuanceSources = [...]entry{
	IssuanceUnknown:       {name: unknownName, value: "", description: unknownDescription},
	IssuanceWeb:           {name: "WEB", value: "W", description: "Web printed"},
	IssuanceAirportKiosk:  {name: "AIRPORT_KIOSK", value: "K", description: "Airport kiosk printed"},
	IssuanceTransferKiosk: {name: "TRANSFER_KIOSK", value: "X", description: "Transfer kiosk printed"},
	IssuanceRemoteKiosk:   {name: "REMOTE_KIOSK", value: "R", description: "Remote or off site kiosk printed"},
	IssuanceMobile:        {name: "MOBILE", value: "M", description: "Mobile device printed"},
	IssuanceAirportAgent:  {name: "AIRPORT_AGENT", value: "O", description: "Airport agent printed"},
	IssuanceTownAgent:     {name: "TOWN_AGENT", value: "T", description: "Town agent printed"},
	IssuanceThirdParty:    {name: "THIRD_PARTY", value: "V", description: "Third party vendor printed"},
}

var passIssuanceSourceOrder = []PassIssuanceSource{
	IssuanceWeb,
	IssuanceAirportKiosk,
	IssuanceTransferKiosk,
	IssuanceRemoteKiosk,
	IssuanceMobile,
	IssuanceAirportAgent,
	IssuanceTownAgent,
	IssuanceThirdParty,
	IssuanceUnknown,
}

func ParsePassIssuanceSource(s string) PassIssuanceSource {
	return lookup(passIssuanceSourceOrder, passIssuanceSources[:], s, IssuanceUnknown)
}

func (p PassIssuanceSource) Name() string { return at(passIssuanceSources[:], p, IssuanceUnknown).name }
func (p PassIssuanceSource) Value() string {
	return at(passIssuanceSources[:], p, IssuanceUnknown).value
}
func (p PassIssuanceSource) Description() string {
	return at(passIssuanceSources[:], p, IssuanceUnknown).description
}
func (p PassIssuanceSource) String() string { return p.Name() }

func (p PassIssuanceSource) MarshalText() ([]byte, error) { return []byte(p.Value()), nil }

func (p *PassIssuanceSource) UnmarshalText(b []byte) error {
	*p = ParsePassIssuanceSource(string(b))
	return nil
}

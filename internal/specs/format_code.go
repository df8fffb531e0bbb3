package specs

// FormatCode tells whether a payload encodes a single leg or multiple legs.
// The zero value is FormatUnknown.
type FormatCode uint8

const (
	FormatUnknown FormatCode = iota
	FormatSingle
	FormatMultiple
)

var formatCodes = [...]entry{
	FormatUnknown:  {name: unknownName, value: "", description: unknownDescription},
	FormatSingle:   {name: "SINGLE", value: "S", description: "Single"},
	FormatMultiple: {name: "MULTIPLE", value: "M", description: "Multiple"},
}

var formatCodeOrder = []FormatCode{FormatSingle, FormatMultiple, FormatUnknown}

// FormatCodes returns the format codes in scan order.
func FormatCodes() []FormatCode {
	return append([]FormatCode(nil), formatCodeOrder...)
}

// ParseFormatCode returns the format code whose wire value equals s
// exactly, or FormatUnknown.
func ParseFormatCode(s string) FormatCode {
	return lookup(formatCodeOrder, formatCodes[:], s, FormatUnknown)
}

func (c FormatCode) Name() string        { return at(formatCodes[:], c, FormatUnknown).name }
func (c FormatCode) Value() string       { return at(formatCodes[:], c, FormatUnknown).value }
func (c FormatCode) Description() string { return at(formatCodes[:], c, FormatUnknown).description }
func (c FormatCode) String() string      { return c.Name() }

// MarshalText encodes the code as its wire value.
func (c FormatCode) MarshalText() ([]byte, error) { return []byte(c.Value()), nil }

// UnmarshalText decodes a wire value. Unrecognized values become FormatUnknown.
func (c *FormatCode) UnmarshalText(b []byte) error {
	*c = ParseFormatCode(string(b))
	return nil
}

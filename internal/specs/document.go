package specs

// DocumentType distinguishes boarding passes from itinerary receipts.
type DocumentType uint8

const (
	DocumentUnknown DocumentType = iota
	DocumentBoardingPass
	DocumentItineraryReceipt
)

var documentTypes = [...]entry{
	DocumentUnknown:          {name: unknownName, value: "", description: unknownDescription},
	DocumentBoardingPass:     {name: "BOARDING_PASS", value: "B", description: "Boarding pass"},
	DocumentItineraryReceipt: {name: "ITINERARY_RECEIPT", value: "I", description: "Itinerary receipt"},
}

var documentTypeOrder = []DocumentType{DocumentBoardingPass, DocumentItineraryReceipt, DocumentUnknown}

func ParseDocumentType(s string) DocumentType {
	return lookup(documentTypeOrder, documentTypes[:], s, DocumentUnknown)
}

func (d DocumentType) Name() string        { return at(documentTypes[:], d, DocumentUnknown).name }
func (d DocumentType) Value() string       { return at(documentTypes[:], d, DocumentUnknown).value }
func (d DocumentType) Description() string { return at(documentTypes[:], d, DocumentUnknown).description }
func (d DocumentType) String() string      { return d.Name() }

func (d DocumentType) MarshalText() ([]byte, error) { return []byte(d.Value()), nil }

func (d *DocumentType) UnmarshalText(b []byte) error {
	*d = ParseDocumentType(string(b))
	return nil
}

// DocumentVerification is the international document verification status
// of a leg.
type DocumentVerification uint8

const (
	VerificationUnknown DocumentVerification = iota
	VerificationNotRequired
	VerificationRequired
	VerificationPerformed
)

var documentVerifications = [...]entry{
	VerificationUnknown:     {name: unknownName, value: "", description: unknownDescription},
	VerificationNotRequired: {name: "NOT_REQUIRED", value: "0", description: "Travel document verification not required"},
	VerificationRequired:    {name: "REQUIRED", value: "1", description: "Travel document verification required"},
	VerificationPerformed:   {name: "PERFORMED", value: "2", description: "Travel document verification performed"},
}

var documentVerificationOrder = []DocumentVerification{
	VerificationNotRequired,
	VerificationRequired,
	VerificationPerformed,
	VerificationUnknown,
}

func ParseDocumentVerification(s string) DocumentVerification {
	return lookup(documentVerificationOrder, documentVerifications[:], s, VerificationUnknown)
}

func (d DocumentVerification) Name() string {
	return at(documentVerifications[:], d, VerificationUnknown).name
}

func (d DocumentVerification) Value() string {
	return at(documentVerifications[:], d, VerificationUnknown).value
}

func (d DocumentVerification) Description() string {
	return at(documentVerifications[:], d, VerificationUnknown).description
}

func (d DocumentVerification) String() string { return d.Name() }

func (d DocumentVerification) MarshalText() ([]byte, error) { return []byte(d.Value()), nil }

func (d *DocumentVerification) UnmarshalText(b []byte) error {
	*d = ParseDocumentVerification(string(b))
	return nil
}

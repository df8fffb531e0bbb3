// Package specs holds the closed code sets and the field layout of IATA
// Bar Coded Boarding Pass (BCBP) payloads.
//
// Every code set follows the same contract: a fixed, ordered table of
// entries, each with a symbolic name, a wire value and a description.
// Parsing scans the table in order and returns the first entry whose value
// equals the input exactly. Input that matches nothing resolves to the
// set's Unknown entry, whose value is "" and whose description is
// "<unknown>". Parsing never fails.
package specs

import "sort"

const unknownName = "UNKNOWN"

const unknownDescription = "<unknown>"

// entry is one member of a closed code set.
type entry struct {
	name        string
	value       string
	description string
}

// lookup returns the first code in order whose wire value equals s.
func lookup[T ~uint8](order []T, table []entry, s string, fallback T) T {
	for _, c := range order {
		if table[c].value == s {
			return c
		}
	}
	return fallback
}

// at returns the table entry for c, or the fallback entry if c is out of range.
func at[T ~uint8](table []entry, c, fallback T) entry {
	if int(c) < len(table) {
		return table[c]
	}
	return table[fallback]
}

// Entry is the exported view of one code set member.
type Entry struct {
	Name        string `json:"name"`
	Value       string `json:"value"`
	Description string `json:"description"`
}

// Registry is a read-only view over one code set, used by callers that
// work with code kinds generically (the HTTP API, the CLI listing).
type Registry struct {
	kind    string
	entries []Entry
}

func newRegistry[T ~uint8](kind string, order []T, table []entry) Registry {
	entries := make([]Entry, len(order))
	for i, c := range order {
		e := table[c]
		entries[i] = Entry{Name: e.name, Value: e.value, Description: e.description}
	}
	return Registry{kind: kind, entries: entries}
}

// Kind returns the registry's name, e.g. "format_code".
func (r Registry) Kind() string { return r.kind }

// Entries returns the registry's entries in scan order. The returned slice
// is a copy.
func (r Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// Parse resolves a wire value to an entry with the same first-match
// semantics as the typed Parse functions.
func (r Registry) Parse(value string) Entry {
	var fallback Entry
	for _, e := range r.entries {
		if e.Value == value {
			return e
		}
		if e.Name == unknownName {
			fallback = e
		}
	}
	return fallback
}

var registries = map[string]Registry{
	"format_code":           newRegistry("format_code", formatCodeOrder, formatCodes[:]),
	"passenger_description": newRegistry("passenger_description", passengerDescriptionOrder, passengerDescriptions[:]),
	"checkin_source":        newRegistry("checkin_source", checkinSourceOrder, checkinSources[:]),
	"pass_issuance_source":  newRegistry("pass_issuance_source", passIssuanceSourceOrder, passIssuanceSources[:]),
	"document_type":         newRegistry("document_type", documentTypeOrder, documentTypes[:]),
	"compartment":           newRegistry("compartment", compartmentOrder, compartments[:]),
	"document_verification": newRegistry("document_verification", documentVerificationOrder, documentVerifications[:]),
}

// Registries returns every code set, sorted by kind.
func Registries() []Registry {
	out := make([]Registry, 0, len(registries))
	for _, r := range registries {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].kind < out[j].kind })
	return out
}

// RegistryByKind returns the code set named kind, or ok=false.
func RegistryByKind(kind string) (Registry, bool) {
	r, ok := registries[kind]
	return r, ok
}

package specs

import (
	"encoding/json"
	"sync"
	"testing"
)

func TestParseFormatCode(t *testing.T) {
	tests := []struct {
		in          string
		want        FormatCode
		value       string
		description string
	}{
		{"S", FormatSingle, "S", "Single"},
		{"M", FormatMultiple, "M", "Multiple"},
		{"", FormatUnknown, "", "<unknown>"},
		{"s", FormatUnknown, "", "<unknown>"},
		{"m", FormatUnknown, "", "<unknown>"},
		{"X", FormatUnknown, "", "<unknown>"},
		{" S", FormatUnknown, "", "<unknown>"},
		{"S ", FormatUnknown, "", "<unknown>"},
		{"SM", FormatUnknown, "", "<unknown>"},
	}
	for _, tt := range tests {
		got := ParseFormatCode(tt.in)
		if got != tt.want {
			t.Errorf("ParseFormatCode(%q) = %v, want %v", tt.in, got, tt.want)
		}
		if got.Value() != tt.value {
			t.Errorf("ParseFormatCode(%q).Value() = %q, want %q", tt.in, got.Value(), tt.value)
		}
		if got.Description() != tt.description {
			t.Errorf("ParseFormatCode(%q).Description() = %q, want %q", tt.in, got.Description(), tt.description)
		}
	}
}

func TestParseFormatCode_ValueRoundTrip(t *testing.T) {
	for _, c := range []FormatCode{FormatSingle, FormatMultiple} {
		if got := ParseFormatCode(c.Value()); got != c {
			t.Errorf("ParseFormatCode(%q) = %v, want %v", c.Value(), got, c)
		}
	}
}

func TestParseFormatCode_AbsentElement(t *testing.T) {
	// A missing map entry reads as "", which must resolve to the fallback.
	elements := map[string]string{}
	if got := ParseFormatCode(elements["format"]); got != FormatUnknown {
		t.Errorf("absent element parsed to %v, want FormatUnknown", got)
	}
}

func TestFormatCode_ZeroValueIsUnknown(t *testing.T) {
	var c FormatCode
	if c != FormatUnknown {
		t.Fatalf("zero value = %v, want FormatUnknown", c)
	}
	if c.Name() != "UNKNOWN" {
		t.Errorf("Name() = %q, want UNKNOWN", c.Name())
	}
}

func TestFormatCode_OutOfRangeFallsBack(t *testing.T) {
	c := FormatCode(200)
	if c.Value() != "" || c.Description() != "<unknown>" {
		t.Errorf("out of range code = (%q, %q), want fallback entry", c.Value(), c.Description())
	}
}

func TestFormatCodes_Order(t *testing.T) {
	got := FormatCodes()
	want := []FormatCode{FormatSingle, FormatMultiple, FormatUnknown}
	if len(got) != len(want) {
		t.Fatalf("FormatCodes() len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("FormatCodes()[%d] = %v, want %v", i, got[i], want[i])
		}
	}

	// Mutating the returned slice must not leak into the registry.
	got[0] = FormatUnknown
	if ParseFormatCode("S") != FormatSingle {
		t.Error("registry changed after mutating FormatCodes() result")
	}
}

func TestFormatCode_JSON(t *testing.T) {
	type doc struct {
		Format FormatCode `json:"format"`
	}
	b, err := json.Marshal(doc{Format: FormatMultiple})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(b) != `{"format":"M"}` {
		t.Errorf("marshal = %s", b)
	}

	var d doc
	if err := json.Unmarshal([]byte(`{"format":"Q"}`), &d); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if d.Format != FormatUnknown {
		t.Errorf("unmarshal unrecognized = %v, want FormatUnknown", d.Format)
	}
}

func TestParseFormatCode_ConcurrentReaders(t *testing.T) {
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				if ParseFormatCode("S") != FormatSingle || ParseFormatCode("?") != FormatUnknown {
					t.Error("inconsistent parse result under concurrency")
					return
				}
			}
		}()
	}
	wg.Wait()
}

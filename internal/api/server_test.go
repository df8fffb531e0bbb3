package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gyeh/bcbpscan/internal/airports"
	"github.com/gyeh/bcbpscan/internal/specs"
)

const minimalPayload = "M1DESMARAIS/LUC       EABC123 YULFRAAC 0834 326J001A0025 100"

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	cities := airports.New(
		[]airports.Airport{{Code: "YUL", CityCode: "YMQ"}},
		[]airports.City{{Code: "YMQ", Name: "Montreal"}},
	)
	s := NewServer(zerolog.Nop(), cities)
	s.now = func() time.Time { return time.Date(2026, time.November, 1, 12, 0, 0, 0, time.UTC) }
	return s
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	w := httptest.NewRecorder()
	s.Router().ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	w := do(t, newTestServer(), http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestCodesList(t *testing.T) {
	w := do(t, newTestServer(), http.MethodGet, "/api/v1/codes", "")
	require.Equal(t, http.StatusOK, w.Code)

	var got []registryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got, len(specs.Registries()))

	kinds := make([]string, len(got))
	for i, r := range got {
		kinds[i] = r.Kind
		assert.NotEmpty(t, r.Entries, r.Kind)
	}
	assert.Contains(t, kinds, "format_code")
	assert.Contains(t, kinds, "compartment")
}

func TestCodesKind(t *testing.T) {
	s := newTestServer()

	w := do(t, s, http.MethodGet, "/api/v1/codes/format_code", "")
	require.Equal(t, http.StatusOK, w.Code)
	var got registryView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, []specs.Entry{
		{Name: "SINGLE", Value: "S", Description: "Single"},
		{Name: "MULTIPLE", Value: "M", Description: "Multiple"},
		{Name: "UNKNOWN", Value: "", Description: "<unknown>"},
	}, got.Entries)

	w = do(t, s, http.MethodGet, "/api/v1/codes/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCodeParse(t *testing.T) {
	s := newTestServer()
	tests := []struct {
		path string
		want specs.Entry
	}{
		{"/api/v1/codes/format_code/M", specs.Entry{Name: "MULTIPLE", Value: "M", Description: "Multiple"}},
		{"/api/v1/codes/format_code/m", specs.Entry{Name: "UNKNOWN", Value: "", Description: "<unknown>"}},
		{"/api/v1/codes/format_code/SM", specs.Entry{Name: "UNKNOWN", Value: "", Description: "<unknown>"}},
		{"/api/v1/codes/passenger_description/0", specs.Entry{Name: "ADULT", Value: "0", Description: "Adult"}},
	}
	for _, tt := range tests {
		w := do(t, s, http.MethodGet, tt.path, "")
		require.Equal(t, http.StatusOK, w.Code, tt.path)
		var got specs.Entry
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.Equal(t, tt.want, got, tt.path)
	}

	w := do(t, s, http.MethodGet, "/api/v1/codes/nope/M", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDecode(t *testing.T) {
	w := do(t, newTestServer(), http.MethodPost, "/api/v1/decode", minimalPayload+"\r\n")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got PassView
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))

	_, err := ulid.Parse(got.ScanID)
	assert.NoError(t, err, "scan_id should be a ULID")
	assert.Equal(t, "M", got.FormatCode.Value)
	assert.Equal(t, "DESMARAIS/LUC", got.PassengerName)
	assert.Equal(t, "LUC", got.PassengerFirstName)
	assert.Equal(t, "UNKNOWN", got.PassengerDescription.Name)

	require.Len(t, got.Segments, 1)
	seg := got.Segments[0]
	assert.Equal(t, "YUL", seg.FromAirport)
	assert.Equal(t, "Montreal", seg.FromCity)
	assert.Equal(t, "", seg.ToCity)
	assert.Equal(t, "0834", seg.FlightNumber)
	assert.Equal(t, 326, seg.JulianDate)
	assert.Equal(t, "2026-11-22", seg.FlightDate)
	assert.Equal(t, "J", seg.Compartment.Value)
}

func TestDecode_ScanIDsAreUnique(t *testing.T) {
	s := newTestServer()
	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		w := do(t, s, http.MethodPost, "/api/v1/decode", minimalPayload)
		require.Equal(t, http.StatusOK, w.Code)
		var got PassView
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
		assert.False(t, seen[got.ScanID], "duplicate scan id %s", got.ScanID)
		seen[got.ScanID] = true
	}
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		element string
		offset  int
	}{
		{"empty", "", "FORMAT_CODE", 0},
		{"short name", "M1DESMARAIS", "PASSENGER_NAME", 2},
		{"bad leg count", "M0" + minimalPayload[2:], "NUMBER_OF_LEGS_ENCODED", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := do(t, newTestServer(), http.MethodPost, "/api/v1/decode", tt.body)
			require.Equal(t, http.StatusUnprocessableEntity, w.Code)

			var got decodeError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
			assert.NotEmpty(t, got.Error)
			assert.Equal(t, tt.element, got.Element)
			require.NotNil(t, got.Offset)
			assert.Equal(t, tt.offset, *got.Offset)
		})
	}
}

func TestDecode_TooLarge(t *testing.T) {
	w := do(t, newTestServer(), http.MethodPost, "/api/v1/decode", strings.Repeat("A", maxPayloadBytes+1))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

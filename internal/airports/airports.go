// Package airports maps IATA airport codes to the name of the city they
// serve, from an airport list and a city list.
package airports

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Airport is one entry of airports.json.
type Airport struct {
	Code     string `json:"code"`
	CityCode string `json:"city_code"`
}

// City is one entry of cities.json.
type City struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// Directory is an immutable airport → city name index. It is safe for
// concurrent use; a nil *Directory knows no airports.
type Directory struct {
	cityByAirport map[string]string
}

// New builds a Directory. Airports whose city code is not in cities map to "".
func New(airports []Airport, cities []City) *Directory {
	names := make(map[string]string, len(cities))
	for _, c := range cities {
		names[c.Code] = c.Name
	}
	d := &Directory{cityByAirport: make(map[string]string, len(airports))}
	for _, a := range airports {
		d.cityByAirport[strings.ToUpper(a.Code)] = names[a.CityCode]
	}
	return d
}

// Load reads the airport and city lists from JSON files.
func Load(airportsPath, citiesPath string) (*Directory, error) {
	var airports []Airport
	if err := readJSON(airportsPath, &airports); err != nil {
		return nil, fmt.Errorf("load airports: %w", err)
	}
	var cities []City
	if err := readJSON(citiesPath, &cities); err != nil {
		return nil, fmt.Errorf("load cities: %w", err)
	}
	return New(airports, cities), nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// CityFor returns the city served by an airport code, or "" when unknown.
// The lookup ignores case.
func (d *Directory) CityFor(code string) string {
	if d == nil {
		return ""
	}
	return d.cityByAirport[strings.ToUpper(code)]
}

// Len returns the number of airports in the directory.
func (d *Directory) Len() int {
	if d == nil {
		return 0
	}
	return len(d.cityByAirport)
}

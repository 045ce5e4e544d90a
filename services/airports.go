package services

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultAirport is used for any country missing from the table.
const DefaultAirport = "JFK"

// AirportTable maps a country's common name to one representative IATA code.
// It stands in for a real country→airport resolution service.
type AirportTable struct {
	Default   string            `yaml:"default"`
	Countries map[string]string `yaml:"countries"`
}

// DefaultAirportTable returns the built-in ten-country table.
func DefaultAirportTable() *AirportTable {
	return &AirportTable{
		Default: DefaultAirport,
		Countries: map[string]string{
			"United States":  "JFK",
			"Canada":         "YYZ",
			"United Kingdom": "LHR",
			"Germany":        "FRA",
			"France":         "CDG",
			"Japan":          "HND",
			"China":          "PEK",
			"India":          "DEL",
			"Brazil":         "GRU",
			"Australia":      "SYD",
		},
	}
}

// LoadAirportTable reads a YAML table such as:
//
//	default: JFK
//	countries:
//	  France: CDG
func LoadAirportTable(path string) (*AirportTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read airport table: %w", err)
	}
	var t AirportTable
	if err := yaml.Unmarshal(raw, &t); err != nil {
		return nil, fmt.Errorf("parse airport table: %w", err)
	}
	if t.Default == "" {
		t.Default = DefaultAirport
	}
	for country, code := range t.Countries {
		t.Countries[country] = strings.ToUpper(strings.TrimSpace(code))
	}
	return &t, nil
}

// Resolve returns the airport for country, or the table default.
// Matching is exact on the common name, as the directory returns it.
func (t *AirportTable) Resolve(country string) string {
	if code, ok := t.Countries[country]; ok && code != "" {
		return code
	}
	if t.Default == "" {
		return DefaultAirport
	}
	return t.Default
}

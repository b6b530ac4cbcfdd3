// Package location serves the static country/city reference data the
// request form uses for its origin and destination pickers.
// The data is loaded once from a CSV file at startup and held in memory;
// there is no database involvement.
package location

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// Store holds the parsed reference data. Safe for concurrent reads;
// never mutated after construction.
type Store struct {
	citiesByCountry map[string][]string
	countries       []string
}

// LoadFile reads the CSV at path and builds a Store.
// The file must have a "Country,City" header row, which is skipped.
func LoadFile(path string) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("location.LoadFile: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load parses Country,City CSV data from r, skipping the header row.
func Load(r io.Reader) (*Store, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = 2

	if _, err := cr.Read(); err != nil { // header
		return nil, fmt.Errorf("location.Load: read header: %w", err)
	}

	seen := make(map[string]map[string]bool)
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("location.Load: %w", err)
		}
		country := strings.TrimSpace(rec[0])
		city := strings.TrimSpace(rec[1])
		if country == "" || city == "" {
			continue
		}
		if seen[country] == nil {
			seen[country] = make(map[string]bool)
		}
		seen[country][city] = true
	}

	byCountry := make(map[string][]string, len(seen))
	countries := make([]string, 0, len(seen))
	for country, cities := range seen {
		countries = append(countries, country)
		list := make([]string, 0, len(cities))
		for city := range cities {
			list = append(list, city)
		}
		sort.Strings(list)
		byCountry[country] = list
	}
	sort.Strings(countries)

	return &Store{citiesByCountry: byCountry, countries: countries}, nil
}

// Countries returns all distinct countries in ascending order.
func (s *Store) Countries() []string {
	return s.countries
}

// Cities returns the cities of the given country in ascending order.
// Unknown countries yield an empty slice, not an error.
func (s *Store) Cities(country string) []string {
	cities := s.citiesByCountry[country]
	if cities == nil {
		return []string{}
	}
	return cities
}

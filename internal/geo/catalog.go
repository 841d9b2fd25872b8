package geo

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"
)

//go:embed cities.json
var citiesJSON []byte

type cityRecord struct {
	Country string  `json:"country"`
	Name    string  `json:"name"`
	Lat     float32 `json:"lat"`
	Lng     float32 `json:"lng"`
}

// Catalog resolves human-readable locations to coordinates. It is built once
// at startup from the embedded dataset and is read-only afterwards, so it is
// safe for concurrent use without synchronization.
type Catalog struct {
	// country code -> lowercase city name -> position
	countries map[string]map[string]Position
}

// LoadCatalog parses the embedded city dataset.
func LoadCatalog() (*Catalog, error) {
	return parseCatalog(citiesJSON)
}

func parseCatalog(data []byte) (*Catalog, error) {
	var records []cityRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse city database: %w", err)
	}

	countries := make(map[string]map[string]Position)
	for _, rec := range records {
		cities, ok := countries[rec.Country]
		if !ok {
			cities = make(map[string]Position)
			countries[rec.Country] = cities
		}
		cities[strings.ToLower(rec.Name)] = NewPosition(rec.Lat, rec.Lng)
	}

	return &Catalog{countries: countries}, nil
}

// Find resolves a country code and city name to a position. City matching is
// case-insensitive; country codes are matched exactly as provided.
func (c *Catalog) Find(country, city string) (Position, bool) {
	cities, ok := c.countries[country]
	if !ok {
		return Position{}, false
	}
	pos, ok := cities[strings.ToLower(city)]
	return pos, ok
}

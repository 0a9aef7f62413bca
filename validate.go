package countrybed

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
)

// Validation thresholds for data integrity checks. The bundled dataset is a
// curated subset, so the floor is well below the ~250 records of a full
// country list.
const minCountryCount = 50

// validationCountry is a record that must be present and resolvable.
type validationCountry struct {
	code        string
	wantName    string
	wantRegion  string
	wantBorders []string // resolved names that must appear among the borders
}

// validationCoord is a point that must land in a known country.
type validationCoord struct {
	lat, lng float64
	wantCode string
}

var knownCountries = []validationCountry{
	{"FRA", "France", "Europe", []string{"Germany", "Spain"}},
	{"DEU", "Germany", "Europe", []string{"France", "Poland"}},
	{"BRA", "Brazil", "Americas", []string{"Argentina"}},
	{"JPN", "Japan", "Asia", nil},
	{"ZAF", "South Africa", "Africa", []string{"Lesotho"}},
}

var knownCoords = []validationCoord{
	{46.5, 2.2, "FRA"},    // Massif Central
	{51.1, 9.4, "DEU"},    // Hesse
	{-25.3, 131.0, "AUS"}, // Uluru
	{-1.3, -55.7, "BRA"},  // Pará
}

// Validate performs structural checks on the loaded collection: names are
// present and unique, alpha-3 codes are unique, border lists are non-nil.
// All problems are reported together.
func (cb *CountryBed) Validate() error {
	var errs []error
	names := make(map[string]int, len(cb.countries))
	codes := make(map[string]int, len(cb.countries))

	for i, c := range cb.countries {
		if c.Name == "" {
			errs = append(errs, fmt.Errorf("record %d: empty name", i))
		} else if prev, ok := names[c.Name]; ok {
			errs = append(errs, fmt.Errorf("record %d: name %q already used by record %d", i, c.Name, prev))
		} else {
			names[c.Name] = i
		}

		if c.CCA3 != "" {
			if prev, ok := codes[c.CCA3]; ok {
				errs = append(errs, fmt.Errorf("record %d: code %q already used by record %d", i, c.CCA3, prev))
			} else {
				codes[c.CCA3] = i
			}
		}

		if c.Borders == nil {
			errs = append(errs, fmt.Errorf("record %d (%s): nil borders", i, c.Name))
		}
	}
	return errors.Join(errs...)
}

// ValidateCache loads a CountryBed with opts and performs integrity and
// functional checks: structure, record count, known countries and border
// resolution, and coordinate lookups. Progress is logged at info level.
func ValidateCache(opts ...Option) error {
	cb, err := NewCountryBed(opts...)
	if err != nil {
		return fmt.Errorf("failed to load dataset: %w", err)
	}
	log := cb.config.Logger.With(zap.String("source", string(cb.source)))

	if err := cb.Validate(); err != nil {
		return fmt.Errorf("structural check: %w", err)
	}

	if n := cb.Len(); n < minCountryCount {
		return fmt.Errorf("country count too low: got %d, want >= %d", n, minCountryCount)
	}
	log.Info("country count ok", zap.Int("countries", cb.Len()))

	for _, tc := range knownCountries {
		c, ok := cb.ByCode(tc.code)
		if !ok {
			return fmt.Errorf("country %s not found", tc.code)
		}
		if c.Name != tc.wantName {
			return fmt.Errorf("country %s name = %q, want %q", tc.code, c.Name, tc.wantName)
		}
		if c.Region != tc.wantRegion {
			return fmt.Errorf("country %s region = %q, want %q", tc.code, c.Region, tc.wantRegion)
		}
		got := make(map[string]bool)
		for _, name := range cb.BorderNames(c) {
			got[name] = true
		}
		for _, want := range tc.wantBorders {
			if !got[want] {
				return fmt.Errorf("country %s borders missing %q", tc.code, want)
			}
		}
	}
	log.Info("known countries ok", zap.Int("checked", len(knownCountries)))

	for _, tc := range knownCoords {
		c, ok := cb.CountryAt(tc.lat, tc.lng)
		if !ok {
			return fmt.Errorf("countryAt(%v, %v) found nothing, want %s", tc.lat, tc.lng, tc.wantCode)
		}
		if c.CCA3 != tc.wantCode {
			return fmt.Errorf("countryAt(%v, %v) = %s, want %s", tc.lat, tc.lng, c.CCA3, tc.wantCode)
		}
	}
	log.Info("coordinate lookups ok", zap.Int("checked", len(knownCoords)))

	return nil
}

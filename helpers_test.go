package countrybed

import (
	"testing"
)

// fixtureData is a small dataset mixing every record shape. FRA borders a
// code that is not part of it.
const fixtureData = `[
	{"name": "France", "nativeName": "France", "alpha3Code": "FRA", "region": "Europe",
	 "subregion": "Western Europe", "capital": "Paris", "population": 67391582,
	 "latlng": [46, 2], "borders": ["DEU", "XXX"],
	 "currencies": [{"name": "Euro"}], "languages": [{"name": "French"}]},
	{"name": "Germany", "nativeName": "Deutschland", "alpha3Code": "DEU", "region": "Europe",
	 "subregion": "Western Europe", "capital": "Berlin", "population": 83240525,
	 "latlng": [51, 9], "borders": ["FRA"],
	 "currencies": [{"name": "Euro"}], "languages": [{"name": "German"}]},
	{"name": "Japan", "cca3": "JPN", "region": "Asia", "subregion": "Eastern Asia",
	 "capital": "Tokyo", "population": 125836021, "latlng": [36, 138],
	 "currencies": ["Japanese yen"], "languages": ["Japanese"]},
	{"name": "Kenya", "alpha3Code": "KEN", "region": "Africa", "population": 53771300,
	 "latlng": [1, 38], "currencies": "Kenyan shilling", "languages": "English"},
	{"name": "Atlantis Colony", "alpha3Code": "ATC", "region": "Polar"}
]`

// newFixtureBed loads fixtureData.
func newFixtureBed(t testing.TB) *CountryBed {
	t.Helper()
	cb, err := NewCountryBed(WithRawData([]byte(fixtureData)))
	if err != nil {
		t.Fatalf("NewCountryBed(fixture) error = %v", err)
	}
	return cb
}

// newEmbeddedBed loads the embedded dataset, ignoring any cache on disk.
func newEmbeddedBed(t testing.TB) *CountryBed {
	t.Helper()
	cb, err := NewCountryBed(WithCacheDir(""))
	if err != nil {
		t.Fatalf("NewCountryBed() error = %v", err)
	}
	return cb
}

func names(countries []Country) []string {
	out := make([]string, len(countries))
	for i, c := range countries {
		out[i] = c.Name
	}
	return out
}

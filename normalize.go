package countrybed

import (
	"bytes"
	"fmt"
	"math"
	"sort"
	"strings"

	geohash "github.com/TomiHiltunen/geohash-golang"
	"github.com/goccy/go-json"
)

// geohashPrecision of 5 characters gives cells of roughly 5km x 5km, plenty
// for a country centroid.
const geohashPrecision = 5

// RawCountry is a country record as found in the bundled dataset. The dataset
// mixes several generations of the same schema, so most fields accept more
// than one JSON shape:
//
//   - flags: {"svg": ..., "png": ...} object, or a flat "flag" string
//   - currencies, languages: list of {"name": ...} objects, list of strings,
//     a flat string, or an object keyed by code
//   - topLevelDomain list, or a flat "tld" string or list
//   - alpha3Code / alpha2Code, or flat cca3 / cca2
type RawCountry struct {
	Name           string    `json:"name"`
	NativeName     string    `json:"nativeName"`
	Population     int64     `json:"population"`
	Region         string    `json:"region"`
	Subregion      string    `json:"subregion"`
	Capital        textList  `json:"capital"`
	Flags          *rawFlags `json:"flags"`
	Flag           string    `json:"flag"`
	TopLevelDomain []string  `json:"topLevelDomain"`
	TLD            textList  `json:"tld"`
	Currencies     nameList  `json:"currencies"`
	Languages      nameList  `json:"languages"`
	Borders        []string  `json:"borders"`
	Alpha3Code     string    `json:"alpha3Code"`
	CCA3           string    `json:"cca3"`
	Alpha2Code     string    `json:"alpha2Code"`
	CCA2           string    `json:"cca2"`
	LatLng         []float64 `json:"latlng"`
}

type rawFlags struct {
	SVG string `json:"svg"`
	PNG string `json:"png"`
}

// textList accepts either a JSON string or a list of strings.
type textList []string

func (l *textList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*l = textList{s}
		return nil
	case '[':
		var list []string
		if err := json.Unmarshal(b, &list); err != nil {
			return err
		}
		*l = list
		return nil
	}
	return fmt.Errorf("textList: unsupported JSON value %.20q", b)
}

// nameList collects display names from any of the currency/language shapes
// the dataset uses.
type nameList []string

func (l *nameList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*l = nil
		return nil
	}
	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		if s = strings.TrimSpace(s); s != "" {
			*l = nameList{s}
		} else {
			*l = nameList{}
		}
		return nil
	case '[':
		var items []json.RawMessage
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		names := make(nameList, 0, len(items))
		for _, item := range items {
			name, err := displayName(item)
			if err != nil {
				return err
			}
			if name != "" {
				names = append(names, name)
			}
		}
		*l = names
		return nil
	case '{':
		var byCode map[string]json.RawMessage
		if err := json.Unmarshal(b, &byCode); err != nil {
			return err
		}
		// Object keys carry no order; sort by code for a stable result.
		codes := make([]string, 0, len(byCode))
		for code := range byCode {
			codes = append(codes, code)
		}
		sort.Strings(codes)
		names := make(nameList, 0, len(codes))
		for _, code := range codes {
			name, err := displayName(byCode[code])
			if err != nil {
				return err
			}
			if name != "" {
				names = append(names, name)
			}
		}
		*l = names
		return nil
	}
	return fmt.Errorf("nameList: unsupported JSON value %.20q", b)
}

// displayName extracts a name from a bare string or an object with a "name" field.
func displayName(b json.RawMessage) (string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 {
		return "", nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return "", err
		}
		return strings.TrimSpace(s), nil
	}
	var named struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(b, &named); err != nil {
		return "", err
	}
	return strings.TrimSpace(named.Name), nil
}

// ParseRaw decodes a JSON array of raw country records.
func ParseRaw(data []byte) ([]RawCountry, error) {
	var raw []RawCountry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decoding raw countries: %w", err)
	}
	return raw, nil
}

// Normalize maps raw records to canonical Country values one-to-one, keeping
// their order. Missing optional fields get their documented fallback; nothing
// here fails.
func Normalize(raw []RawCountry) []Country {
	countries := make([]Country, len(raw))
	for i, r := range raw {
		countries[i] = normalizeCountry(r)
	}
	return countries
}

func normalizeCountry(r RawCountry) Country {
	name := strings.TrimSpace(r.Name)

	c := Country{
		Name:       name,
		NativeName: strings.TrimSpace(r.NativeName),
		Population: r.Population,
		Region:     strings.TrimSpace(r.Region),
		Subregion:  strings.TrimSpace(r.Subregion),
		Currencies: joinOrNA(r.Currencies),
		Languages:  joinOrNA(r.Languages),
		CCA3:       r.Alpha3Code,
		CCA2:       r.Alpha2Code,
	}
	if c.NativeName == "" {
		c.NativeName = name
	}
	if c.Population < 0 {
		c.Population = 0
	}
	if len(r.Capital) > 0 {
		c.Capital = strings.TrimSpace(r.Capital[0])
	}

	if r.Flags != nil && r.Flags.SVG != "" {
		c.Flag = r.Flags.SVG
	} else {
		c.Flag = r.Flag
	}

	switch {
	case len(r.TopLevelDomain) > 0:
		c.TLD = r.TopLevelDomain[0]
	case len(r.TLD) > 0:
		c.TLD = r.TLD[0]
	}

	c.Borders = make([]string, len(r.Borders))
	copy(c.Borders, r.Borders)

	if c.CCA3 == "" {
		c.CCA3 = r.CCA3
	}
	if c.CCA2 == "" {
		c.CCA2 = r.CCA2
	}

	if lat, lng, ok := centroid(r.LatLng); ok {
		c.Latitude = lat
		c.Longitude = lng
		c.HasCoordinates = true
		c.Geohash = geohash.EncodeWithPrecision(lat, lng, geohashPrecision)
	}
	return c
}

// joinOrNA joins names with ", ", or returns NotAvailable for an absent or empty list.
func joinOrNA(names nameList) string {
	if len(names) == 0 {
		return NotAvailable
	}
	return strings.Join(names, ", ")
}

// centroid validates a [lat, lng] pair from the dataset.
func centroid(latlng []float64) (float64, float64, bool) {
	if len(latlng) < 2 {
		return 0, 0, false
	}
	lat, lng := latlng[0], latlng[1]
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return 0, 0, false
	}
	if lat < -90 || lat > 90 || lng < -180 || lng > 180 {
		return 0, 0, false
	}
	return lat, lng, true
}

package countrybed

import (
	"sync"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// NotAvailable is displayed in place of a missing capital, currency list or language list.
const NotAvailable = "N/A"

// Country is a normalized country record. Records are built once when a
// CountryBed loads its dataset and are never modified afterwards.
type Country struct {
	Name           string   `json:"name" yaml:"name"`
	NativeName     string   `json:"nativeName" yaml:"nativeName"`
	Population     int64    `json:"population" yaml:"population"`
	Region         string   `json:"region" yaml:"region"`
	Subregion      string   `json:"subregion" yaml:"subregion"`
	Capital        string   `json:"capital,omitempty" yaml:"capital,omitempty"` // "" when the source has none
	Flag           string   `json:"flag" yaml:"flag"`
	TLD            string   `json:"tld" yaml:"tld"`
	Currencies     string   `json:"currencies" yaml:"currencies"`
	Languages      string   `json:"languages" yaml:"languages"`
	Borders        []string `json:"borders" yaml:"borders"`
	CCA3           string   `json:"cca3" yaml:"cca3"`
	CCA2           string   `json:"cca2,omitempty" yaml:"cca2,omitempty"`
	Latitude       float64  `json:"latitude,omitempty" yaml:"latitude,omitempty"`
	Longitude      float64  `json:"longitude,omitempty" yaml:"longitude,omitempty"`
	HasCoordinates bool     `json:"hasCoordinates" yaml:"hasCoordinates"`
	Geohash        string   `json:"geohash,omitempty" yaml:"geohash,omitempty"`
}

// CapitalOrNA returns the capital, or NotAvailable when the record has none.
func (c Country) CapitalOrNA() string {
	if c.Capital == "" {
		return NotAvailable
	}
	return c.Capital
}

// populationPrinter groups digits the way the directory has always shown
// populations ("67,391,582").
var populationPrinter = sync.OnceValue(func() *message.Printer {
	return message.NewPrinter(language.English)
})

// FormattedPopulation returns the population with thousands separators.
func (c Country) FormattedPopulation() string {
	return populationPrinter().Sprintf("%d", c.Population)
}

// clone returns a copy that shares no memory with c.
func (c Country) clone() Country {
	out := c
	out.Borders = make([]string, len(c.Borders))
	copy(out.Borders, c.Borders)
	return out
}

package countrybed

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Regions are the region values offered by the filter UIs. Region values in
// the dataset are not restricted to this list.
var Regions = []string{"Africa", "Americas", "Asia", "Europe", "Oceania"}

// Filter returns the countries whose name contains searchTerm (case-insensitive)
// and whose region equals region (case-sensitive). An empty searchTerm or
// region disables that criterion. The input order is preserved and an empty
// result is valid.
func Filter(countries []Country, searchTerm, region string) []Country {
	term := toLower(searchTerm)
	filtered := make([]Country, 0, len(countries))
	for _, c := range countries {
		if matches(c, term, region) {
			filtered = append(filtered, c)
		}
	}
	return filtered
}

// matches expects term to be lowercased already.
func matches(c Country, term, region string) bool {
	if term != "" && !strings.Contains(toLower(c.Name), term) {
		return false
	}
	if region != "" && c.Region != region {
		return false
	}
	return true
}

// ResolveBorderNames maps each border code of c to the name of the first
// country in countries with that CCA3 code. Codes with no match are returned
// as-is.
func ResolveBorderNames(c Country, countries []Country) []string {
	names := make([]string, len(c.Borders))
	for i, code := range c.Borders {
		names[i] = code
		for _, other := range countries {
			if other.CCA3 == code {
				names[i] = other.Name
				break
			}
		}
	}
	return names
}

// Border is a border code of a country together with its display name.
// Resolved is false when no country in the collection carries the code, in
// which case Name is the raw code.
type Border struct {
	Code     string `json:"code"`
	Name     string `json:"name"`
	Resolved bool   `json:"resolved"`
}

// Filter applies Filter to the loaded collection.
func (cb *CountryBed) Filter(searchTerm, region string) []Country {
	filtered := Filter(cb.countries, searchTerm, region)
	for i := range filtered {
		filtered[i] = filtered[i].clone()
	}
	return filtered
}

// Borders resolves the border codes of c against the loaded collection.
func (cb *CountryBed) Borders(c Country) []Border {
	borders := make([]Border, len(c.Borders))
	for i, code := range c.Borders {
		borders[i] = Border{Code: code, Name: code}
		if idx, ok := cb.codeIndex[code]; ok {
			borders[i].Name = cb.countries[idx].Name
			borders[i].Resolved = true
		}
	}
	return borders
}

// BorderNames is ResolveBorderNames against the loaded collection, served
// from the code index.
func (cb *CountryBed) BorderNames(c Country) []string {
	borders := cb.Borders(c)
	names := make([]string, len(borders))
	for i, b := range borders {
		names[i] = b.Name
	}
	return names
}

// ByName returns the first country whose name is exactly name.
func (cb *CountryBed) ByName(name string) (Country, bool) {
	idx, ok := cb.nameIndex[name]
	if !ok {
		return Country{}, false
	}
	return cb.countries[idx].clone(), true
}

// ByCode returns the country with the given alpha-3 code. The exact code is
// tried first, then its upper-case form.
func (cb *CountryBed) ByCode(code string) (Country, bool) {
	idx, ok := cb.codeIndex[code]
	if !ok {
		idx, ok = cb.codeIndex[toUpper(code)]
	}
	if !ok {
		return Country{}, false
	}
	return cb.countries[idx].clone(), true
}

// maxSuggestDistance bounds how far a suggestion may be from the search term.
const maxSuggestDistance = 3

// maxSuggestInputLen limits the work done per Levenshtein comparison.
const maxSuggestInputLen = 64

type suggestion struct {
	name string
	dist int
	idx  int
}

// Suggest returns up to n country names within maxSuggestDistance edits of
// term, closest first. A name is compared as a whole and word by word so that
// "kingdon" still finds "United Kingdom of Great Britain and Northern Ireland".
// It is meant for the "no results" state and has no effect on Filter.
func (cb *CountryBed) Suggest(term string, n int) []string {
	term = toLower(strings.TrimSpace(term))
	if term == "" || n <= 0 {
		return nil
	}
	if runes := []rune(term); len(runes) > maxSuggestInputLen {
		term = string(runes[:maxSuggestInputLen])
	}

	var found []suggestion
	for i, c := range cb.countries {
		name := toLower(c.Name)
		best := levenshtein.ComputeDistance(term, name)
		for _, word := range strings.FieldsFunc(name, isNameSeparator) {
			if d := levenshtein.ComputeDistance(term, word); d < best {
				best = d
			}
		}
		if best <= maxSuggestDistance {
			found = append(found, suggestion{name: c.Name, dist: best, idx: i})
		}
	}

	sort.SliceStable(found, func(i, j int) bool {
		if found[i].dist != found[j].dist {
			return found[i].dist < found[j].dist
		}
		return found[i].idx < found[j].idx
	})

	if len(found) > n {
		found = found[:n]
	}
	names := make([]string, len(found))
	for i, s := range found {
		names[i] = s.name
	}
	return names
}

func isNameSeparator(r rune) bool {
	return r == ' ' || r == ',' || r == '(' || r == ')' || r == '-'
}

// toLower is the single lowercasing rule used by search, so Filter and
// Suggest always agree on what "case-insensitive" means.
func toLower(s string) string {
	return strings.ToLower(s)
}

func toUpper(s string) string {
	return strings.ToUpper(s)
}

//go:build property

package countrybed

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// TestQueryProperties checks filtering, border resolution and view-state
// transitions against arbitrary search terms and regions.
func TestQueryProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.Rng.Seed(1357)
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	cb := newEmbeddedBed(t)
	countries := cb.Countries()
	regions := append([]string{""}, Regions...)
	regions = append(regions, "Polar", "europe")

	// Property: the filtered list is a subsequence of the input and every
	// element satisfies both criteria.
	properties.Property("filter returns an ordered, matching subsequence", prop.ForAll(
		func(term string, region string) bool {
			got := Filter(countries, term, region)
			j := 0
			for _, c := range got {
				for j < len(countries) && countries[j].Name != c.Name {
					j++
				}
				if j == len(countries) {
					return false
				}
				j++
				if !strings.Contains(strings.ToLower(c.Name), strings.ToLower(term)) {
					return false
				}
				if region != "" && c.Region != region {
					return false
				}
			}
			return true
		},
		gen.AlphaString(),
		gen.OneConstOf(toInterfaces(regions)...),
	))

	// Property: filtering twice with the same criteria changes nothing.
	properties.Property("filter is idempotent", prop.ForAll(
		func(term string) bool {
			once := Filter(countries, term, "")
			twice := Filter(once, term, "")
			return len(once) == len(twice)
		},
		gen.AlphaString(),
	))

	// Property: border resolution is length-preserving and either names a
	// country or echoes the code.
	properties.Property("border resolution preserves length", prop.ForAll(
		func(codes []string) bool {
			got := ResolveBorderNames(Country{Borders: codes}, countries)
			if len(got) != len(codes) {
				return false
			}
			for i, name := range got {
				if _, ok := cb.ByName(name); !ok && name != codes[i] {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.RegexMatch(`^[A-Z]{3}$`)),
	))

	// Property: an unknown name never changes the state.
	properties.Property("selecting an unknown name is a no-op", prop.ForAll(
		func(name string, dark bool) bool {
			if _, ok := cb.ByName(name); ok {
				return true
			}
			s := ViewState{SearchTerm: "a", DarkMode: dark}
			return cb.SelectByName(s, name) == s
		},
		gen.AlphaString(),
		gen.Bool(),
	))

	properties.TestingRun(t)
}

func toInterfaces(in []string) []interface{} {
	out := make([]interface{}, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}

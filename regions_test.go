package countrybed

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestRegionSummary(t *testing.T) {
	cb := newFixtureBed(t)

	want := []RegionInfo{
		{Name: "Africa", Subregions: nil, Countries: 1, Population: 53771300},
		{Name: "Asia", Subregions: []string{"Eastern Asia"}, Countries: 1, Population: 125836021},
		{Name: "Europe", Subregions: []string{"Western Europe"}, Countries: 2, Population: 67391582 + 83240525},
		{Name: "Polar", Subregions: nil, Countries: 1, Population: 0},
	}
	if diff := cmp.Diff(want, cb.RegionSummary()); diff != "" {
		t.Errorf("RegionSummary() mismatch (-want +got):\n%s", diff)
	}
}

func TestRegionSummary_Embedded(t *testing.T) {
	cb := newEmbeddedBed(t)
	summary := cb.RegionSummary()

	var gotNames []string
	total := 0
	for _, r := range summary {
		gotNames = append(gotNames, r.Name)
		total += r.Countries
		for i := 1; i < len(r.Subregions); i++ {
			if r.Subregions[i-1] >= r.Subregions[i] {
				t.Errorf("%s subregions not sorted: %v", r.Name, r.Subregions)
			}
		}
	}
	if diff := cmp.Diff([]string{"Africa", "Americas", "Asia", "Europe", "Oceania", "Polar"}, gotNames); diff != "" {
		t.Errorf("region order mismatch (-want +got):\n%s", diff)
	}
	if total != cb.Len() {
		t.Errorf("region counts sum to %d, want %d", total, cb.Len())
	}
}

func TestRegionSummary_ReturnsCopies(t *testing.T) {
	cb := newFixtureBed(t)
	first := cb.RegionSummary()
	first[1].Subregions[0] = "Changed"
	first[1].Countries = 99

	second := cb.RegionSummary()
	if second[1].Subregions[0] != "Eastern Asia" || second[1].Countries != 1 {
		t.Errorf("RegionSummary() shares memory between calls: %+v", second[1])
	}
}

func TestIsRegion(t *testing.T) {
	for _, r := range Regions {
		if !IsRegion(r) {
			t.Errorf("IsRegion(%q) = false", r)
		}
	}
	for _, r := range []string{"", "Polar", "europe", "Antarctica"} {
		if IsRegion(r) {
			t.Errorf("IsRegion(%q) = true", r)
		}
	}
}

package countrybed

import (
	"sort"
)

// RegionInfo summarizes one region of the loaded collection.
type RegionInfo struct {
	Name       string   `json:"name" yaml:"name"`             // e.g. "Europe"
	Subregions []string `json:"subregions" yaml:"subregions"` // sorted, without ""
	Countries  int      `json:"countries" yaml:"countries"`
	Population int64    `json:"population" yaml:"population"`
}

// buildRegionSummary groups the collection by region. Regions from the
// filter list come first in their fixed order, followed by any other region
// present in the data (e.g. "Polar") in alphabetical order.
func (cb *CountryBed) buildRegionSummary() []RegionInfo {
	byName := make(map[string]*RegionInfo)
	subregions := make(map[string]map[string]bool)

	for _, c := range cb.countries {
		if c.Region == "" {
			continue
		}
		info, ok := byName[c.Region]
		if !ok {
			info = &RegionInfo{Name: c.Region}
			byName[c.Region] = info
			subregions[c.Region] = make(map[string]bool)
		}
		info.Countries++
		info.Population += c.Population
		if c.Subregion != "" {
			subregions[c.Region][c.Subregion] = true
		}
	}

	for name, info := range byName {
		for sub := range subregions[name] {
			info.Subregions = append(info.Subregions, sub)
		}
		sort.Strings(info.Subregions)
	}

	summary := make([]RegionInfo, 0, len(byName))
	known := make(map[string]bool, len(Regions))
	for _, name := range Regions {
		known[name] = true
		if info, ok := byName[name]; ok {
			summary = append(summary, *info)
		}
	}
	var extra []string
	for name := range byName {
		if !known[name] {
			extra = append(extra, name)
		}
	}
	sort.Strings(extra)
	for _, name := range extra {
		summary = append(summary, *byName[name])
	}
	return summary
}

// RegionSummary returns per-region counts and subregions, computed on first use.
func (cb *CountryBed) RegionSummary() []RegionInfo {
	cb.regionsOnce.Do(func() {
		cb.regions = cb.buildRegionSummary()
	})
	out := make([]RegionInfo, len(cb.regions))
	for i, info := range cb.regions {
		out[i] = info
		out[i].Subregions = append([]string(nil), info.Subregions...)
	}
	return out
}

// IsRegion reports whether region is offered by the filter UIs.
func IsRegion(region string) bool {
	for _, r := range Regions {
		if r == region {
			return true
		}
	}
	return false
}

package countrybed

import (
	"math"
	"sort"

	"github.com/golang/geo/s2"
)

// earthRadiusKm converts angles on the unit sphere to kilometres.
const earthRadiusKm = 6371.01

// maxCountryAtDistance is ~2500km in radians on the unit sphere. CountryAt
// reports no match when the closest centroid is further away than this; large
// countries have centroids far from their borders, so the cutoff is generous.
const maxCountryAtDistance = 0.39

// Neighbor is a country and its centroid distance from a reference point.
type Neighbor struct {
	Country    Country `json:"country"`
	DistanceKm float64 `json:"distanceKm"`
}

type proximityCandidate struct {
	idx  int
	dist float64
}

// buildPoints caches the S2 position of every centroid.
func (cb *CountryBed) buildPoints() {
	cb.points = make([]s2.LatLng, len(cb.countries))
	for i, c := range cb.countries {
		if c.HasCoordinates {
			cb.points[i] = s2.LatLngFromDegrees(c.Latitude, c.Longitude)
		}
	}
}

// rankFrom orders every country with coordinates by distance from ll,
// skipping the index skip. Ties are broken by name, then by position.
func (cb *CountryBed) rankFrom(ll s2.LatLng, skip int) []proximityCandidate {
	candidates := make([]proximityCandidate, 0, len(cb.countries))
	for i, c := range cb.countries {
		if i == skip || !c.HasCoordinates {
			continue
		}
		candidates = append(candidates, proximityCandidate{idx: i, dist: float64(ll.Distance(cb.points[i]))})
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].dist != candidates[j].dist {
			return candidates[i].dist < candidates[j].dist
		}
		return cb.countries[candidates[i].idx].Name < cb.countries[candidates[j].idx].Name
	})
	return candidates
}

// Closest returns up to n countries whose centroids are nearest to the
// centroid of the country with the given alpha-3 code, nearest first. The
// country itself is never included. Unknown codes and countries without
// coordinates yield nil.
func (cb *CountryBed) Closest(code string, n int) []Neighbor {
	if n <= 0 {
		return nil
	}
	idx, ok := cb.codeIndex[code]
	if !ok {
		idx, ok = cb.codeIndex[toUpper(code)]
	}
	if !ok || !cb.countries[idx].HasCoordinates {
		return nil
	}

	candidates := cb.rankFrom(cb.points[idx], idx)
	if len(candidates) > n {
		candidates = candidates[:n]
	}
	neighbors := make([]Neighbor, len(candidates))
	for i, cand := range candidates {
		neighbors[i] = Neighbor{
			Country:    cb.countries[cand.idx].clone(),
			DistanceKm: cand.dist * earthRadiusKm,
		}
	}
	return neighbors
}

// CountryAt returns the country whose centroid is nearest to lat/lng, if it
// lies within maxCountryAtDistance.
func (cb *CountryBed) CountryAt(lat, lng float64) (Country, bool) {
	// Reject values that would produce undefined S2 results.
	if math.IsNaN(lat) || math.IsNaN(lng) || math.IsInf(lat, 0) || math.IsInf(lng, 0) {
		return Country{}, false
	}
	ll := s2.LatLngFromDegrees(lat, lng)
	if !ll.IsValid() {
		return Country{}, false
	}

	candidates := cb.rankFrom(ll, -1)
	if len(candidates) == 0 || candidates[0].dist > maxCountryAtDistance {
		return Country{}, false
	}
	return cb.countries[candidates[0].idx].clone(), true
}

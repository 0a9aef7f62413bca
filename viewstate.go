package countrybed

// View is the screen a ViewState shows.
type View int

const (
	// ListingView shows the filtered collection. It is the initial view.
	ListingView View = iota
	// DetailView shows a single selected country.
	DetailView
)

func (v View) String() string {
	switch v {
	case ListingView:
		return "listing"
	case DetailView:
		return "detail"
	}
	return "unknown"
}

// ViewState is the session state of a directory browser: the selected
// country, the filter criteria and the theme. It is a value; every
// transition returns a new ViewState and leaves the receiver untouched. The
// zero value is the initial state (listing, no filters, light theme).
type ViewState struct {
	SearchTerm string
	Region     string // "" means no region filter
	DarkMode   bool

	// selected points into the canonical collection of the CountryBed that
	// produced this state, or is nil in the listing view.
	selected *Country
}

// View reports whether the state shows the listing or a country's detail.
func (s ViewState) View() View {
	if s.selected == nil {
		return ListingView
	}
	return DetailView
}

// Selected returns a copy of the selected country.
func (s ViewState) Selected() (Country, bool) {
	if s.selected == nil {
		return Country{}, false
	}
	return s.selected.clone(), true
}

// GoBack returns to the listing. Filters and theme are kept.
func (s ViewState) GoBack() ViewState {
	s.selected = nil
	return s
}

// ToggleDarkMode flips the theme without touching selection or filters.
func (s ViewState) ToggleDarkMode() ViewState {
	s.DarkMode = !s.DarkMode
	return s
}

// WithSearchTerm sets the name filter. It is kept while a country is selected.
func (s ViewState) WithSearchTerm(term string) ViewState {
	s.SearchTerm = term
	return s
}

// WithRegion sets the region filter. It is kept while a country is selected.
func (s ViewState) WithRegion(region string) ViewState {
	s.Region = region
	return s
}

// Select shows the detail of c. The record is looked up by name in the
// collection; a country that is not part of it leaves s unchanged.
func (cb *CountryBed) Select(s ViewState, c Country) ViewState {
	return cb.SelectByName(s, c.Name)
}

// SelectByName shows the detail of the country with exactly this name. An
// unknown name is a no-op.
func (cb *CountryBed) SelectByName(s ViewState, name string) ViewState {
	idx, ok := cb.nameIndex[name]
	if !ok {
		return s
	}
	s.selected = &cb.countries[idx]
	return s
}

// Visible returns the countries the listing view shows for s.
func (cb *CountryBed) Visible(s ViewState) []Country {
	return cb.Filter(s.SearchTerm, s.Region)
}

// Action is a single ViewState transition, applied through Reduce.
type Action interface {
	apply(cb *CountryBed, s ViewState) ViewState
}

// SelectAction selects Country from the listing.
type SelectAction struct{ Country Country }

// SelectByNameAction selects a country by exact name, as border links do.
type SelectByNameAction struct{ Name string }

// BackAction returns to the listing.
type BackAction struct{}

// ToggleDarkModeAction flips the theme.
type ToggleDarkModeAction struct{}

// SearchAction sets the name filter.
type SearchAction struct{ Term string }

// RegionAction sets the region filter; "" clears it.
type RegionAction struct{ Region string }

func (a SelectAction) apply(cb *CountryBed, s ViewState) ViewState { return cb.Select(s, a.Country) }
func (a SelectByNameAction) apply(cb *CountryBed, s ViewState) ViewState {
	return cb.SelectByName(s, a.Name)
}
func (BackAction) apply(_ *CountryBed, s ViewState) ViewState           { return s.GoBack() }
func (ToggleDarkModeAction) apply(_ *CountryBed, s ViewState) ViewState { return s.ToggleDarkMode() }
func (a SearchAction) apply(_ *CountryBed, s ViewState) ViewState       { return s.WithSearchTerm(a.Term) }
func (a RegionAction) apply(_ *CountryBed, s ViewState) ViewState       { return s.WithRegion(a.Region) }

// Reduce is the single update function for ViewState: it returns the state
// that follows s after a. A nil action returns s.
func (cb *CountryBed) Reduce(s ViewState, a Action) ViewState {
	if a == nil {
		return s
	}
	return a.apply(cb, s)
}

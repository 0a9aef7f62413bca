package countrybed

import (
	"testing"
)

func TestViewState_Initial(t *testing.T) {
	var s ViewState
	if s.View() != ListingView {
		t.Errorf("View() = %v, want listing", s.View())
	}
	if _, ok := s.Selected(); ok {
		t.Error("Selected() ok = true in initial state")
	}
	if s.DarkMode || s.SearchTerm != "" || s.Region != "" {
		t.Errorf("initial state = %+v, want zero", s)
	}
	if ListingView.String() != "listing" || DetailView.String() != "detail" || View(9).String() != "unknown" {
		t.Error("View.String() mismatch")
	}
}

func TestSelectByName_Unknown(t *testing.T) {
	cb := newFixtureBed(t)

	states := []ViewState{
		{},
		{SearchTerm: "fr", Region: "Europe", DarkMode: true},
		cb.SelectByName(ViewState{}, "Japan"),
	}
	for _, s := range states {
		for _, name := range []string{"Atlantis", "", "france", "FRA"} {
			if got := cb.SelectByName(s, name); got != s {
				t.Errorf("SelectByName(%q) = %+v, want unchanged %+v", name, got, s)
			}
		}
	}
}

func TestSelect_GoBack(t *testing.T) {
	cb := newFixtureBed(t)
	start := ViewState{SearchTerm: "an", Region: "Europe", DarkMode: true}
	fra, _ := cb.ByCode("FRA")

	detail := cb.Select(start, fra)
	if detail.View() != DetailView {
		t.Fatalf("View() after Select = %v, want detail", detail.View())
	}
	got, ok := detail.Selected()
	if !ok || got.Name != "France" {
		t.Errorf("Selected() = %q, %v; want France, true", got.Name, ok)
	}
	if detail.SearchTerm != start.SearchTerm || detail.Region != start.Region || detail.DarkMode != start.DarkMode {
		t.Errorf("Select changed filters or theme: %+v", detail)
	}
	if start.View() != ListingView {
		t.Error("Select modified its input state")
	}

	back := detail.GoBack()
	if back != start {
		t.Errorf("GoBack() = %+v, want %+v", back, start)
	}
	if back.GoBack() != back {
		t.Error("GoBack() on listing changed the state")
	}
}

func TestSelect_UnknownCountry(t *testing.T) {
	cb := newFixtureBed(t)
	s := ViewState{DarkMode: true}
	if got := cb.Select(s, Country{Name: "Atlantis"}); got != s {
		t.Errorf("Select(Atlantis) = %+v, want unchanged", got)
	}
}

func TestSelect_ReturnsCanonicalRecord(t *testing.T) {
	cb := newFixtureBed(t)
	// Only the name is used to find the record.
	s := cb.Select(ViewState{}, Country{Name: "Germany", Capital: "Bonn"})
	got, _ := s.Selected()
	if got.Capital != "Berlin" {
		t.Errorf("Selected().Capital = %q, want Berlin", got.Capital)
	}

	got.Borders[0] = "ZZZ"
	again, _ := s.Selected()
	if again.Borders[0] != "FRA" {
		t.Error("Selected() returned a record sharing memory with the collection")
	}
}

func TestSelectByName_BorderNavigation(t *testing.T) {
	cb := newFixtureBed(t)
	s := cb.SelectByName(ViewState{}, "France")

	fra, _ := s.Selected()
	for _, name := range cb.BorderNames(fra) {
		next := cb.SelectByName(s, name)
		c, _ := next.Selected()
		switch name {
		case "Germany":
			if c.Name != "Germany" {
				t.Errorf("following %q selected %q", name, c.Name)
			}
		default:
			// Unresolved code, not a country name.
			if next != s {
				t.Errorf("following unresolved %q changed the state", name)
			}
		}
	}
}

func TestToggleDarkMode(t *testing.T) {
	cb := newFixtureBed(t)
	s := cb.SelectByName(ViewState{SearchTerm: "x"}, "Japan")

	toggled := s.ToggleDarkMode()
	if !toggled.DarkMode {
		t.Error("ToggleDarkMode() did not enable dark mode")
	}
	if toggled.View() != DetailView || toggled.SearchTerm != "x" {
		t.Errorf("ToggleDarkMode() changed more than the theme: %+v", toggled)
	}
	if toggled.ToggleDarkMode() != s {
		t.Error("toggling twice did not restore the state")
	}
}

func TestReduce(t *testing.T) {
	cb := newFixtureBed(t)
	fra, _ := cb.ByCode("FRA")

	tests := []struct {
		name       string
		actions    []Action
		wantView   View
		wantName   string
		wantSearch string
		wantRegion string
		wantDark   bool
	}{
		{"nil action", []Action{nil}, ListingView, "", "", "", false},
		{"select", []Action{SelectAction{Country: fra}}, DetailView, "France", "", "", false},
		{"select by name", []Action{SelectByNameAction{Name: "Kenya"}}, DetailView, "Kenya", "", "", false},
		{"unknown name", []Action{SelectByNameAction{Name: "Atlantis"}}, ListingView, "", "", "", false},
		{"border hop", []Action{SelectAction{Country: fra}, SelectByNameAction{Name: "Germany"}}, DetailView, "Germany", "", "", false},
		{"back", []Action{SelectAction{Country: fra}, BackAction{}}, ListingView, "", "", "", false},
		{"toggle", []Action{ToggleDarkModeAction{}}, ListingView, "", "", "", true},
		{"toggle twice", []Action{ToggleDarkModeAction{}, ToggleDarkModeAction{}}, ListingView, "", "", "", false},
		{"filters", []Action{SearchAction{Term: "an"}, RegionAction{Region: "Asia"}}, ListingView, "", "an", "Asia", false},
		{"clear region", []Action{RegionAction{Region: "Asia"}, RegionAction{}}, ListingView, "", "", "", false},
		{
			"filters survive detail",
			[]Action{SearchAction{Term: "an"}, ToggleDarkModeAction{}, SelectByNameAction{Name: "Japan"}, BackAction{}},
			ListingView, "", "an", "", true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var s ViewState
			for _, a := range tt.actions {
				s = cb.Reduce(s, a)
			}
			if s.View() != tt.wantView {
				t.Errorf("View() = %v, want %v", s.View(), tt.wantView)
			}
			c, _ := s.Selected()
			if c.Name != tt.wantName {
				t.Errorf("Selected().Name = %q, want %q", c.Name, tt.wantName)
			}
			if s.SearchTerm != tt.wantSearch || s.Region != tt.wantRegion || s.DarkMode != tt.wantDark {
				t.Errorf("state = %+v, want search %q region %q dark %v", s, tt.wantSearch, tt.wantRegion, tt.wantDark)
			}
		})
	}
}

func TestVisible(t *testing.T) {
	cb := newFixtureBed(t)
	s := cb.Reduce(ViewState{}, RegionAction{Region: "Europe"})
	if got := names(cb.Visible(s)); len(got) != 2 || got[0] != "France" || got[1] != "Germany" {
		t.Errorf("Visible() = %v, want [France Germany]", got)
	}
	s = cb.Reduce(s, SearchAction{Term: "zzz"})
	if got := cb.Visible(s); len(got) != 0 {
		t.Errorf("Visible() = %v, want empty", names(got))
	}
}

// Package tui is the interactive terminal browser of the country directory.
// All navigation goes through the countrybed ViewState reducer; the model
// only keeps presentation state (cursors, input widget, window size).
package tui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/andreiashu/countrybed"
)

const maxSuggestions = 3

// Model is the bubbletea model of the browser.
type Model struct {
	bed   *countrybed.CountryBed
	state countrybed.ViewState

	search      textinput.Model
	visible     []countrybed.Country
	suggestions []string
	cursor      int
	offset      int
	// filters the cursor was placed under; a change resets it
	filterTerm   string
	filterRegion string
	regionIdx    int // 0 is "all regions", i is countrybed.Regions[i-1]

	selectedName string
	borders      []countrybed.Border
	borderCursor int

	styles Styles
	keys   keyMap
	help   help.Model
	width  int
	height int
}

// New returns a browser over bed in the listing view.
func New(bed *countrybed.CountryBed, darkMode bool) Model {
	ti := textinput.New()
	ti.Placeholder = "Search for a country..."
	ti.Prompt = "🔍 "
	ti.CharLimit = 64
	ti.Focus()

	m := Model{
		bed:    bed,
		search: ti,
		keys:   defaultKeyMap(),
		help:   help.New(),
		height: 24,
		width:  80,
	}
	if darkMode {
		m.state = bed.Reduce(m.state, countrybed.ToggleDarkModeAction{})
	}
	m.refresh()
	return m
}

// State returns the current view state.
func (m Model) State() countrybed.ViewState {
	return m.state
}

func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.clampCursor()
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Theme):
			m.dispatch(countrybed.ToggleDarkModeAction{})
			return m, nil
		}
		if m.state.View() == countrybed.DetailView {
			return m.updateDetail(msg)
		}
		return m.updateListing(msg)
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) updateListing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.clampCursor()
		return m, nil
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
		m.clampCursor()
		return m, nil
	case key.Matches(msg, m.keys.NextRegion):
		m.regionIdx = (m.regionIdx + 1) % (len(countrybed.Regions) + 1)
		m.dispatch(countrybed.RegionAction{Region: m.regionName()})
		return m, nil
	case key.Matches(msg, m.keys.PrevRegion):
		n := len(countrybed.Regions) + 1
		m.regionIdx = (m.regionIdx + n - 1) % n
		m.dispatch(countrybed.RegionAction{Region: m.regionName()})
		return m, nil
	case key.Matches(msg, m.keys.Select):
		if len(m.visible) > 0 {
			m.dispatch(countrybed.SelectAction{Country: m.visible[m.cursor]})
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if term := m.search.Value(); term != m.state.SearchTerm {
		m.dispatch(countrybed.SearchAction{Term: term})
	}
	return m, cmd
}

func (m Model) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.QuitDetail):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Back):
		m.dispatch(countrybed.BackAction{})
	case key.Matches(msg, m.keys.Left), key.Matches(msg, m.keys.Up):
		if m.borderCursor > 0 {
			m.borderCursor--
		}
	case key.Matches(msg, m.keys.Right), key.Matches(msg, m.keys.Down):
		if m.borderCursor < len(m.borders)-1 {
			m.borderCursor++
		}
	case key.Matches(msg, m.keys.Select):
		if len(m.borders) > 0 {
			// Unresolved codes are not country names, so this is a no-op for them.
			m.dispatch(countrybed.SelectByNameAction{Name: m.borders[m.borderCursor].Name})
		}
	}
	return m, nil
}

// dispatch runs a through the reducer and refreshes what depends on the state.
func (m *Model) dispatch(a countrybed.Action) {
	m.state = m.bed.Reduce(m.state, a)
	m.refresh()
}

func (m *Model) refresh() {
	m.styles = NewStyles(ThemeFor(m.state.DarkMode))

	m.visible = m.bed.Visible(m.state)
	if m.state.SearchTerm != m.filterTerm || m.state.Region != m.filterRegion {
		m.filterTerm, m.filterRegion = m.state.SearchTerm, m.state.Region
		m.cursor, m.offset = 0, 0
	}
	m.suggestions = nil
	if len(m.visible) == 0 {
		m.suggestions = m.bed.Suggest(m.state.SearchTerm, maxSuggestions)
	}
	m.clampCursor()

	selected, ok := m.state.Selected()
	if !ok {
		m.selectedName, m.borders, m.borderCursor = "", nil, 0
		return
	}
	if selected.Name != m.selectedName {
		m.selectedName = selected.Name
		m.borders = m.bed.Borders(selected)
		m.borderCursor = 0
	}
}

func (m Model) regionName() string {
	if m.regionIdx == 0 {
		return ""
	}
	return countrybed.Regions[m.regionIdx-1]
}

// listHeight is the number of listing rows that fit the window.
func (m Model) listHeight() int {
	return max(m.height-9, 3)
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.visible) {
		m.cursor = max(len(m.visible)-1, 0)
	}
	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
}

// Run starts the browser on the terminal and blocks until it exits.
func Run(bed *countrybed.CountryBed, darkMode bool) error {
	_, err := tea.NewProgram(New(bed, darkMode), tea.WithAltScreen()).Run()
	return err
}

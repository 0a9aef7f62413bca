package tui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up         key.Binding
	Down       key.Binding
	Left       key.Binding
	Right      key.Binding
	NextRegion key.Binding
	PrevRegion key.Binding
	Select     key.Binding
	Back       key.Binding
	Theme      key.Binding
	Quit       key.Binding
	QuitDetail key.Binding
}

// ctrl+d is taken by the search input (delete forward), so the theme toggle
// lives on ctrl+t.
func defaultKeyMap() keyMap {
	return keyMap{
		Up:         key.NewBinding(key.WithKeys("up", "ctrl+p"), key.WithHelp("↑", "up")),
		Down:       key.NewBinding(key.WithKeys("down", "ctrl+n"), key.WithHelp("↓", "down")),
		Left:       key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←", "prev border")),
		Right:      key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→", "next border")),
		NextRegion: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next region")),
		PrevRegion: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev region")),
		Select:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "open")),
		Back:       key.NewBinding(key.WithKeys("esc", "backspace"), key.WithHelp("esc", "back")),
		Theme:      key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "dark mode")),
		Quit:       key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		QuitDetail: key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "quit")),
	}
}

// listingKeys implements help.KeyMap for the listing view.
type listingKeys struct{ keyMap }

func (k listingKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.NextRegion, k.Select, k.Theme, k.Quit}
}

func (k listingKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.PrevRegion}}
}

// detailKeys implements help.KeyMap for the detail view.
type detailKeys struct{ keyMap }

func (k detailKeys) ShortHelp() []key.Binding {
	return []key.Binding{k.Left, k.Right, k.Select, k.Back, k.Theme, k.QuitDetail}
}

func (k detailKeys) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp(), {k.Quit}}
}

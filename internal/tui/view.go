package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/andreiashu/countrybed"
)

const emptyMessage = "No countries found matching your criteria."

func (m Model) View() string {
	var body string
	var helpView string
	if selected, ok := m.state.Selected(); ok {
		body = m.detailView(selected)
		helpView = m.help.View(detailKeys{m.keys})
	} else {
		body = m.listingView()
		helpView = m.help.View(listingKeys{m.keys})
	}

	page := lipgloss.JoinVertical(lipgloss.Left,
		m.headerView(),
		"",
		body,
		"",
		m.styles.Muted.Render(helpView),
	)
	return m.styles.App.Width(m.width).Render(page)
}

func (m Model) headerView() string {
	mode := "☾ Dark Mode"
	if m.state.DarkMode {
		mode = "☀ Light Mode"
	}
	title := "Where in the world?"
	gap := max(m.width-lipgloss.Width(title)-lipgloss.Width(mode)-8, 1)
	return m.styles.Header.Render(title + strings.Repeat(" ", gap) + mode)
}

func (m Model) listingView() string {
	var b strings.Builder
	b.WriteString(m.search.View())
	b.WriteString("\n")
	b.WriteString(m.regionView())
	b.WriteString("\n\n")

	if len(m.visible) == 0 {
		b.WriteString(m.styles.Empty.Render(emptyMessage))
		if len(m.suggestions) > 0 {
			b.WriteString("\n")
			b.WriteString(m.styles.Muted.Render("  Did you mean: " + strings.Join(m.suggestions, ", ") + "?"))
		}
		return b.String()
	}

	end := min(m.offset+m.listHeight(), len(m.visible))
	for i := m.offset; i < end; i++ {
		c := m.visible[i]
		line := fmt.Sprintf("%-40s %15s  %-9s %s",
			truncate(c.Name, 40), c.FormattedPopulation(), c.Region, c.CapitalOrNA())
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render(line))
		} else {
			b.WriteString(m.styles.Row.Render(line))
		}
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Muted.Render(fmt.Sprintf("  %d of %d countries", m.cursor+1, len(m.visible))))
	return b.String()
}

func (m Model) regionView() string {
	chips := make([]string, 0, len(countrybed.Regions)+1)
	for i, name := range append([]string{"All"}, countrybed.Regions...) {
		if i == m.regionIdx {
			chips = append(chips, m.styles.ChipOn.Render(name))
		} else {
			chips = append(chips, m.styles.Chip.Render(name))
		}
	}
	return m.styles.Label.Render("Region: ") + lipgloss.JoinHorizontal(lipgloss.Top, chips...)
}

func (m Model) detailView(c countrybed.Country) string {
	field := func(label, value string) string {
		return m.styles.Label.Render(label+": ") + value
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		field("Native Name", c.NativeName),
		field("Population", c.FormattedPopulation()),
		field("Region", c.Region),
		field("Sub Region", c.Subregion),
		field("Capital", c.CapitalOrNA()),
	)
	right := lipgloss.JoinVertical(lipgloss.Left,
		field("Top Level Domain", c.TLD),
		field("Currencies", c.Currencies),
		field("Languages", c.Languages),
		field("Flag", m.styles.Muted.Render(c.Flag)),
	)

	var b strings.Builder
	b.WriteString(m.styles.Title.Render(c.Name))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, left, "    ", right))
	b.WriteString("\n\n")
	b.WriteString(m.styles.Label.Render("Border Countries: "))
	if len(m.borders) == 0 {
		b.WriteString(m.styles.Muted.Render("none"))
		return b.String()
	}
	chips := make([]string, len(m.borders))
	for i, border := range m.borders {
		style := m.styles.Chip
		if i == m.borderCursor {
			style = m.styles.ChipOn
		}
		if !border.Resolved {
			style = style.Faint(true)
		}
		chips[i] = style.Render(border.Name)
	}
	b.WriteString(lipgloss.NewStyle().Width(max(m.width-4, 20)).Render(strings.Join(chips, "")))
	return b.String()
}

func truncate(s string, l int) string {
	r := []rune(s)
	if len(r) > l {
		return string(r[:l-3]) + "..."
	}
	return s
}

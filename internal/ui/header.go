package ui

import (
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the top status line: logo, screen tabs, and the
// store's loading/error state.
func (m Model) renderHeader() string {
	styles := m.theme.Styles()

	left := styles.Logo.Render("SNACKDASH") + "  " + m.renderTabs(styles)

	var right string
	switch {
	case m.snapshot.Err != "":
		right = styles.DangerText.Render("✗ " + truncate(m.snapshot.Err, 48))
	case m.snapshot.Loading:
		right = styles.InfoText.Render("⟳ syncing")
	default:
		age := relativeAge(m.snapshot.LastUpdated, time.Now())
		if age == "" {
			right = styles.MutedText.Render("waiting for data")
		} else {
			right = styles.SuccessText.Render("✓") + styles.MutedText.Render(" updated "+age)
		}
	}
	if m.width >= LayoutWideWidth && m.apiURL != "" {
		right = styles.FaintText.Render(truncate(m.apiURL, 36)+"  ") + right
	}

	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return styles.Header.Width(m.width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderTabs(styles Styles) string {
	tabs := []struct {
		view  View
		label string
	}{
		{ViewOverview, "1 Overview"},
		{ViewSnacks, "2 Snacks"},
		{ViewSales, "3 Sales"},
		{ViewStock, "4 Stock"},
	}

	parts := make([]string, 0, len(tabs))
	for _, tab := range tabs {
		if tab.view == m.currentView {
			parts = append(parts, styles.AccentText.Bold(true).Render(tab.label))
		} else {
			parts = append(parts, styles.MutedText.Render(tab.label))
		}
	}
	return strings.Join(parts, styles.FaintText.Render(" · "))
}

// renderCommandBar renders the second line: the search input while typing,
// otherwise the keys relevant to the current screen.
func (m Model) renderCommandBar() string {
	styles := m.theme.Styles()

	if m.searchMode {
		return styles.Footer.Width(m.width).Render(m.searchInput.View())
	}

	var parts []string
	if m.search != "" {
		parts = append(parts, styles.AccentText.Render("search: "+truncate(m.search, 24)))
	}

	switch m.currentView {
	case ViewSnacks:
		parts = append(parts,
			"n new", "x delete", "/ search",
			"c sort: "+snackSortLabel(m.snackSort, m.snackAsc),
		)
	case ViewSales:
		parts = append(parts,
			"n new", "x delete", "/ search",
			"f range: "+m.dateRange.Label(),
		)
	case ViewStock:
		parts = append(parts,
			"n new", "u adjust", "x delete", "/ search",
			"f filter: "+stockFilterLabel(m.stockFilter),
		)
	default:
		parts = append(parts, "tab switch screen", "r refresh", "T theme")
	}
	parts = append(parts, "h help", "q quit")

	return styles.Footer.Width(m.width).Render(strings.Join(parts, "  ·  "))
}

// renderPanel wraps content in a titled bordered box.
func (m Model) renderPanel(title, content string, width int) string {
	styles := m.theme.Styles()
	inner := styles.PanelTitle.Render(title) + "\n" + content
	panel := styles.Panel
	if width > 0 {
		panel = panel.Width(width)
	}
	return panel.Render(inner)
}

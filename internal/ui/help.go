package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderHelp renders the full-screen help overlay.
func (m Model) renderHelp() string {
	styles := m.theme.Styles()

	sections := []struct {
		title string
		keys  [][2]string
	}{
		{"Screens", [][2]string{
			{"1 / o", "Overview"},
			{"2 / s", "Snacks"},
			{"3 / a", "Sales"},
			{"4 / t", "Stock"},
			{"tab / shift+tab", "Next / previous screen"},
		}},
		{"Navigation", [][2]string{
			{"j / k", "Move down / up"},
			{"g / G", "Jump to top / bottom"},
			{"/", "Search by name or barcode"},
			{"esc", "Clear search, back to overview"},
		}},
		{"Actions", [][2]string{
			{"n", "New snack, sale, or stock lot"},
			{"enter", "Sell selected snack, adjust selected lot"},
			{"u", "Adjust selected lot's count"},
			{"x", "Delete selected entry"},
			{"f", "Cycle date range / stock filter"},
			{"c / C", "Cycle snack sort column / direction"},
			{"r", "Refresh all data"},
		}},
		{"Other", [][2]string{
			{"T", "Cycle color theme"},
			{"h / ?", "Toggle this help"},
			{"q / ctrl+c", "Quit"},
		}},
	}

	var b strings.Builder
	b.WriteString(styles.ModalTitle.Render("Help"))
	b.WriteString("\n")
	for _, section := range sections {
		b.WriteString("\n")
		b.WriteString(styles.AccentText.Render(section.title))
		b.WriteString("\n")
		for _, entry := range section.keys {
			b.WriteString("  ")
			b.WriteString(styles.WarningText.Render(padRight(entry[0], 18)))
			b.WriteString(styles.Text.Render(entry[1]))
			b.WriteString("\n")
		}
	}
	b.WriteString("\n")
	b.WriteString(styles.ModalHint.Render("press any key to close"))

	box := styles.ModalBox.Render(b.String())
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

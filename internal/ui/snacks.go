package ui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/snackpos/snackdash/internal/pos"
	"github.com/snackpos/snackdash/internal/views"
)

// visibleSnacks applies the search term and sort order to the snapshot.
func (m Model) visibleSnacks() []pos.Snack {
	filtered := make([]pos.Snack, 0, len(m.snapshot.Snacks))
	for _, snack := range m.snapshot.Snacks {
		if views.MatchSnack(snack, m.search) {
			filtered = append(filtered, snack)
		}
	}
	return views.SortSnacks(filtered, m.snackSort, m.snackAsc)
}

func (m Model) selectedSnack() (pos.Snack, bool) {
	snacks := m.visibleSnacks()
	if m.snackRow < 0 || m.snackRow >= len(snacks) {
		return pos.Snack{}, false
	}
	return snacks[m.snackRow], true
}

func (m Model) handleSnacksKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.modal = m.newSnackForm()
		return m, nil

	case "enter":
		if snack, ok := m.selectedSnack(); ok {
			m.modal = m.newSaleForm(snack.Barcode)
		}
		return m, nil

	case "x":
		snack, ok := m.selectedSnack()
		if !ok {
			return m, nil
		}
		barcode := snack.Barcode
		m.modal = newConfirmModal(
			"Delete snack",
			fmt.Sprintf("Delete %q (%s)?", snack.Name, barcode),
			m.opCmd(func(ctx context.Context) error {
				return m.store.DeleteSnack(ctx, barcode)
			}),
		)
		return m, nil

	case "c":
		if m.snackSort == views.SnacksByName {
			m.snackSort = views.SnacksByPrice
		} else {
			m.snackSort = views.SnacksByName
		}
		m.snackRow = 0
		return m, nil

	case "C":
		m.snackAsc = !m.snackAsc
		m.snackRow = 0
		return m, nil
	}

	m.snackRow = moveSelection(msg, m.snackRow, len(m.visibleSnacks()))
	return m, nil
}

func (m Model) renderSnacks() string {
	styles := m.theme.Styles()
	snacks := m.visibleSnacks()

	nameWidth := 32
	if m.width < LayoutCompactWidth {
		nameWidth = 20
	}

	header := padRight("BARCODE", 16) + padRight("NAME", nameWidth) + padLeft("PRICE", 12)
	rows := []string{styles.MutedText.Render(header)}

	for i, snack := range snacks {
		line := padRight(truncate(snack.Barcode, 15), 16) +
			padRight(truncate(snack.Name, nameWidth-1), nameWidth) +
			padLeft(formatMoney(snack.Price), 12)
		if i == m.snackRow {
			rows = append(rows, styles.Selected.Render(line))
		} else {
			rows = append(rows, styles.Text.Render(line))
		}
	}

	if len(snacks) == 0 {
		rows = append(rows, styles.FaintText.Render(m.emptyListText("No snacks registered.")))
	}

	title := fmt.Sprintf("Snacks (%d) · sort %s", len(snacks), snackSortLabel(m.snackSort, m.snackAsc))
	return m.renderPanel(title, joinRows(rows), m.width-2)
}

func snackSortLabel(by views.SnackSort, ascending bool) string {
	label := "name"
	if by == views.SnacksByPrice {
		label = "price"
	}
	if ascending {
		return label + " ↑"
	}
	return label + " ↓"
}

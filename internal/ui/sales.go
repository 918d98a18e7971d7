package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/snackpos/snackdash/internal/pos"
	"github.com/snackpos/snackdash/internal/views"
)

// visibleSales applies the search term and date range to the snapshot,
// newest first.
func (m Model) visibleSales() []pos.Sale {
	now := time.Now()
	filtered := make([]pos.Sale, 0, len(m.snapshot.Sales))
	for _, sale := range m.snapshot.Sales {
		if !views.MatchSale(sale, m.search) {
			continue
		}
		if !views.InRange(sale.ParsedTimestamp(), now, m.dateRange) {
			continue
		}
		filtered = append(filtered, sale)
	}
	return views.SortSalesNewest(filtered)
}

func (m Model) selectedSale() (pos.Sale, bool) {
	sales := m.visibleSales()
	if m.saleRow < 0 || m.saleRow >= len(sales) {
		return pos.Sale{}, false
	}
	return sales[m.saleRow], true
}

func (m Model) handleSalesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		m.modal = m.newSaleForm("")
		return m, nil

	case "x":
		sale, ok := m.selectedSale()
		if !ok {
			return m, nil
		}
		id := sale.ID
		name := sale.SnackID
		if sale.Snack != nil && sale.Snack.Name != "" {
			name = sale.Snack.Name
		}
		m.modal = newConfirmModal(
			"Delete sale",
			fmt.Sprintf("Delete sale of %d × %s?", sale.Quantity, truncate(name, 24)),
			m.opCmd(func(ctx context.Context) error {
				return m.store.DeleteSale(ctx, id)
			}),
		)
		return m, nil

	case "f":
		m.dateRange = m.dateRange.Next()
		m.saleRow = 0
		return m, nil
	}

	m.saleRow = moveSelection(msg, m.saleRow, len(m.visibleSales()))
	return m, nil
}

func (m Model) renderSales() string {
	styles := m.theme.Styles()
	sales := m.visibleSales()
	now := time.Now()

	nameWidth := 28
	if m.width < LayoutCompactWidth {
		nameWidth = 18
	}

	header := padRight("WHEN", 14) + padRight("SNACK", nameWidth) +
		padLeft("QTY", 5) + padLeft("TOTAL", 12)
	rows := []string{styles.MutedText.Render(header)}

	for i, sale := range sales {
		name := sale.SnackID
		if sale.Snack != nil && sale.Snack.Name != "" {
			name = sale.Snack.Name
		}
		line := padRight(formatSaleTime(sale.Timestamp, sale.ParsedTimestamp(), now), 14) +
			padRight(truncate(name, nameWidth-1), nameWidth) +
			padLeft(fmt.Sprintf("%d", sale.Quantity), 5) +
			padLeft(formatMoney(views.SaleTotal(sale)), 12)
		if i == m.saleRow {
			rows = append(rows, styles.Selected.Render(line))
		} else {
			rows = append(rows, styles.Text.Render(line))
		}
	}

	if len(sales) == 0 {
		rows = append(rows, styles.FaintText.Render(m.emptyListText("No sales in this range.")))
	}

	rows = append(rows, "")
	rows = append(rows, styles.AccentText.Render(
		fmt.Sprintf("%d sales · revenue %s", len(sales), formatMoney(views.TotalRevenue(sales)))))

	title := fmt.Sprintf("Sales · %s", m.dateRange.Label())
	return m.renderPanel(title, joinRows(rows), m.width-2)
}

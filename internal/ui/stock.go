package ui

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/snackpos/snackdash/internal/pos"
	"github.com/snackpos/snackdash/internal/views"
)

// visibleStocks applies the search term and status filter to the snapshot,
// newest lot first.
func (m Model) visibleStocks() []pos.Stock {
	filtered := make([]pos.Stock, 0, len(m.snapshot.Stocks))
	for _, lot := range m.snapshot.Stocks {
		if !views.MatchStock(lot, m.search) {
			continue
		}
		if !m.stockFilter.matches(lot) {
			continue
		}
		filtered = append(filtered, lot)
	}
	return views.SortStocksNewest(filtered)
}

func (f StockFilter) matches(lot pos.Stock) bool {
	status := views.StatusFor(views.FillPercent(lot))
	switch f {
	case StockLow:
		return status == views.StatusLow
	case StockMedium:
		return status == views.StatusMedium
	case StockHigh:
		return status == views.StatusHigh
	default:
		return true
	}
}

func (f StockFilter) next() StockFilter {
	switch f {
	case StockAll:
		return StockLow
	case StockLow:
		return StockMedium
	case StockMedium:
		return StockHigh
	default:
		return StockAll
	}
}

func stockFilterLabel(f StockFilter) string {
	switch f {
	case StockLow:
		return "low"
	case StockMedium:
		return "medium"
	case StockHigh:
		return "high"
	default:
		return "all"
	}
}

func (m Model) selectedStock() (pos.Stock, bool) {
	stocks := m.visibleStocks()
	if m.stockRow < 0 || m.stockRow >= len(stocks) {
		return pos.Stock{}, false
	}
	return stocks[m.stockRow], true
}

func (m Model) handleStockKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "n":
		snackID := ""
		if lot, ok := m.selectedStock(); ok {
			snackID = lot.SnackID
		}
		m.modal = m.newStockForm(snackID)
		return m, nil

	case "u", "enter":
		if lot, ok := m.selectedStock(); ok {
			m.modal = m.newRestockForm(lot)
		}
		return m, nil

	case "x":
		lot, ok := m.selectedStock()
		if !ok {
			return m, nil
		}
		id := lot.ID
		name := lot.SnackID
		if lot.Snack != nil && lot.Snack.Name != "" {
			name = lot.Snack.Name
		}
		m.modal = newConfirmModal(
			"Delete stock lot",
			fmt.Sprintf("Delete lot for %s (%d/%d units)?", truncate(name, 24), lot.QuantityNow, lot.Quantity),
			m.opCmd(func(ctx context.Context) error {
				return m.store.DeleteStock(ctx, id)
			}),
		)
		return m, nil

	case "f":
		m.stockFilter = m.stockFilter.next()
		m.stockRow = 0
		return m, nil
	}

	m.stockRow = moveSelection(msg, m.stockRow, len(m.visibleStocks()))
	return m, nil
}

func (m Model) renderStock() string {
	styles := m.theme.Styles()
	stocks := m.visibleStocks()
	now := time.Now()
	wide := m.width >= LayoutWideWidth

	nameWidth := 24
	if m.width < LayoutCompactWidth {
		nameWidth = 16
	}

	header := padRight("SNACK", nameWidth) + padLeft("NOW/INIT", 10) +
		"  " + padRight("FILL", barWidth+8) + padRight("STATUS", 10)
	if wide {
		header += padRight("ADDED", 10)
	}
	rows := []string{styles.MutedText.Render(header)}

	for i, lot := range stocks {
		name := lot.SnackID
		if lot.Snack != nil && lot.Snack.Name != "" {
			name = lot.Snack.Name
		}
		pct := views.FillPercent(lot)
		status := views.StatusFor(pct)

		line := padRight(truncate(name, nameWidth-1), nameWidth) +
			padLeft(fmt.Sprintf("%d/%d", lot.QuantityNow, lot.Quantity), 10) +
			"  " + padRight(fillBar(pct, barWidth)+" "+formatPercent(pct), barWidth+8)
		tail := ""
		if wide {
			tail = padRight(relativeAge(lot.ParsedCreatedAt(), now), 10)
		}

		if i == m.stockRow {
			rows = append(rows, styles.Selected.Render(line+padRight(string(status), 10)+tail))
			continue
		}
		badge := styles.StatusStyle(statusLabel(status)).Render(string(status))
		pad := 10 - (len(status) + 2)
		if pad < 1 {
			pad = 1
		}
		rows = append(rows, styles.Text.Render(line)+badge+padRight("", pad)+styles.FaintText.Render(tail))
	}

	if len(stocks) == 0 {
		rows = append(rows, styles.FaintText.Render(m.emptyListText("No stock lots tracked.")))
	}

	rows = append(rows, "")
	rows = append(rows, styles.AccentText.Render(
		fmt.Sprintf("%d lots · %d units on hand · %d low",
			len(stocks), views.TotalUnits(stocks), views.LowStockCount(stocks))))

	title := fmt.Sprintf("Stock · %s", stockFilterLabel(m.stockFilter))
	return m.renderPanel(title, joinRows(rows), m.width-2)
}

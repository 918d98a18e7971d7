package ui

import (
	"fmt"
	"strconv"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/snackpos/snackdash/internal/views"
)

// renderOverview renders the dashboard: stat cards over the whole dataset
// plus recent sales and the lots running low.
func (m Model) renderOverview() string {
	styles := m.theme.Styles()
	now := time.Now()

	dateLine := styles.MutedText.Render(" " + now.Format("Monday, January 2 2006"))
	cards := m.renderStatCards(now)

	recent := m.renderRecentSales(now)
	low := m.renderLowStock()

	var body string
	if m.width >= LayoutWideWidth {
		body = lipgloss.JoinHorizontal(lipgloss.Top, recent, low)
	} else {
		body = recent + "\n" + low
	}

	if m.snapshot.LastUpdated.IsZero() && m.snapshot.Loading {
		return dateLine + "\n" + cards + "\n" + styles.InfoText.Render("  Fetching data...")
	}
	return dateLine + "\n" + cards + "\n" + body
}

func (m Model) renderStatCards(now time.Time) string {
	styles := m.theme.Styles()

	revenue := views.TotalRevenue(m.snapshot.Sales)
	lowCount := views.LowStockCount(m.snapshot.Stocks)

	lowStyle := styles.SuccessText
	if lowCount > 0 {
		lowStyle = styles.DangerText
	}

	cards := []string{
		m.statCard("Snacks", strconv.Itoa(len(m.snapshot.Snacks)), styles.AccentText),
		m.statCard("Revenue", formatMoney(revenue), styles.SuccessText),
		m.statCard("Sales today", strconv.Itoa(views.TodaySalesCount(m.snapshot.Sales, now)), styles.InfoText),
		m.statCard("Units on hand", strconv.Itoa(views.TotalUnits(m.snapshot.Stocks)), styles.Text),
		m.statCard("Low lots", strconv.Itoa(lowCount), lowStyle),
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, cards...)
}

func (m Model) statCard(label, value string, valueStyle lipgloss.Style) string {
	styles := m.theme.Styles()
	width := 17
	if m.width < LayoutCompactWidth {
		width = 13
	}
	content := styles.MutedText.Render(truncate(label, width)) + "\n" +
		valueStyle.Bold(true).Render(truncate(value, width))
	return styles.Panel.Width(width).Render(content)
}

func (m Model) renderRecentSales(now time.Time) string {
	styles := m.theme.Styles()
	sales := views.SortSalesNewest(m.snapshot.Sales)

	limit := 8
	if len(sales) < limit {
		limit = len(sales)
	}

	rows := make([]string, 0, limit+1)
	for _, sale := range sales[:limit] {
		name := sale.SnackID
		if sale.Snack != nil && sale.Snack.Name != "" {
			name = sale.Snack.Name
		}
		rows = append(rows, styles.Text.Render(
			padRight(formatSaleTime(sale.Timestamp, sale.ParsedTimestamp(), now), 14)+
				padRight(truncate(name, 21), 22)+
				padLeft(fmt.Sprintf("×%d", sale.Quantity), 4)+
				padLeft(formatMoney(views.SaleTotal(sale)), 11)))
	}
	if limit == 0 {
		rows = append(rows, styles.FaintText.Render("No sales recorded yet."))
	}

	return m.renderPanel("Recent sales", joinRows(rows), m.panelWidth())
}

func (m Model) renderLowStock() string {
	styles := m.theme.Styles()

	type lowLot struct {
		name string
		pct  float64
		now  int
		qty  int
	}
	var lots []lowLot
	for _, lot := range views.SortStocksNewest(m.snapshot.Stocks) {
		pct := views.FillPercent(lot)
		if views.StatusFor(pct) != views.StatusLow {
			continue
		}
		name := lot.SnackID
		if lot.Snack != nil && lot.Snack.Name != "" {
			name = lot.Snack.Name
		}
		lots = append(lots, lowLot{name: name, pct: pct, now: lot.QuantityNow, qty: lot.Quantity})
		if len(lots) == 8 {
			break
		}
	}

	rows := make([]string, 0, len(lots)+1)
	for _, lot := range lots {
		rows = append(rows, styles.Text.Render(padRight(truncate(lot.name, 21), 22))+
			styles.DangerText.Render(fillBar(lot.pct, 10))+
			styles.Text.Render(padLeft(fmt.Sprintf("%d/%d", lot.now, lot.qty), 9)))
	}
	if len(lots) == 0 {
		rows = append(rows, styles.SuccessText.Render("All lots above the low threshold."))
	}

	return m.renderPanel("Running low", joinRows(rows), m.panelWidth())
}

// panelWidth sizes overview panels: half the terminal side by side when
// wide, full width stacked otherwise.
func (m Model) panelWidth() int {
	if m.width >= LayoutWideWidth {
		return m.width/2 - 2
	}
	return m.width - 2
}

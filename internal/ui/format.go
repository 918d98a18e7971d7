package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/snackpos/snackdash/internal/views"
)

// currencySymbol prefixes money values. The POS runs in baht.
const currencySymbol = "฿"

// formatMoney renders a decimal amount with two places and the currency
// symbol.
func formatMoney(amount decimal.Decimal) string {
	return currencySymbol + amount.StringFixed(2)
}

// formatPercent renders a fill percentage with one decimal place.
func formatPercent(pct float64) string {
	return fmt.Sprintf("%.1f%%", pct)
}

// fillBar renders a proportional bar for a fill percentage.
func fillBar(pct float64, width int) string {
	if width <= 0 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := int(pct/100*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// statusLabel lowercases a StockStatus for theme color lookup.
func statusLabel(status views.StockStatus) string {
	return strings.ToLower(string(status))
}

// formatSaleTime renders a sale timestamp compactly: time of day for
// today's sales, date otherwise. Unparseable timestamps pass through.
func formatSaleTime(raw string, parsed, now time.Time) string {
	if parsed.IsZero() {
		return truncate(raw, 16)
	}
	if views.SameDay(parsed, now) {
		return parsed.Local().Format("15:04:05")
	}
	return parsed.Local().Format("Jan 02 15:04")
}

// relativeAge renders how long ago ts was, coarsely.
func relativeAge(ts, now time.Time) string {
	if ts.IsZero() {
		return ""
	}
	since := now.Sub(ts)
	switch {
	case since < time.Minute:
		return "now"
	case since < time.Hour:
		return fmt.Sprintf("%dm ago", int(since.Minutes()))
	case since < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(since.Hours()))
	default:
		return fmt.Sprintf("%dd ago", int(since.Hours()/24))
	}
}

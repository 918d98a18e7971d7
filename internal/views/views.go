// Package views holds the pure derivations screens compute over the
// store's collections on every render: revenue totals, stock fill
// classification, date-range and search filters, and sort orders. Nothing
// here holds state or talks to the network.
package views

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/snackpos/snackdash/internal/pos"
)

// StockStatus classifies a lot's fill percentage.
type StockStatus string

const (
	StatusLow    StockStatus = "Low"
	StatusMedium StockStatus = "Medium"
	StatusHigh   StockStatus = "High"
)

// FillPercent returns quantity_now/quantity*100, or 0 when the lot has no
// baseline quantity.
func FillPercent(lot pos.Stock) float64 {
	if lot.Quantity <= 0 {
		return 0
	}
	return float64(lot.QuantityNow) / float64(lot.Quantity) * 100
}

// StatusFor classifies a fill percentage. Boundaries are inclusive upward:
// exactly 30 is Medium, exactly 70 is High.
func StatusFor(percent float64) StockStatus {
	switch {
	case percent < 30:
		return StatusLow
	case percent < 70:
		return StatusMedium
	default:
		return StatusHigh
	}
}

// SaleTotal returns the line total for a sale: embedded snack price times
// quantity. A sale without its snack denormalization counts as zero.
func SaleTotal(sale pos.Sale) decimal.Decimal {
	if sale.Snack == nil {
		return decimal.Zero
	}
	return sale.Snack.Price.Mul(decimal.NewFromInt(int64(sale.Quantity)))
}

// TotalRevenue sums the line totals of the given sales.
func TotalRevenue(sales []pos.Sale) decimal.Decimal {
	total := decimal.Zero
	for _, sale := range sales {
		total = total.Add(SaleTotal(sale))
	}
	return total
}

// DateRange filters sales by recency.
type DateRange int

const (
	RangeAll DateRange = iota
	RangeToday
	RangeWeek
	RangeMonth
)

// Label returns the display name for a date range.
func (r DateRange) Label() string {
	switch r {
	case RangeToday:
		return "Today"
	case RangeWeek:
		return "Week"
	case RangeMonth:
		return "Month"
	default:
		return "All"
	}
}

// Next cycles to the following range.
func (r DateRange) Next() DateRange {
	switch r {
	case RangeAll:
		return RangeToday
	case RangeToday:
		return RangeWeek
	case RangeWeek:
		return RangeMonth
	default:
		return RangeAll
	}
}

// InRange reports whether ts falls inside the range relative to now.
// Today means calendar-day equality in local time; Week and Month are
// rolling 7- and 30-day windows.
func InRange(ts, now time.Time, r DateRange) bool {
	switch r {
	case RangeToday:
		return SameDay(ts, now)
	case RangeWeek:
		return !ts.Before(now.Add(-7 * 24 * time.Hour))
	case RangeMonth:
		return !ts.Before(now.Add(-30 * 24 * time.Hour))
	default:
		return true
	}
}

// SameDay reports calendar-day equality in local time.
func SameDay(a, b time.Time) bool {
	ay, am, ad := a.Local().Date()
	by, bm, bd := b.Local().Date()
	return ay == by && am == bm && ad == bd
}

// MatchSnack reports whether the snack matches the search term by name or
// barcode, case-insensitively. An empty term matches everything.
func MatchSnack(snack pos.Snack, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	return strings.Contains(strings.ToLower(snack.Name), term) ||
		strings.Contains(strings.ToLower(snack.Barcode), term)
}

// MatchSale reports whether the sale matches the search term by snack
// name or snack_id, OR-combined.
func MatchSale(sale pos.Sale, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if sale.Snack != nil && strings.Contains(strings.ToLower(sale.Snack.Name), term) {
		return true
	}
	return strings.Contains(strings.ToLower(sale.SnackID), term)
}

// MatchStock reports whether the lot matches the search term by snack
// name or snack_id.
func MatchStock(lot pos.Stock, term string) bool {
	if term == "" {
		return true
	}
	term = strings.ToLower(term)
	if lot.Snack != nil && strings.Contains(strings.ToLower(lot.Snack.Name), term) {
		return true
	}
	return strings.Contains(strings.ToLower(lot.SnackID), term)
}

// SnackSort selects the snack table ordering.
type SnackSort int

const (
	SnacksByName SnackSort = iota
	SnacksByPrice
)

// SortSnacks returns a sorted copy of snacks.
func SortSnacks(snacks []pos.Snack, by SnackSort, ascending bool) []pos.Snack {
	out := append([]pos.Snack(nil), snacks...)
	sort.SliceStable(out, func(i, j int) bool {
		var cmp int
		switch by {
		case SnacksByPrice:
			cmp = out[i].Price.Cmp(out[j].Price)
		default:
			cmp = strings.Compare(strings.ToLower(out[i].Name), strings.ToLower(out[j].Name))
		}
		if ascending {
			return cmp < 0
		}
		return cmp > 0
	})
	return out
}

// SortSalesNewest returns a copy of sales ordered newest first.
func SortSalesNewest(sales []pos.Sale) []pos.Sale {
	out := append([]pos.Sale(nil), sales...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ParsedTimestamp().After(out[j].ParsedTimestamp())
	})
	return out
}

// SortStocksNewest returns a copy of stocks ordered newest first.
func SortStocksNewest(stocks []pos.Stock) []pos.Stock {
	out := append([]pos.Stock(nil), stocks...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].ParsedCreatedAt().After(out[j].ParsedCreatedAt())
	})
	return out
}

// LowStockCount counts lots classified Low.
func LowStockCount(stocks []pos.Stock) int {
	count := 0
	for _, lot := range stocks {
		if StatusFor(FillPercent(lot)) == StatusLow {
			count++
		}
	}
	return count
}

// TodaySalesCount counts sales whose timestamp falls on now's calendar day.
func TodaySalesCount(sales []pos.Sale, now time.Time) int {
	count := 0
	for _, sale := range sales {
		if SameDay(sale.ParsedTimestamp(), now) {
			count++
		}
	}
	return count
}

// TotalUnits sums quantity_now across all lots.
func TotalUnits(stocks []pos.Stock) int {
	total := 0
	for _, lot := range stocks {
		total += lot.QuantityNow
	}
	return total
}

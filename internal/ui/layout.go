package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 90

	// LayoutWideWidth is the minimum width to show secondary columns
	// (timestamps, fill bars at full width).
	LayoutWideWidth = 120
)

// Timing constants.
const (
	// DefaultUIInterval is the default UI snapshot refresh interval.
	DefaultUIInterval = time.Second
)

// Table sizing.
const (
	// barWidth is the character width of stock fill bars.
	barWidth = 16
)

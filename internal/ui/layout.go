package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which the grid shows one column.
	LayoutCompactWidth = 80

	// LayoutWideWidth is the minimum width for three grid columns.
	LayoutWideWidth = 140

	// gridCardHeight is the rendered height of one recipe card, borders included.
	gridCardHeight = 4
)

// Log display limits.
const (
	// LogTailLines is how many lines of galley.log the log view reads.
	LogTailLines = 500
)

// DefaultUIInterval is the default store polling interval.
const DefaultUIInterval = 250 * time.Millisecond

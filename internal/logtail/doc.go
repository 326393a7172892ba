// Package logtail reads the tail of galley's log file for the TUI log view.
//
// # Overview
//
// galley logs through logrus with a JSON formatter into a file, because the
// TUI owns the terminal. This package reads the last N lines of that file and
// parses each one back into an Entry:
//
//	{"component":"fetch","level":"info","msg":"category fetched","time":"..."}
//	→ Entry{Component: "fetch", Level: "info", Message: "category fetched", ...}
//
// Lines that are not JSON (a panic trace, output from an older build) are
// kept with Message set to the raw text.
//
// # Reading Log Files
//
// Read uses a ring buffer of size maxLines, so memory stays O(maxLines)
// regardless of file size. A non-positive maxLines returns the whole file.
//
// # Error Handling
//
// Read returns nil, nil for a missing file. Other I/O errors are wrapped.
// Parse never fails.
package logtail

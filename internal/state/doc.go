// Package state provides thread-safe view state for the galley TUI.
//
// # Overview
//
// The Store is the coordination point between the fetch goroutine started by
// app.Loader and the UI render loop. The loader writes progress and results;
// the UI reads snapshots on its own refresh schedule.
//
//	Loader goroutine:               UI:
//	┌────────────────────┐         ┌──────────────────┐
//	│ t := Begin(cat)    │         │                  │
//	│ SetPhase(t, ...)   │────────→│ store.Snapshot() │
//	│ Finish(t, rs, err) │ (mutex) │ render grid      │
//	└────────────────────┘         └──────────────────┘
//
// # Tickets
//
// Begin returns a Ticket and invalidates every earlier one. SetPhase and
// Finish calls carrying a stale ticket are dropped, so a slow fetch for a
// category the user already left can never overwrite the newer one.
//
// # Update Semantics
//
//	// Success: replace recipes
//	store.Finish(t, recipes, nil)
//	→ Recipes = recipes, LastError = nil, ConsecutiveFailures = 0
//
//	// Failure: keep old recipes, record error
//	store.Finish(t, nil, err)
//	→ Recipes = <unchanged>, LastError = err, ConsecutiveFailures++
//
// Switching to a different category in Begin clears the recipes so the grid
// never shows one category under another's title.
//
// # Copying
//
// Snapshot returns a cloned recipe slice and a wrapped copy of LastError.
// The zero Store is ready to use.
package state
